package services

import (
	"github.com/sjperalta/obra-api/internal/jobs"
)

// OverdueSweepJob is the name the overdue sweep runs under
const OverdueSweepJob = "overdue-installments"

type JobService struct {
	worker       *jobs.Worker
	installments *InstallmentService
}

func NewJobService(worker *jobs.Worker, installments *InstallmentService) *JobService {
	return &JobService{
		worker:       worker,
		installments: installments,
	}
}

func (s *JobService) GetStatus() jobs.WorkerStats {
	return s.worker.GetStats()
}

// TriggerOverdueSweep queues an immediate run of the sweep. It reports false if the queue refused it.
func (s *JobService) TriggerOverdueSweep() bool {
	return s.worker.Enqueue(OverdueSweepJob, s.installments.SweepOverdue)
}
