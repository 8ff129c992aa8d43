package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obra-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Worker counters plus the run history of each scheduled job
// @Tags Jobs
// @Produce json
// @Success 200 {object} jobs.WorkerStats
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.GetStatus())
}

// SweepOverdue queues an immediate overdue sweep
// @Summary Run the overdue installment sweep now
// @Tags Jobs
// @Produce json
// @Success 202 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /jobs/overdue-sweep [post]
func (h *JobHandler) SweepOverdue(c *gin.Context) {
	if !h.jobService.TriggerOverdueSweep() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not accepting work"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true, "job": services.OverdueSweepJob})
}
