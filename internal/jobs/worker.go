package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sjperalta/obra-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued one-off jobs and named jobs on a fixed interval
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan namedJob
	workers int
	stats   WorkerStats
	jobs    map[string]*JobStatus
	statsMu sync.RWMutex
	closed  bool
	closeMu sync.Mutex
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int         `json:"activeJobs"`
	CompletedJobs int64       `json:"completedJobs"`
	FailedJobs    int64       `json:"failedJobs"`
	QueueLength   int         `json:"queueLength"`
	Workers       int         `json:"workers"`
	Jobs          []JobStatus `json:"jobs"`
}

// JobStatus is the run history of one named job
type JobStatus struct {
	Name         string        `json:"name"`
	Interval     time.Duration `json:"interval,omitempty"`
	Runs         int64         `json:"runs"`
	Failures     int64         `json:"failures"`
	LastRunAt    *time.Time    `json:"lastRunAt,omitempty"`
	LastDuration time.Duration `json:"lastDuration"`
	LastError    string        `json:"lastError,omitempty"`
}

// NewWorker creates a worker with N queue processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan namedJob, 100),
		workers: numWorkers,
		jobs:    make(map[string]*JobStatus),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. It returns false when
// the queue is full or the worker is shutting down.
func (w *Worker) Enqueue(name string, job Job) bool {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		return false
	}

	select {
	case w.queue <- namedJob{name: name, run: job}:
		return true
	default:
		logger.Warn("job queue full, dropping job", "job", name)
		return false
	}
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(job.name, job.run, "worker", workerID)
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, false)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, true)
}

func (w *Worker) schedule(name string, interval time.Duration, job Job, immediate bool) {
	w.statsMu.Lock()
	w.status(name).Interval = interval
	w.statsMu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.run(name, job, "scheduler", 0)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(name, job, "scheduler", 0)
			}
		}
	}()
}

func (w *Worker) run(name string, job Job, source string, workerID int) {
	start := time.Now()
	w.trackJobStart()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = job(w.ctx)
	}()

	duration := time.Since(start)
	w.trackJobEnd(name, start, duration, err)

	if err != nil {
		logger.Error("job failed", "job", name, "source", source, "worker", workerID, "error", err)
		return
	}
	logger.Info("job completed", "job", name, "source", source, "duration", duration)
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if !w.closed {
		w.closed = true
		w.cancel()
		close(w.queue)
	}
	w.closeMu.Unlock()
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.Workers = w.workers
	stats.Jobs = make([]JobStatus, 0, len(w.jobs))
	for _, js := range w.jobs {
		stats.Jobs = append(stats.Jobs, *js)
	}
	sort.Slice(stats.Jobs, func(i, j int) bool { return stats.Jobs[i].Name < stats.Jobs[j].Name })
	return stats
}

// status must be called with statsMu held
func (w *Worker) status(name string) *JobStatus {
	js, ok := w.jobs[name]
	if !ok {
		js = &JobStatus{Name: name}
		w.jobs[name] = js
	}
	return js
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// CompletedJobs counts every finished run; FailedJobs is the failing subset.
func (w *Worker) trackJobEnd(name string, start time.Time, duration time.Duration, err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++

	js := w.status(name)
	js.Runs++
	js.LastRunAt = &start
	js.LastDuration = duration
	js.LastError = ""
	if err != nil {
		w.stats.FailedJobs++
		js.Failures++
		js.LastError = err.Error()
	}
}
