package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Chris4081/maat-core/internal/store"
)

// JobState represents the current state of a job.
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateCancelled JobState = "cancelled"
)

// JobConfig is an alias to avoid duplication with store.RunConfig.
type JobConfig = store.RunConfig

// Job represents one reflection run executed in the background.
type Job struct {
	ID           string     `json:"id"`
	State        JobState   `json:"state"`
	Config       JobConfig  `json:"config"`
	X            []float64  `json:"x,omitempty"`
	Objective    float64    `json:"objective"`
	SafetyLambda float64    `json:"safetyLambda"`
	MinMargin    float64    `json:"minMargin"`
	Status       string     `json:"status,omitempty"`
	Steps        int        `json:"steps"`
	Converged    bool       `json:"converged"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// JobManager manages the lifecycle of jobs.
//
// Accessors return snapshot copies taken under the lock; the live Job is
// only ever touched inside UpdateJob, so readers and the worker goroutine
// never share a struct.
type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobManager creates a new JobManager.
func NewJobManager() *JobManager {
	return &JobManager{
		jobs: make(map[string]*Job),
	}
}

// CreateJob creates a new pending job with the given configuration.
func (jm *JobManager) CreateJob(config JobConfig) *Job {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job := &Job{
		ID:           uuid.New().String(),
		State:        StatePending,
		Config:       config,
		SafetyLambda: config.SafetyLambda,
		StartTime:    time.Now(),
	}

	jm.jobs[job.ID] = job

	snapshot := *job
	return &snapshot
}

// GetJob retrieves a snapshot of a job by ID.
func (jm *JobManager) GetJob(id string) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	job, exists := jm.jobs[id]
	if !exists {
		return nil, false
	}

	snapshot := *job
	return &snapshot, true
}

// ListJobs returns snapshots of all jobs.
func (jm *JobManager) ListJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jobs := make([]*Job, 0, len(jm.jobs))
	for _, job := range jm.jobs {
		snapshot := *job
		jobs = append(jobs, &snapshot)
	}
	return jobs
}

// UpdateJob atomically updates a job using the provided function.
func (jm *JobManager) UpdateJob(id string, updateFn func(*Job)) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job, exists := jm.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	updateFn(job)
	return nil
}

// GetRunningJobs returns snapshots of all jobs currently in the running
// state.
func (jm *JobManager) GetRunningJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	running := make([]*Job, 0)
	for _, job := range jm.jobs {
		if job.State == StateRunning {
			snapshot := *job
			running = append(running, &snapshot)
		}
	}
	return running
}
