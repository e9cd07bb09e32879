package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Chris4081/maat-core/internal/problem"
	"github.com/Chris4081/maat-core/internal/store"
)

// runJob executes one reflection run in the background: repeated seeks
// with the penalty strength adjusted from the constraint report between
// steps. Every step is appended to the job's trace and checkpointed when
// a store is configured.
func runJob(ctx context.Context, jm *JobManager, dataDir string, checkpointStore store.Store, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	}); err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID, "problem", job.Config.Problem)

	p, err := problem.Get(job.Config.Problem)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	var trace *store.TraceWriter
	if dataDir != "" {
		trace, err = store.NewTraceWriter(dataDir, jobID, false)
		if err != nil {
			markJobFailed(jm, jobID, fmt.Errorf("failed to open trace: %w", err))
			return err
		}
		defer trace.Close()
	}

	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	observe := func(step problem.ReflectStep) {
		jm.UpdateJob(jobID, func(j *Job) {
			j.Steps = step.Step + 1
			j.X = step.Result.X
			j.Objective = step.Result.Objective
			j.SafetyLambda = step.SafetyLambda
			j.MinMargin = step.MinMargin
			j.Status = string(step.Result.Report.Status)
		})

		if trace != nil {
			err := trace.Write(store.TraceEntry{
				Step:         step.Step,
				SafetyLambda: step.SafetyLambda,
				Objective:    step.Result.Objective,
				MinMargin:    step.MinMargin,
				Status:       string(step.Result.Report.Status),
				Converged:    step.Result.Converged,
				Timestamp:    time.Now(),
				X:            step.Result.X,
			})
			if err != nil {
				slog.Warn("Failed to write trace entry", "job_id", jobID, "error", err)
			}
		}

		if checkpointStore != nil {
			checkpoint := store.NewCheckpoint(
				jobID,
				step.Result.X,
				step.Result.Objective,
				step.SafetyLambda,
				step.MinMargin,
				string(step.Result.Report.Status),
				step.Step,
				job.Config,
			)
			if err := checkpointStore.SaveCheckpoint(jobID, checkpoint); err != nil {
				slog.Warn("Failed to save checkpoint", "job_id", jobID, "error", err)
			}
		}
	}

	start := time.Now()
	result, err := problem.Reflect(p, problem.ReflectOptions{
		SafetyLambda:  job.Config.SafetyLambda,
		MaxSteps:      job.Config.MaxSteps,
		ExploreFirst:  job.Config.ExploreFirst,
		Exploration:   job.Config.Exploration,
		Seed:          job.Config.Seed,
		MaxIterations: job.Config.MaxIterations,
	}, observe)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	if trace != nil {
		if err := trace.Flush(); err != nil {
			slog.Warn("Failed to flush trace", "job_id", jobID, "error", err)
		}
	}

	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.X = result.Final.X
		j.Objective = result.Final.Objective
		j.SafetyLambda = result.SafetyLambda
		j.MinMargin = result.Final.Report.MinMargin()
		j.Status = string(result.Final.Report.Status)
		j.Steps = result.Steps
		j.Converged = result.Converged
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	slog.Info("Job completed",
		"job_id", jobID,
		"steps", result.Steps,
		"objective", result.Final.Objective,
		"status", result.Final.Report.Status,
		"elapsed", endTime.Sub(start),
	)
	return nil
}

func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
