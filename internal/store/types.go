package store

import (
	"time"
)

// RunConfig holds the search configuration of a reflection run
// (checkpoint copy, kept here to avoid import cycles with server).
type RunConfig struct {
	Problem       string  `json:"problem"`
	SafetyLambda  float64 `json:"safetyLambda"`
	Exploration   float64 `json:"exploration"`
	ExploreFirst  bool    `json:"exploreFirst"`
	Seed          int64   `json:"seed"`
	MaxIterations int     `json:"maxIterations,omitempty"`
	MaxSteps      int     `json:"maxSteps,omitempty"`
}

// Checkpoint is the saved state of a reflection run.
//
// Only the best point and the penalty strength reached are saved, not any
// solver-internal state (simplex, swarm positions). A resumed run restarts
// the solver from the checkpointed point with the checkpointed lambda;
// the best objective can only improve, but iteration-for-iteration the
// continuation diverges from an uninterrupted run.
type Checkpoint struct {
	// RunID is the unique identifier of the run.
	RunID string `json:"runId"`

	// X is the best point found so far.
	X []float64 `json:"x"`

	// Objective is the integrated objective value at X.
	Objective float64 `json:"objective"`

	// SafetyLambda is the penalty strength in effect after the last step.
	SafetyLambda float64 `json:"safetyLambda"`

	// MinMargin is the smallest constraint margin at X.
	MinMargin float64 `json:"minMargin"`

	// Status is the constraint report status at X (OK or VIOLATED).
	Status string `json:"status"`

	// Step is the reflection step that produced this checkpoint.
	Step int `json:"step"`

	// Timestamp records when this checkpoint was created.
	Timestamp time.Time `json:"timestamp"`

	// Config holds the run configuration, used to validate resumes.
	Config RunConfig `json:"config"`
}

// CheckpointInfo is checkpoint metadata without the point data, for
// listing runs cheaply.
type CheckpointInfo struct {
	RunID        string    `json:"runId"`
	Problem      string    `json:"problem"`
	Objective    float64   `json:"objective"`
	SafetyLambda float64   `json:"safetyLambda"`
	Status       string    `json:"status"`
	Step         int       `json:"step"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewCheckpoint creates a checkpoint from run state.
func NewCheckpoint(runID string, x []float64, objective, safetyLambda, minMargin float64, status string, step int, config RunConfig) *Checkpoint {
	return &Checkpoint{
		RunID:        runID,
		X:            x,
		Objective:    objective,
		SafetyLambda: safetyLambda,
		MinMargin:    minMargin,
		Status:       status,
		Step:         step,
		Timestamp:    time.Now(),
		Config:       config,
	}
}

// ToInfo converts a full checkpoint to its metadata view.
func (c *Checkpoint) ToInfo() CheckpointInfo {
	return CheckpointInfo{
		RunID:        c.RunID,
		Problem:      c.Config.Problem,
		Objective:    c.Objective,
		SafetyLambda: c.SafetyLambda,
		Status:       c.Status,
		Step:         c.Step,
		Timestamp:    c.Timestamp,
	}
}

// Validate checks that the checkpoint carries everything a resume needs.
func (c *Checkpoint) Validate() error {
	if c.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if len(c.X) == 0 {
		return &ValidationError{Field: "X", Reason: "cannot be empty"}
	}
	if c.SafetyLambda <= 0 {
		return &ValidationError{Field: "SafetyLambda", Reason: "must be positive"}
	}
	if c.Step < 0 {
		return &ValidationError{Field: "Step", Reason: "cannot be negative"}
	}
	if c.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if c.Config.Problem == "" {
		return &ValidationError{Field: "Config.Problem", Reason: "cannot be empty"}
	}
	return nil
}

// IsCompatible checks whether the checkpoint can seed a run with the given
// configuration. Resuming against a different problem would reinterpret
// the saved point.
func (c *Checkpoint) IsCompatible(config RunConfig) error {
	if c.Config.Problem != config.Problem {
		return &CompatibilityError{
			Field:    "Problem",
			Expected: c.Config.Problem,
			Actual:   config.Problem,
		}
	}
	return nil
}

// ValidationError reports an invalid checkpoint field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

// CompatibilityError reports a checkpoint/config mismatch on resume.
type CompatibilityError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *CompatibilityError) Error() string {
	return "compatibility error: " + e.Field + " mismatch (expected " + e.Expected + ", got " + e.Actual + ")"
}
