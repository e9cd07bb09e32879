package store

// Store defines checkpoint persistence for reflection runs.
// Implementations must be safe for concurrent use.
//
// Error conventions:
//   - nil on success
//   - ErrNotFound when the run has no checkpoint (Load/Delete)
//   - wrapped errors with context for I/O and serialization failures
type Store interface {
	// SaveCheckpoint atomically saves the checkpoint for a run,
	// overwriting any previous one.
	SaveCheckpoint(runID string, checkpoint *Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a run.
	// Returns ErrNotFound if none exists.
	LoadCheckpoint(runID string) (*Checkpoint, error)

	// ListCheckpoints returns metadata for all stored runs; the slice may
	// be empty.
	ListCheckpoints() ([]CheckpointInfo, error)

	// DeleteCheckpoint removes the checkpoint and the run's trace.
	// Returns ErrNotFound if the run has no stored data.
	DeleteCheckpoint(runID string) error
}

// ErrNotFound is returned when a requested run has no stored checkpoint.
// Use errors.Is(err, ErrNotFound) to check for it.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing checkpoint.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "checkpoint not found: " + e.RunID
	}
	return "checkpoint not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
