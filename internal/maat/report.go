package maat

import "fmt"

// Status classifies a constraint report as a whole.
type Status string

const (
	StatusOK       Status = "OK"
	StatusViolated Status = "VIOLATED"
)

// ConstraintStatus describes one constraint at one state.
type ConstraintStatus struct {
	Name      string  `json:"name"`
	Margin    float64 `json:"margin"`
	Satisfied bool    `json:"satisfied"`
	// Hint suggests the minimal adjustment for a violated constraint.
	// Empty when the constraint is satisfied.
	Hint string `json:"hint,omitempty"`
}

// ConstraintReport is the post-hoc view of every constraint at a candidate
// state, in declaration order. Status is VIOLATED if any single entry is.
type ConstraintReport struct {
	Entries []ConstraintStatus `json:"entries"`
	Status  Status             `json:"status"`
}

// MinMargin returns the smallest margin in the report, or 0 for a report
// with no entries.
func (r ConstraintReport) MinMargin() float64 {
	if len(r.Entries) == 0 {
		return 0
	}
	min := r.Entries[0].Margin
	for _, e := range r.Entries[1:] {
		if e.Margin < min {
			min = e.Margin
		}
	}
	return min
}

// ConstraintReport evaluates every constraint margin at the given state.
// It is pure, independent of the penalty strength, and safe to call any
// number of times.
func (e *Engine[S]) ConstraintReport(state S) ConstraintReport {
	report := ConstraintReport{
		Entries: make([]ConstraintStatus, 0, len(e.Constraints)),
		Status:  StatusOK,
	}

	for _, c := range e.Constraints {
		margin := c.Margin(state)
		entry := ConstraintStatus{
			Name:      c.Name,
			Margin:    margin,
			Satisfied: margin >= 0,
		}
		if margin < 0 {
			entry.Hint = fmt.Sprintf("adjust system by at least %.4f to satisfy %s", -margin, c.Name)
			report.Status = StatusViolated
		}
		report.Entries = append(report.Entries, entry)
	}

	return report
}
