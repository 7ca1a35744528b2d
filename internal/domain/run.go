package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunResult is everything one pipeline run produced. Instances are immutable
// once built; a new run always builds a fresh one.
type RunResult struct {
	RunID        uuid.UUID       `json:"run_id"`
	StartedAt    time.Time       `json:"started_at"`
	Duration     time.Duration   `json:"duration_ns"`
	RejectedRows int             `json:"rejected_rows"`
	Summary      Summary         `json:"summary"`
	Customers    []CustomerTotal `json:"customers"`
	Freights     []FreightEntry  `json:"freights"`
	UrgentCount  int             `json:"urgent_count"`
	ExcelReport  string          `json:"excel_report,omitempty"`
	TextReport   string          `json:"text_report,omitempty"`
}

// FreightsByStatus returns the freight entries matching st, preserving queue
// order.
func (r *RunResult) FreightsByStatus(st FreightStatus) []FreightEntry {
	out := make([]FreightEntry, 0, len(r.Freights))
	for _, f := range r.Freights {
		if f.Status == st {
			out = append(out, f)
		}
	}
	return out
}
