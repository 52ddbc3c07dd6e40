package models

import "time"

// ValidationWindow is the inclusive [Start, End] range covering one
// calendar day in the reference timezone. It is recomputed from "now"
// on every run and never persisted.
type ValidationWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w ValidationWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CollectionOutcome is the verdict for a single collection within one
// validation run. Success holds iff the collection has records created
// today AND its newest record is from today.
type CollectionOutcome struct {
	Collection       string     `json:"collection"`
	Success          bool       `json:"success"`
	TodayCount       int64      `json:"today_count"`
	TotalCount       int64      `json:"total_count"`
	LatestCreateTime *time.Time `json:"latest_create_time"`
	IsLatestToday    bool       `json:"is_latest_today"`
	Error            string     `json:"error,omitempty"`
}

// ValidationResult aggregates the per-collection outcomes of one run.
//
// Success is a tri-state: nil when the check is disabled or the run
// failed before any collection could be inspected (Error is set in the
// latter case), otherwise the AND over all outcomes.
type ValidationResult struct {
	Enabled               bool                `json:"enabled"`
	Success               *bool               `json:"success"`
	ChainID               string              `json:"chain_id,omitempty"`
	ChainName             string              `json:"chain_name,omitempty"`
	TotalCollections      int                 `json:"total_collections"`
	SuccessfulCollections int                 `json:"successful_collections"`
	FailedCollections     int                 `json:"failed_collections"`
	Outcomes              []CollectionOutcome `json:"validation_results"`
	ValidationTime        time.Time           `json:"validation_time"`
	TodayDate             string              `json:"today_date,omitempty"`
	Error                 string              `json:"error,omitempty"`
}

// DisabledResult is what a run produces when no target chain is
// configured: the check never executes and nothing is counted.
func DisabledResult(now time.Time) *ValidationResult {
	return &ValidationResult{
		Enabled:        false,
		Outcomes:       []CollectionOutcome{},
		ValidationTime: now,
	}
}
