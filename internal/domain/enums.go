package domain

// RunScope says which products a run covers
type RunScope string

const (
	// STORE - every product in the shop
	RunScopeStore RunScope = "STORE"
	// COLLECTION - products of a single collection
	RunScopeCollection RunScope = "COLLECTION"
)

// IsValid checks if the run scope is valid
func (s RunScope) IsValid() bool {
	switch s {
	case RunScopeStore, RunScopeCollection:
		return true
	default:
		return false
	}
}

// RunStatus represents the lifecycle of a chart run
type RunStatus string

const (
	// RUNNING - batch is still processing products
	RunStatusRunning RunStatus = "RUNNING"
	// COMPLETED - every product was processed (some may have failed individually)
	RunStatusCompleted RunStatus = "COMPLETED"
	// FAILED - the run could not start or list products
	RunStatusFailed RunStatus = "FAILED"
)

// ResultOutcome classifies a per-product result
type ResultOutcome string

const (
	OutcomeSuccess ResultOutcome = "SUCCESS"
	OutcomeSkipped ResultOutcome = "SKIPPED"
	OutcomeFailed  ResultOutcome = "FAILED"
)

// OutcomeOf maps a ChartResult onto its outcome class
func OutcomeOf(r ChartResult) ResultOutcome {
	switch {
	case r.Skipped:
		return OutcomeSkipped
	case r.Success:
		return OutcomeSuccess
	default:
		return OutcomeFailed
	}
}
