package live

import "github.com/Mehak261124/AI-IDS/internal/api"

// PreviewRows is how many flows the result summary shows inline. The full
// table is in the downloadable CSV.
const PreviewRows = 10

// Result is the displayable outcome of a completed capture session,
// projected from the terminal status snapshot.
type Result struct {
	// Flows is the total classified flow count.
	Flows int

	// Summary holds the per-label counts.
	Summary api.Summary

	// AttackTypes breaks down flows labeled ATTACK by attack class.
	// May be nil when the session saw no attacks.
	AttackTypes map[string]int

	// Preview is the first few flows, in server order.
	Preview []api.FlowRecord

	// All is the complete flow table from the terminal snapshot.
	All []api.FlowRecord

	// Artifact is the server-side name of the downloadable CSV.
	Artifact string
}

// Project builds a Result from the terminal snapshot of a stopped session.
// It returns nil when there is nothing to show: no classified flows, or a
// server that didn't include the flow table. Callers treat nil as "session
// ended without results" rather than an error.
func Project(terminal api.LiveStatus) *Result {
	if terminal.Flows <= 0 || terminal.AllFlows == nil {
		return nil
	}

	n := len(terminal.AllFlows)
	if n > PreviewRows {
		n = PreviewRows
	}

	return &Result{
		Flows:       terminal.Flows,
		Summary:     terminal.Summary,
		AttackTypes: terminal.AttackTypes,
		Preview:     terminal.AllFlows[:n],
		All:         terminal.AllFlows,
		Artifact:    api.LivePredictionsFile,
	}
}
