package live

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mehak261124/AI-IDS/internal/api"
)

func status(running bool, flows int) api.LiveStatus {
	return api.LiveStatus{Running: running, Flows: flows}
}

func TestReconcile_AcceptsIncomingUnconditionally(t *testing.T) {
	prev := status(true, 100)
	prev.LastCapture = "old_window.pcap"

	incoming := status(true, 40) // server reports fewer flows than before
	incoming.LastCapture = "new_window.pcap"

	accepted, fresh := Reconcile(&prev, incoming)

	// No field survives from the previous snapshot
	assert.Equal(t, incoming, accepted)
	assert.Equal(t, "new_window.pcap", accepted.LastCapture)
	assert.Equal(t, 0, fresh, "a shrinking count is never news")
}

func TestReconcile_FreshFlowRules(t *testing.T) {
	tests := []struct {
		name     string
		previous *api.LiveStatus
		incoming api.LiveStatus
		fresh    int
	}{
		{
			name:     "nil previous never notifies",
			previous: nil,
			incoming: status(true, 50),
			fresh:    0,
		},
		{
			name:     "zero-flow previous never notifies",
			previous: &api.LiveStatus{Running: true, Flows: 0},
			incoming: status(true, 7),
			fresh:    0,
		},
		{
			name:     "growth while running notifies with the delta",
			previous: &api.LiveStatus{Running: true, Flows: 5},
			incoming: status(true, 12),
			fresh:    7,
		},
		{
			name:     "growth on a stopped capture stays quiet",
			previous: &api.LiveStatus{Running: true, Flows: 5},
			incoming: status(false, 12),
			fresh:    0,
		},
		{
			name:     "equal count stays quiet",
			previous: &api.LiveStatus{Running: true, Flows: 12},
			incoming: status(true, 12),
			fresh:    0,
		},
		{
			name:     "lower count stays quiet",
			previous: &api.LiveStatus{Running: true, Flows: 12},
			incoming: status(true, 9),
			fresh:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, fresh := Reconcile(tt.previous, tt.incoming)
			assert.Equal(t, tt.incoming, accepted)
			assert.Equal(t, tt.fresh, fresh)
		})
	}
}

func TestReconcile_ToleratesInconsistentSummary(t *testing.T) {
	// flows disagreeing with the summary total is the server's problem;
	// reconciliation only looks at the top-level count.
	prev := api.LiveStatus{Running: true, Flows: 3}
	incoming := api.LiveStatus{
		Running: true,
		Flows:   10,
		Summary: api.Summary{Benign: 1}, // sums to 1, not 10
	}

	accepted, fresh := Reconcile(&prev, incoming)
	assert.Equal(t, 10, accepted.Flows)
	assert.Equal(t, 7, fresh)
}

func TestReconcile_MinimalSnapshot(t *testing.T) {
	// A bare {"running": false} payload decodes to all zero values and
	// must flow through untouched.
	accepted, fresh := Reconcile(nil, api.LiveStatus{})
	assert.Equal(t, api.LiveStatus{}, accepted)
	assert.Zero(t, fresh)
	assert.Nil(t, accepted.AttackTypes)
	assert.Nil(t, accepted.AllFlows)
}
