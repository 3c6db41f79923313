package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mehak261124/AI-IDS/internal/api"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase  Phase
		expect string
	}{
		{PhaseIdle, "idle"},
		{PhaseStarting, "starting"},
		{PhaseRunning, "running"},
		{PhaseStopping, "stopping"},
		{PhaseStopped, "stopped"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.phase.String())
		})
	}
}

func TestSession_StartGate(t *testing.T) {
	s := NewSession()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.True(t, s.CanStart())
	assert.False(t, s.CanStop())

	// First start goes through
	require.True(t, s.BeginStart())
	assert.Equal(t, PhaseStarting, s.Phase())

	// A second start during the round trip is rejected
	assert.False(t, s.BeginStart())
	assert.Equal(t, PhaseStarting, s.Phase())

	// And stop is not allowed before the capture is confirmed running
	assert.False(t, s.BeginStop())
}

func TestSession_StartFailureRevertsToIdle(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginStart())

	s.CompleteStart(false)

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.Started())
	assert.Empty(t, s.ID())
	assert.True(t, s.CanStart(), "failure must leave a retry possible")
}

func TestSession_StartSuccessResetsSessionState(t *testing.T) {
	s := NewSession()

	// Simulate a completed earlier session with observed flows
	require.True(t, s.BeginStart())
	s.CompleteStart(true)
	firstID := s.ID()
	s.Accept(api.LiveStatus{Running: true, Flows: 42})
	require.True(t, s.BeginStop())
	s.CompleteStop(true)

	assert.Equal(t, PhaseStopped, s.Phase())
	assert.Equal(t, 42, s.HighWater())
	assert.True(t, s.CanStart(), "starting over the results view is allowed")

	// A new start wipes the baseline, the high-water mark, and the id
	require.True(t, s.BeginStart())
	s.CompleteStart(true)

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Nil(t, s.Last())
	assert.Zero(t, s.HighWater())
	assert.NotEqual(t, firstID, s.ID())
	assert.True(t, s.Started(), "started stays sticky across sessions")

	// The new session's first snapshot is silent even though the old
	// session had flows
	fresh := s.Accept(api.LiveStatus{Running: true, Flows: 99})
	assert.Zero(t, fresh)
}

func TestSession_StopFailureRevertsToRunning(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginStart())
	s.CompleteStart(true)
	require.True(t, s.BeginStop())

	s.CompleteStop(false)

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.True(t, s.CanStop(), "the capture is still live, stop must be retryable")
}

func TestSession_CompleteOutOfPhaseIsNoop(t *testing.T) {
	s := NewSession()

	// Resolutions that arrive when no request is in flight change nothing
	s.CompleteStart(true)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.Started())

	s.CompleteStop(true)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestSession_HighWaterNeverDecreases(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginStart())
	s.CompleteStart(true)

	counts := []int{0, 3, 7, 7, 2, 9, 1, 9}
	highWater := 0
	for _, n := range counts {
		s.Accept(api.LiveStatus{Running: true, Flows: n})
		if n > highWater {
			highWater = n
		}
		assert.GreaterOrEqual(t, s.HighWater(), highWater)
	}
	assert.Equal(t, 9, s.HighWater())

	// The last snapshot is still accepted verbatim
	assert.Equal(t, 9, s.Last().Flows)
}

func TestSession_AcceptNotifiesOnGrowthOnly(t *testing.T) {
	s := NewSession()
	require.True(t, s.BeginStart())
	s.CompleteStart(true)

	assert.Zero(t, s.Accept(api.LiveStatus{Running: true, Flows: 0}), "baseline snapshot")
	assert.Zero(t, s.Accept(api.LiveStatus{Running: true, Flows: 5}), "first nonzero is the new baseline")
	assert.Equal(t, 7, s.Accept(api.LiveStatus{Running: true, Flows: 12}))
	assert.Zero(t, s.Accept(api.LiveStatus{Running: false, Flows: 20}), "stopped capture is quiet")
}
