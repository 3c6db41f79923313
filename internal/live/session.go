package live

import (
	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/google/uuid"
)

// Phase is the lifecycle state of the capture session as this client
// understands it. The server only knows running or not; the intermediate
// phases cover the window between sending a control request and hearing
// back.
type Phase int

const (
	// PhaseIdle means no session has run yet this sitting.
	PhaseIdle Phase = iota
	// PhaseStarting means a start request is in flight.
	PhaseStarting
	// PhaseRunning means the capture is live and being polled.
	PhaseRunning
	// PhaseStopping means a stop request is in flight or the final
	// results are still settling.
	PhaseStopping
	// PhaseStopped means a session completed; its results may be on screen.
	PhaseStopped
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Session tracks one capture session's lifecycle and the snapshots observed
// during it. All methods run on the update loop, so there is no locking.
type Session struct {
	phase     Phase
	last      *api.LiveStatus
	highWater int
	started   bool
	id        string
}

// NewSession returns a session in the idle phase with no observed snapshots.
func NewSession() *Session {
	return &Session{phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Last returns the most recently accepted snapshot, or nil before the
// first fetch completes.
func (s *Session) Last() *api.LiveStatus {
	return s.last
}

// HighWater returns the highest flow count observed this session. It never
// decreases, even when the server reports a lower count mid-capture.
func (s *Session) HighWater() int {
	return s.highWater
}

// Started reports whether a session was started during this run. It stays
// true through stop, so the view can tell "never ran" from "ran and stopped".
func (s *Session) Started() bool {
	return s.started
}

// ID returns the local identifier of the current session, or "" before the
// first successful start.
func (s *Session) ID() string {
	return s.id
}

// CanStart reports whether a start request is allowed right now. Starting
// is permitted when idle or when a finished session's results are showing;
// requests during the in-flight phases are rejected so they can't stack.
func (s *Session) CanStart() bool {
	return s.phase == PhaseIdle || s.phase == PhaseStopped
}

// CanStop reports whether a stop request is allowed right now.
func (s *Session) CanStop() bool {
	return s.phase == PhaseRunning
}

// BeginStart moves to the starting phase. Returns false when the gate
// rejects the request, which is a no-op.
func (s *Session) BeginStart() bool {
	if !s.CanStart() {
		return false
	}
	s.phase = PhaseStarting
	return true
}

// CompleteStart resolves an in-flight start. On success the session enters
// the running phase with a fresh identity: the snapshot baseline and
// high-water mark reset so the new session's first snapshot can never read
// as growth against the old one. On failure the phase reverts to idle so
// the user can retry.
func (s *Session) CompleteStart(ok bool) {
	if s.phase != PhaseStarting {
		return
	}
	if !ok {
		s.phase = PhaseIdle
		return
	}
	s.phase = PhaseRunning
	s.started = true
	s.last = nil
	s.highWater = 0
	s.id = uuid.NewString()
}

// BeginStop moves to the stopping phase. Returns false when the gate
// rejects the request.
func (s *Session) BeginStop() bool {
	if !s.CanStop() {
		return false
	}
	s.phase = PhaseStopping
	return true
}

// CompleteStop resolves an in-flight stop. On success the session is
// stopped; on failure it reverts to running, where it genuinely still is.
func (s *Session) CompleteStop(ok bool) {
	if s.phase != PhaseStopping {
		return
	}
	if ok {
		s.phase = PhaseStopped
		return
	}
	s.phase = PhaseRunning
}

// Accept records an incoming snapshot and returns the number of newly
// classified flows worth announcing, zero when there is nothing to say.
// Snapshots are accepted in every phase: a fetch that was in flight when
// the phase changed still lands here.
func (s *Session) Accept(incoming api.LiveStatus) int {
	accepted, fresh := Reconcile(s.last, incoming)
	s.last = &accepted
	if accepted.Flows > s.highWater {
		s.highWater = accepted.Flows
	}
	return fresh
}
