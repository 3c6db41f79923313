package live

// PollID identifies one armed polling schedule. Tick messages carry the id
// that armed them, so ticks from a cancelled or superseded schedule can be
// recognized and dropped instead of rescheduling.
type PollID uint64

// Poller owns the recurring status-fetch schedule. There is at most one
// active schedule: arming implicitly retires whatever came before, because
// old ids stop matching. Like Session, it runs on the update loop and
// needs no locking.
//
// Cancellation is cooperative. A tick already in the pipeline when Cancel
// runs still arrives; it just fails the Active check and dies without
// scheduling a successor. In-flight status fetches are unaffected - their
// results are still worth reconciling, they only lose the right to
// reschedule.
type Poller struct {
	current PollID
	armed   bool
}

// Arm starts a new schedule and returns its id. Any previous schedule is
// retired in the same breath.
func (p *Poller) Arm() PollID {
	p.current++
	p.armed = true
	return p.current
}

// Cancel retires the active schedule. Safe to call at any time, in any
// phase, repeatedly.
func (p *Poller) Cancel() {
	p.armed = false
}

// Armed reports whether a schedule is currently active.
func (p *Poller) Armed() bool {
	return p.armed
}

// Active reports whether id names the currently armed schedule. Ticks that
// fail this check must not reschedule.
func (p *Poller) Active(id PollID) bool {
	return p.armed && id == p.current
}
