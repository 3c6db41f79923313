package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoller_ArmAndCancel(t *testing.T) {
	p := &Poller{}
	assert.False(t, p.Armed())

	id := p.Arm()
	assert.True(t, p.Armed())
	assert.True(t, p.Active(id))

	p.Cancel()
	assert.False(t, p.Armed())
	assert.False(t, p.Active(id), "ticks from a cancelled schedule are dead")
}

func TestPoller_CancelIsIdempotent(t *testing.T) {
	p := &Poller{}
	p.Cancel() // never armed
	assert.False(t, p.Armed())

	id := p.Arm()
	p.Cancel()
	p.Cancel()
	p.Cancel()
	assert.False(t, p.Armed())
	assert.False(t, p.Active(id))
}

func TestPoller_RearmRetiresOldSchedule(t *testing.T) {
	p := &Poller{}

	first := p.Arm()
	second := p.Arm()

	assert.True(t, p.Active(second))
	assert.False(t, p.Active(first), "only one schedule may be live at a time")
}

func TestPoller_StopStartCycleDropsStaleTicks(t *testing.T) {
	p := &Poller{}

	// A rapid stop -> start cycle: the first schedule's in-flight tick
	// must not pass the Active check after the second one arms.
	first := p.Arm()
	p.Cancel()
	second := p.Arm()

	assert.False(t, p.Active(first))
	assert.True(t, p.Active(second))
}
