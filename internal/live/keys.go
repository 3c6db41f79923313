package live

import tea "github.com/charmbracelet/bubbletea"

// Key bindings for the live view.
const (
	KeyQuit     = "q"
	KeyQuitAlt  = "ctrl+c"
	KeyStart    = "s"
	KeyStop     = "x"
	KeyRefresh  = "r"
	KeyDownload = "d"
	KeyBack     = "b"
	KeyBackAlt  = "esc"
	KeyHelp     = "?"
)

// handleKey processes keyboard input. It reports whether the key was
// handled; unhandled keys fall through to the default Update path. Start
// and stop are gated by the session phase, not by what is on screen, so a
// key mashed during an in-flight request does nothing.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && (key == KeyBackAlt || key == KeyBack) {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyStart:
		if !m.session.BeginStart() {
			return true, nil
		}
		return true, m.startCmd()

	case KeyStop:
		if !m.session.BeginStop() {
			return true, nil
		}
		// Leaving the running phase retires the schedule; the stop
		// round trip takes over the cadence from here.
		m.poller.Cancel()
		return true, m.stopCmd()

	case KeyRefresh:
		// Manual one-shot fetch. Does not touch the schedule.
		if m.fetching {
			return true, nil
		}
		m.fetching = true
		return true, m.fetchStatusCmd()

	case KeyDownload:
		if m.result == nil || m.saving {
			return true, nil
		}
		m.saving = true
		return true, m.downloadCmd(m.result.Artifact)

	case KeyBack, KeyBackAlt:
		// Dismiss the results view. The phase is untouched: the session
		// stays stopped and a new start is allowed from the monitor view.
		if m.result != nil {
			m.result = nil
			return true, nil
		}
		return true, nil
	}

	return false, nil
}
