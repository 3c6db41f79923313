package live

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/Mehak261124/AI-IDS/internal/errors"
	"github.com/Mehak261124/AI-IDS/internal/logger"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Service is the slice of the API client the live view depends on.
type Service interface {
	StartLive(ctx context.Context) error
	StopLive(ctx context.Context) error
	LiveStatus(ctx context.Context) (api.LiveStatus, error)
	Download(ctx context.Context, name, dir string) (string, int64, error)
}

// Options configures the live view.
type Options struct {
	// PollInterval is the status refresh cadence while a capture runs.
	PollInterval time.Duration

	// SettleDelay is the pause between a stop acknowledgment and the
	// final results fetch.
	SettleDelay time.Duration

	// NotifyLimit caps the on-screen notification feed.
	NotifyLimit int

	// DownloadDir is where the results CSV lands when the user saves it.
	DownloadDir string

	// Server is the API address shown in the header.
	Server string

	// Logger receives diagnostics. Nil means the env-gated default.
	Logger logger.Logger
}

// Model is the Bubble Tea model for the live capture view.
type Model struct {
	svc Service
	log logger.Logger

	session *Session
	poller  *Poller
	feed    *Feed
	result  *Result
	preview table.Model

	spinner spinner.Model

	interval    time.Duration
	settle      time.Duration
	downloadDir string
	server      string

	width      int
	height     int
	lastUpdate time.Time
	pollErr    string
	booting    bool
	fetching   bool
	downloads  int
	saving     bool
	quitting   bool
	showHelp   bool
}

// startedMsg resolves an in-flight start request.
type startedMsg struct {
	err error
}

// stoppedMsg resolves an in-flight stop request.
type stoppedMsg struct {
	err error
}

// statusMsg carries a status snapshot from the poll schedule, a manual
// refresh, or the bootstrap fetch.
type statusMsg struct {
	status api.LiveStatus
	err    error
}

// pollTickMsg fires between scheduled fetches. The id ties it to the
// schedule that armed it.
type pollTickMsg struct {
	id PollID
}

// settledMsg fires after the post-stop settle delay.
type settledMsg struct{}

// finalStatusMsg carries the terminal snapshot fetched after settling.
type finalStatusMsg struct {
	status api.LiveStatus
	err    error
}

// downloadedMsg resolves a results download.
type downloadedMsg struct {
	path  string
	bytes int64
	err   error
}

// NewModel creates the live view model. Zero option fields get defaults.
func NewModel(svc Service, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	if opts.NotifyLimit < 1 {
		opts.NotifyLimit = 6
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[live]")
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = SpinnerStyle

	return Model{
		svc:         svc,
		log:         opts.Logger,
		session:     NewSession(),
		poller:      &Poller{},
		feed:        NewFeed(opts.NotifyLimit),
		spinner:     sp,
		interval:    opts.PollInterval,
		settle:      opts.SettleDelay,
		downloadDir: opts.DownloadDir,
		server:      opts.Server,
		booting:     true,
	}
}

// Init fetches one snapshot so the view opens with real server state. The
// bootstrap fetch never schedules follow-ups; recurring polls only exist
// while a session this client started is running.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchStatusCmd())
}

// Update handles messages and advances the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.result != nil {
			m.preview = buildPreviewTable(m.result, m.width)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startedMsg:
		return m.handleStarted(msg)

	case stoppedMsg:
		return m.handleStopped(msg)

	case statusMsg:
		return m.handleStatus(msg)

	case pollTickMsg:
		return m.handlePollTick(msg)

	case settledMsg:
		return m, m.finalStatusCmd()

	case finalStatusMsg:
		return m.handleFinalStatus(msg)

	case downloadedMsg:
		return m.handleDownloaded(msg)
	}

	return m, nil
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// handleStarted resolves a start request. Failure reverts the phase so the
// key works again; success resets the session and begins polling.
func (m Model) handleStarted(msg startedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.session.CompleteStart(false)
		m.log.Warn("start failed: %v", msg.err)
		m.feed.Push(SeverityError, "Start failed", errors.Summary(msg.err))
		return m, m.syncPolling()
	}

	m.session.CompleteStart(true)
	m.result = nil
	m.pollErr = ""
	m.log.Info("capture started, session %s", shortID(m.session.ID()))
	m.feed.Push(SeveritySuccess, "Capture started", "Session "+shortID(m.session.ID()))
	return m, m.syncPolling()
}

// handleStopped resolves a stop request. Failure reverts to running and
// resumes polling; success waits out the settle delay before the final
// results fetch.
func (m Model) handleStopped(msg stoppedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.session.CompleteStop(false)
		m.log.Warn("stop failed: %v", msg.err)
		m.feed.Push(SeverityError, "Stop failed", errors.Summary(msg.err))
		return m, m.syncPolling()
	}

	m.feed.Push(SeverityInfo, "Capture stopping", "Classifying the last window")
	return m, m.settleCmd()
}

// handleStatus folds a snapshot into the session. Fetch failures are
// transient: note them and let the schedule try again.
func (m Model) handleStatus(msg statusMsg) (tea.Model, tea.Cmd) {
	m.booting = false
	m.fetching = false

	if msg.err != nil {
		m.pollErr = errors.Summary(msg.err)
		m.log.Warn("status fetch failed: %v", msg.err)
		return m, nil
	}

	m.pollErr = ""
	m.lastUpdate = time.Now()

	if fresh := m.session.Accept(msg.status); fresh > 0 {
		m.feed.Push(SeverityInfo, "New flows", english.Plural(fresh, "new flow classified", "new flows classified"))
	}

	// The server saying "not running" outranks the local schedule. If we
	// believed the capture was live, say so; either way stop polling.
	if !msg.status.Running {
		if m.session.Phase() == PhaseRunning && m.poller.Armed() {
			m.log.Info("server reports capture stopped, pausing polls")
			m.feed.Push(SeverityWarn, "Capture ended remotely", "The server no longer reports an active capture")
		}
		m.poller.Cancel()
	}

	return m, nil
}

// handlePollTick continues or abandons a poll schedule. Ticks from retired
// schedules die here without rescheduling, which is what cancellation means
// in this loop.
func (m Model) handlePollTick(msg pollTickMsg) (tea.Model, tea.Cmd) {
	if !m.poller.Active(msg.id) || m.session.Phase() != PhaseRunning {
		return m, nil
	}
	return m, tea.Batch(m.fetchStatusCmd(), m.pollTickCmd(msg.id))
}

// handleFinalStatus completes the stop sequence with the terminal snapshot.
func (m Model) handleFinalStatus(msg finalStatusMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("final status fetch failed: %v", msg.err)
		m.session.CompleteStop(true)
		m.feed.Push(SeverityWarn, "Results unavailable", errors.Summary(msg.err))
		return m, m.syncPolling()
	}

	m.lastUpdate = time.Now()
	m.session.Accept(msg.status)
	m.poller.Cancel()
	m.session.CompleteStop(true)

	if r := Project(msg.status); r != nil {
		m.result = r
		m.preview = buildPreviewTable(r, m.width)
		m.log.Info("session %s finished with %d flows", shortID(m.session.ID()), r.Flows)
		m.feed.Push(SeveritySuccess, "Results ready",
			english.Plural(r.Flows, "flow classified", "flows classified")+" - press d to save the CSV")
	} else {
		m.log.Info("session %s finished with no flows", shortID(m.session.ID()))
		m.feed.Push(SeverityInfo, "Capture stopped", "No flows were classified in this session")
	}

	return m, m.syncPolling()
}

// handleDownloaded resolves a results download.
func (m Model) handleDownloaded(msg downloadedMsg) (tea.Model, tea.Cmd) {
	m.saving = false

	if msg.err != nil {
		m.log.Warn("download failed: %v", msg.err)
		m.feed.Push(SeverityError, "Download failed", errors.Summary(msg.err))
		return m, nil
	}

	m.downloads++
	m.feed.Push(SeveritySuccess, "Saved "+filepath.Base(msg.path), humanize.Bytes(uint64(msg.bytes)))
	return m, nil
}

// syncPolling recomputes the poll schedule from the current phase. Running
// means an armed schedule plus an immediate fetch so the view doesn't sit
// on stale data for a whole interval; every other phase means no schedule.
// Callers invoke it after each transition, so the schedule is always a
// function of phase rather than of transition history.
func (m *Model) syncPolling() tea.Cmd {
	if m.session.Phase() == PhaseRunning {
		id := m.poller.Arm()
		return tea.Batch(m.fetchStatusCmd(), m.pollTickCmd(id))
	}
	m.poller.Cancel()
	return nil
}

// fetchStatusCmd fetches one status snapshot.
func (m Model) fetchStatusCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		status, err := svc.LiveStatus(context.Background())
		return statusMsg{status: status, err: err}
	}
}

// finalStatusCmd fetches the terminal snapshot after settling.
func (m Model) finalStatusCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		status, err := svc.LiveStatus(context.Background())
		return finalStatusMsg{status: status, err: err}
	}
}

// startCmd sends the start request.
func (m Model) startCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return startedMsg{err: svc.StartLive(context.Background())}
	}
}

// stopCmd sends the stop request.
func (m Model) stopCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return stoppedMsg{err: svc.StopLive(context.Background())}
	}
}

// settleCmd waits out the settle delay, then triggers the final fetch.
func (m Model) settleCmd() tea.Cmd {
	return tea.Tick(m.settle, func(time.Time) tea.Msg {
		return settledMsg{}
	})
}

// pollTickCmd schedules the next tick for the given schedule id.
func (m Model) pollTickCmd(id PollID) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollTickMsg{id: id}
	})
}

// downloadCmd saves the named artifact into the download directory.
func (m Model) downloadCmd(name string) tea.Cmd {
	svc := m.svc
	dir := m.downloadDir
	return func() tea.Msg {
		path, n, err := svc.Download(context.Background(), name, dir)
		return downloadedMsg{path: path, bytes: n, err: err}
	}
}

// Phase exposes the current lifecycle phase, mostly for tests.
func (m Model) Phase() Phase {
	return m.session.Phase()
}

// Polling reports whether a poll schedule is armed, mostly for tests.
func (m Model) Polling() bool {
	return m.poller.Armed()
}

// Result returns the displayed result, or nil.
func (m Model) Result() *Result {
	return m.result
}

// Notifications returns the feed contents, oldest first.
func (m Model) Notifications() []Notification {
	return m.feed.Items()
}

// SecondsSinceUpdate returns how long ago the last snapshot landed.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// shortID trims a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
