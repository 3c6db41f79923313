package cli

import (
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Mehak261124/AI-IDS/internal/errors"
	"github.com/Mehak261124/AI-IDS/internal/live"
	"github.com/Mehak261124/AI-IDS/internal/logger"
)

// liveCommand starts the interactive capture monitor.
func liveCommand(intervalFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval := cfg.PollInterval
	if intervalFlag != "" {
		parsed, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid interval: "+intervalFlag,
				"Use a duration like 2s, 5s, or 1m")
		}
		if parsed < 500*time.Millisecond {
			return errors.New(errors.ErrConfig,
				"Interval too short",
				"Minimum interval is 500ms to avoid hammering the server")
		}
		interval = parsed
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrInput,
			"aids live needs an interactive terminal",
			"For scripts, use 'aids start', 'aids status --json', and 'aids stop'")
	}

	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// The env logger writes through the standard log package, which would
	// scribble over the alt screen. Send it to a file when debugging,
	// otherwise drop it.
	restore := redirectLogs()
	defer restore()

	model := live.NewModel(client, live.Options{
		PollInterval: interval,
		SettleDelay:  cfg.SettleDelay,
		NotifyLimit:  cfg.NotifyLimit,
		DownloadDir:  cfg.DownloadDir,
		Server:       cfg.Server,
		Logger:       logger.NewEnvLogger("[live]"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// redirectLogs points the standard log package away from the terminal for
// the TUI's lifetime and returns the undo.
func redirectLogs() func() {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}

	f, err := os.OpenFile("aids-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}
