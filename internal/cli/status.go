package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/Mehak261124/AI-IDS/internal/live"
	"github.com/Mehak261124/AI-IDS/internal/ui"
)

// StatusOutput is the JSON shape of 'aids status --json'.
type StatusOutput struct {
	Server    string         `json:"server"`
	Healthy   bool           `json:"healthy"`
	Running   bool           `json:"running"`
	Flows     int            `json:"flows"`
	Benign    int            `json:"benign"`
	Anomaly   int            `json:"anomaly"`
	Attack    int            `json:"attack"`
	Attacks   map[string]int `json:"attack_types,omitempty"`
	LastFile  string         `json:"last_capture,omitempty"`
	Timestamp float64        `json:"server_timestamp,omitempty"`
}

// statusCommand checks the server and prints the capture state once.
func statusCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		if statusJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}

	client, cleanup, err := newClient(cfg)
	if err != nil {
		if statusJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}
	defer cleanup()

	ctx := context.Background()
	health, err := client.Health(ctx)
	if err != nil {
		if statusJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}

	status, err := client.LiveStatus(ctx)
	if err != nil {
		if statusJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}

	if statusJSONFlag {
		return WriteJSONSuccess(os.Stdout, StatusOutput{
			Server:    cfg.Server,
			Healthy:   true,
			Running:   status.Running,
			Flows:     status.Flows,
			Benign:    status.Summary.Benign,
			Anomaly:   status.Summary.Anomaly,
			Attack:    status.Summary.Attack,
			Attacks:   status.AttackTypes,
			LastFile:  status.LastCapture,
			Timestamp: health.Timestamp,
		})
	}

	printStatusText(cfg.Server, status)
	return nil
}

// printStatusText renders the human-readable status report.
func printStatusText(server string, status api.LiveStatus) {
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	good := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	bad := lipgloss.NewStyle().Foreground(ui.ColorError)

	fmt.Printf("%s Server %s is up\n", good.Render(ui.SymbolSuccess), server)

	if status.Running {
		fmt.Printf("%s Live capture running\n", good.Render(ui.SymbolComplete))
	} else {
		fmt.Printf("%s No capture running %s\n", muted.Render(ui.SymbolPending),
			muted.Render("(start one with 'aids live' or 'aids start')"))
	}

	if status.Flows > 0 {
		fmt.Printf("  Flows:   %s\n", humanize.Comma(int64(status.Flows)))
		fmt.Printf("  Labels:  %s\n", live.RenderSummaryLine(status.Summary))
	}
	for name, count := range status.AttackTypes {
		fmt.Printf("  Attack:  %s\n", bad.Render(fmt.Sprintf("%s (%d)", name, count)))
	}
	if status.LastCapture != "" {
		fmt.Printf("  Window:  %s\n", muted.Render(status.LastCapture))
	}
}
