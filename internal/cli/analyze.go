package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/Mehak261124/AI-IDS/internal/live"
	"github.com/Mehak261124/AI-IDS/internal/ui"
)

// analyzeCommand uploads a capture file and prints the classification
// report.
func analyzeCommand(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		if analyzeJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}

	client, cleanup, err := newClient(cfg)
	if err != nil {
		if analyzeJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}
	defer cleanup()

	var spin *ui.Spinner
	if !analyzeJSONFlag {
		spin = ui.NewSpinner("Classifying " + filepath.Base(path))
		spin.Start()
	}

	result, err := client.Predict(context.Background(), path)
	if err != nil {
		if spin != nil {
			spin.Fail()
		}
		if analyzeJSONFlag {
			return WriteJSONFromError(os.Stdout, err)
		}
		return err
	}
	if spin != nil {
		spin.Success()
	}

	if analyzeJSONFlag {
		return WriteJSONSuccess(os.Stdout, result)
	}

	printAnalyzeText(result)
	return nil
}

// printAnalyzeText renders the human-readable classification report.
func printAnalyzeText(r *api.PredictResult) {
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	bad := lipgloss.NewStyle().Foreground(ui.ColorError)

	fmt.Println()
	fmt.Printf("  File:    %s %s\n", r.Filename, muted.Render("("+humanize.Bytes(uint64(r.FileSize))+")"))
	fmt.Printf("  Flows:   %s\n", humanize.Comma(int64(r.TotalFlows)))
	fmt.Printf("  Labels:  %s\n", live.RenderSummaryLine(r.Summary))

	for name, count := range r.AttackTypes {
		fmt.Printf("  Attack:  %s\n", bad.Render(fmt.Sprintf("%s (%d)", name, count)))
	}

	if len(r.Preview) > 0 {
		fmt.Println()
		fmt.Println(muted.Render(fmt.Sprintf("  First %d flows:", len(r.Preview))))
		for _, flow := range r.Preview {
			line := fmt.Sprintf("    %-21s -> %-21s %-6s %s",
				flow.Source(), flow.Destination(), flow.Protocol(), flow.Label())
			if at := flow.AttackType(); at != "" {
				line += bad.Render(" " + at)
			}
			fmt.Println(line)
		}
	}

	if r.DownloadCSV != "" {
		fmt.Println()
		fmt.Printf("  Full results: aids download %s\n", filepath.Base(r.DownloadCSV))
	}
}
