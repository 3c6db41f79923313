package live

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Mehak261124/AI-IDS/internal/api"
)

// render draws the full view: results when a session just finished,
// otherwise the monitor.
func (m Model) render() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.result != nil {
		return m.renderResults()
	}
	return m.renderMonitor()
}

// renderMonitor renders the header, status card, notification feed, and
// key footer.
func (m Model) renderMonitor() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusCard())
	b.WriteString(m.renderFeed())
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with the server, phase, and the age
// of the last snapshot.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("aids live")

	indicator := phaseGlyph(m.session.Phase())
	switch m.session.Phase() {
	case PhaseStarting, PhaseStopping:
		indicator = m.spinner.View()
	}

	meta := fmt.Sprintf(" %s | %s | %s", m.server, m.session.Phase(), m.renderUpdateAge())
	return indicator + " " + title + HeaderMetaStyle.Render(meta)
}

// renderUpdateAge formats how stale the displayed snapshot is.
func (m Model) renderUpdateAge() string {
	if m.booting {
		return "connecting..."
	}
	if m.lastUpdate.IsZero() {
		return "no data"
	}
	switch age := m.SecondsSinceUpdate(); age {
	case 0:
		return "updated just now"
	case 1:
		return "updated 1s ago"
	default:
		return fmt.Sprintf("updated %ds ago", age)
	}
}

// renderStatusCard renders the capture counters from the last snapshot.
func (m Model) renderStatusCard() string {
	status := m.session.Last()

	var rows []string
	if status == nil {
		rows = append(rows, LabelStyle.Render("Waiting for the first status snapshot"))
	} else {
		running := LabelStyle.Render("not running")
		if status.Running {
			running = BenignStyle.Render("capturing " + GlyphCapture)
		}
		rows = append(rows, labelValue("Capture", running))
		rows = append(rows, labelValue("Flows", ValueStyle.Render(humanize.Comma(int64(status.Flows)))))
		rows = append(rows, labelValue("Labels", fmt.Sprintf("%s benign  %s anomaly  %s attack",
			BenignStyle.Render(humanize.Comma(int64(status.Summary.Benign))),
			AnomalyStyle.Render(humanize.Comma(int64(status.Summary.Anomaly))),
			AttackStyle.Render(humanize.Comma(int64(status.Summary.Attack))))))

		if top := topAttackTypes(status.AttackTypes, 3); top != "" {
			rows = append(rows, labelValue("Attacks", AttackStyle.Render(top)))
		}
		if status.LastCapture != "" {
			rows = append(rows, labelValue("Last window", ValueStyle.Render(status.LastCapture)))
		}
		if hw := m.session.HighWater(); hw > status.Flows {
			rows = append(rows, labelValue("Peak flows", ValueStyle.Render(humanize.Comma(int64(hw)))))
		}
	}

	if m.pollErr != "" {
		rows = append(rows, ErrorTextStyle.Render("! "+m.pollErr))
	}

	return CardStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// renderFeed renders the recent notifications, oldest first.
func (m Model) renderFeed() string {
	items := m.feed.Items()
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for _, n := range items {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			severityGlyph(n.Severity),
			ValueStyle.Render(n.Title),
			LabelStyle.Render(n.Body)))
	}
	b.WriteString("\n")
	return b.String()
}

// renderFooter renders the key hints for the current phase.
func (m Model) renderFooter() string {
	var hints []string
	if m.session.CanStart() {
		hints = append(hints, "s start")
	}
	if m.session.CanStop() {
		hints = append(hints, "x stop")
	}
	hints = append(hints, "r refresh", "? help", "q quit")
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// renderResults renders the finished session's summary and flow preview.
func (m Model) renderResults() string {
	r := m.result

	var b strings.Builder
	title := TitleStyle.Render("capture results")
	meta := fmt.Sprintf(" session %s | %s flows", shortID(m.session.ID()), humanize.Comma(int64(r.Flows)))
	b.WriteString(title + HeaderMetaStyle.Render(meta))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%s benign  %s anomaly  %s attack",
		BenignStyle.Render(humanize.Comma(int64(r.Summary.Benign))),
		AnomalyStyle.Render(humanize.Comma(int64(r.Summary.Anomaly))),
		AttackStyle.Render(humanize.Comma(int64(r.Summary.Attack))))
	rows := []string{labelValue("Labels", summary)}
	if top := topAttackTypes(r.AttackTypes, 5); top != "" {
		rows = append(rows, labelValue("Attacks", AttackStyle.Render(top)))
	}
	rows = append(rows, labelValue("Artifact", ValueStyle.Render(r.Artifact)))
	b.WriteString(CardStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render(fmt.Sprintf("First %d of %d flows", len(r.Preview), len(r.All))))
	b.WriteString("\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n\n")

	hints := []string{"d download csv", "b back to monitor", "q quit"}
	if m.saving {
		hints[0] = "downloading..."
	}
	b.WriteString(FooterStyle.Render(strings.Join(hints, " | ")))

	return b.String()
}

// renderHelp renders the key binding reference.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("aids live - keys"))
	b.WriteString("\n\n")

	bindings := []struct{ key, what string }{
		{"s", "start a capture session"},
		{"x", "stop the running session"},
		{"r", "refresh status once"},
		{"d", "download the results CSV (results view)"},
		{"b / esc", "dismiss results, back to monitor"},
		{"?", "toggle this help"},
		{"q / ctrl+c", "quit"},
	}
	for _, bind := range bindings {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			ValueStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			LabelStyle.Render(bind.what)))
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("esc close"))
	return b.String()
}

// labelValue formats one card row.
func labelValue(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-12s", label)) + value
}

// topAttackTypes formats the n most frequent attack classes, like
// "PortScan (12), DoS (3)". Returns "" when no attacks were seen.
func topAttackTypes(types map[string]int, n int) string {
	if len(types) == 0 {
		return ""
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if types[names[i]] != types[names[j]] {
			return types[names[i]] > types[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > n {
		names = names[:n]
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%d)", name, types[name])
	}
	return strings.Join(parts, ", ")
}

// buildPreviewTable builds the results preview table sized to the terminal.
func buildPreviewTable(r *Result, width int) table.Model {
	columns := []table.Column{
		{Title: "Source", Width: 21},
		{Title: "Destination", Width: 21},
		{Title: "Proto", Width: 6},
		{Title: "Label", Width: 9},
		{Title: "Attack type", Width: 16},
	}
	if width > 0 && width < 80 {
		columns = columns[:4]
	}

	rows := make([]table.Row, 0, len(r.Preview))
	for _, flow := range r.Preview {
		row := table.Row{
			orDash(flow.Source()),
			orDash(flow.Destination()),
			orDash(flow.Protocol()),
			styleLabel(flow.Label()),
		}
		if len(columns) == 5 {
			row = append(row, orDash(flow.AttackType()))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(previewTableStyles())
	return t
}

// styleLabel colors a classification label by severity.
func styleLabel(label string) string {
	switch label {
	case "BENIGN":
		return BenignStyle.Render(label)
	case "ANOMALY":
		return AnomalyStyle.Render(label)
	case "ATTACK":
		return AttackStyle.Render(label)
	case "":
		return "-"
	default:
		return label
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderSummaryLine formats a one-line count summary for non-TUI surfaces,
// like the status command.
func RenderSummaryLine(s api.Summary) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		BenignStyle.Render(fmt.Sprintf("%d benign", s.Benign)), "  ",
		AnomalyStyle.Render(fmt.Sprintf("%d anomaly", s.Anomaly)), "  ",
		AttackStyle.Render(fmt.Sprintf("%d attack", s.Attack)))
}
