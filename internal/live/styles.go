package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mehak261124/AI-IDS/internal/ui"
)

// Styles for the live capture view. Semantic colors come from internal/ui
// so the TUI and the plain CLI output stay visually consistent.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)

	HeaderMetaStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted).
			Padding(0, 1).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	BenignStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSuccess)

	AnomalyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	AttackStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)
)

// Phase indicator glyphs.
const (
	GlyphIdle     = "○"
	GlyphRunning  = "●"
	GlyphStopped  = "◌"
	GlyphCapture  = "⣿"
	GlyphNotifDot = "›"
)

// phaseGlyph returns the styled indicator for a phase. The in-flight phases
// render the spinner instead, handled by the caller.
func phaseGlyph(p Phase) string {
	switch p {
	case PhaseRunning:
		return BenignStyle.Render(GlyphRunning)
	case PhaseStopped:
		return LabelStyle.Render(GlyphStopped)
	default:
		return LabelStyle.Render(GlyphIdle)
	}
}

// severityGlyph returns the styled feed symbol for a notification severity.
func severityGlyph(sev Severity) string {
	switch sev {
	case SeveritySuccess:
		return BenignStyle.Render(ui.SymbolSuccess)
	case SeverityWarn:
		return AnomalyStyle.Render(ui.SymbolProgress)
	case SeverityError:
		return ErrorTextStyle.Render(ui.SymbolFail)
	default:
		return LabelStyle.Render(GlyphNotifDot)
	}
}

// previewTableStyles returns the bubbles/table styling for the results
// preview. The table is display-only; the selected-row style matches the
// normal cell style so no row looks picked.
func previewTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Foreground(ui.ColorSecondary).
		Bold(true)
	s.Cell = s.Cell.Foreground(ui.ColorPrimary)
	s.Selected = s.Cell
	return s
}
