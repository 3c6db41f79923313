// Package ui holds the shared terminal look of aids: the color palette,
// status symbols, and the inline spinner used by the one-shot commands.
// The live view builds its styles on the same palette so TUI and plain
// output match.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors, as basic ANSI codes so they track the user's terminal
// theme instead of fighting it.
const (
	ColorSuccess lipgloss.Color = "2" // Green - benign traffic, completed work
	ColorError   lipgloss.Color = "1" // Red - attacks, failures
	ColorWarning lipgloss.Color = "3" // Yellow - anomalies, degraded states
	ColorInfo    lipgloss.Color = "6" // Cyan - titles, neutral highlights
)

// Text colors for content hierarchy.
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)
