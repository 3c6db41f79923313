package ui

// Unicode symbols for status output.
const (
	SymbolSuccess  = "✓" // Completed successfully
	SymbolFail     = "✗" // Failed
	SymbolPending  = "○" // Not started
	SymbolProgress = "◐" // In progress
	SymbolComplete = "●" // Active / done
)
