package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	failStyle    = lipgloss.NewStyle().Foreground(ColorError)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorPrimary)
)

// Spinner is an inline progress indicator for the one-shot commands: a
// single line that animates while a request is in flight and collapses to
// a ✓/✗ verdict. Not for use inside Bubble Tea views, which have their own
// spinner component.
type Spinner struct {
	mu      sync.Mutex
	label   string
	frame   int
	running bool
	stop    chan struct{}
	done    chan struct{}
	output  func(string)
}

// NewSpinner creates a spinner with the given label, printing to stdout.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		label:  label,
		output: func(s string) { fmt.Print(s) },
	}
}

// SetOutput redirects spinner output, mainly for tests.
func (s *Spinner) SetOutput(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = fn
}

// Start begins the animation. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.renderFrame()
	go s.animate()
}

// Success stops the spinner and prints the label with a success mark.
func (s *Spinner) Success() {
	s.finish(successStyle.Render(SymbolSuccess))
}

// Fail stops the spinner and prints the label with a failure mark.
func (s *Spinner) Fail() {
	s.finish(failStyle.Render(SymbolFail))
}

func (s *Spinner) animate() {
	defer close(s.done)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.renderFrame()
		}
	}
}

func (s *Spinner) renderFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output(fmt.Sprintf("\r%s %s", spinnerStyle.Render(spinnerFrames[s.frame]), labelStyle.Render(s.label)))
}

func (s *Spinner) finish(mark string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	s.output(fmt.Sprintf("\r%s %s\n", mark, labelStyle.Render(s.label)))
}
