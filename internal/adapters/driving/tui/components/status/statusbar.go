// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

// State represents the current session state for display.
type State string

const (
	StateReady       State = "ready"
	StateSearching   State = "searching"
	StateDownloading State = "downloading"
	StateSelecting   State = "selecting"
	StateConfirming  State = "confirming"
	StateError       State = "error"
)

// Bar displays session status, scan progress and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	progress *domain.ProgressEvent
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

// renderLeft renders the state and progress.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		if s.progress != nil {
			return s.styles.Muted.Render(ProgressText(*s.progress))
		}
		return s.styles.Muted.Render("Searching...")
	case StateDownloading:
		return s.styles.Muted.Render("Downloading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateReady, StateSelecting, StateConfirming:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints for the state.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateSearching, StateDownloading:
		bindings = s.keymap.BusyHelp()
	case StateSelecting:
		bindings = s.keymap.ListHelp()
	case StateConfirming:
		bindings = s.keymap.ConfirmHelp()
	case StateReady, StateError:
		bindings = s.keymap.TextHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// ProgressText formats a scan progress event as "[3/5] Scanning owner/name (1 found)".
func ProgressText(e domain.ProgressEvent) string {
	return fmt.Sprintf("[%d/%d] Scanning %s (%d found)", e.Index, e.Total, e.Repository, e.Found)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
	if state != StateSearching {
		s.progress = nil
	}
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetProgress records the latest scan progress.
func (s *Bar) SetProgress(e domain.ProgressEvent) {
	s.progress = &e
}

// Progress returns the latest scan progress, if any.
func (s *Bar) Progress() (domain.ProgressEvent, bool) {
	if s.progress == nil {
		return domain.ProgressEvent{}, false
	}
	return *s.progress, true
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.progress = nil
}
