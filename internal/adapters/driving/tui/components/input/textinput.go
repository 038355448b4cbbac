// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/styles"
)

// PromptInput wraps a bubbles textinput with a prompt line above it.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	prompt    string
	width     int
}

// NewPromptInput creates a new prompt input component.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Book title, e.g. Clean Code"
	ti.CharLimit = 1024
	ti.Width = 50

	return &PromptInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the prompt input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Start shows a new prompt pre-filled with def and focuses the input.
func (p *PromptInput) Start(prompt, def string) tea.Cmd {
	p.prompt = prompt
	p.textinput.Reset()
	p.textinput.SetValue(def)
	p.textinput.CursorEnd()
	return p.textinput.Focus()
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the prompt and the input field.
func (p *PromptInput) View() string {
	label := p.styles.Title.Render(p.prompt)
	field := p.styles.InputField.Render(p.textinput.View())
	return lipgloss.JoinVertical(lipgloss.Left, label, field)
}

// Prompt returns the active prompt text.
func (p *PromptInput) Prompt() string {
	return p.prompt
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Blur removes focus from the input.
func (p *PromptInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PromptInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	// Account for border and padding
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the prompt and the input.
func (p *PromptInput) Reset() {
	p.prompt = ""
	p.textinput.Reset()
	p.textinput.Blur()
}
