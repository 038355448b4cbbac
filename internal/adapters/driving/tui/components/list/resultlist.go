// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bookfetch/internal/adapters/driving/tui/styles"
)

// CandidateList displays candidate labels in a navigable list.
// Selection is reported by index; labels may repeat.
type CandidateList struct {
	labels   []string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCandidateList creates a new candidate list component.
func NewCandidateList(s *styles.Styles) *CandidateList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CandidateList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the candidate list.
func (c *CandidateList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CandidateList) Update(msg tea.Msg) (*CandidateList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		case "home", "g":
			c.selected = 0
		case "end", "G":
			if len(c.labels) > 0 {
				c.selected = len(c.labels) - 1
			}
		}
	}
	return c, nil
}

// View renders the visible window of the list.
func (c *CandidateList) View() string {
	if len(c.labels) == 0 {
		return c.styles.Muted.Render("No candidates")
	}

	lines := make([]string, 0, len(c.labels)+2)
	header := c.styles.Subtitle.Render(fmt.Sprintf("Candidates (%d)", len(c.labels)))
	lines = append(lines, header, "")

	start, end := c.window()
	for i := start; i < end; i++ {
		lines = append(lines, c.renderItem(i))
	}
	if end < len(c.labels) {
		lines = append(lines, c.styles.Muted.Render(fmt.Sprintf("  … %d more", len(c.labels)-end)))
	}

	return strings.Join(lines, "\n")
}

// window returns the visible index range keeping the selection in view.
func (c *CandidateList) window() (int, int) {
	visible := c.height - 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := start + visible
	if end > len(c.labels) {
		end = len(c.labels)
	}
	return start, end
}

func (c *CandidateList) renderItem(index int) string {
	text := fmt.Sprintf("%2d. %s", index+1, c.labels[index])
	if index == c.selected {
		return c.styles.Selected.Render("> " + text)
	}
	return c.styles.Normal.Render("  " + text)
}

// SetItems replaces the labels and resets the selection.
func (c *CandidateList) SetItems(labels []string) {
	c.labels = labels
	c.selected = 0
}

// Items returns the current labels.
func (c *CandidateList) Items() []string {
	return c.labels
}

// Selected returns the index of the highlighted label.
func (c *CandidateList) Selected() int {
	return c.selected
}

// SetSelected sets the selected index.
func (c *CandidateList) SetSelected(index int) {
	if index >= 0 && index < len(c.labels) {
		c.selected = index
	}
}

// MoveUp moves selection up.
func (c *CandidateList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CandidateList) MoveDown() {
	if c.selected < len(c.labels)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CandidateList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of labels.
func (c *CandidateList) Count() int {
	return len(c.labels)
}

// IsEmpty returns whether the list is empty.
func (c *CandidateList) IsEmpty() bool {
	return len(c.labels) == 0
}
