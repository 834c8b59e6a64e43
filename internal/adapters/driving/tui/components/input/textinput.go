// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
)

// Placeholder texts.
const (
	PlaceholderEnabled  = "Type town or city name..."
	PlaceholderDisabled = "Select a province first"
)

// TownInput wraps a bubbles textinput for the town search.
// It ignores input until a province is selected.
type TownInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	enabled   bool
}

// NewTownInput creates a disabled town input.
func NewTownInput(s *styles.Styles) *TownInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = PlaceholderDisabled
	ti.CharLimit = 128
	ti.Width = 50

	return &TownInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the town input.
func (t *TownInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Disabled inputs drop them.
func (t *TownInput) Update(msg tea.Msg) (*TownInput, tea.Cmd) {
	if !t.enabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the town input.
func (t *TownInput) View() string {
	label := t.styles.Title.Render("Town: ")
	if !t.enabled {
		label = t.styles.Muted.Render("Town: ")
	}
	field := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetEnabled enables or disables the input. Disabling clears and blurs it.
func (t *TownInput) SetEnabled(enabled bool) tea.Cmd {
	t.enabled = enabled
	if !enabled {
		t.textinput.Reset()
		t.textinput.Blur()
		t.textinput.Placeholder = PlaceholderDisabled
		return nil
	}
	t.textinput.Placeholder = PlaceholderEnabled
	return t.textinput.Focus()
}

// Enabled reports whether the input accepts text.
func (t *TownInput) Enabled() bool {
	return t.enabled
}

// Placeholder returns the current placeholder.
func (t *TownInput) Placeholder() string {
	return t.textinput.Placeholder
}

// Value returns the current input value.
func (t *TownInput) Value() string {
	return t.textinput.Value()
}

// SetValue sets the input value.
func (t *TownInput) SetValue(value string) {
	t.textinput.SetValue(value)
}

// Focus sets focus on the input if it is enabled.
func (t *TownInput) Focus() tea.Cmd {
	if !t.enabled {
		return nil
	}
	return t.textinput.Focus()
}

// Blur removes focus from the input.
func (t *TownInput) Blur() {
	t.textinput.Blur()
}

// Focused returns whether the input is focused.
func (t *TownInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the input.
func (t *TownInput) SetWidth(width int) {
	t.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.textinput.Width = inputWidth
}

// Width returns the current width.
func (t *TownInput) Width() int {
	return t.width
}

// Reset clears the input.
func (t *TownInput) Reset() {
	t.textinput.Reset()
}
