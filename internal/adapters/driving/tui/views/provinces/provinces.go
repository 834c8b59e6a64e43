// Package provinces provides the province picker view for the TUI.
package provinces

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// View lists the nine provinces and reports the one the user picks.
type View struct {
	styles   *styles.Styles
	items    []string
	current  string
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new province picker.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items:  domain.Provinces(),
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			province := v.items[v.selected]
			return v, func() tea.Msg {
				return messages.ProvinceChosen{Province: province}
			}

		case "s":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSettings}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("SA Emergency Numbers"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Select a province"))
	b.WriteString("\n\n")

	for i, name := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = lipgloss.NewStyle().Foreground(v.styles.Theme().Primary).Bold(true)
		}

		line := cursor + style.Render(name)
		if name == v.current {
			line += v.styles.Muted.Render("  (current)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [s] Settings  [q] Quit"))

	return b.String()
}

// SetCurrent marks the selected province and moves the cursor to it.
func (v *View) SetCurrent(province string) {
	v.current = province
	for i, name := range v.items {
		if name == province {
			v.selected = i
			return
		}
	}
}

// Current returns the province marked as selected.
func (v *View) Current() string {
	return v.current
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}
