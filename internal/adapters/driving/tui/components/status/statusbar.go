// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateHelp    State = "help"
	StateResults State = "results"
)

// NoticeDuration is how long a transient notice stays visible.
const NoticeDuration = 2 * time.Second

// Bar displays application status and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	spinner     spinner.Model
	state       State
	message     string
	notice      string
	noticeID    int
	resultCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateReady,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner and expires notices.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.state != StateLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case messages.StatusExpired:
		if msg.ID == s.noticeID {
			s.notice = ""
		}
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	if s.notice != "" {
		return s.styles.Success.Render(s.notice)
	}

	switch s.state {
	case StateLoading:
		text := "Loading..."
		if s.message != "" {
			text = fmt.Sprintf("Loading %s...", s.message)
		}
		return s.spinner.View() + " " + s.styles.Muted.Render(text)
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateResults:
		if s.resultCount > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d services", s.resultCount))
		}
		if s.message != "" {
			return s.styles.Muted.Render(s.message)
		}
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding

	if s.state == StateResults && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state. Entering StateLoading starts the spinner.
func (s *Bar) SetState(state State) tea.Cmd {
	prev := s.state
	s.state = state
	if state == StateLoading && prev != StateLoading {
		return s.spinner.Tick
	}
	return nil
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

// Notify shows a transient notice and returns the command that expires it.
func (s *Bar) Notify(notice string) tea.Cmd {
	s.noticeID++
	s.notice = notice
	id := s.noticeID
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return messages.StatusExpired{ID: id}
	})
}

// Notice returns the visible notice, if any.
func (s *Bar) Notice() string {
	return s.notice
}

// NoticeID returns the id of the latest notice.
func (s *Bar) NoticeID() int {
	return s.noticeID
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
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
	s.notice = ""
	s.resultCount = 0
}
