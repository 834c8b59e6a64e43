// Package settings provides the data source settings view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
)

// Field identifies an editable row.
type Field int

const (
	FieldKind Field = iota
	FieldLocation
	FieldRate
	FieldWatch
	fieldCount
)

// Key constants for key handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View shows and edits the data source settings.
// Changes are saved immediately and take effect on the next start.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	selected int
	editing  bool
	editor   textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	editor := textinput.New()
	editor.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		editor:          editor,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// save returns a command that stores one setting.
func (v *View) save(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		v.settings = msg.Settings
		v.err = msg.Err
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewProvinces}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < int(fieldCount)-1 {
			v.selected++
		}
	case keyEnter:
		return v, v.activate()
	}
	return v, nil
}

// activate toggles boolean-like fields and opens the editor for text fields.
func (v *View) activate() tea.Cmd {
	if v.settings == nil {
		return nil
	}

	switch Field(v.selected) {
	case FieldKind:
		next := domain.SourceKindHTTP
		if v.settings.Source.Kind == domain.SourceKindHTTP {
			next = domain.SourceKindFile
		}
		return v.save(domain.SettingSourceKind, next.String())
	case FieldWatch:
		return v.save(domain.SettingWatchEnabled, strconv.FormatBool(!v.settings.Watch))
	case FieldLocation:
		v.editor.SetValue(v.location())
	case FieldRate:
		v.editor.SetValue(strconv.Itoa(v.settings.Source.RequestsPerSecond))
	}

	v.editing = true
	v.editor.CursorEnd()
	return v.editor.Focus()
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		return v, nil
	case keyEnter:
		value := strings.TrimSpace(v.editor.Value())
		field := Field(v.selected)
		v.stopEditing()
		return v, v.save(v.keyFor(field), value)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.editor.Blur()
	v.editor.Reset()
}

// keyFor maps a text field to its config key. Location depends on the source kind.
func (v *View) keyFor(field Field) string {
	if field == FieldRate {
		return domain.SettingSourceRPS
	}
	if v.settings != nil && v.settings.Source.Kind == domain.SourceKindHTTP {
		return domain.SettingSourceBaseURL
	}
	return domain.SettingSourceRoot
}

func (v *View) location() string {
	if v.settings.Source.Kind == domain.SourceKindHTTP {
		return v.settings.Source.BaseURL
	}
	return v.settings.Source.Root
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	locationLabel := "Data directory"
	if v.settings.Source.Kind == domain.SourceKindHTTP {
		locationLabel = "Base URL"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Source", fmt.Sprintf("%s (%s)", v.settings.Source.Kind, v.settings.Source.Kind.Description())},
		{locationLabel, valueOrDefault(v.location())},
		{"Requests/sec", rateLabel(v.settings.Source.RequestsPerSecond)},
		{"Watch for changes", onOff(v.settings.Watch)},
	}

	for i, row := range rows {
		cursor := "  "
		line := fmt.Sprintf("%-20s %s", row.label, row.value)
		if i == v.selected {
			cursor = "> "
			line = v.styles.Selected.Render(line)
		} else {
			line = v.styles.Normal.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.editor.View()))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[Enter] Save  [Esc] Cancel"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Changes apply the next time sanumbers starts."))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Change  [Esc] Back"))
	return b.String()
}

func valueOrDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func rateLabel(n int) string {
	if n == 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Editing reports whether a text field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}
