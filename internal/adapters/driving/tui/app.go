package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/views/lookup"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/views/provinces"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// watchStarted carries the watcher channel back to the event loop.
type watchStarted struct {
	changes <-chan string
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	provincesView *provinces.View
	lookupView    *lookup.View
	settingsView  *settings.View

	// initialProvince is selected on start when set.
	initialProvince string

	// changes delivers changed resource keys while watching.
	changes <-chan string

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when leaving help.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		provincesView: provinces.NewView(s),
		lookupView:    lookup.NewView(s, km, ports.Selection, ports.Actions),
		settingsView:  settings.NewView(s, ports.Settings),
		currentView:   messages.ViewProvinces,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.lookupView.WithContext(ctx)
	return a
}

// WithProvince selects province as soon as the program starts.
func (a *App) WithProvince(province string) *App {
	a.initialProvince = province
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("sanumbers - SA Emergency Numbers"),
		a.lookupView.Init(),
	}
	if a.ports.Watcher != nil {
		cmds = append(cmds, a.startWatch())
	}
	if a.initialProvince != "" {
		cmds = append(cmds, a.choose(a.initialProvince))
	}
	return tea.Batch(cmds...)
}

// startWatch starts the data watcher off the event loop.
func (a *App) startWatch() tea.Cmd {
	w := a.ports.Watcher
	ctx := a.ctx
	return func() tea.Msg {
		changes, err := w.Watch(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("watch data: %w", err)}
		}
		return watchStarted{changes: changes}
	}
}

// waitForChange blocks until the watcher reports a key or closes.
func (a *App) waitForChange() tea.Cmd {
	changes := a.changes
	return func() tea.Msg {
		key, ok := <-changes
		if !ok {
			return messages.WatchStopped{}
		}
		return messages.DataChanged{Key: key}
	}
}

// choose switches to the lookup view and starts loading province.
func (a *App) choose(province string) tea.Cmd {
	a.provincesView.SetCurrent(province)
	a.currentView = messages.ViewLookup
	return a.lookupView.Choose(province)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ProvinceChosen:
		return a, a.choose(msg.Province)

	case messages.ProvinceLoaded, messages.ActionCompleted,
		messages.StatusExpired, spinner.TickMsg:
		// Loads and actions finish in the background, whichever view is showing.
		a.lookupView, cmd = a.lookupView.Update(msg)
		return a, cmd

	case watchStarted:
		logger.Debug("Watching data for changes")
		a.changes = msg.changes
		return a, a.waitForChange()

	case messages.DataChanged:
		logger.Debug("Data changed: %s", msg.Key)
		return a, tea.Batch(a.lookupView.Reload(msg.Key), a.waitForChange())

	case messages.WatchStopped:
		logger.Debug("Data watcher stopped")
		a.changes = nil
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewSettings {
			return a, a.settingsView.Init()
		}
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Debug("TUI error: %v", msg.Err)
		a.lookupView, cmd = a.lookupView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewProvinces:
		a.provincesView, cmd = a.provincesView.Update(msg)
	case messages.ViewLookup:
		a.lookupView, cmd = a.lookupView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return a, cmd
}

// handleKeyMsg applies global keys and forwards the rest to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) {
		return a, tea.Quit
	}

	if keymap.Matches(key, a.keymap.Provinces) && a.currentView != messages.ViewSettings {
		a.currentView = messages.ViewProvinces
		return a, nil
	}

	if keymap.Matches(key, a.keymap.Help) && a.helpAllowed() {
		a.previousView = a.currentView
		a.currentView = messages.ViewHelp
		return a, nil
	}

	switch a.currentView {
	case messages.ViewProvinces:
		a.provincesView, cmd = a.provincesView.Update(msg)
	case messages.ViewLookup:
		a.lookupView, cmd = a.lookupView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(key, a.keymap.Back) {
			a.currentView = a.previousView
		}
	}
	return a, cmd
}

// helpAllowed reports whether "?" opens help rather than being typed.
func (a *App) helpAllowed() bool {
	switch a.currentView {
	case messages.ViewLookup:
		return !a.lookupView.InputFocused() || !a.lookupView.InputEnabled()
	case messages.ViewSettings:
		return !a.settingsView.Editing()
	case messages.ViewHelp:
		return false
	default:
		return true
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLookup:
		return a.lookupView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.provincesView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Global:
  ctrl+p      Choose province
  ?           Help
  ctrl+c      Quit

Provinces:
  j/k, ↑/↓    Navigate
  enter       Select province
  s           Settings
  q           Quit

Lookup:
  (type)      Search for a town
  tab/enter   Move to results
  esc         Back to provinces

Results:
  j/k, ↑/↓    Navigate services
  c           Call
  y           Copy number
  enter       Actions
  esc         Back to search

` + a.styles.Muted.Render(domain.FallbackAdvice) + `

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	if a.ports.Watcher != nil {
		defer func() {
			if err := a.ports.Watcher.Close(); err != nil {
				logger.Warn("closing watcher: %v", err)
			}
		}()
	}
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// State returns the selection state shown by the lookup view.
func (a *App) State() domain.SelectionState {
	return a.lookupView.State()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Watching reports whether the data watcher is running.
func (a *App) Watching() bool {
	return a.changes != nil
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.provincesView.SetDimensions(width, height)
	a.lookupView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
