// Package lookup provides the town search view for the TUI.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
)

// Action menu entries.
const (
	actionCall   = "Call"
	actionCopy   = "Copy number"
	actionCancel = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	record   domain.ServiceRecord
}

// View is the town search view: a town input, the matched services as
// contact cards, and the national fallback when nothing matches.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TownInput
	list      *list.CardList
	statusbar *status.Bar

	selection driving.SelectionService
	actions   driving.ContactActionService
	ctx       context.Context

	state      domain.SelectionState
	width      int
	height     int
	ready      bool
	focusInput bool // true = typing a town, false = navigating cards
	actionMenu *ActionMenu
}

// NewView creates a new lookup view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	selection driving.SelectionService,
	actions driving.ContactActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewTownInput(s),
		list:       list.NewCardList(s),
		statusbar:  status.NewBar(s, km),
		selection:  selection,
		actions:    actions,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.statusbar.SetMessage("Select a province")
	return v
}

// WithContext sets the context for loads and actions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Choose selects province and returns the command that loads it.
func (v *View) Choose(province string) tea.Cmd {
	req := v.selection.SetProvince(province)
	v.input.Reset()
	v.focusInput = true
	v.actionMenu = nil
	v.sync()
	if req == nil {
		return nil
	}
	return tea.Batch(v.input.SetEnabled(false), v.load(req))
}

// Reload refreshes the selected province if its resource key matches key.
func (v *View) Reload(key string) tea.Cmd {
	if v.state.SelectedProvince == "" || domain.ResolveKey(v.state.SelectedProvince) != key {
		return nil
	}
	req := v.selection.Reload()
	if req == nil {
		return nil
	}
	v.sync()
	return v.load(req)
}

// load runs the fetch off the event loop.
func (v *View) load(req *domain.LoadRequest) tea.Cmd {
	sel := v.selection
	ctx := v.ctx
	fetch := func() tea.Msg {
		return messages.ProvinceLoaded{Result: sel.Fetch(ctx, req)}
	}
	return tea.Batch(v.statusbar.SetState(status.StateLoading), fetch)
}

// Update handles messages for the lookup view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProvinceLoaded:
		return v, v.handleLoaded(msg)

	case messages.ActionCompleted:
		return v, v.handleActionCompleted(msg)

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg, messages.StatusExpired:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleLoaded applies a finished load if it is still current.
func (v *View) handleLoaded(msg messages.ProvinceLoaded) tea.Cmd {
	if !v.selection.ApplyLoad(msg.Result) {
		return nil
	}
	if !msg.Result.Reload {
		v.input.Reset()
	}
	v.sync()

	if v.state.Dataset == nil {
		return v.input.SetEnabled(false)
	}
	if v.input.Enabled() {
		return nil
	}
	v.focusInput = true
	return v.input.SetEnabled(true)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		if !v.focusInput {
			return v, v.focusTownInput()
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewProvinces}
		}
	}

	if msg.Type == tea.KeyTab {
		if v.focusInput && !v.list.IsEmpty() {
			v.focusInput = false
			v.input.Blur()
			return v, nil
		}
		return v, v.focusTownInput()
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			if v.list.IsEmpty() {
				return v, nil
			}
			v.focusInput = false
			v.input.Blur()
			return v, nil
		}
		before := v.input.Value()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if after := v.input.Value(); after != before {
			v.selection.SetSearchText(after)
			v.sync()
		}
		return v, cmd
	}

	// Results mode
	if msg.Type == tea.KeyEnter {
		if rec := v.list.SelectedRecord(); rec != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{actionCall, actionCopy, actionCancel},
				visible: true,
				record:  *rec,
			}
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		v.list.MoveUp()
	case "down", "j":
		v.list.MoveDown()
	case "c":
		if rec := v.list.SelectedRecord(); rec != nil {
			return v, v.runAction(messages.ActionCall, *rec)
		}
	case "y":
		if rec := v.list.SelectedRecord(); rec != nil {
			return v, v.runAction(messages.ActionCopy, *rec)
		}
	}
	return v, nil
}

func (v *View) focusTownInput() tea.Cmd {
	v.focusInput = true
	return v.input.Focus()
}

// handleActionMenuKey processes keyboard input when the action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
		return v, nil
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
		return v, nil
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		rec := v.actionMenu.record
		v.actionMenu = nil
		return v, v.executeAction(action, rec)
	case "esc":
		v.actionMenu = nil
		return v, nil
	}
	return v, nil
}

// executeAction maps a menu entry to a contact action.
func (v *View) executeAction(action string, rec domain.ServiceRecord) tea.Cmd {
	switch action {
	case actionCall:
		return v.runAction(messages.ActionCall, rec)
	case actionCopy:
		return v.runAction(messages.ActionCopy, rec)
	}
	return nil
}

// runAction returns a command that performs kind on rec.
func (v *View) runAction(kind messages.ActionKind, rec domain.ServiceRecord) tea.Cmd {
	svc := v.actions
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ActionCompleted{Kind: kind, Record: rec, Err: ErrNoActions}
		}
		var err error
		switch kind {
		case messages.ActionCall:
			err = svc.Call(ctx, &rec)
		case messages.ActionCopy:
			err = svc.Copy(ctx, &rec)
		}
		return messages.ActionCompleted{Kind: kind, Record: rec, Err: err}
	}
}

func (v *View) handleActionCompleted(msg messages.ActionCompleted) tea.Cmd {
	if msg.Err != nil {
		return v.statusbar.Notify(fmt.Sprintf("%s failed: %v", msg.Kind, msg.Err))
	}
	if msg.Kind == messages.ActionCopy {
		return v.statusbar.Notify("Copied!")
	}
	return v.statusbar.Notify(fmt.Sprintf("Calling %s...", msg.Record.Name))
}

// sync refreshes the local snapshot and the components that show it.
func (v *View) sync() {
	v.state = v.selection.Snapshot()
	v.list.SetRecords(v.state.FilteredResults)
	if v.list.IsEmpty() && !v.focusInput {
		v.focusInput = true
		v.input.Focus()
	}

	v.statusbar.SetResultCount(len(v.state.FilteredResults))
	switch {
	case v.state.IsLoading:
		v.statusbar.SetMessage(v.state.SelectedProvince)
	case v.state.LoadError != "":
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.state.LoadError)
	case v.state.HasResults():
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage("")
	case v.state.SelectedProvince == "":
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Select a province")
	default:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("%d towns", v.state.Dataset.Len()))
	}
}

// View renders the lookup view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)
	sections = append(sections, v.styles.Title.Render("SA Emergency Numbers"), "")

	province := v.state.SelectedProvince
	if province == "" {
		province = "none"
	}
	sections = append(sections,
		v.styles.Subtitle.Render("Province: ")+v.styles.Normal.Render(province),
		v.input.View(), "")

	switch {
	case v.state.IsLoading:
		sections = append(sections, v.styles.Muted.Render("Loading "+v.state.SelectedProvince+"..."))
	case v.state.LoadError != "":
		sections = append(sections, v.styles.Error.Render(v.state.LoadError))
	case v.state.HasResults():
		sections = append(sections,
			v.styles.Subtitle.Render("Emergency Services in "+v.state.MatchedTown),
			v.list.View())
	case v.state.NoMatch():
		sections = append(sections, v.styles.Banner.Render(domain.NoMatchAdvice(v.state.SearchText)))
	case v.state.Dataset != nil:
		sections = append(sections, v.renderTowns())
	}

	if !v.state.HasResults() {
		sections = append(sections, "", v.renderTips())
	}
	sections = append(sections, "", v.styles.Muted.Render(domain.Disclaimer))

	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTowns lists the towns of the loaded province.
func (v *View) renderTowns() string {
	names := v.state.AvailableTowns()
	body := lipgloss.NewStyle().Width(v.width).Render(strings.Join(names, ", "))
	return v.styles.Subtitle.Render(fmt.Sprintf("Available towns (%d)", len(names))) + "\n" +
		v.styles.Normal.Render(body)
}

func (v *View) renderTips() string {
	lines := []string{v.styles.Subtitle.Render("Emergency Tips")}
	for _, tip := range domain.EmergencyTips() {
		lines = append(lines, v.styles.Normal.Render(fmt.Sprintf("  %-26s %s", tip.Label+":", tip.Number)))
	}
	lines = append(lines, v.styles.Warning.Render(domain.FallbackAdvice))
	return strings.Join(lines, "\n")
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions)+1)
	lines = append(lines, v.styles.Muted.Render(v.actionMenu.record.Name))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // header, province, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// State returns the last snapshot shown by the view.
func (v *View) State() domain.SelectionState {
	return v.state
}

// Search returns the current town input.
func (v *View) Search() string {
	return v.input.Value()
}

// InputEnabled reports whether the town input accepts text.
func (v *View) InputEnabled() bool {
	return v.input.Enabled()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// SelectedIndex returns the index of the highlighted card.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// ActionMenuVisible reports whether the action menu is open.
func (v *View) ActionMenuVisible() bool {
	return v.actionMenu != nil && v.actionMenu.visible
}

// Notice returns the transient status notice, if any.
func (v *View) Notice() string {
	return v.statusbar.Notice()
}
