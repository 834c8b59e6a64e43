package provinces

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.Equal(t, domain.Provinces(), view.items)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
}

func TestView_Navigation(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(runes("j"))
	assert.Equal(t, 2, view.Selected())

	view.Update(runes("k"))
	assert.Equal(t, 1, view.Selected())

	for range 20 {
		view.Update(runes("j"))
	}
	assert.Equal(t, len(domain.Provinces())-1, view.Selected())
}

func TestView_EnterChoosesProvince(t *testing.T) {
	view := NewView(nil)
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	chosen, ok := msg.(messages.ProvinceChosen)
	require.True(t, ok)
	assert.Equal(t, domain.Provinces()[1], chosen.Province)
}

func TestView_SettingsKey(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(runes("s"))
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewSettings}, cmd())
}

func TestView_QuitKey(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(runes("q"))
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView_ViewNotReady(t *testing.T) {
	assert.Equal(t, "Initialising...", NewView(nil).View())
}

func TestView_ViewListsProvinces(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	out := view.View()

	assert.Contains(t, out, "SA Emergency Numbers")
	for _, p := range domain.Provinces() {
		assert.Contains(t, out, p)
	}
}

func TestView_SetCurrent(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	view.SetCurrent("Gauteng")

	assert.Equal(t, "Gauteng", view.Current())
	assert.Equal(t, "Gauteng", view.items[view.Selected()])
	assert.Contains(t, view.View(), "(current)")
}

func TestView_SetCurrentUnknownKeepsCursor(t *testing.T) {
	view := NewView(nil)
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	view.SetCurrent("Atlantis")

	assert.Equal(t, 1, view.Selected())
}
