package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sanumbers/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/services"
)

const westernCapeJSON = `{"towns": {
	"Cape Town": [
		{"category": "Police", "name": "Cape Town Central SAPS", "phone": "021 467 8000", "address": "Buitenkant St"},
		{"category": "Hospital", "name": "Groote Schuur Hospital", "phone": "021 404 9111", "address": "Main Rd, Observatory"}
	],
	"Stellenbosch": [
		{"category": "Fire", "name": "Stellenbosch Fire", "phone": "021 808 8888", "address": "Merriman Ave"}
	]
}}`

// MockActions is a mock implementation of driving.ContactActionService.
type MockActions struct {
	mock.Mock
}

func (m *MockActions) Call(ctx context.Context, record *domain.ServiceRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockActions) Copy(ctx context.Context, record *domain.ServiceRecord) error {
	return m.Called(ctx, record).Error(0)
}

type fixture struct {
	view    *View
	src     *memory.DataSource
	actions *MockActions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	src := memory.NewDataSource()
	src.Put("western-cape", []byte(westernCapeJSON))
	sel := services.NewSelection(services.NewProvinceLoader(src))
	actions := new(MockActions)

	v := NewView(nil, nil, sel, actions)
	v.SetDimensions(100, 60)
	return &fixture{view: v, src: src, actions: actions}
}

// collect runs cmd and returns the messages that arrive promptly.
// Timers such as cursor blinks and notice expiry are dropped.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(t, c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// choose selects province and delivers its load.
func (f *fixture) choose(t *testing.T, province string) {
	t.Helper()
	loaded, ok := findMsg[messages.ProvinceLoaded](collect(t, f.view.Choose(province)))
	require.True(t, ok, "expected a load for %s", province)
	f.view.Update(loaded)
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.view.Ready())
	assert.False(t, f.view.InputEnabled())
	assert.True(t, f.view.InputFocused())
	assert.Equal(t, "", f.view.State().SelectedProvince)
	assert.NotNil(t, f.view.Init())
}

func TestView_NotReady(t *testing.T) {
	v := NewView(nil, nil, services.NewSelection(services.NewProvinceLoader(memory.NewDataSource())), nil)

	assert.Equal(t, "Initialising...", v.View())
}

func TestView_TypingIgnoredWithoutProvince(t *testing.T) {
	f := newFixture(t)

	f.typeText("cape")

	assert.Equal(t, "", f.view.Search())
	assert.Equal(t, "", f.view.State().SearchText)
}

func TestView_ChooseLoadsProvince(t *testing.T) {
	f := newFixture(t)

	cmd := f.view.Choose("Western Cape")
	require.NotNil(t, cmd)
	assert.True(t, f.view.State().IsLoading)
	assert.Contains(t, f.view.View(), "Loading Western Cape...")

	loaded, ok := findMsg[messages.ProvinceLoaded](collect(t, cmd))
	require.True(t, ok)
	f.view.Update(loaded)

	state := f.view.State()
	assert.False(t, state.IsLoading)
	assert.Equal(t, "Western Cape", state.SelectedProvince)
	assert.Equal(t, []string{"Cape Town", "Stellenbosch"}, state.AvailableTowns())
	assert.True(t, f.view.InputEnabled())

	out := f.view.View()
	assert.Contains(t, out, "Available towns (2)")
	assert.Contains(t, out, "Cape Town, Stellenbosch")
	assert.Contains(t, out, "Emergency Tips")
	assert.Contains(t, out, domain.Disclaimer)
}

func TestView_SearchShowsCards(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")

	f.typeText("cape")

	state := f.view.State()
	assert.Equal(t, "cape", state.SearchText)
	assert.Equal(t, "Cape Town", state.MatchedTown)
	require.Len(t, state.FilteredResults, 2)

	out := f.view.View()
	assert.Contains(t, out, "Emergency Services in Cape Town")
	assert.Contains(t, out, "Cape Town Central SAPS")
	assert.Contains(t, out, "021 404 9111")
}

func TestView_NoMatchShowsFallback(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")

	f.typeText("Paarl")

	assert.True(t, f.view.State().NoMatch())
	assert.Contains(t, f.view.View(), "Use national emergency number: 10177")
}

func TestView_LoadFailure(t *testing.T) {
	f := newFixture(t)

	f.choose(t, "Gauteng")

	state := f.view.State()
	assert.Equal(t, domain.LoadFailureMessage, state.LoadError)
	assert.Nil(t, state.Dataset)
	assert.False(t, f.view.InputEnabled())
	assert.Contains(t, f.view.View(), domain.LoadFailureMessage)
}

func TestView_StaleLoadIgnored(t *testing.T) {
	f := newFixture(t)
	f.src.Put("gauteng", []byte(`{"towns": {"Soweto": []}}`))

	first := collect(t, f.view.Choose("Western Cape"))
	f.choose(t, "Gauteng")

	stale, ok := findMsg[messages.ProvinceLoaded](first)
	require.True(t, ok)
	f.view.Update(stale)

	state := f.view.State()
	assert.Equal(t, "Gauteng", state.SelectedProvince)
	assert.Equal(t, []string{"Soweto"}, state.AvailableTowns())
}

func TestView_ReloadKeepsSearch(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")
	f.typeText("stell")

	f.src.Put("western-cape", []byte(`{"towns": {"Stellenbosch": [
		{"category": "Police", "name": "Stellenbosch SAPS", "phone": "021 809 5000", "address": "Alexander St"}
	]}}`))

	cmd := f.view.Reload("western-cape")
	require.NotNil(t, cmd)
	loaded, ok := findMsg[messages.ProvinceLoaded](collect(t, cmd))
	require.True(t, ok)
	f.view.Update(loaded)

	state := f.view.State()
	assert.Equal(t, "stell", state.SearchText)
	assert.Equal(t, "stell", f.view.Search())
	require.Len(t, state.FilteredResults, 1)
	assert.Equal(t, "Stellenbosch SAPS", state.FilteredResults[0].Name)
}

func TestView_ReloadOtherKeyIgnored(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.view.Reload("western-cape"))

	f.choose(t, "Western Cape")
	assert.Nil(t, f.view.Reload("gauteng"))
}

func TestView_TabSwitchesToCards(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")

	f.view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, f.view.InputFocused(), "no cards to focus yet")

	f.typeText("cape")
	f.view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, f.view.InputFocused())

	f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, f.view.SelectedIndex())
	assert.Equal(t, "cape", f.view.Search(), "navigation keys do not reach the input")

	f.view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, f.view.InputFocused())
}

func TestView_EscFromInputGoesToProvinces(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewProvinces}, cmd())
}

func TestView_CopyShortcut(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")
	f.typeText("cape")
	f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, f.view.InputFocused())

	f.actions.On("Copy", mock.Anything, mock.MatchedBy(func(r *domain.ServiceRecord) bool {
		return r.Name == "Cape Town Central SAPS"
	})).Return(nil)

	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	done, ok := cmd().(messages.ActionCompleted)
	require.True(t, ok)
	f.view.Update(done)

	assert.Equal(t, "Copied!", f.view.Notice())
	f.actions.AssertExpectations(t)
}

func TestView_ActionMenuCall(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")
	f.typeText("cape")
	f.view.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.view.Update(tea.KeyMsg{Type: tea.KeyDown})

	f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, f.view.ActionMenuVisible())
	assert.Contains(t, f.view.View(), actionCopy)

	f.actions.On("Call", mock.Anything, mock.MatchedBy(func(r *domain.ServiceRecord) bool {
		return r.Phone == "021 404 9111"
	})).Return(nil)

	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, f.view.ActionMenuVisible())
	require.NotNil(t, cmd)
	f.view.Update(cmd())

	assert.Equal(t, "Calling Groote Schuur Hospital...", f.view.Notice())
	f.actions.AssertExpectations(t)
}

func TestView_ActionMenuCancel(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")
	f.typeText("stell")
	f.view.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	f.view.Update(tea.KeyMsg{Type: tea.KeyDown})
	f.view.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, f.view.ActionMenuVisible())

	f.view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = f.view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, f.view.ActionMenuVisible())
}

func TestView_ActionFailure(t *testing.T) {
	f := newFixture(t)
	f.choose(t, "Western Cape")
	f.typeText("cape")
	f.view.Update(tea.KeyMsg{Type: tea.KeyTab})

	f.actions.On("Call", mock.Anything, mock.Anything).Return(errors.New("no dialer"))

	_, cmd := f.view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	f.view.Update(cmd())

	assert.Contains(t, f.view.Notice(), "Call failed: no dialer")
}

func TestView_ActionsUnavailable(t *testing.T) {
	src := memory.NewDataSource()
	src.Put("western-cape", []byte(westernCapeJSON))
	v := NewView(nil, nil, services.NewSelection(services.NewProvinceLoader(src)), nil)
	v.SetDimensions(100, 60)
	f := &fixture{view: v, src: src}
	f.choose(t, "Western Cape")
	f.typeText("cape")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	done := cmd().(messages.ActionCompleted)

	assert.ErrorIs(t, done.Err, ErrNoActions)
}

func TestView_ErrorOccurred(t *testing.T) {
	f := newFixture(t)

	f.view.Update(messages.ErrorOccurred{Err: errors.New("watch failed")})

	assert.Contains(t, f.view.View(), "Error: watch failed")
}
