// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sanumbers/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// cardLines is the rendered height of one card including its border.
const cardLines = 6

// CardList displays service records as navigable contact cards.
type CardList struct {
	records  []domain.ServiceRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCardList creates a new card list component.
func NewCardList(s *styles.Styles) *CardList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CardList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the card list.
func (c *CardList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CardList) Update(msg tea.Msg) (*CardList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the visible cards.
func (c *CardList) View() string {
	if len(c.records) == 0 {
		return c.styles.Muted.Render("No services")
	}

	start, end := c.visibleRange()
	cards := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		cards = append(cards, c.renderCard(i, &c.records[i]))
	}
	if end < len(c.records) || start > 0 {
		cards = append(cards, c.styles.Muted.Render(
			fmt.Sprintf("  %d-%d of %d", start+1, end, len(c.records))))
	}
	return strings.Join(cards, "\n")
}

// visibleRange returns the window of cards that fits the height.
func (c *CardList) visibleRange() (int, int) {
	visible := (c.height - 1) / cardLines
	if visible < 1 {
		visible = 1
	}

	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := start + visible
	if end > len(c.records) {
		end = len(c.records)
	}
	return start, end
}

func (c *CardList) renderCard(index int, rec *domain.ServiceRecord) string {
	style := c.styles.Card
	if index == c.selected {
		style = c.styles.SelectedCard
	}

	inner := c.width - 4
	if inner < 20 {
		inner = 20
	}

	body := strings.Join([]string{
		c.styles.Category.Render(truncate(rec.Category, inner)),
		c.styles.Normal.Render(truncate(rec.Name, inner)),
		c.styles.Phone.Render(truncate(rec.Phone, inner)),
		c.styles.Muted.Render(truncate(rec.Address, inner)),
	}, "\n")

	return style.Width(inner).Render(body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SetRecords replaces the records and resets the selection.
func (c *CardList) SetRecords(records []domain.ServiceRecord) {
	c.records = records
	c.selected = 0
}

// Records returns the current records.
func (c *CardList) Records() []domain.ServiceRecord {
	return c.records
}

// Selected returns the index of the selected card.
func (c *CardList) Selected() int {
	return c.selected
}

// SetSelected sets the selected index.
func (c *CardList) SetSelected(index int) {
	if index >= 0 && index < len(c.records) {
		c.selected = index
	}
}

// SelectedRecord returns the selected record, or nil if the list is empty.
func (c *CardList) SelectedRecord() *domain.ServiceRecord {
	if c.selected < 0 || c.selected >= len(c.records) {
		return nil
	}
	return &c.records[c.selected]
}

// MoveUp moves selection up.
func (c *CardList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CardList) MoveDown() {
	if c.selected < len(c.records)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CardList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Width returns the current width.
func (c *CardList) Width() int {
	return c.width
}

// Height returns the current height.
func (c *CardList) Height() int {
	return c.height
}

// Count returns the number of records.
func (c *CardList) Count() int {
	return len(c.records)
}

// IsEmpty returns whether the list is empty.
func (c *CardList) IsEmpty() bool {
	return len(c.records) == 0
}
