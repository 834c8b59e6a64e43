package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// Card styles used when stdout is a terminal.
var (
	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#C0392B")).
			Padding(0, 1)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	phoneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C"))
	addressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C0392B")).
			Padding(0, 1)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1C40F"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderCard formats one service record. Plain output is one field per line.
func renderCard(index int, rec domain.ServiceRecord, styled bool) string {
	if !styled {
		return fmt.Sprintf("  [%d] %s - %s\n      Phone:   %s\n      Address: %s\n",
			index, rec.Category, rec.Name, rec.Phone, rec.Address)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%d %s", index, categoryStyle.Render(rec.Category)),
		nameStyle.Render(rec.Name),
		phoneStyle.Render(rec.Phone),
		addressStyle.Render(rec.Address),
	)
	return cardStyle.Render(body) + "\n"
}

// renderStatus marks a coverage line.
func renderStatus(ok, styled bool) string {
	switch {
	case ok && styled:
		return okStyle.Render("OK  ")
	case ok:
		return "OK  "
	case styled:
		return failStyle.Render("FAIL")
	default:
		return "FAIL"
	}
}

// renderAdvice formats the no-match advisory.
func renderAdvice(searchText string, styled bool) string {
	msg := "No services found\n" + domain.NoMatchAdvice(searchText)
	if styled {
		return warnStyle.Render(msg)
	}
	return msg
}

// renderTips formats the emergency tips and disclaimer.
func renderTips() string {
	var b strings.Builder
	b.WriteString("Emergency Tips\n")
	for _, tip := range domain.EmergencyTips() {
		fmt.Fprintf(&b, "  - %s: %s\n", tip.Label, tip.Number)
	}
	b.WriteString("\nDisclaimer: " + domain.Disclaimer + "\n")
	b.WriteString(domain.FallbackAdvice + "\n")
	return b.String()
}
