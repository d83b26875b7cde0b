package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/chorewheel/internal/models"
)

var (
	dayStyle        = lipgloss.NewStyle().Bold(true)
	assignedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unassignedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type ShiftsCmd struct{}

func (c *ShiftsCmd) Run(ctx *Context) error {
	rows, err := ctx.Service.Grid()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Weekly shift schedule:\n\n")
	for _, row := range rows {
		if row.Period == models.Morning {
			b.WriteString(dayStyle.Render(string(row.Day)) + "\n")
		}
		label := fmt.Sprintf("  %-9s", capitalize(string(row.Period))+":")
		if row.Assignee != "" {
			b.WriteString(label + assignedStyle.Render("@"+row.Assignee) + "\n")
		} else {
			b.WriteString(label + unassignedStyle.Render("unassigned") + "\n")
		}
	}

	fmt.Print(b.String())
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
