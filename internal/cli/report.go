package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/rotation"
)

type ReportCmd struct {
	Week string `help:"ISO week key (e.g. 2024-W07); defaults to the current week."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	weekKey := c.Week
	if weekKey == "" {
		weekKey = ctx.Service.CurrentWeekKey()
	}

	report, err := ctx.Service.WeekReport(weekKey)
	if err != nil {
		if errors.Is(err, rotation.ErrNoWeekData) {
			fmt.Printf("No data available for week %s.\n", weekKey)
			return nil
		}
		return err
	}

	fmt.Printf("Weekly report (%s to %s)\n\n", report.WeekStart, report.WeekEnd)

	fmt.Println("Completed shifts:")
	if len(report.Completed) == 0 {
		fmt.Println("  (none)")
	}
	for _, e := range report.Completed {
		fmt.Printf("  %s %s - @%s\n", e.Day, e.Period, e.Username)
	}

	fmt.Println("\nMissed shifts:")
	if len(report.Missed) == 0 {
		fmt.Println("  (none)")
	}
	for _, e := range report.Missed {
		fmt.Printf("  %s %s - @%s\n", e.Day, e.Period, e.Username)
	}
	return nil
}
