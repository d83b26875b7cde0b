package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/julianstephens/chorewheel/internal/rotation"
)

type StatsCmd struct {
	Week string `help:"ISO week key (e.g. 2024-W07); defaults to the current week."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	weekKey := c.Week
	if weekKey == "" {
		weekKey = ctx.Service.CurrentWeekKey()
	}

	stats, err := ctx.Service.StatsForWeek(weekKey)
	if err != nil {
		if errors.Is(err, rotation.ErrNoEvents) {
			fmt.Printf("No shifts recorded for week %s yet; the completion rate is undefined.\n", weekKey)
			return nil
		}
		return err
	}

	fmt.Printf("Statistics for week %s\n\n", stats.WeekKey)
	fmt.Printf("Completed: %d\n", stats.CompletedCount)
	fmt.Printf("Missed:    %d\n", stats.MissedCount)
	fmt.Printf("Completion rate: %.1f%%\n\n", stats.CompletionRate*100)

	usernames := make([]string, 0, len(stats.PerUser))
	for username := range stats.PerUser {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	fmt.Println("User performance:")
	for _, username := range usernames {
		u := stats.PerUser[username]
		total := u.Completed + u.Missed
		fmt.Printf("  @%s: %d/%d (%.1f%%)\n", username, u.Completed, total, u.Rate*100)
	}
	return nil
}
