package cli

import (
	"fmt"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/weekclock"
)

type SweepCmd struct {
	Day string `help:"Day to sweep (defaults to today)."`
}

func (c *SweepCmd) Run(ctx *Context) error {
	var day models.Day
	if c.Day == "" {
		day = weekclock.Today(ctx.Service.Now())
	} else {
		var err error
		day, err = models.ParseDay(c.Day)
		if err != nil {
			return err
		}
	}

	missed, err := ctx.Service.Sweep(day)
	if err != nil {
		return err
	}

	if len(missed) == 0 {
		fmt.Printf("No missed shifts on %s.\n", day)
		return nil
	}
	for _, m := range missed {
		fmt.Printf("Recorded miss: %s %s - @%s\n", m.Day, m.Period, m.Username)
	}
	return nil
}
