package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/rotation"
)

type DoneCmd struct{}

func (c *DoneCmd) Run(ctx *Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	event, err := ctx.Service.CompleteToday(user)
	if err != nil {
		if errors.Is(err, rotation.ErrNoShiftToday) {
			return fmt.Errorf("@%s is not assigned to any shift today", user)
		}
		return err
	}

	fmt.Printf("Thanks @%s, the %s shift on %s is recorded as completed.\n", user, event.Period, event.Day)
	return nil
}
