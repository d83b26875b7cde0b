package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/rotation"
)

type TakeCmd struct {
	Day    string `arg:"" help:"Day of the shift (e.g. Monday)."`
	Period string `arg:"" help:"Shift period (morning|night)."`
}

func (c *TakeCmd) Run(ctx *Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	day, period, err := ParseSlot(c.Day, c.Period)
	if err != nil {
		return err
	}

	if err := ctx.Service.Claim(day, period, user); err != nil {
		if errors.Is(err, rotation.ErrAlreadyAssigned) {
			return fmt.Errorf("that shift is already assigned")
		}
		if errors.Is(err, rotation.ErrUnknownUser) {
			return fmt.Errorf("@%s has not joined the rotation yet", user)
		}
		return err
	}

	fmt.Printf("@%s has taken over the %s shift on %s.\n", user, period, day)
	return nil
}
