package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/rotation"
)

type UnavailableCmd struct{}

func (c *UnavailableCmd) Run(ctx *Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	outcomes, err := ctx.Service.ReportUnavailable(user)
	if err != nil {
		if errors.Is(err, rotation.ErrNoShiftToday) {
			return fmt.Errorf("@%s doesn't have a shift today", user)
		}
		return err
	}

	fmt.Printf("@%s is unavailable today.\n", user)
	for _, o := range outcomes {
		fmt.Println(FormatOutcome(o))
	}
	return nil
}
