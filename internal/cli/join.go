package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/rotation"
)

type JoinCmd struct {
	Username string `arg:"" optional:"" help:"Username to register (defaults to the acting user)."`
	ID       string `help:"External delivery ID used for reminders (chat user ID)."`
}

func (c *JoinCmd) Run(ctx *Context) error {
	username := c.Username
	if username == "" {
		var err error
		username, err = ctx.RequireUser()
		if err != nil {
			return err
		}
	}

	if err := ctx.Service.Register(username, c.ID); err != nil {
		if errors.Is(err, rotation.ErrAlreadyRegistered) {
			return fmt.Errorf("@%s is already in the rotation", username)
		}
		return err
	}

	fmt.Printf("@%s has been added to the rotation.\n", username)
	return nil
}
