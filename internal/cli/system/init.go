package system

import (
	"fmt"

	"github.com/julianstephens/chorewheel/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized chorewheel storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}
