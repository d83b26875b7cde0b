package cli

import (
	"fmt"

	"github.com/julianstephens/chorewheel/internal/models"
)

type ModeCmd struct {
	Mode string `arg:"" help:"Rotation mode (auto|manual)."`
}

func (c *ModeCmd) Run(ctx *Context) error {
	mode, err := models.ParseRotationMode(c.Mode)
	if err != nil {
		return err
	}
	if err := ctx.Service.SetMode(mode); err != nil {
		return err
	}
	fmt.Printf("Rotation mode set to %s.\n", mode)
	return nil
}
