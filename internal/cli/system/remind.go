package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/constants"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/notifier"
	"github.com/julianstephens/chorewheel/internal/scheduler"
)

type RemindCmd struct {
	DryRun  bool `help:"Print reminders to stdout instead of sending them."`
	NoSweep bool `help:"Disable the nightly miss sweep."`
}

// stdoutNotifier is the --dry-run delivery path.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(externalID, message string) error {
	fmt.Printf("[DryRun] to=%s %s\n", externalID, message)
	return nil
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	var n scheduler.Notifier = notifier.New(ctx.ConfigDir)
	if c.DryRun {
		n = stdoutNotifier{}
	}

	opts := []scheduler.Option{}
	if !c.NoSweep {
		opts = append(opts, scheduler.WithMissSweep(constants.MissSweepTime, func(day models.Day) ([]models.MissEvent, error) {
			return ctx.Service.Sweep(day)
		}))
	}

	sched := scheduler.New(ctx.Store, n, ctx.Location, opts...)
	sched.RegisterShiftTriggers()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Reminder daemon running (%d triggers, %s/%s local). Ctrl-C to stop.\n",
		len(sched.Triggers()), constants.MorningReminderTime, constants.NightReminderTime)
	sched.Start(runCtx)
	return nil
}
