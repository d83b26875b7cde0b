package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/rotation"
)

type SetShiftCmd struct {
	Day      string `arg:"" optional:"" help:"Day of the shift (e.g. Monday)."`
	Period   string `arg:"" optional:"" help:"Shift period (morning|night)."`
	Username string `arg:"" optional:"" help:"Participant to assign."`
}

func (c *SetShiftCmd) Validate() error {
	// Either the full triple or nothing (interactive mode).
	if c.Day == "" && c.Period == "" && c.Username == "" {
		return nil
	}
	if c.Day == "" || c.Period == "" || c.Username == "" {
		return fmt.Errorf("usage: setshift <day> <period> <username>, or no arguments for the interactive menu")
	}
	return nil
}

func (c *SetShiftCmd) Run(ctx *Context) error {
	if c.Day == "" {
		if err := c.prompt(ctx); err != nil {
			return err
		}
	}

	day, period, err := ParseSlot(c.Day, c.Period)
	if err != nil {
		return err
	}

	if err := ctx.Service.SetShift(day, period, c.Username); err != nil {
		if errors.Is(err, rotation.ErrUnknownUser) {
			return fmt.Errorf("@%s has not joined the rotation yet", c.Username)
		}
		return err
	}

	fmt.Printf("Assigned @%s to the %s shift on %s.\n", c.Username, period, day)
	return nil
}

// prompt walks the day -> period -> user selection. The partial selection
// lives only in this form; the service receives a fully-resolved triple.
func (c *SetShiftCmd) prompt(ctx *Context) error {
	participants, err := ctx.Service.Participants()
	if err != nil {
		return err
	}
	if len(participants) == 0 {
		return fmt.Errorf("no users have joined yet")
	}

	dayOptions := make([]huh.Option[string], 0, len(models.Days))
	for _, d := range models.Days {
		dayOptions = append(dayOptions, huh.NewOption(string(d), string(d)))
	}
	userOptions := make([]huh.Option[string], 0, len(participants))
	for _, p := range participants {
		userOptions = append(userOptions, huh.NewOption("@"+p.Username, p.Username))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a day").
				Options(dayOptions...).
				Value(&c.Day),
			huh.NewSelect[string]().
				Title("Select a time").
				Options(
					huh.NewOption("Morning", string(models.Morning)),
					huh.NewOption("Night", string(models.Night)),
				).
				Value(&c.Period),
			huh.NewSelect[string]().
				Title("Select a user").
				Options(userOptions...).
				Value(&c.Username),
		),
	)
	return form.Run()
}
