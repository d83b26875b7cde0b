package cli

import (
	"fmt"
	"math/rand"

	"github.com/julianstephens/chorewheel/internal/models"
)

type AutofillCmd struct {
	Seed int64 `help:"Seed for the shuffle (0 uses a random seed)." default:"0"`
}

func (c *AutofillCmd) Run(ctx *Context) error {
	participants, err := ctx.Service.Participants()
	if err != nil {
		return err
	}
	if len(participants) == 0 {
		return fmt.Errorf("no users have joined yet")
	}

	// The shuffle happens here so the grid fill itself stays deterministic.
	order := make([]string, len(participants))
	for i, p := range participants {
		order[i] = p.Username
	}
	shuffle := rand.Shuffle
	if c.Seed != 0 {
		r := rand.New(rand.NewSource(c.Seed))
		shuffle = r.Shuffle
	}
	shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	if err := ctx.Service.AutoFill(order); err != nil {
		return err
	}

	fmt.Printf("All %d shifts auto-assigned evenly among %d users.\n", models.SlotCount, len(participants))
	return nil
}
