package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/store"
)

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Work with seed files",
		Subcommands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate a TOML seed file",
				ArgsUsage: "FILE",
				Description: `Parses FILE and checks every post the way the API would:
		title, content and author must not be blank, ids must be unique.`,
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return errors.New("seed check expects exactly one FILE argument")
					}
					path := ctx.Args().First()
					n, err := checkSeedFile(path)
					if err != nil {
						return err
					}
					fmt.Fprintf(ctx.App.Writer, "%s: %d posts ok\n", path, n)
					return nil
				},
			},
		},
	}
}

// checkSeedFile loads path and returns the number of valid posts in it.
func checkSeedFile(path string) (int, error) {
	posts, err := loadSeedFile(path)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// loadSeedFile reads path and applies the rules the API enforces on posts:
// no blank title, content or author, and no id used twice.
func loadSeedFile(path string) ([]models.Post, error) {
	posts, err := store.LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if seen[p.ID] {
			return nil, fmt.Errorf("seed post %q: %w", p.ID, store.ErrDuplicateID)
		}
		seen[p.ID] = true
		if err := repository.Validate(p.Draft()); err != nil {
			return nil, fmt.Errorf("seed post %q: %w", p.ID, err)
		}
	}
	return posts, nil
}
