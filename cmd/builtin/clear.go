package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/depot/cmd"
)

type ClearCommand struct {
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Remove every entry of a namespace or the raw backend"
}

func (c *ClearCommand) Usage() string {
	return "clear [-n namespace] --force"
}

func (c *ClearCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if !args.Bool("force") {
		return 1, fmt.Errorf("refusing to clear without --force")
	}

	store := api.Store(args.String("namespace"))
	if err := store.Clear(ctx); err != nil {
		return 1, err
	}

	return 0, nil
}

func (c *ClearCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		namespaceFlag(),
		&cmd.CommandFlag{
			Name:        "force",
			Short:       "f",
			Kind:        cmd.FlagBool,
			Default:     false,
			Description: "Confirm the clear",
		},
	)
}
