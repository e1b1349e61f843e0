package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/depot/cmd"
)

type DelCommand struct {
}

func (d *DelCommand) Name() string {
	return "del"
}

func (d *DelCommand) Description() string {
	return "Remove the value stored under a key"
}

func (d *DelCommand) Usage() string {
	return "del [-n namespace] <key>"
}

func (d *DelCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, fmt.Errorf("usage: %s", d.Usage())
	}

	store := api.Store(args.String("namespace"))
	if err := store.Delete(ctx, args.Args[0]); err != nil {
		return 1, err
	}

	return 0, nil
}

func (d *DelCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(namespaceFlag())
}
