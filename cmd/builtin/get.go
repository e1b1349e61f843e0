package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/depot/cmd"
)

type GetCommand struct {
}

func (g *GetCommand) Name() string {
	return "get"
}

func (g *GetCommand) Description() string {
	return "Print the value stored under a key"
}

func (g *GetCommand) Usage() string {
	return "get [-n namespace] <key>"
}

func (g *GetCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 1 {
		return 1, fmt.Errorf("usage: %s", g.Usage())
	}

	store := api.Store(args.String("namespace"))
	value, err := store.Get(ctx, args.Args[0])
	if err != nil {
		return 1, err
	}

	if _, err := writer.Write(value); err != nil {
		return 1, err
	}

	fmt.Fprintln(writer)
	return 0, nil
}

func (g *GetCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(namespaceFlag())
}
