package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/cmd"
)

type KeysCommand struct {
}

func (k *KeysCommand) Name() string {
	return "keys"
}

func (k *KeysCommand) Description() string {
	return "List the keys of a namespace or the raw backend"
}

func (k *KeysCommand) Usage() string {
	return "keys [-n namespace] [-l]"
}

func (k *KeysCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	store := api.Store(args.String("namespace"))
	long := args.Bool("long")

	it, err := store.Iterate(ctx)
	if err != nil {
		return 1, err
	}
	defer it.Close()

	for {
		entry, err := it.Next(ctx)
		if err != nil {
			if err == depot.Done {
				return 0, nil
			}
			return 1, err
		}

		if long {
			fmt.Fprintf(writer, "%-10s %s\n", humanize.Bytes(uint64(len(entry.Value))), entry.Key)
		} else {
			fmt.Fprintln(writer, entry.Key)
		}
	}
}

func (k *KeysCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		namespaceFlag(),
		&cmd.CommandFlag{
			Name:        "long",
			Short:       "l",
			Kind:        cmd.FlagBool,
			Default:     false,
			Description: "Include the value size of each entry",
		},
	)
}
