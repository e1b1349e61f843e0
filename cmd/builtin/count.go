package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/cmd"
)

type CountCommand struct {
}

func (c *CountCommand) Name() string {
	return "count"
}

func (c *CountCommand) Description() string {
	return "Print the number of entries and their total size"
}

func (c *CountCommand) Usage() string {
	return "count [-n namespace]"
}

func (c *CountCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	store := api.Store(args.String("namespace"))

	it, err := store.Iterate(ctx)
	if err != nil {
		return 1, err
	}
	defer it.Close()

	count := 0
	var total uint64
	for {
		entry, err := it.Next(ctx)
		if err != nil {
			if err == depot.Done {
				break
			}
			return 1, err
		}

		count++
		total += uint64(len(entry.Value))
	}

	fmt.Fprintf(writer, "%d entries, %s\n", count, humanize.Bytes(total))
	return 0, nil
}

func (c *CountCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(namespaceFlag())
}
