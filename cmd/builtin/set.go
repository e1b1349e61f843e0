package builtin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/cmd"
)

type SetCommand struct {
}

func (s *SetCommand) Name() string {
	return "set"
}

func (s *SetCommand) Description() string {
	return "Store a value under a key, replacing any previous value"
}

func (s *SetCommand) Usage() string {
	return "set [-n namespace] [--ttl seconds] <key> <value>"
}

func (s *SetCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) != 2 {
		return 1, fmt.Errorf("usage: %s", s.Usage())
	}

	key, value := args.Args[0], []byte(args.Args[1])
	store := api.Store(args.String("namespace"))

	if ttl := args.Int("ttl"); ttl > 0 {
		expiring := depot.NewExpiring(store, 0)
		if err := expiring.SetTTL(ctx, key, value, time.Duration(ttl)*time.Second); err != nil {
			return 1, err
		}
	} else if err := store.Set(ctx, key, value); err != nil {
		return 1, err
	}

	return 0, nil
}

func (s *SetCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		namespaceFlag(),
		&cmd.CommandFlag{
			Name:        "ttl",
			Kind:        cmd.FlagInt,
			Description: "Expire the entry after this many seconds",
		},
	)
}
