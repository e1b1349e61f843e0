package builtin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mwantia/depot/cmd"
	"github.com/mwantia/depot/loader"
)

type LoadCommand struct {
}

func (l *LoadCommand) Name() string {
	return "load"
}

func (l *LoadCommand) Description() string {
	return "Load one or more resources in order and store them in a namespace"
}

func (l *LoadCommand) Usage() string {
	return "load [-n namespace] [-t timeout-ms] [--verify name] [--cleanup] <uri> [uri...]"
}

func (l *LoadCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return 1, fmt.Errorf("usage: %s", l.Usage())
	}

	opts := &loader.Options{
		Sink:            loader.NewStoreSink(api.Store(args.String("namespace"))),
		CleanupWhenDone: args.Bool("cleanup"),
	}
	if timeout := args.Int("timeout"); timeout != 0 {
		opts.Timeout = time.Duration(timeout) * time.Millisecond
	}

	queue := api.Loader()

	if verify := args.String("verify"); verify != "" {
		if len(args.Args) != 1 {
			return 1, fmt.Errorf("--verify takes exactly one uri")
		}

		value, err := queue.LoadAndVerify(ctx, args.Args[0], verify, opts).Wait(ctx)
		if err != nil {
			return 1, err
		}

		fmt.Fprintf(writer, "verified %s: %v\n", verify, value)
		return 0, nil
	}

	if _, err := queue.LoadBatch(ctx, args.Args, opts).Wait(ctx); err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "loaded %d resource(s)\n", len(args.Args))
	return 0, nil
}

func (l *LoadCommand) GetFlags() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		namespaceFlag(),
		&cmd.CommandFlag{
			Name:        "timeout",
			Short:       "t",
			Kind:        cmd.FlagInt,
			Description: "Per-resource timeout in milliseconds (negative disables)",
		},
		&cmd.CommandFlag{
			Name:        "verify",
			Description: "Verification slot the resource must register",
		},
		&cmd.CommandFlag{
			Name:        "cleanup",
			Kind:        cmd.FlagBool,
			Default:     false,
			Description: "Detach each resource from the namespace once settled",
		},
	)
}
