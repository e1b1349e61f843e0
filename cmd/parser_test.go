package cmd_test

import (
	"strings"
	"testing"

	"github.com/mwantia/depot/cmd"
)

func testFlagSet() *cmd.CommandFlagSet {
	return cmd.NewFlagSet(
		&cmd.CommandFlag{
			Name:    "namespace",
			Short:   "n",
			Default: "",
		},
		&cmd.CommandFlag{
			Name:  "timeout",
			Short: "t",
			Kind:  cmd.FlagInt,
		},
		&cmd.CommandFlag{
			Name:    "long",
			Short:   "l",
			Kind:    cmd.FlagBool,
			Default: false,
		},
	)
}

func TestParser_TypedFlags(t *testing.T) {
	parser := cmd.NewParser(testFlagSet())

	args, err := parser.Parse([]string{"-n", "cache", "--timeout=500", "-l", "key"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := args.String("namespace"); got != "cache" {
		t.Errorf("Expected namespace 'cache', got %q", got)
	}
	if got := args.Int("timeout"); got != 500 {
		t.Errorf("Expected timeout 500, got %d", got)
	}
	if !args.Bool("long") {
		t.Error("Expected long to be set")
	}
	if len(args.Args) != 1 || args.Args[0] != "key" {
		t.Errorf("Unexpected positionals: %v", args.Args)
	}
}

func TestParser_InvalidInteger(t *testing.T) {
	parser := cmd.NewParser(testFlagSet())

	if _, err := parser.Parse([]string{"-t", "abc"}); err == nil {
		t.Fatal("Expected error for non-numeric value")
	} else if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Expected the flag name in the error, got %v", err)
	}

	if _, err := parser.Parse([]string{"--timeout=1.5"}); err == nil {
		t.Fatal("Expected error for fractional value")
	}
}

func TestParser_ShortCluster(t *testing.T) {
	parser := cmd.NewParser(testFlagSet())

	args, err := parser.Parse([]string{"-lncache"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !args.Bool("long") {
		t.Error("Expected long to be set")
	}
	if got := args.String("namespace"); got != "cache" {
		t.Errorf("Expected inline value 'cache', got %q", got)
	}
}

func TestParser_Terminator(t *testing.T) {
	parser := cmd.NewParser(testFlagSet())

	args, err := parser.Parse([]string{"-n", "cache", "--", "-t", "--long"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(args.Args) != 2 {
		t.Fatalf("Expected 2 positionals after --, got %v", args.Args)
	}
	if args.Bool("long") {
		t.Error("Flags after -- must stay positional")
	}
}

func TestParser_MissingAndUnknown(t *testing.T) {
	parser := cmd.NewParser(testFlagSet())

	if _, err := parser.Parse([]string{"--timeout"}); err == nil {
		t.Error("Expected error for value flag without value")
	}
	if _, err := parser.Parse([]string{"--bogus"}); err == nil {
		t.Error("Expected error for unknown long flag")
	}
	if _, err := parser.Parse([]string{"-x"}); err == nil {
		t.Error("Expected error for unknown short flag")
	}

	required := cmd.NewFlagSet(&cmd.CommandFlag{
		Name:     "target",
		Required: true,
	})
	if _, err := cmd.NewParser(required).Parse(nil); err == nil {
		t.Error("Expected error for missing required flag")
	}
}
