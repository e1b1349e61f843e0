package cmd

import (
	"fmt"
	"strings"
)

// Parser turns raw arguments into typed flags and positionals according
// to a command's flag set. Long flags accept "--flag value" and
// "--flag=value", short flags cluster ("-ab") and may carry their value
// inline ("-t500"). A bare "--" ends flag parsing.
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	return &Parser{
		flagSet: flagSet,
	}
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for _, flag := range cp.flagSet.flags {
		if flag.Default != nil {
			args.Flags[flag.Name] = flag.Default
		}
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]
		i++

		switch {
		case arg == "--":
			args.Args = append(args.Args, raw[i:]...)
			i = len(raw)

		case strings.HasPrefix(arg, "--"):
			consumed, err := cp.parseLong(arg[2:], raw[i:], args)
			if err != nil {
				return nil, err
			}
			i += consumed

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			consumed, err := cp.parseShort(arg[1:], raw[i:], args)
			if err != nil {
				return nil, err
			}
			i += consumed

		default:
			args.Args = append(args.Args, arg)
		}
	}

	for _, flag := range cp.flagSet.flags {
		if !flag.Required {
			continue
		}
		if _, ok := args.Flags[flag.Name]; !ok {
			if flag.Short != "" {
				return nil, fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
			}
			return nil, fmt.Errorf("required flag: --%s", flag.Name)
		}
	}

	return args, nil
}

// parseLong handles one "--name" or "--name=value" token; rest holds the
// arguments following it. Returns how many of them were consumed.
func (cp *Parser) parseLong(token string, rest []string, args *CommandArgs) (int, error) {
	name, value, inline := strings.Cut(token, "=")

	flag, ok := cp.flagSet.long[name]
	if !ok {
		return 0, fmt.Errorf("unknown flag: --%s", name)
	}

	// A bare bool flag means true
	if flag.Kind == FlagBool && !inline {
		args.Flags[flag.Name] = true
		return 0, nil
	}

	consumed := 0
	if !inline {
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			return 0, fmt.Errorf("flag --%s requires a value", name)
		}
		value = rest[0]
		consumed = 1
	}

	parsed, err := flag.value(value)
	if err != nil {
		return 0, err
	}

	args.Flags[flag.Name] = parsed
	return consumed, nil
}

// parseShort handles a short-flag cluster like "ab" or "t500"; a value
// flag swallows the remainder of the cluster or the next argument.
func (cp *Parser) parseShort(cluster string, rest []string, args *CommandArgs) (int, error) {
	for j := 0; j < len(cluster); j++ {
		short := string(cluster[j])

		flag, ok := cp.flagSet.short[short]
		if !ok {
			return 0, fmt.Errorf("unknown flag: -%s", short)
		}

		if flag.Kind == FlagBool {
			args.Flags[flag.Name] = true
			continue
		}

		var value string
		consumed := 0
		if j+1 < len(cluster) {
			value = cluster[j+1:]
		} else {
			if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
				return 0, fmt.Errorf("flag -%s requires a value", short)
			}
			value = rest[0]
			consumed = 1
		}

		parsed, err := flag.value(value)
		if err != nil {
			return 0, err
		}

		args.Flags[flag.Name] = parsed
		return consumed, nil
	}

	return 0, nil
}
