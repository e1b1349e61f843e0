package cmd

import (
	"fmt"
	"strconv"
)

// FlagKind selects the Go type a flag's raw argument is parsed into.
type FlagKind int

const (
	FlagString FlagKind = iota
	FlagBool
	FlagInt
)

// CommandFlag describes one flag a command accepts.
type CommandFlag struct {
	Name        string   // long form, e.g. "namespace"
	Short       string   // single-char shorthand, e.g. "n"
	Kind        FlagKind // defaults to FlagString
	Default     any      // pre-populated value when the flag is absent
	Required    bool
	Description string
}

// value parses raw into the flag's kind; malformed input is an error,
// never a silent zero value.
func (f *CommandFlag) value(raw string) (any, error) {
	switch f.Kind {
	case FlagBool:
		switch raw {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return nil, fmt.Errorf("flag --%s: invalid boolean %q", f.Name, raw)
	case FlagInt:
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("flag --%s: invalid integer %q", f.Name, raw)
		}
		return parsed, nil
	default:
		return raw, nil
	}
}

// CommandFlagSet holds a command's flags, indexed by long and short
// form when the set is built.
type CommandFlagSet struct {
	flags []*CommandFlag
	long  map[string]*CommandFlag
	short map[string]*CommandFlag
}

// NewFlagSet builds a flag set; later flags win duplicate names.
func NewFlagSet(flags ...*CommandFlag) *CommandFlagSet {
	set := &CommandFlagSet{
		long:  make(map[string]*CommandFlag),
		short: make(map[string]*CommandFlag),
	}

	for _, flag := range flags {
		set.flags = append(set.flags, flag)
		set.long[flag.Name] = flag
		if flag.Short != "" {
			set.short[flag.Short] = flag
		}
	}

	return set
}

// Flags returns the set in registration order.
func (fs *CommandFlagSet) Flags() []*CommandFlag {
	return fs.flags
}

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags keyed by long name
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// String returns the named flag as a string, or empty when absent.
func (ca *CommandArgs) String(name string) string {
	if value, ok := ca.Flags[name].(string); ok {
		return value
	}
	return ""
}

// Bool returns the named flag as a bool, or false when absent.
func (ca *CommandArgs) Bool(name string) bool {
	if value, ok := ca.Flags[name].(bool); ok {
		return value
	}
	return false
}

// Int returns the named flag as an int64, or 0 when absent.
func (ca *CommandArgs) Int(name string) int64 {
	if value, ok := ca.Flags[name].(int64); ok {
		return value
	}
	return 0
}
