package builtin

import "github.com/mwantia/depot/cmd"

// InitBuiltin registers every builtin command with the manager.
func InitBuiltin(m *cmd.Manager) error {
	commands := []cmd.Command{
		&GetCommand{},
		&SetCommand{},
		&DelCommand{},
		&KeysCommand{},
		&CountCommand{},
		&ClearCommand{},
		&LoadCommand{},
	}

	for _, c := range commands {
		if err := m.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// namespaceFlag is shared by every builtin; it selects the namespace a
// command operates on, defaulting to the raw backend.
func namespaceFlag() *cmd.CommandFlag {
	return &cmd.CommandFlag{
		Name:        "namespace",
		Short:       "n",
		Default:     "",
		Description: "Namespace to operate on (default: the raw backend)",
	}
}
