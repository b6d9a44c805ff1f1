package core

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps command names to commands. Lookup is case-insensitive.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds commands to the registry. Duplicate names are a programming
// error caught at startup.
func (r *Registry) Register(cmds ...Command) {
	for _, cmd := range cmds {
		name := strings.ToLower(cmd.Name())
		if name == "" {
			panic("core: command with empty name")
		}
		if _, exists := r.commands[name]; exists {
			panic(fmt.Sprintf("core: duplicate command %q", name))
		}
		r.commands[name] = cmd
	}
}

// Get returns the command with the given name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
