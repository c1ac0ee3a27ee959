package console

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PizzaLvr49/moonlit/client/world"
)

// Command is a console command that may be executed by typing its name
// followed by its arguments, separated by spaces.
type Command struct {
	name, usage, description string
	aliases                  []string
	run                      func(s Session, args []string, o *Output, tx *world.Tx)
}

// Name returns the name of the command.
func (c Command) Name() string {
	return c.name
}

// Usage returns the usage line of the command, such as "tp <x> <y>".
func (c Command) Usage() string {
	return c.usage
}

// Description returns a short description of what the command does.
func (c Command) Description() string {
	return c.description
}

// Output holds the messages and errors produced by a command.
type Output struct {
	messages []string
	errors   []error
}

// Print adds a message to the Output.
func (o *Output) Print(a ...any) {
	o.messages = append(o.messages, fmt.Sprint(a...))
}

// Printf adds a formatted message to the Output.
func (o *Output) Printf(format string, a ...any) {
	o.messages = append(o.messages, fmt.Sprintf(format, a...))
}

// Errorf adds a formatted error to the Output.
func (o *Output) Errorf(format string, a ...any) {
	o.errors = append(o.errors, fmt.Errorf(format, a...))
}

// Messages returns all messages added to the Output.
func (o *Output) Messages() []string {
	return o.messages
}

// Errors returns all errors added to the Output.
func (o *Output) Errors() []error {
	return o.errors
}

// registry maps command names and aliases to commands.
type registry map[string]Command

func (r registry) register(c Command) {
	r[c.name] = c
	for _, alias := range c.aliases {
		r[alias] = c
	}
}

// byAlias returns the command with the name or alias passed.
func (r registry) byAlias(name string) (Command, bool) {
	c, ok := r[strings.ToLower(name)]
	return c, ok
}

// commands returns every registered command once, sorted by name.
func (r registry) commands() []Command {
	seen := make(map[string]struct{}, len(r))
	list := make([]Command, 0, len(r))
	for _, c := range r {
		if _, ok := seen[c.name]; ok {
			continue
		}
		seen[c.name] = struct{}{}
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b Command) int {
		return strings.Compare(a.name, b.name)
	})
	return list
}
