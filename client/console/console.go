// Package console implements a debug console that reads commands from an
// io.Reader and executes them inside transactions of a client's world.
package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PizzaLvr49/moonlit/client/camera"
	"github.com/PizzaLvr49/moonlit/client/world"
)

// Session is the state that console commands operate on. *client.Client
// implements it.
type Session interface {
	World() *world.World
	Camera() *camera.Controller
	Seed() uint64
}

// Console provides a simple CLI backed command source that reads commands from
// an io.Reader (defaulting to os.Stdin) and executes them on the provided
// session.
type Console struct {
	s        Session
	log      *slog.Logger
	reader   io.Reader
	commands registry
}

// New returns a Console bound to the provided session. The console reads from
// os.Stdin and writes command output to the supplied logger.
func New(s Session, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	c := &Console{
		s:        s,
		log:      log,
		reader:   os.Stdin,
		commands: registry{},
	}
	c.registerBuiltin()
	return c
}

// WithReader sets a custom reader for the console input. It enables testing the
// console without relying on os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Commands returns all commands of the console, sorted by name.
func (c *Console) Commands() []Command {
	return c.commands.commands()
}

// Run starts consuming commands from the console. It blocks until the context
// is cancelled or the underlying reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		c.ExecuteLine(scanner.Text())
	}
}

// ExecuteLine executes a single command line and waits for it to complete. A
// leading slash is optional. The output of the command is written to the
// console's logger and returned.
func (c *Console) ExecuteLine(line string) *Output {
	o := &Output{}
	args := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(args) == 0 {
		return o
	}
	cmd, ok := c.commands.byAlias(args[0])
	if !ok {
		o.Errorf("unknown command %q, type help for a list of commands", args[0])
		c.send(o)
		return o
	}
	<-c.s.World().Exec(func(tx *world.Tx) {
		cmd.run(c.s, args[1:], o, tx)
	})
	c.send(o)
	return o
}

// send writes the output passed to the logger.
func (c *Console) send(o *Output) {
	for _, msg := range o.Messages() {
		c.log.Info(msg)
	}
	for _, err := range o.Errors() {
		c.log.Error(err.Error())
	}
}
