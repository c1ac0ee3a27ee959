package console

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/PizzaLvr49/moonlit/client/camera"
	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/go-gl/mathgl/mgl64"
)

type testSession struct {
	w   *world.World
	cam *camera.Controller
}

func (s testSession) World() *world.World        { return s.w }
func (s testSession) Camera() *camera.Controller { return s.cam }
func (s testSession) Seed() uint64               { return 1234 }

func newTestConsole(t *testing.T) (*Console, testSession, *bytes.Buffer) {
	t.Helper()
	cam := camera.Config{}.New()
	gen := world.GeneratorFunc(func(pos world.ChunkPos, c *world.Chunk) {
		c.SetTile(world.TilePos{0, 0}, world.ForestEdge)
	})
	w := world.Config{Generator: gen, Viewpoint: cam}.New()
	t.Cleanup(func() {
		if err := w.Close(); err != nil {
			t.Fatalf("failed closing world: %v", err)
		}
	})
	buf := new(bytes.Buffer)
	s := testSession{w: w, cam: cam}
	return New(s, slog.New(slog.NewTextHandler(buf, nil))), s, buf
}

func TestConsoleSeed(t *testing.T) {
	c, _, buf := newTestConsole(t)
	o := c.ExecuteLine("/seed")
	if len(o.Messages()) != 1 || o.Messages()[0] != "Seed: 1234" {
		t.Fatalf("unexpected output %v", o.Messages())
	}
	if !strings.Contains(buf.String(), "Seed: 1234") {
		t.Fatalf("expected output to be logged, got %q", buf.String())
	}
}

func TestConsoleTeleportLoadsChunks(t *testing.T) {
	c, s, _ := newTestConsole(t)
	o := c.ExecuteLine("tp 1600 -1600")
	if len(o.Errors()) != 0 {
		t.Fatalf("unexpected errors %v", o.Errors())
	}
	if s.cam.Position() != (mgl64.Vec2{1600, -1600}) {
		t.Fatalf("expected camera to be teleported, got %v", s.cam.Position())
	}
	if s.w.LoadedChunkCount() != 25 {
		t.Fatalf("expected 25 chunks loaded after teleporting, got %d", s.w.LoadedChunkCount())
	}

	o = c.ExecuteLine("tile 100 -100")
	if len(o.Messages()) != 1 || o.Messages()[0] != "Tile (100, -100): Forest Edge" {
		t.Fatalf("unexpected output %v", o.Messages())
	}
	o = c.ExecuteLine("tile 0 0")
	if len(o.Messages()) != 1 || !strings.Contains(o.Messages()[0], "not loaded") {
		t.Fatalf("unexpected output %v", o.Messages())
	}
}

func TestConsoleRejectsBadArguments(t *testing.T) {
	c, s, _ := newTestConsole(t)
	for _, line := range []string{"tp 1", "tp a b", "tp NaN 0", "tile 1.5 2", "tile"} {
		if o := c.ExecuteLine(line); len(o.Errors()) == 0 {
			t.Fatalf("expected %q to fail", line)
		}
	}
	if s.cam.Position() != (mgl64.Vec2{}) {
		t.Fatalf("expected camera not to move, got %v", s.cam.Position())
	}
	if o := c.ExecuteLine("fly"); len(o.Errors()) != 1 {
		t.Fatalf("expected unknown command to fail, got %v", o.Errors())
	}
}

func TestConsoleHelpListsCommands(t *testing.T) {
	c, _, _ := newTestConsole(t)
	o := c.ExecuteLine("?")
	if len(o.Messages()) != len(c.Commands()) {
		t.Fatalf("expected %d help lines, got %d", len(c.Commands()), len(o.Messages()))
	}
	for _, name := range []string{"chunks", "help", "pos", "seed", "stats", "tile", "tp"} {
		if _, ok := c.commands.byAlias(name); !ok {
			t.Fatalf("expected command %q to be registered", name)
		}
	}
}

func TestConsoleRunReadsLines(t *testing.T) {
	c, s, buf := newTestConsole(t)
	c.WithReader(strings.NewReader("\n  TP 0 160\nchunks\nstats\npos\n"))
	c.Run(context.Background())

	if s.cam.Position() != (mgl64.Vec2{0, 160}) {
		t.Fatalf("expected camera at (0, 160), got %v", s.cam.Position())
	}
	out := buf.String()
	for _, want := range []string{"25 chunks loaded", "generator panics", "chunk (0, 1)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestConsoleRunStopsOnCancel(t *testing.T) {
	c, s, _ := newTestConsole(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.WithReader(strings.NewReader("tp 10 10\n")).Run(ctx)
	if s.cam.Position() != (mgl64.Vec2{}) {
		t.Fatal("expected no command to run after cancellation")
	}
}
