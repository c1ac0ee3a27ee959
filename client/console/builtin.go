package console

import (
	"math"
	"strconv"

	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/go-gl/mathgl/mgl64"
)

func (c *Console) registerBuiltin() {
	c.commands.register(Command{
		name: "seed", usage: "seed", description: "Prints the seed of the world.",
		run: func(s Session, _ []string, o *Output, _ *world.Tx) {
			o.Printf("Seed: %d", s.Seed())
		},
	})
	c.commands.register(Command{
		name: "pos", usage: "pos", description: "Prints the position of the camera.",
		aliases: []string{"whereami"},
		run: func(s Session, _ []string, o *Output, tx *world.Tx) {
			d := tx.World().Dimensions()
			pos := s.Camera().Position()
			o.Printf("Camera: (%.2f, %.2f), chunk %v, tile (%d, %d)", pos[0], pos[1], world.ChunkPosAt(pos, d), int64(math.Floor(pos[0]/d.Tile[0])), int64(math.Floor(pos[1]/d.Tile[1])))
		},
	})
	c.commands.register(Command{
		name: "tp", usage: "tp <x> <y>", description: "Teleports the camera to a world position.",
		aliases: []string{"teleport"},
		run: func(s Session, args []string, o *Output, tx *world.Tx) {
			pos, ok := parseVec2(args)
			if !ok {
				o.Errorf("usage: tp <x> <y>, with finite numbers as coordinates")
				return
			}
			s.Camera().Teleport(pos)
			l := tx.World().Loader()
			l.Move(tx, pos)
			stats := l.Load(tx)
			o.Printf("Teleported to (%.2f, %.2f): %d chunks loaded, %d evicted.", pos[0], pos[1], stats.Loaded, stats.Evicted)
		},
	})
	c.commands.register(Command{
		name: "chunks", usage: "chunks", description: "Prints the chunks that are currently loaded.",
		run: func(_ Session, _ []string, o *Output, tx *world.Tx) {
			n := 0
			minPos, maxPos := world.ChunkPos{}, world.ChunkPos{}
			for pos := range tx.Chunks() {
				if n == 0 {
					minPos, maxPos = pos, pos
				}
				minPos = world.ChunkPos{min(minPos[0], pos[0]), min(minPos[1], pos[1])}
				maxPos = world.ChunkPos{max(maxPos[0], pos[0]), max(maxPos[1], pos[1])}
				n++
			}
			if n == 0 {
				o.Print("No chunks loaded.")
				return
			}
			o.Printf("%d chunks loaded around %v, spanning %v to %v.", n, world.ChunkPosAt(tx.Viewpoint(), tx.World().Dimensions()), minPos, maxPos)
		},
	})
	c.commands.register(Command{
		name: "tile", usage: "tile <x> <y>", description: "Prints the tile at world tile coordinates.",
		run: func(_ Session, args []string, o *Output, tx *world.Tx) {
			if len(args) != 2 {
				o.Errorf("usage: tile <x> <y>")
				return
			}
			x, errX := strconv.ParseInt(args[0], 10, 64)
			y, errY := strconv.ParseInt(args[1], 10, 64)
			if errX != nil || errY != nil {
				o.Errorf("tile coordinates must be whole numbers")
				return
			}
			t, ok := tx.Tile(x, y)
			if !ok {
				o.Printf("Tile (%d, %d) is not loaded.", x, y)
				return
			}
			o.Printf("Tile (%d, %d): %v", x, y, t.DisplayName())
		},
	})
	c.commands.register(Command{
		name: "stats", usage: "stats", description: "Prints streaming statistics.",
		aliases: []string{"status"},
		run: func(_ Session, _ []string, o *Output, tx *world.Tx) {
			w := tx.World()
			m := w.Metrics().Snapshot()
			o.Printf("Tick %d at %.2f TPS, last tick took %v (max %v).", w.CurrentTick(), w.TPS(), m.LastTick, m.MaxTick)
			o.Printf("Chunks: %d loaded, %d generated, %d restored, %d evicted, %d generator panics.", tx.ChunkCount(), m.Generated, m.Restored, m.Evicted, m.GeneratorPanics)
		},
	})
	c.commands.register(Command{
		name: "help", usage: "help", description: "Lists all commands.",
		aliases: []string{"?"},
		run: func(_ Session, _ []string, o *Output, _ *world.Tx) {
			for _, cmd := range c.commands.commands() {
				o.Printf("%s - %s", cmd.usage, cmd.description)
			}
		},
	})
}

// parseVec2 parses two finite float arguments into a vector.
func parseVec2(args []string) (mgl64.Vec2, bool) {
	if len(args) != 2 {
		return mgl64.Vec2{}, false
	}
	var v mgl64.Vec2
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return mgl64.Vec2{}, false
		}
		v[i] = f
	}
	return v, true
}
