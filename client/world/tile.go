package world

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TileType is the kind of terrain found on a single tile. Its value doubles as
// the index of the tile's texture in the tileset atlas.
type TileType uint8

const (
	Grass TileType = iota
	Water
	Sand
	Forest
	ForestEdge
	Mountain
)

var tileNames = [...]string{
	Grass:      "grass",
	Water:      "water",
	Sand:       "sand",
	Forest:     "forest",
	ForestEdge: "forest_edge",
	Mountain:   "mountain",
}

// TileTypes returns all tile types in atlas order.
func TileTypes() []TileType {
	return []TileType{Grass, Water, Sand, Forest, ForestEdge, Mountain}
}

// Valid reports if t is one of the known tile types.
func (t TileType) Valid() bool {
	return int(t) < len(tileNames)
}

// String returns the snake case name of the tile type, such as "forest_edge".
func (t TileType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return tileNames[t]
}

// DisplayName returns a human readable name of the tile type, such as
// "Forest Edge".
func (t TileType) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(t.String(), "_", " "))
}
