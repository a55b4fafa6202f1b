// Package material is the fixed block palette the generator writes.
package material

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ID indexes Palette. Air is 0 so a zeroed buffer reads as empty.
type ID uint16

// Void is returned for reads outside a decoration window. It is neither air,
// leaves nor fluid, so placement checks treat it as blocked.
const Void ID = 0xFFFF

const (
	Air ID = iota
	Stone
	Water
	Lava
	GrassBlock
	Dirt
	CoarseDirt
	Podzol
	Mycelium
	Sand
	RedSand
	Sandstone
	SnowBlock
	Gravel
	Basalt
	Blackstone
	Andesite
	Diorite
	Tuff
	StoneBricks
	OakPlanks
	SprucePlanks
	DarkOakPlanks
	StrippedSpruceLog
	Glass
	Lantern
	OakLog
	OakLeaves
	BirchLog
	BirchLeaves
	SpruceLog
	SpruceLeaves
	JungleLog
	JungleLeaves
	Vine
	MushroomStem
	RedMushroomBlock
	BrownMushroomBlock
	ShortGrass
	Fern
	Dandelion
	Poppy
	Cornflower

	count
)

var names = [count]string{
	Air:                "AIR",
	Stone:              "STONE",
	Water:              "WATER",
	Lava:               "LAVA",
	GrassBlock:         "GRASS_BLOCK",
	Dirt:               "DIRT",
	CoarseDirt:         "COARSE_DIRT",
	Podzol:             "PODZOL",
	Mycelium:           "MYCELIUM",
	Sand:               "SAND",
	RedSand:            "RED_SAND",
	Sandstone:          "SANDSTONE",
	SnowBlock:          "SNOW_BLOCK",
	Gravel:             "GRAVEL",
	Basalt:             "BASALT",
	Blackstone:         "BLACKSTONE",
	Andesite:           "ANDESITE",
	Diorite:            "DIORITE",
	Tuff:               "TUFF",
	StoneBricks:        "STONE_BRICKS",
	OakPlanks:          "OAK_PLANKS",
	SprucePlanks:       "SPRUCE_PLANKS",
	DarkOakPlanks:      "DARK_OAK_PLANKS",
	StrippedSpruceLog:  "STRIPPED_SPRUCE_LOG",
	Glass:              "GLASS",
	Lantern:            "LANTERN",
	OakLog:             "OAK_LOG",
	OakLeaves:          "OAK_LEAVES",
	BirchLog:           "BIRCH_LOG",
	BirchLeaves:        "BIRCH_LEAVES",
	SpruceLog:          "SPRUCE_LOG",
	SpruceLeaves:       "SPRUCE_LEAVES",
	JungleLog:          "JUNGLE_LOG",
	JungleLeaves:       "JUNGLE_LEAVES",
	Vine:               "VINE",
	MushroomStem:       "MUSHROOM_STEM",
	RedMushroomBlock:   "RED_MUSHROOM_BLOCK",
	BrownMushroomBlock: "BROWN_MUSHROOM_BLOCK",
	ShortGrass:         "SHORT_GRASS",
	Fern:               "FERN",
	Dandelion:          "DANDELION",
	Poppy:              "POPPY",
	Cornflower:         "CORNFLOWER",
}

var index = func() map[string]ID {
	m := make(map[string]ID, len(names))
	for i, n := range names {
		m[n] = ID(i)
	}
	return m
}()

// Palette returns the block names in ID order.
func Palette() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// PaletteDigest is the hex sha256 of the newline-joined palette. Hosts compare
// it to detect snapshots written against a different palette.
func PaletteDigest() string {
	sum := sha256.Sum256([]byte(strings.Join(names[:], "\n")))
	return hex.EncodeToString(sum[:])
}

func (id ID) String() string {
	if id == Void {
		return "VOID"
	}
	if int(id) < len(names) {
		return names[id]
	}
	return "UNKNOWN"
}

// Valid reports whether id is a palette entry.
func (id ID) Valid() bool {
	return int(id) < len(names)
}

// Lookup resolves a block name, case-insensitively and with an optional
// "minecraft:" namespace.
func Lookup(name string) (ID, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "MINECRAFT:")
	id, ok := index[n]
	return id, ok
}

// Parse is Lookup with a fallback for empty or unknown names.
func Parse(name string, fallback ID) ID {
	if id, ok := Lookup(name); ok {
		return id
	}
	return fallback
}

func IsLeaves(id ID) bool {
	switch id {
	case OakLeaves, BirchLeaves, SpruceLeaves, JungleLeaves:
		return true
	}
	return false
}

func IsFluid(id ID) bool {
	return id == Water || id == Lava
}

// IsSolid is the top-solid test used by surface dressing and structure
// grounding. Fluids and air are not solid.
func IsSolid(id ID) bool {
	return id != Air && id != Void && !IsFluid(id)
}

// Replaceable is what a tree or flora crown may overwrite.
func Replaceable(id ID) bool {
	return id == Air || id == Vine || IsLeaves(id)
}

// GoodTreeGround lists the soils a tree trunk may stand on.
func GoodTreeGround(id ID) bool {
	switch id {
	case GrassBlock, Dirt, Podzol, Mycelium, Sand, RedSand, CoarseDirt:
		return true
	}
	return false
}
