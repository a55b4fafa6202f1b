// Package structure plans and renders city buildings. A building is a pure
// function of (seed, plot origin, ground height); rendering goes through a
// Writer, which callers clip to the chunk being generated.
package structure

import (
	"terracity.io/internal/gen/mathx"
	"terracity.io/internal/gen/material"
)

const structureSalt = 0x5EED_B17D

// MaxExtent bounds how far past its origin a building writes, on +x and +z.
const MaxExtent = 15

type Writer interface {
	Set(x, y, z int, id material.ID)
}

type Palette struct {
	Wall, Floor, Roof, Trim, Window, Stone material.ID
}

func DefaultPalette() Palette {
	return Palette{
		Wall:   material.SprucePlanks,
		Floor:  material.OakPlanks,
		Roof:   material.DarkOakPlanks,
		Trim:   material.StrippedSpruceLog,
		Window: material.Glass,
		Stone:  material.StoneBricks,
	}
}

type Params struct {
	BuildChance float64
	MaxPerChunk int
	PlotSize    int
	Palette     Palette
}

func DefaultParams() Params {
	return Params{
		BuildChance: 0.55,
		MaxPerChunk: 2,
		PlotSize:    16,
		Palette:     DefaultPalette(),
	}
}

type Kind uint8

const (
	House Kind = iota
	Tower
	Hall
)

func (k Kind) String() string {
	switch k {
	case House:
		return "house"
	case Tower:
		return "tower"
	case Hall:
		return "hall"
	default:
		return "unknown"
	}
}

// Building is a planned footprint. X0/Z0 is the footprint corner (plot
// origin + 1); Y0 is the first level above ground.
type Building struct {
	Kind   Kind
	X0, Z0 int
	Y0     int
	Size   int
	Height int
	Radius int
}

// FootprintSize is the side of a house footprint for the configured plots.
func (p Params) FootprintSize() int {
	return max(9, min(p.PlotSize-2, 13))
}

// Plan rolls the building for a plot origin. It returns false when the plot
// stays empty.
func (p Params) Plan(seed int64, ox, oz, groundY int) (Building, bool) {
	r := mathx.NewRand(mathx.Mix(seed, ox, oz, structureSalt))
	if r.Float64() > p.BuildChance {
		return Building{}, false
	}
	b := Building{
		X0:   ox + 1,
		Z0:   oz + 1,
		Y0:   groundY + 1,
		Size: p.FootprintSize(),
	}
	switch roll := r.Intn(100); {
	case roll < 60:
		b.Kind = House
		b.Height = 4 + r.Intn(3)
	case roll < 85:
		b.Kind = Tower
		b.Radius = 4 + r.Intn(2)
		b.Height = 14 + r.Intn(10)
	default:
		b.Kind = Hall
		b.Height = 5 + r.Intn(3)
	}
	return b, true
}

// Bounds is the inclusive horizontal box the building may write.
func (b Building) Bounds() (x0, z0, x1, z1 int) {
	switch b.Kind {
	case Tower:
		cx, cz := b.X0+b.Size/2, b.Z0+b.Size/2
		return cx - b.Radius, cz - b.Radius, cx + b.Radius, cz + b.Radius
	case Hall:
		return b.X0, b.Z0, b.X0 + max(11, b.Size) - 1, b.Z0 + max(9, b.Size-2) - 1
	default:
		return b.X0, b.Z0, b.X0 + b.Size - 1, b.Z0 + b.Size - 1
	}
}

// Overlaps reports whether the building touches the inclusive rectangle.
func (b Building) Overlaps(x0, z0, x1, z1 int) bool {
	bx0, bz0, bx1, bz1 := b.Bounds()
	return bx0 <= x1 && bx1 >= x0 && bz0 <= z1 && bz1 >= z0
}

func (p Params) Render(b Building, w Writer) {
	switch b.Kind {
	case House:
		p.renderHouse(b, w)
	case Tower:
		p.renderTower(b, w)
	case Hall:
		p.renderHall(b, w)
	}
}
