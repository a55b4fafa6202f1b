package vegetation

import (
	"math"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
)

type Species uint8

const (
	Oak Species = iota
	Birch
	Pine
	Palm
	SwampOak
	RedMushroom
	BrownMushroom
)

func (s Species) String() string {
	switch s {
	case Oak:
		return "oak"
	case Birch:
		return "birch"
	case Pine:
		return "pine"
	case Palm:
		return "palm"
	case SwampOak:
		return "swamp"
	case RedMushroom:
		return "red-mushroom"
	case BrownMushroom:
		return "brown-mushroom"
	default:
		return "unknown"
	}
}

// Site is what species selection sees for a trunk column.
type Site struct {
	Y           int
	Temperature float64
	Humidity    float64
	NearSea     bool
	Cold        bool
}

func (s Site) wet() bool { return s.Humidity > 0.45 }

// SpeciesRule maps a matching site to a species draw. Pick may consume draws
// from r; When must not.
type SpeciesRule struct {
	Name string
	When func(s Site, r *mathx.Rand) bool
	Pick func(r *mathx.Rand) Species
}

func either(chance float64, a, b Species) func(r *mathx.Rand) Species {
	return func(r *mathx.Rand) Species {
		if r.Float64() < chance {
			return a
		}
		return b
	}
}

// SpeciesRules is evaluated first match wins. The mushroom rule's When rolls
// its own rarity, so it is the only predicate that draws.
var SpeciesRules = []SpeciesRule{
	{"coast", func(s Site, _ *mathx.Rand) bool { return s.NearSea && s.Temperature > 0.05 && !s.Cold }, either(0.80, Palm, Oak)},
	{"cold", func(s Site, _ *mathx.Rand) bool { return s.Cold }, either(0.85, Pine, Birch)},
	{"warm-wet", func(s Site, _ *mathx.Rand) bool { return s.wet() && s.Temperature > 0.10 }, either(0.65, SwampOak, Oak)},
	{"damp", func(s Site, r *mathx.Rand) bool { return s.wet() && r.Float64() < 0.10 }, func(r *mathx.Rand) Species {
		if r.Bool() {
			return RedMushroom
		}
		return BrownMushroom
	}},
	{"mixed", func(Site, *mathx.Rand) bool { return true }, func(r *mathx.Rand) Species {
		switch p := r.Float64(); {
		case p < 0.55:
			return Oak
		case p < 0.80:
			return Birch
		default:
			return Pine
		}
	}},
}

func PickSpecies(s Site, r *mathx.Rand) Species {
	for _, rule := range SpeciesRules {
		if rule.When(s, r) {
			return rule.Pick(r)
		}
	}
	return Oak
}

func (p Params) site(seed int64, x, y, z int, env Env) Site {
	t := env.Temperature(seed, x, z)
	return Site{
		Y:           y,
		Temperature: t,
		Humidity:    env.Humidity(seed, x, z),
		NearSea:     y <= p.SeaLevel+3,
		Cold:        t < -0.25 || y >= p.SnowLine-10,
	}
}

func (p Params) treePass(seed int64, chunkX, chunkZ int, env Env, w *Window) {
	r := mathx.NewRand(mathx.Mix(seed, chunkX, chunkZ, treeSalt))
	for i := 0; i < p.TreeAttempts; i++ {
		x := chunkX*chunkSize + 2 + r.Intn(12)
		z := chunkZ*chunkSize + 2 + r.Intn(12)

		if env.CityBlend(seed, x, z) > p.TreeCityBlendMax {
			continue
		}
		y := w.HighestBlockY(x, z) + 1
		if y < p.TreeMinY || y >= p.TreeMaxY {
			continue
		}
		if !material.GoodTreeGround(w.Get(x, y-1, z)) {
			continue
		}
		if w.Get(x, y, z) != material.Air {
			continue
		}
		Grow(w, &r, x, y, z, PickSpecies(p.site(seed, x, y, z, env), &r))
	}
}

// Grow places one tree with its trunk base at (x, y, z). Shapes that do not
// fit leave the world untouched.
func Grow(w *Window, r *mathx.Rand, x, y, z int, s Species) {
	switch s {
	case Oak:
		growOak(w, r, x, y, z)
	case Birch:
		growBirch(w, r, x, y, z)
	case Pine:
		growPine(w, r, x, y, z)
	case Palm:
		growPalm(w, r, x, y, z)
	case SwampOak:
		growSwamp(w, r, x, y, z)
	case RedMushroom:
		growMushroom(w, r, x, y, z, true)
	case BrownMushroom:
		growMushroom(w, r, x, y, z, false)
	}
}

func growOak(w *Window, r *mathx.Rand, x, y, z int) {
	h := 4 + r.Intn(4)
	if !canPlace(w, x, y, z, 2, h+3) {
		return
	}
	column(w, x, y, z, material.OakLog, h)
	top := y + h
	blob(w, x, top, z, 2, material.OakLeaves)
	blob(w, x, top-1, z, 3, material.OakLeaves)
	blob(w, x, top+1, z, 1, material.OakLeaves)
}

func growBirch(w *Window, r *mathx.Rand, x, y, z int) {
	h := 5 + r.Intn(4)
	if !canPlace(w, x, y, z, 2, h+3) {
		return
	}
	column(w, x, y, z, material.BirchLog, h)
	top := y + h
	blob(w, x, top, z, 2, material.BirchLeaves)
	blob(w, x, top-1, z, 2, material.BirchLeaves)
	blob(w, x, top+1, z, 1, material.BirchLeaves)
}

func growPine(w *Window, r *mathx.Rand, x, y, z int) {
	h := 7 + r.Intn(6)
	if !canPlace(w, x, y, z, 3, h+4) {
		return
	}
	column(w, x, y, z, material.SpruceLog, h)
	top := y + h
	layers := 5 + r.Intn(3)
	for i := 0; i < layers; i++ {
		disc(w, x, top-i, z, max(1, 3-i/2), material.SpruceLeaves)
	}
	disc(w, x, top+1, z, 1, material.SpruceLeaves)
}

func growPalm(w *Window, r *mathx.Rand, x, y, z int) {
	h := 6 + r.Intn(5)
	if !canPlace(w, x, y, z, 4, h+4) {
		return
	}
	dx := r.Intn(3) - 1
	dz := r.Intn(3) - 1

	cx, cz := x, z
	for i := 0; i < h; i++ {
		w.setIfReplaceable(cx, y+i, cz, material.JungleLog)
		if i > 2 && r.Float64() < 0.35 {
			cx += dx
			cz += dz
		}
	}

	top := y + h
	for a := 0; a < 6; a++ {
		w.setIfReplaceable(cx+a%3-1, top, cz+a/3-1, material.JungleLeaves)
	}
	line(w, cx, top, cz, 3, 0, material.JungleLeaves)
	line(w, cx, top, cz, -3, 0, material.JungleLeaves)
	line(w, cx, top, cz, 0, 3, material.JungleLeaves)
	line(w, cx, top, cz, 0, -3, material.JungleLeaves)
}

func growSwamp(w *Window, r *mathx.Rand, x, y, z int) {
	h := 5 + r.Intn(4)
	if !canPlace(w, x, y, z, 3, h+4) {
		return
	}
	column(w, x, y, z, material.OakLog, h)
	top := y + h
	blob(w, x, top, z, 3, material.OakLeaves)
	blob(w, x, top-1, z, 3, material.OakLeaves)

	if r.Float64() < 0.60 {
		for i := 0; i < 6; i++ {
			vx := x + r.Intn(5) - 2
			vz := z + r.Intn(5) - 2
			vy := top - r.Intn(2)
			for d := 0; d < 4; d++ {
				w.setIfAir(vx, vy-d, vz, material.Vine)
			}
		}
	}
}

func growMushroom(w *Window, r *mathx.Rand, x, y, z int, red bool) {
	h := 4 + r.Intn(3)
	capR := 3 + r.Intn(2)
	if !canPlace(w, x, y, z, capR+1, h+6) {
		return
	}
	column(w, x, y, z, material.MushroomStem, h)

	top := y + h
	capID := material.BrownMushroomBlock
	if red {
		capID = material.RedMushroomBlock
	}
	for dx := -capR; dx <= capR; dx++ {
		for dz := -capR; dz <= capR; dz++ {
			ad := mathx.AbsInt(dx) + mathx.AbsInt(dz)
			if ad > capR+1 {
				continue
			}
			w.setIfReplaceable(x+dx, top, z+dz, capID)
			if ad <= capR-1 {
				w.setIfReplaceable(x+dx, top+1, z+dz, capID)
			}
		}
	}
}

// canPlace requires every block of the (2r+1) x height+1 box to be
// replaceable.
func canPlace(w *Window, x, y, z, radius, height int) bool {
	for dy := 0; dy <= height; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if !material.Replaceable(w.Get(x+dx, y+dy, z+dz)) {
					return false
				}
			}
		}
	}
	return true
}

func column(w *Window, x, y, z int, id material.ID, h int) {
	for i := 0; i < h; i++ {
		w.Set(x, y+i, z, id)
	}
}

func blob(w *Window, x, y, z, r int, id material.ID) {
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			for dy := -1; dy <= 1; dy++ {
				d := math.Sqrt(float64(dx*dx+dz*dz)) + float64(mathx.AbsInt(dy))*0.6
				if d <= float64(r)+0.15 {
					w.setIfReplaceable(x+dx, y+dy, z+dz, id)
				}
			}
		}
	}
}

func disc(w *Window, x, y, z, r int, id material.ID) {
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if dx*dx+dz*dz <= r*r {
				w.setIfReplaceable(x+dx, y, z+dz, id)
			}
		}
	}
}

func line(w *Window, x, y, z, dx, dz int, id material.ID) {
	steps := max(mathx.AbsInt(dx), mathx.AbsInt(dz))
	sx, sz := sign(dx), sign(dz)
	cx, cz := x, z
	for i := 0; i < steps; i++ {
		cx += sx
		cz += sz
		w.setIfReplaceable(cx, y, cz, id)
		if i > 1 {
			w.setIfReplaceable(cx, y-1, cz, id)
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
