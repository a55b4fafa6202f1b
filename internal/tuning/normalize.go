package tuning

import (
	"fmt"
	"strings"

	"terracity.io/internal/gen/material"
)

// Normalize clamps every tunable to its safe range. Out-of-range values are
// corrected rather than rejected.
func (t *Tuning) Normalize() {
	if t == nil {
		return
	}
	t.Terrain.RidgeWeight = clamp01(t.Terrain.RidgeWeight)
	t.Terrain.CliffThreshold = clamp01(t.Terrain.CliffThreshold)

	t.Ocean.Threshold = clamp01(t.Ocean.Threshold)
	t.Ocean.Depth = atLeast(t.Ocean.Depth, 8)

	t.Rivers.Depth = atLeast(t.Rivers.Depth, 2)
	t.Rivers.Width = clamp01(t.Rivers.Width)

	v := &t.Volcano
	v.RegionSize = atLeast(v.RegionSize, 512)
	v.Chance = clamp01(v.Chance)
	v.Radius = atLeast(v.Radius, 96)
	v.Height = atLeast(v.Height, 40)
	v.CraterRadius = atLeast(v.CraterRadius, 10)
	if v.LavaLevel == nil {
		lava := t.Terrain.SeaLevel + 18
		v.LavaLevel = &lava
	}

	c := &t.City
	c.RegionSize = atLeast(c.RegionSize, 128)
	c.Chance = clamp01(c.Chance)
	c.Radius = atLeast(c.Radius, 32)
	c.Blend = atLeast(c.Blend, 0)
	c.BaseHeightMin = atLeast(c.BaseHeightMin, 60)
	c.Road.Spacing = atLeast(c.Road.Spacing, 16)
	c.Road.Width = atLeast(c.Road.Width, 1)
	c.Plots.Size = atLeast(c.Plots.Size, 10)
	c.Plots.Margin = atLeast(c.Plots.Margin, 0)
	c.Buildings.Chance = clamp01(c.Buildings.Chance)
	c.Buildings.MaxPerChunk = atLeast(c.Buildings.MaxPerChunk, 0)

	t.Trees.AttemptsPerChunk = atLeast(t.Trees.AttemptsPerChunk, 0)
	t.Trees.CityBlendMax = clamp01(t.Trees.CityBlendMax)

	t.Flora.AttemptsPerChunk = atLeast(t.Flora.AttemptsPerChunk, 0)
	t.Flora.Palm.Chance = clamp01(t.Flora.Palm.Chance)
	t.Flora.Pine.Chance = clamp01(t.Flora.Pine.Chance)
	t.Flora.Jungle.Chance = clamp01(t.Flora.Jungle.Chance)

	t.Cover.Density = clamp01(t.Cover.Density)
	if t.Cover.Scale <= 0 {
		t.Cover.Scale = Defaults().Cover.Scale
	}
}

// Validate reports settings that cannot be corrected by clamping.
func (t Tuning) Validate() error {
	if t.World.MaxY-t.World.MinY < 16 {
		return fmt.Errorf("world height range [%d,%d) is smaller than 16", t.World.MinY, t.World.MaxY)
	}
	if t.Terrain.SeaLevel < t.World.MinY || t.Terrain.SeaLevel >= t.World.MaxY {
		return fmt.Errorf("terrain.sea-level %d outside world range [%d,%d)", t.Terrain.SeaLevel, t.World.MinY, t.World.MaxY)
	}
	if t.Trees.MaxY < t.Trees.MinY {
		return fmt.Errorf("trees.max-y %d below trees.min-y %d", t.Trees.MaxY, t.Trees.MinY)
	}
	return nil
}

// UnknownMaterials lists configured material names that will fall back to
// their defaults when resolved.
func (t Tuning) UnknownMaterials() []string {
	var out []string
	check := func(key, name string) {
		if _, ok := material.Lookup(name); !ok {
			out = append(out, fmt.Sprintf("%s=%s", key, strings.TrimSpace(name)))
		}
	}
	check("city.road.material", t.City.Road.Material)
	check("city.road.sidewalk", t.City.Road.Sidewalk)
	p := t.City.Buildings.Palette
	check("city.buildings.palette.wall", p.Wall)
	check("city.buildings.palette.floor", p.Floor)
	check("city.buildings.palette.roof", p.Roof)
	check("city.buildings.palette.trim", p.Trim)
	check("city.buildings.palette.window", p.Window)
	check("city.buildings.palette.stone", p.Stone)
	return out
}

func atLeast(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
