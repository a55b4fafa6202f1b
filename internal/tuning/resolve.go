package tuning

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/gen/structure"
)

// Resolve turns the tuning into the immutable generator parameters.
// Unknown material names fall back to the built-in palette.
func (t Tuning) Resolve() pipeline.Params {
	t.Normalize()
	p := pipeline.DefaultParams()
	p.MinY = t.World.MinY
	p.MaxY = t.World.MaxY

	tp := &p.Terrain
	tp.SeedSalt = t.SeedSalt
	tp.SeaLevel = t.Terrain.SeaLevel
	tp.BaseHeight = t.Terrain.BaseHeight
	tp.Amplitude = t.Terrain.Amplitude
	tp.Scale = t.Terrain.Scale
	tp.RidgeWeight = t.Terrain.RidgeWeight
	tp.CliffThreshold = t.Terrain.CliffThreshold
	tp.SnowLine = t.Terrain.SnowLine
	tp.OceanScale = t.Ocean.Scale
	tp.OceanThreshold = t.Ocean.Threshold
	tp.OceanDepth = t.Ocean.Depth
	tp.RiverScale = t.Rivers.Scale
	tp.RiverWarpScale = t.Rivers.WarpScale
	tp.RiverDepth = t.Rivers.Depth
	tp.RiverWidth = t.Rivers.Width
	tp.TemperatureScale = t.Biomes.TemperatureScale
	tp.HumidityScale = t.Biomes.HumidityScale
	tp.Volcano.RegionSize = t.Volcano.RegionSize
	tp.Volcano.Chance = t.Volcano.Chance
	tp.Volcano.Radius = t.Volcano.Radius
	tp.Volcano.Height = t.Volcano.Height
	tp.Volcano.CraterRadius = t.Volcano.CraterRadius
	tp.Volcano.LavaLevel = *t.Volcano.LavaLevel

	sp := &p.Settlement
	sp.Enabled = t.City.Enabled
	sp.SeedSalt = t.SeedSalt
	sp.RegionSize = t.City.RegionSize
	sp.Chance = t.City.Chance
	sp.Radius = t.City.Radius
	sp.Blend = t.City.Blend
	sp.BaseHeightMin = t.City.BaseHeightMin
	sp.SeaLevel = t.Terrain.SeaLevel
	sp.RoadSpacing = t.City.Road.Spacing
	sp.RoadWidth = t.City.Road.Width
	sp.PlotSize = t.City.Plots.Size
	sp.PlotMargin = t.City.Plots.Margin

	p.Surface.Road = material.Parse(t.City.Road.Material, material.StoneBricks)
	p.Surface.Sidewalk = material.Parse(t.City.Road.Sidewalk, material.Andesite)
	p.Surface.Strata = t.Terrain.Strata

	def := structure.DefaultPalette()
	pal := t.City.Buildings.Palette
	p.Structure.BuildChance = t.City.Buildings.Chance
	p.Structure.MaxPerChunk = t.City.Buildings.MaxPerChunk
	p.Structure.PlotSize = t.City.Plots.Size
	p.Structure.Palette = structure.Palette{
		Wall:   material.Parse(pal.Wall, def.Wall),
		Floor:  material.Parse(pal.Floor, def.Floor),
		Roof:   material.Parse(pal.Roof, def.Roof),
		Trim:   material.Parse(pal.Trim, def.Trim),
		Window: material.Parse(pal.Window, def.Window),
		Stone:  material.Parse(pal.Stone, def.Stone),
	}

	vp := &p.Vegetation
	vp.SeaLevel = t.Terrain.SeaLevel
	vp.SnowLine = t.Terrain.SnowLine
	vp.TreesEnabled = t.Trees.Enabled
	vp.TreeAttempts = t.Trees.AttemptsPerChunk
	vp.TreeMinY = t.Trees.MinY
	vp.TreeMaxY = t.Trees.MaxY
	vp.TreeCityBlendMax = t.Trees.CityBlendMax
	vp.FloraEnabled = t.Flora.Enabled
	vp.FloraAttempts = t.Flora.AttemptsPerChunk
	vp.PalmChance = t.Flora.Palm.Chance
	vp.PineChance = t.Flora.Pine.Chance
	vp.JungleChance = t.Flora.Jungle.Chance
	vp.CoverEnabled = t.Cover.Enabled
	vp.CoverDensity = t.Cover.Density
	vp.CoverScale = t.Cover.Scale
	return p
}

// Flatten renders the tuning as dotted key/value pairs, e.g.
// "city.region-size" -> "512".
func (t Tuning) Flatten() map[string]string {
	out := map[string]string{}
	b, err := yaml.Marshal(t)
	if err != nil {
		return out
	}
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return out
	}
	flattenInto(out, "", doc)
	return out
}

func flattenInto(out map[string]string, prefix string, v any) {
	switch x := v.(type) {
	case map[string]any:
		for k, child := range x {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenInto(out, key, child)
		}
	default:
		out[prefix] = fmt.Sprint(x)
	}
}

// SortedKeys returns the keys of a flattened mapping in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Digest is a sha256 over the sorted flattened pairs. Two tunings with the
// same digest generate the same world for a seed.
func (t Tuning) Digest() string {
	flat := t.Flatten()
	h := sha256.New()
	for _, k := range SortedKeys(flat) {
		fmt.Fprintf(h, "%s=%s\n", k, flat[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Summary is a compact one-line description for logs.
func (t Tuning) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sea=%d snow=%d", t.Terrain.SeaLevel, t.Terrain.SnowLine)
	if t.City.Enabled {
		fmt.Fprintf(&b, " city(region=%d chance=%.2f radius=%d)", t.City.RegionSize, t.City.Chance, t.City.Radius)
	} else {
		b.WriteString(" city(off)")
	}
	fmt.Fprintf(&b, " volcano(region=%d chance=%.2f)", t.Volcano.RegionSize, t.Volcano.Chance)
	return b.String()
}
