package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tuning is the operator-facing worldgen configuration. Keys follow
// configs/worldgen.yaml.
type Tuning struct {
	SeedSalt int64 `yaml:"seed-salt" json:"seed-salt"`

	World   WorldTuning   `yaml:"world" json:"world"`
	Terrain TerrainTuning `yaml:"terrain" json:"terrain"`
	Ocean   OceanTuning   `yaml:"ocean" json:"ocean"`
	Rivers  RiverTuning   `yaml:"rivers" json:"rivers"`
	Biomes  BiomeTuning   `yaml:"biomes" json:"biomes"`
	Volcano VolcanoTuning `yaml:"volcano" json:"volcano"`
	City    CityTuning    `yaml:"city" json:"city"`
	Trees   TreeTuning    `yaml:"trees" json:"trees"`
	Flora   FloraTuning   `yaml:"flora" json:"flora"`
	Cover   CoverTuning   `yaml:"ground-cover" json:"ground-cover"`
}

type WorldTuning struct {
	MinY int `yaml:"min-y" json:"min-y"`
	MaxY int `yaml:"max-y" json:"max-y"`
}

type TerrainTuning struct {
	SeaLevel       int     `yaml:"sea-level" json:"sea-level"`
	BaseHeight     int     `yaml:"base-height" json:"base-height"`
	Amplitude      int     `yaml:"height-amplitude" json:"height-amplitude"`
	Scale          float64 `yaml:"terrain-scale" json:"terrain-scale"`
	RidgeWeight    float64 `yaml:"ridge-weight" json:"ridge-weight"`
	CliffThreshold float64 `yaml:"cliff-threshold" json:"cliff-threshold"`
	SnowLine       int     `yaml:"snow-line" json:"snow-line"`
	Strata         bool    `yaml:"strata" json:"strata"`
}

type OceanTuning struct {
	Scale     float64 `yaml:"scale" json:"scale"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Depth     int     `yaml:"depth" json:"depth"`
}

type RiverTuning struct {
	Scale     float64 `yaml:"scale" json:"scale"`
	WarpScale float64 `yaml:"warp-scale" json:"warp-scale"`
	Depth     int     `yaml:"depth" json:"depth"`
	Width     float64 `yaml:"width" json:"width"`
}

type BiomeTuning struct {
	TemperatureScale float64 `yaml:"temperature-scale" json:"temperature-scale"`
	HumidityScale    float64 `yaml:"humidity-scale" json:"humidity-scale"`
}

type VolcanoTuning struct {
	RegionSize   int     `yaml:"region-size" json:"region-size"`
	Chance       float64 `yaml:"chance" json:"chance"`
	Radius       int     `yaml:"radius" json:"radius"`
	Height       int     `yaml:"height" json:"height"`
	CraterRadius int     `yaml:"crater-radius" json:"crater-radius"`
	// nil means sea-level + 18
	LavaLevel *int `yaml:"lava-level,omitempty" json:"lava-level,omitempty"`
}

type CityTuning struct {
	Enabled       bool    `yaml:"enabled" json:"enabled"`
	RegionSize    int     `yaml:"region-size" json:"region-size"`
	Chance        float64 `yaml:"chance" json:"chance"`
	Radius        int     `yaml:"radius" json:"radius"`
	Blend         int     `yaml:"blend" json:"blend"`
	BaseHeightMin int     `yaml:"base-height-min" json:"base-height-min"`

	Road      RoadTuning     `yaml:"road" json:"road"`
	Plots     PlotTuning     `yaml:"plots" json:"plots"`
	Buildings BuildingTuning `yaml:"buildings" json:"buildings"`
}

type RoadTuning struct {
	Spacing  int    `yaml:"spacing" json:"spacing"`
	Width    int    `yaml:"width" json:"width"`
	Material string `yaml:"material" json:"material"`
	Sidewalk string `yaml:"sidewalk" json:"sidewalk"`
}

type PlotTuning struct {
	Size   int `yaml:"size" json:"size"`
	Margin int `yaml:"margin" json:"margin"`
}

type BuildingTuning struct {
	Chance      float64       `yaml:"chance" json:"chance"`
	MaxPerChunk int           `yaml:"max-per-chunk" json:"max-per-chunk"`
	Palette     PaletteTuning `yaml:"palette" json:"palette"`
}

type PaletteTuning struct {
	Wall   string `yaml:"wall" json:"wall"`
	Floor  string `yaml:"floor" json:"floor"`
	Roof   string `yaml:"roof" json:"roof"`
	Trim   string `yaml:"trim" json:"trim"`
	Window string `yaml:"window" json:"window"`
	Stone  string `yaml:"stone" json:"stone"`
}

type TreeTuning struct {
	Enabled          bool    `yaml:"enabled" json:"enabled"`
	AttemptsPerChunk int     `yaml:"attempts-per-chunk" json:"attempts-per-chunk"`
	MinY             int     `yaml:"min-y" json:"min-y"`
	MaxY             int     `yaml:"max-y" json:"max-y"`
	CityBlendMax     float64 `yaml:"city-blend-max" json:"city-blend-max"`
}

type FloraTuning struct {
	Enabled          bool             `yaml:"enabled" json:"enabled"`
	AttemptsPerChunk int              `yaml:"attempts-per-chunk" json:"attempts-per-chunk"`
	Palm             FloraChanceEntry `yaml:"palm" json:"palm"`
	Pine             FloraChanceEntry `yaml:"pine" json:"pine"`
	Jungle           FloraChanceEntry `yaml:"jungle" json:"jungle"`
}

type FloraChanceEntry struct {
	Chance float64 `yaml:"chance" json:"chance"`
}

type CoverTuning struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Density float64 `yaml:"density" json:"density"`
	Scale   float64 `yaml:"scale" json:"scale"`
}

func Defaults() Tuning {
	lava := 63 + 18
	return Tuning{
		SeedSalt: 1337,
		World:    WorldTuning{MinY: -64, MaxY: 320},
		Terrain: TerrainTuning{
			SeaLevel:       63,
			BaseHeight:     70,
			Amplitude:      72,
			Scale:          0.0046,
			RidgeWeight:    0.55,
			CliffThreshold: 0.78,
			SnowLine:       150,
			Strata:         true,
		},
		Ocean:  OceanTuning{Scale: 0.00085, Threshold: 0.52, Depth: 28},
		Rivers: RiverTuning{Scale: 0.0021, WarpScale: 0.0009, Depth: 10, Width: 0.10},
		Biomes: BiomeTuning{TemperatureScale: 0.0023, HumidityScale: 0.0020},
		Volcano: VolcanoTuning{
			RegionSize:   1536,
			Chance:       0.08,
			Radius:       220,
			Height:       110,
			CraterRadius: 28,
			LavaLevel:    &lava,
		},
		City: CityTuning{
			Enabled:       true,
			RegionSize:    512,
			Chance:        0.35,
			Radius:        120,
			Blend:         40,
			BaseHeightMin: 80,
			Road:          RoadTuning{Spacing: 32, Width: 5, Material: "STONE_BRICKS", Sidewalk: "ANDESITE"},
			Plots:         PlotTuning{Size: 16, Margin: 2},
			Buildings: BuildingTuning{
				Chance:      0.55,
				MaxPerChunk: 2,
				Palette: PaletteTuning{
					Wall:   "SPRUCE_PLANKS",
					Floor:  "OAK_PLANKS",
					Roof:   "DARK_OAK_PLANKS",
					Trim:   "STRIPPED_SPRUCE_LOG",
					Window: "GLASS",
					Stone:  "STONE_BRICKS",
				},
			},
		},
		Trees: TreeTuning{Enabled: true, AttemptsPerChunk: 10, MinY: -64, MaxY: 320, CityBlendMax: 0.15},
		Flora: FloraTuning{
			Enabled:          true,
			AttemptsPerChunk: 4,
			Palm:             FloraChanceEntry{Chance: 0.45},
			Pine:             FloraChanceEntry{Chance: 0.30},
			Jungle:           FloraChanceEntry{Chance: 0.25},
		},
		Cover: CoverTuning{Enabled: true, Density: 0.35, Scale: 0.045},
	}
}

// Load reads a worldgen YAML file over the defaults. An empty path yields
// the normalized defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		t.Normalize()
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	return Parse(raw)
}

// Parse validates raw YAML against the worldgen schema and decodes it over
// the defaults.
func Parse(raw []byte) (Tuning, error) {
	t := Defaults()
	if err := validateDocument(raw); err != nil {
		return t, fmt.Errorf("worldgen.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("worldgen.yaml: %w", err)
	}
	// lava-level follows sea-level unless the file sets it.
	if !setsLavaLevel(raw) {
		t.Volcano.LavaLevel = nil
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("worldgen.yaml: %w", err)
	}
	return t, nil
}

func setsLavaLevel(raw []byte) bool {
	var doc struct {
		Volcano map[string]any `yaml:"volcano"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return false
	}
	_, ok := doc.Volcano["lava-level"]
	return ok
}
