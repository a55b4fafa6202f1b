// Package terrain composes noise layers into the natural elevation, climate
// and river fields, and owns the region-hashed volcano feature.
package terrain

type Params struct {
	SeedSalt int64

	SeaLevel       int
	BaseHeight     int
	Amplitude      int
	Scale          float64
	RidgeWeight    float64
	CliffThreshold float64
	SnowLine       int

	OceanScale     float64
	OceanThreshold float64
	OceanDepth     int

	RiverScale     float64
	RiverWarpScale float64
	RiverDepth     int
	RiverWidth     float64

	TemperatureScale float64
	HumidityScale    float64

	Volcano VolcanoParams
}

type VolcanoParams struct {
	RegionSize   int
	Chance       float64
	Radius       int
	Height       int
	CraterRadius int
	LavaLevel    int
}

func DefaultParams() Params {
	return Params{
		SeedSalt: 1337,

		SeaLevel:       63,
		BaseHeight:     70,
		Amplitude:      72,
		Scale:          0.0046,
		RidgeWeight:    0.55,
		CliffThreshold: 0.78,
		SnowLine:       150,

		OceanScale:     0.00085,
		OceanThreshold: 0.52,
		OceanDepth:     28,

		RiverScale:     0.0021,
		RiverWarpScale: 0.0009,
		RiverDepth:     10,
		RiverWidth:     0.10,

		TemperatureScale: 0.0023,
		HumidityScale:    0.0020,

		Volcano: VolcanoParams{
			RegionSize:   1536,
			Chance:       0.08,
			Radius:       220,
			Height:       110,
			CraterRadius: 28,
			LavaLevel:    63 + 18,
		},
	}
}
