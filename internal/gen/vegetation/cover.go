package vegetation

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
)

// coverCityBlendMax keeps ground cover out of paved city cores.
const coverCityBlendMax = 0.85

var flowers = [...]material.ID{material.Dandelion, material.Poppy, material.Cornflower}

// coverPass sprinkles short plants on exposed grass. An OpenSimplex field
// clusters them into meadows; a per-column hash decides each column.
func (p Params) coverPass(seed int64, chunkX, chunkZ int, env Env, w *Window) {
	field := opensimplex.NewNormalized(int64(mathx.Mix(seed, 0, 0, coverSalt)))
	for lx := 0; lx < chunkSize; lx++ {
		for lz := 0; lz < chunkSize; lz++ {
			x := chunkX*chunkSize + lx
			z := chunkZ*chunkSize + lz

			y := w.HighestBlockY(x, z) + 1
			if y >= w.MaxY() || w.Get(x, y-1, z) != material.GrassBlock || w.Get(x, y, z) != material.Air {
				continue
			}
			if env.CityBlend(seed, x, z) > coverCityBlendMax {
				continue
			}

			density := field.Eval2(float64(x)*p.CoverScale, float64(z)*p.CoverScale)
			r := mathx.NewRand(mathx.Mix(seed, x, z, coverSalt))
			if r.Float64() >= p.CoverDensity*density {
				continue
			}
			w.Set(x, y, z, coverPlant(&r, density, env.Temperature(seed, x, z)))
		}
	}
}

func coverPlant(r *mathx.Rand, density, temp float64) material.ID {
	switch {
	case density > 0.7 && r.Float64() < 0.5:
		return flowers[r.Intn(len(flowers))]
	case temp < -0.25:
		return material.Fern
	default:
		return material.ShortGrass
	}
}
