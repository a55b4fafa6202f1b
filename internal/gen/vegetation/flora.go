package vegetation

import (
	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
)

const waterSearchRadius = 6

func (p Params) floraPass(seed int64, chunkX, chunkZ int, env Env, w *Window) {
	r := mathx.NewRand(mathx.Mix(seed, chunkX, chunkZ, floraSalt))
	for i := 0; i < p.FloraAttempts; i++ {
		x := chunkX*chunkSize + r.Intn(chunkSize)
		z := chunkZ*chunkSize + r.Intn(chunkSize)

		y := w.HighestBlockY(x, z) + 1
		if y <= w.MinY()+2 || y >= w.MaxY()-10 {
			continue
		}
		g := w.Get(x, y-1, z)
		t := env.Temperature(seed, x, z)
		h := env.Humidity(seed, x, z)

		if (g == material.Sand || g == material.Sandstone) && nearWater(w, x, y, z, waterSearchRadius) {
			if r.Float64() < p.PalmChance {
				placePalm(w, &r, x, y, z)
				continue
			}
		}
		if t < -0.25 && g == material.GrassBlock {
			if r.Float64() < p.PineChance {
				placePine(w, &r, x, y, z)
				continue
			}
		}
		if t > 0.20 && h > 0.35 && g == material.GrassBlock {
			if r.Float64() < p.JungleChance {
				placeJungle(w, &r, x, y, z)
			}
		}
	}
}

func nearWater(w *Window, x, y, z, radius int) bool {
	y0 := max(w.MinY(), y-2)
	y1 := min(w.MaxY()-1, y+2)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			for yy := y0; yy <= y1; yy++ {
				if w.Get(x+dx, yy, z+dz) == material.Water {
					return true
				}
			}
		}
	}
	return false
}

// trunk stacks logs until it meets a non-air block and reports whether the
// full height was placed. A blocked trunk keeps what it placed.
func trunk(w *Window, x, y, z, h int, id material.ID) bool {
	for i := 0; i < h; i++ {
		if w.Get(x, y+i, z) != material.Air {
			return false
		}
		w.Set(x, y+i, z, id)
	}
	return true
}

func placePalm(w *Window, r *mathx.Rand, x, y, z int) {
	h := 5 + r.Intn(4)
	lean := r.Intn(3) - 1
	lx, lz := x, z
	for i := 0; i < h; i++ {
		if w.Get(lx, y+i, lz) != material.Air {
			return
		}
		w.Set(lx, y+i, lz, material.JungleLog)
		if i > 2 {
			lx += lean
			if lean == 0 {
				if r.Bool() {
					lz++
				} else {
					lz--
				}
			}
		}
	}

	top := y + h
	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			if mathx.AbsInt(dx)+mathx.AbsInt(dz) > 4 {
				continue
			}
			w.setIfAir(lx+dx, top, lz+dz, material.JungleLeaves)
		}
	}
	w.setIfAir(lx, top+1, lz, material.JungleLeaves)
}

func placePine(w *Window, r *mathx.Rand, x, y, z int) {
	h := 8 + r.Intn(6)
	if !trunk(w, x, y, z, h, material.SpruceLog) {
		return
	}
	top := y + h - 1
	for yy := top; yy >= y+3; yy-- {
		rad := 3 - (top-yy)/2
		for dx := -rad; dx <= rad; dx++ {
			for dz := -rad; dz <= rad; dz++ {
				if mathx.AbsInt(dx)+mathx.AbsInt(dz) > rad+1 {
					continue
				}
				w.setIfAir(x+dx, yy, z+dz, material.SpruceLeaves)
			}
		}
	}
	w.setIfAir(x, top+1, z, material.SpruceLeaves)
}

func placeJungle(w *Window, r *mathx.Rand, x, y, z int) {
	h := 9 + r.Intn(5)
	if !trunk(w, x, y, z, h, material.JungleLog) {
		return
	}
	top := y + h
	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			for dy := -2; dy <= 1; dy++ {
				if dx*dx+dz*dz+dy*dy > 12 {
					continue
				}
				w.setIfAir(x+dx, top+dy, z+dz, material.JungleLeaves)
			}
		}
	}
}
