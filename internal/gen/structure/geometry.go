package structure

import "terracity.io/internal/gen/material"

func (p Params) renderHouse(b Building, w Writer) {
	pal := p.Palette
	x0, y0, z0, size, h := b.X0, b.Y0, b.Z0, b.Size, b.Height
	x1, z1 := x0+size-1, z0+size-1

	fill(w, x0, y0-1, z0, x1, y0-1, z1, pal.Floor)
	hollowBox(w, x0, y0, z0, x1, y0+h, z1, pal.Wall)

	for dy := 0; dy <= h; dy++ {
		w.Set(x0, y0+dy, z0, pal.Trim)
		w.Set(x1, y0+dy, z0, pal.Trim)
		w.Set(x0, y0+dy, z1, pal.Trim)
		w.Set(x1, y0+dy, z1, pal.Trim)
	}

	layers := max(2, size/3)
	for i := 0; i < layers; i++ {
		fill(w, x0+i, y0+h+i, z0+i, x1-i, y0+h+i, z1-i, pal.Roof)
	}

	door := x0 + size/2
	w.Set(door, y0, z0, material.Air)
	w.Set(door, y0+1, z0, material.Air)

	for d := 2; d < size-2; d += 3 {
		w.Set(x0+d, y0+2, z0, pal.Window)
		w.Set(x0+d, y0+2, z1, pal.Window)
		w.Set(x0, y0+2, z0+d, pal.Window)
		w.Set(x1, y0+2, z0+d, pal.Window)
	}

	w.Set(x0+1, y0+3, z0+1, material.Lantern)
	w.Set(x1-1, y0+3, z0+1, material.Lantern)
	w.Set(x0+1, y0+3, z1-1, material.Lantern)
	w.Set(x1-1, y0+3, z1-1, material.Lantern)
}

func (p Params) renderTower(b Building, w Writer) {
	pal := p.Palette
	cx, cz := b.X0+b.Size/2, b.Z0+b.Size/2
	y0, r, h := b.Y0, b.Radius, b.Height
	inner := (r - 1) * (r - 1)

	for y := 0; y <= h; y++ {
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				d2 := dx*dx + dz*dz
				if d2 > r*r {
					continue
				}
				id := pal.Roof
				switch {
				case d2 >= inner:
					id = pal.Stone
				case y == 0:
					id = pal.Floor
				case y < h-1:
					id = material.Air
				}
				w.Set(cx+dx, y0+y, cz+dz, id)
			}
		}
	}

	for y := y0 + 3; y < y0+h-2; y += 4 {
		w.Set(cx+r, y, cz, pal.Window)
		w.Set(cx-r, y, cz, pal.Window)
		w.Set(cx, y, cz+r, pal.Window)
		w.Set(cx, y, cz-r, pal.Window)
	}

	w.Set(cx, y0+h+1, cz, material.Lantern)
}

func (p Params) renderHall(b Building, w Writer) {
	pal := p.Palette
	x0, y0, z0, h := b.X0, b.Y0, b.Z0, b.Height
	wd := max(11, b.Size)
	dp := max(9, b.Size-2)
	x1, z1 := x0+wd-1, z0+dp-1

	fill(w, x0, y0-1, z0, x1, y0-1, z1, pal.Floor)
	hollowBox(w, x0, y0, z0, x1, y0+h, z1, pal.Stone)
	fill(w, x0, y0+h+1, z0, x1, y0+h+1, z1, pal.Roof)

	for x := x0; x <= x1; x++ {
		w.Set(x, y0+h+2, z0, pal.Trim)
		w.Set(x, y0+h+2, z1, pal.Trim)
	}
	for z := z0; z <= z1; z++ {
		w.Set(x0, y0+h+2, z, pal.Trim)
		w.Set(x1, y0+h+2, z, pal.Trim)
	}

	for x := x0 + 2; x < x1-1; x += 3 {
		w.Set(x, y0+2, z0, pal.Window)
		w.Set(x, y0+2, z1, pal.Window)
	}

	door := x0 + wd/2
	w.Set(door, y0, z0, material.Air)
	w.Set(door, y0+1, z0, material.Air)

	w.Set(x0+wd/2, y0+h, z0+dp/2, material.Lantern)
}

func fill(w Writer, x0, y0, z0, x1, y1, z1 int, id material.ID) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				w.Set(x, y, z, id)
			}
		}
	}
}

// hollowBox writes id on the six faces and air inside.
func hollowBox(w Writer, x0, y0, z0, x1, y1, z1 int, id material.ID) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				edge := x == x0 || x == x1 || y == y0 || y == y1 || z == z0 || z == z1
				if edge {
					w.Set(x, y, z, id)
				} else {
					w.Set(x, y, z, material.Air)
				}
			}
		}
	}
}
