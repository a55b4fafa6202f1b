package vegetation

import "terracity.io/internal/gen/material"

const chunkSize = 16

// Window restricts an Accessor to one chunk column. Reads outside return
// material.Void and writes outside are dropped.
type Window struct {
	acc        Accessor
	x0, z0     int
	minY, maxY int
}

func NewWindow(acc Accessor, chunkX, chunkZ int) *Window {
	return &Window{
		acc:  acc,
		x0:   chunkX * chunkSize,
		z0:   chunkZ * chunkSize,
		minY: acc.MinY(),
		maxY: acc.MaxY(),
	}
}

func (w *Window) Contains(x, y, z int) bool {
	return x >= w.x0 && x < w.x0+chunkSize &&
		z >= w.z0 && z < w.z0+chunkSize &&
		y >= w.minY && y < w.maxY
}

func (w *Window) MinY() int { return w.minY }
func (w *Window) MaxY() int { return w.maxY }

func (w *Window) Get(x, y, z int) material.ID {
	if !w.Contains(x, y, z) {
		return material.Void
	}
	return w.acc.Get(x, y, z)
}

func (w *Window) Set(x, y, z int, id material.ID) {
	if !w.Contains(x, y, z) {
		return
	}
	w.acc.Set(x, y, z, id)
}

func (w *Window) HighestBlockY(x, z int) int {
	if !w.Contains(x, w.minY, z) {
		return w.minY - 1
	}
	return w.acc.HighestBlockY(x, z)
}

// setIfReplaceable writes over air, vines and leaves only.
func (w *Window) setIfReplaceable(x, y, z int, id material.ID) {
	if material.Replaceable(w.Get(x, y, z)) {
		w.Set(x, y, z, id)
	}
}

func (w *Window) setIfAir(x, y, z int, id material.ID) {
	if w.Get(x, y, z) == material.Air {
		w.Set(x, y, z, id)
	}
}
