package structure

import "terracity.io/internal/gen/settlement"

// GroundFunc reports the ground height under a plot origin, or false if
// nothing may be built there.
type GroundFunc func(x, z int) (int, bool)

// ChunkBuildings plans the buildings whose origins lie in one chunk. plots
// must be that chunk's buildable origins in x-then-z order; planning stops
// once MaxPerChunk buildings are accepted.
func (p Params) ChunkBuildings(seed int64, plots []settlement.Plot, ground GroundFunc) []Building {
	if p.MaxPerChunk <= 0 {
		return nil
	}
	var out []Building
	for _, pl := range plots {
		y, ok := ground(pl.X, pl.Z)
		if !ok {
			continue
		}
		b, ok := p.Plan(seed, pl.X, pl.Z, y)
		if !ok {
			continue
		}
		out = append(out, b)
		if len(out) >= p.MaxPerChunk {
			break
		}
	}
	return out
}
