package mathx

// RegionOf is the region cell index of a coordinate for cells of side size.
func RegionOf(v, size int) int {
	return FloorDiv(v, size)
}

// JitterCenter places a feature center inside the middle third of the cell
// that starts at origin. It consumes one draw from r.
func JitterCenter(r *Rand, origin, size int) int {
	return origin + size/2 + r.Intn(max(1, size/3)) - size/6
}
