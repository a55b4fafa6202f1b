package settlement

import (
	"math"
	"testing"
)

type flat int

func (f flat) Height(int64, int, int) int { return int(f) }

type slope struct{}

func (slope) Height(_ int64, x, z int) int { return 60 + (x+z)/16 }

func TestSeed42ForcedCityAtOrigin(t *testing.T) {
	p := DefaultParams()
	p.Chance = 1
	c, ok := p.CityAt(42, 0, 0, slope{})
	if !ok {
		t.Fatalf("forced city missing")
	}
	if c.RegionX != 0 || c.RegionZ != 0 {
		t.Fatalf("city of (0,0) resolved from cell %d,%d", c.RegionX, c.RegionZ)
	}
	// home cell of (0,0) is [0,512)^2; the center sits in its middle third
	if c.CenterX < 171 || c.CenterX > 340 || c.CenterZ < 171 || c.CenterZ > 340 {
		t.Fatalf("center (%d,%d) outside the middle third of [0,512)^2", c.CenterX, c.CenterZ)
	}
	if c.BaseHeight < p.BaseHeightMin || c.BaseHeight > p.BaseHeightMin+60 {
		t.Fatalf("base height %d outside [%d,%d]", c.BaseHeight, p.BaseHeightMin, p.BaseHeightMin+60)
	}
	again, _ := p.CityAt(42, 0, 0, slope{})
	if again != c {
		t.Fatalf("city not reproducible: %+v vs %+v", c, again)
	}
}

func TestBaseHeightClamp(t *testing.T) {
	p := DefaultParams()
	p.Chance = 1
	cases := []struct {
		natural int
		want    int
	}{
		{10, 80},   // raised to the minimum
		{95, 95},   // natural height kept
		{400, 140}, // capped at min+60
	}
	for _, tc := range cases {
		c, _ := p.CityAt(1, 0, 0, flat(tc.natural))
		if c.BaseHeight != tc.want {
			t.Fatalf("natural %d: base %d want %d", tc.natural, c.BaseHeight, tc.want)
		}
	}
	p.SeaLevel = 100
	c, _ := p.CityAt(1, 0, 0, flat(10))
	if c.BaseHeight != 110 {
		t.Fatalf("sea+10 floor not applied: %d", c.BaseHeight)
	}
}

func TestDisabledPlannerHasNoCities(t *testing.T) {
	p := DefaultParams()
	p.Chance = 1
	p.Enabled = false
	if _, ok := p.CityAt(42, 0, 0, flat(70)); ok {
		t.Fatalf("disabled planner returned a city")
	}
	if cs := p.CitiesTouching(42, -2000, -2000, 2000, 2000, flat(70)); len(cs) != 0 {
		t.Fatalf("disabled planner returned %d cities", len(cs))
	}
}

func TestCentersStayInHomeCell(t *testing.T) {
	p := DefaultParams()
	p.Chance = 1
	for rx := -6; rx < 6; rx++ {
		for rz := -6; rz < 6; rz++ {
			c, ok := p.CityInRegion(9, rx, rz, flat(70))
			if !ok {
				t.Fatalf("forced city missing in cell %d,%d", rx, rz)
			}
			ox, oz := rx*p.RegionSize, rz*p.RegionSize
			if c.CenterX < ox || c.CenterX >= ox+p.RegionSize || c.CenterZ < oz || c.CenterZ >= oz+p.RegionSize {
				t.Fatalf("cell %d,%d: center (%d,%d) escaped", rx, rz, c.CenterX, c.CenterZ)
			}
			got, ok := p.CityAt(9, c.CenterX, c.CenterZ, flat(70))
			if !ok || got != c {
				t.Fatalf("city at its own center resolves differently")
			}
		}
	}
}

func TestChanceMonotone(t *testing.T) {
	p := DefaultParams()
	prev := -1
	for _, chance := range []float64{0, 0.1, 0.35, 0.6, 0.9, 1} {
		p.Chance = chance
		n := 0
		for rx := -20; rx < 20; rx++ {
			for rz := -20; rz < 20; rz++ {
				if _, ok := p.CityInRegion(123, rx, rz, flat(70)); ok {
					n++
				}
			}
		}
		if n < prev {
			t.Fatalf("chance %v produced %d cities, fewer than %d", chance, n, prev)
		}
		prev = n
	}
	if prev != 1600 {
		t.Fatalf("chance 1 should fill every cell, got %d", prev)
	}
}

func TestBlendFactorContinuousAndMonotone(t *testing.T) {
	c := City{Radius: 120, Blend: 40}
	if c.BlendFactor(0, 0) != 1 {
		t.Fatalf("blend at center should be exactly 1")
	}
	prev := 1.0
	for d := 0; d <= 200; d++ {
		b := c.BlendFactor(d, 0)
		if b > prev {
			t.Fatalf("blend increased at d=%d: %v > %v", d, b, prev)
		}
		if prev-b > 1.0/40+1e-12 {
			t.Fatalf("blend jumped at d=%d: %v -> %v", d, prev, b)
		}
		if d >= 160 && b != 0 {
			t.Fatalf("blend at d=%d should be exactly 0, got %v", d, b)
		}
		prev = b
	}
	if got := c.BlendFactor(140, 0); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("blend midway = %v want 0.5", got)
	}
}

func TestHardEdgeBlend(t *testing.T) {
	c := City{Radius: 50}
	if c.BlendFactor(50, 0) != 1 || c.BlendFactor(51, 0) != 0 {
		t.Fatalf("zero blend width should give a hard edge")
	}
}

func TestRoadGrid(t *testing.T) {
	p := DefaultParams()
	c := City{CenterX: 100, CenterZ: -37}
	cases := []struct {
		x, z int
		road bool
	}{
		{100, 5, true}, // on the x axis line
		{102, 5, true}, // half width 2
		{103, 5, false},
		{98, 5, true}, // |rel| folds negative offsets
		{97, 5, false},
		{132, 5, true}, // next line at spacing 32
		{68, 5, true},
		{110, -37, true}, // z line through center
		{110, -5, true},
		{110, -20, false},
	}
	for _, tc := range cases {
		if got := p.IsRoad(c, tc.x, tc.z); got != tc.road {
			t.Fatalf("IsRoad(%d,%d)=%v want %v", tc.x, tc.z, got, tc.road)
		}
	}
	if !p.IsNearRoad(c, 104, -20, 2) || p.IsNearRoad(c, 105, -20, 2) {
		t.Fatalf("near-road band should extend two blocks past the road")
	}
}

func TestPlotOriginsAcrossNegativeCoordinates(t *testing.T) {
	p := DefaultParams()
	c := City{CenterX: -5, CenterZ: -5, Radius: 120, Blend: 40}
	for _, x := range []int{-5, -21, -37, 11, 27} {
		if !p.IsPlotOrigin(c, x, -5+16*3) {
			t.Fatalf("x=%d should be a plot origin", x)
		}
	}
	for _, x := range []int{-6, -20, 10, 12} {
		if p.IsPlotOrigin(c, x, -5) {
			t.Fatalf("x=%d should not be a plot origin", x)
		}
	}
	// 16-aligned origins are either 0 or 16 mod 32 from center; the 0 lane is a road
	if p.BuildableOrigin(c, -5+32, -5+48) {
		t.Fatalf("origin on a road lane accepted")
	}
	if !p.BuildableOrigin(c, -5+16, -5+48) {
		t.Fatalf("origin clear of roads in the core rejected")
	}
	if p.BuildableOrigin(c, -5+16*7, -5+16) {
		t.Fatalf("origin outside the core accepted")
	}
}

func TestPlotOriginsInMatchesPointQueries(t *testing.T) {
	p := DefaultParams()
	p.Chance = 1
	hs := flat(70)
	c, _ := p.CityAt(42, 0, 0, hs)
	x0, z0 := c.CenterX-130, c.CenterZ-130
	x1, z1 := c.CenterX+130, c.CenterZ+130
	plots := p.PlotOriginsIn(42, x0, z0, x1, z1, hs)
	if len(plots) == 0 {
		t.Fatalf("no plots found in a forced city")
	}
	want := 0
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			if cc, ok := p.CityAt(42, x, z, hs); ok && p.BuildableOrigin(cc, x, z) {
				want++
			}
		}
	}
	if len(plots) != want {
		t.Fatalf("PlotOriginsIn found %d plots, point queries %d", len(plots), want)
	}
	for i := 1; i < len(plots); i++ {
		a, b := plots[i-1], plots[i]
		if a.X > b.X || (a.X == b.X && a.Z >= b.Z) {
			t.Fatalf("plots not in x-then-z order at %d", i)
		}
	}
}
