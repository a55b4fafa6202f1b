package terrain

import (
	"testing"
)

func TestHeightDeterministic(t *testing.T) {
	p := DefaultParams()
	for _, seed := range []int64{0, 42, -7, 1 << 40} {
		for x := -3000; x <= 3000; x += 517 {
			for z := -3000; z <= 3000; z += 389 {
				a := p.Height(seed, x, z)
				b := p.Height(seed, x, z)
				if a != b {
					t.Fatalf("seed %d (%d,%d): %d vs %d", seed, x, z, a, b)
				}
			}
		}
	}
}

func TestVolcanoConeRaisesTerrain(t *testing.T) {
	with := DefaultParams()
	with.Volcano.Chance = 1
	without := DefaultParams()
	without.Volcano.Chance = 0

	v, ok := with.VolcanoAt(21, 0, 0)
	if !ok {
		t.Fatalf("forced volcano missing")
	}
	raised := 0
	for d := v.CraterRadius + 2; d < v.Radius; d += 9 {
		x, z := v.CenterX+d, v.CenterZ
		a := with.Height(21, x, z)
		b := without.Height(21, x, z)
		if a < b {
			t.Fatalf("cone lowered terrain at d=%d: %d < %d", d, a, b)
		}
		if a > b {
			raised++
		}
	}
	if raised == 0 {
		t.Fatalf("cone never raised terrain")
	}
}

func TestTemperatureHumidityIndependent(t *testing.T) {
	p := DefaultParams()
	same := 0
	for i := 0; i < 100; i++ {
		x, z := i*173-9000, i*97+400
		tv := p.Temperature(5, x, z)
		hv := p.Humidity(5, x, z)
		if tv < -1 || tv > 1 || hv < -1 || hv > 1 {
			t.Fatalf("climate out of range at (%d,%d): %v %v", x, z, tv, hv)
		}
		if tv == hv {
			same++
		}
	}
	if same > 5 {
		t.Fatalf("temperature and humidity coincide at %d samples", same)
	}
}

func riverCount(p Params, step int) int {
	n := 0
	for x := -4000; x < 4000; x += step {
		for z := -4000; z < 4000; z += step {
			if p.RiverMask(99, x, z) > 0 {
				n++
			}
		}
	}
	return n
}

func TestRiverMaskIsABand(t *testing.T) {
	p := DefaultParams()
	total := (8000 / 40) * (8000 / 40)
	n := riverCount(p, 40)
	if n == 0 {
		t.Fatalf("no river columns found in an 8km square")
	}
	if n > total/2 {
		t.Fatalf("river mask covers %d of %d samples; expected a thin band", n, total)
	}
	for x := -4000; x < 4000; x += 40 {
		m := p.RiverMask(99, x, 17)
		if m < 0 || m > 1 {
			t.Fatalf("river mask out of range: %v", m)
		}
	}
}

func TestRiverWidthMonotone(t *testing.T) {
	p := DefaultParams()
	prev := -1
	for _, w := range []float64{0.02, 0.05, 0.10, 0.14, 0.25, 0.5} {
		p.RiverWidth = w
		n := riverCount(p, 80)
		if n < prev {
			t.Fatalf("width %v: %d river samples, fewer than %d at a narrower width", w, n, prev)
		}
		prev = n
	}
}

func TestVolcanoForcedChance(t *testing.T) {
	p := DefaultParams()
	p.Volcano.Chance = 1
	size := p.Volcano.RegionSize
	for _, pt := range [][2]int{{0, 0}, {-1, -1}, {5000, -5000}, {-1536, 1535}} {
		v, ok := p.VolcanoAt(3, pt[0], pt[1])
		if !ok {
			t.Fatalf("forced volcano missing at %v", pt)
		}
		ox, oz := v.RegionX*size, v.RegionZ*size
		if v.CenterX < ox || v.CenterX >= ox+size || v.CenterZ < oz || v.CenterZ >= oz+size {
			t.Fatalf("volcano center (%d,%d) outside its cell (%d,%d)", v.CenterX, v.CenterZ, v.RegionX, v.RegionZ)
		}
		again, _ := p.VolcanoAt(3, pt[0], pt[1])
		if again != v {
			t.Fatalf("volcano not reproducible: %+v vs %+v", v, again)
		}
		if v.FactorAt(v.CenterX, v.CenterZ) != 1 || v.CraterFactorAt(v.CenterX, v.CenterZ) != 1 {
			t.Fatalf("factors at center should be 1")
		}
		if v.FactorAt(v.CenterX+v.Radius, v.CenterZ) != 0 {
			t.Fatalf("cone factor at radius should be 0")
		}
		if v.CraterFactorAt(v.CenterX+v.CraterRadius/2, v.CenterZ) != 0.25 {
			t.Fatalf("crater factor should be squared")
		}
	}
}

func TestVolcanoDisabledAtZeroChance(t *testing.T) {
	p := DefaultParams()
	p.Volcano.Chance = 0
	for rx := -20; rx < 20; rx++ {
		if _, ok := p.VolcanoInRegion(8, rx, rx*3); ok {
			t.Fatalf("volcano found with zero chance in cell %d", rx)
		}
	}
}

func TestSteepnessRange(t *testing.T) {
	p := DefaultParams()
	for x := -500; x <= 500; x += 125 {
		s := p.Steepness(11, x, -x)
		if s < 0 || s > 1 {
			t.Fatalf("steepness out of range: %v", s)
		}
	}
}
