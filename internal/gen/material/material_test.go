package material

import "testing"

func TestAirIsZero(t *testing.T) {
	if Air != 0 {
		t.Fatalf("Air=%d want 0", Air)
	}
	if Palette()[0] != "AIR" {
		t.Fatalf("palette[0]=%q", Palette()[0])
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want ID
	}{
		{"STONE_BRICKS", StoneBricks},
		{"  andesite ", Andesite},
		{"minecraft:glass", Glass},
		{"", Stone},
		{"NOT_A_BLOCK", Stone},
	}
	for _, tc := range cases {
		if got := Parse(tc.in, Stone); got != tc.want {
			t.Fatalf("Parse(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestPaletteRoundTrip(t *testing.T) {
	for i, n := range Palette() {
		id, ok := Lookup(n)
		if !ok || id != ID(i) {
			t.Fatalf("Lookup(%q)=%v,%v want %d", n, id, ok, i)
		}
		if id.String() != n {
			t.Fatalf("String()=%q want %q", id.String(), n)
		}
	}
	if Void.Valid() {
		t.Fatalf("Void must not be a palette entry")
	}
}

func TestPredicates(t *testing.T) {
	if IsSolid(Water) || IsSolid(Lava) || IsSolid(Air) || IsSolid(Void) {
		t.Fatalf("fluids, air and void are not solid")
	}
	if !IsSolid(Stone) || !IsSolid(OakLeaves) {
		t.Fatalf("stone and leaves are solid")
	}
	if Replaceable(Void) || Replaceable(Stone) {
		t.Fatalf("void and stone are not replaceable")
	}
	if !Replaceable(Air) || !Replaceable(Vine) || !Replaceable(SpruceLeaves) {
		t.Fatalf("air, vine and leaves are replaceable")
	}
	if GoodTreeGround(Stone) || !GoodTreeGround(Podzol) {
		t.Fatalf("tree ground predicate wrong")
	}
}

func TestPaletteDigestStable(t *testing.T) {
	if PaletteDigest() != PaletteDigest() || len(PaletteDigest()) != 64 {
		t.Fatalf("bad palette digest %q", PaletteDigest())
	}
}
