package biome

import "testing"

func base() Sample {
	return Sample{Height: 90, SeaLevel: 63, SnowLine: 150}
}

func TestPeaks(t *testing.T) {
	s := base()
	s.Height = 200
	s.Temperature = -0.5
	if got := Classify(s); got != JaggedPeaks {
		t.Fatalf("cold peak: %s", got)
	}
	for _, temp := range []float64{-0.35, 0, 0.9} {
		s.Temperature = temp
		if got := Classify(s); got != StonyPeaks {
			t.Fatalf("peak at t=%v: %s", temp, got)
		}
	}
}

func TestDecisionTable(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Sample)
		want Label
	}{
		{"urban core", func(s *Sample) { s.CityBlend = 0.9 }, UrbanPlains},
		{"urban rim", func(s *Sample) { s.CityBlend = 0.85 }, UrbanForest},
		{"urban beats peak", func(s *Sample) { s.CityBlend = 1; s.Height = 250 }, UrbanPlains},
		{"snow line", func(s *Sample) { s.Height = 150 }, SnowySlopes},
		{"deep ocean", func(s *Sample) { s.Height = 55 }, DeepOcean},
		{"beach", func(s *Sample) { s.Height = 65 }, Beach},
		{"badlands", func(s *Sample) { s.Temperature = 0.5; s.Humidity = -0.3 }, Badlands},
		{"desert", func(s *Sample) { s.Temperature = 0.5; s.Humidity = 0 }, Desert},
		{"snowy taiga", func(s *Sample) { s.Temperature = -0.5; s.Humidity = 0.5 }, SnowyTaiga},
		{"snowy plains", func(s *Sample) { s.Temperature = -0.5 }, SnowyPlains},
		{"jungle", func(s *Sample) { s.Temperature = 0.5; s.Humidity = 0.7 }, Jungle},
		{"swamp", func(s *Sample) { s.Temperature = 0.5; s.Humidity = 0.5 }, Swamp},
		{"forest", func(s *Sample) { s.Humidity = 0.5 }, Forest},
		{"windswept", func(s *Sample) { s.Humidity = -0.25 }, WindsweptHills},
		{"plains", func(s *Sample) {}, Plains},
	}
	for _, tc := range cases {
		s := base()
		tc.mod(&s)
		if got := Classify(s); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestClassifyStaysInPalette(t *testing.T) {
	palette := map[Label]bool{}
	for _, l := range All() {
		palette[l] = true
	}
	seen := map[Label]bool{}
	for h := 0; h <= 260; h += 5 {
		for ti := -10; ti <= 10; ti++ {
			for hi := -10; hi <= 10; hi++ {
				for _, blend := range []float64{0, 0.5, 1} {
					s := Sample{
						Height:      h,
						Temperature: float64(ti) / 10,
						Humidity:    float64(hi) / 10,
						SeaLevel:    63,
						SnowLine:    150,
						CityBlend:   blend,
					}
					l := Classify(s)
					if !palette[l] {
						t.Fatalf("label %q not in palette", l)
					}
					seen[l] = true
				}
			}
		}
	}
	for _, l := range All() {
		if l == Taiga {
			continue
		}
		if !seen[l] {
			t.Fatalf("label %q never produced on the input grid", l)
		}
	}
}

func TestRuleNamesUnique(t *testing.T) {
	names := map[string]bool{}
	for _, r := range Rules {
		if names[r.Name] {
			t.Fatalf("duplicate rule %q", r.Name)
		}
		names[r.Name] = true
	}
	if _, name := Explain(base()); name != "" {
		t.Fatalf("plains fallback reported rule %q", name)
	}
}
