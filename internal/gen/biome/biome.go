// Package biome classifies a column from its terrain and settlement samples.
// The policy is an ordered rule table; the first matching rule wins.
package biome

type Label string

const (
	Plains         Label = "plains"
	Forest         Label = "forest"
	Taiga          Label = "taiga"
	SnowyPlains    Label = "snowy-plains"
	SnowyTaiga     Label = "snowy-taiga"
	Desert         Label = "desert"
	Badlands       Label = "badlands"
	Jungle         Label = "jungle"
	Swamp          Label = "swamp"
	StonyPeaks     Label = "stony-peaks"
	JaggedPeaks    Label = "jagged-peaks"
	SnowySlopes    Label = "snowy-slopes"
	DeepOcean      Label = "deep-ocean"
	Beach          Label = "beach"
	WindsweptHills Label = "windswept-hills"
	UrbanPlains    Label = "urban-plains"
	UrbanForest    Label = "urban-forest"
)

const (
	PeakHeight = 185

	hotAbove     = 0.35
	coldBelow    = -0.35
	wetAbove     = 0.35
	badlandsHum  = -0.15
	jungleHum    = 0.65
	windsweptHum = -0.20
	urbanCore    = 0.85
)

// Sample is everything a rule may look at.
type Sample struct {
	Height      int
	Temperature float64
	Humidity    float64
	SeaLevel    int
	SnowLine    int
	CityBlend   float64
}

func (s Sample) hot() bool  { return s.Temperature > hotAbove }
func (s Sample) cold() bool { return s.Temperature < coldBelow }
func (s Sample) wet() bool  { return s.Humidity > wetAbove }

type Rule struct {
	Name  string
	When  func(Sample) bool
	Label Label
}

var Rules = []Rule{
	{"urban-core", func(s Sample) bool { return s.CityBlend > urbanCore }, UrbanPlains},
	{"urban-edge", func(s Sample) bool { return s.CityBlend > 0 }, UrbanForest},
	{"cold-peak", func(s Sample) bool { return s.Height >= PeakHeight && s.cold() }, JaggedPeaks},
	{"peak", func(s Sample) bool { return s.Height >= PeakHeight }, StonyPeaks},
	{"snow-line", func(s Sample) bool { return s.Height >= s.SnowLine }, SnowySlopes},
	{"deep-water", func(s Sample) bool { return s.Height <= s.SeaLevel-8 }, DeepOcean},
	{"shore", func(s Sample) bool { return s.Height <= s.SeaLevel+2 }, Beach},
	{"scorched", func(s Sample) bool { return s.hot() && !s.wet() && s.Humidity < badlandsHum }, Badlands},
	{"hot-dry", func(s Sample) bool { return s.hot() && !s.wet() }, Desert},
	{"cold-wet", func(s Sample) bool { return s.cold() && s.wet() }, SnowyTaiga},
	{"cold", func(s Sample) bool { return s.cold() }, SnowyPlains},
	{"steaming", func(s Sample) bool { return s.wet() && s.hot() && s.Humidity > jungleHum }, Jungle},
	{"hot-wet", func(s Sample) bool { return s.wet() && s.hot() }, Swamp},
	{"wet", func(s Sample) bool { return s.wet() }, Forest},
	{"dry", func(s Sample) bool { return s.Humidity < windsweptHum }, WindsweptHills},
}

// Classify returns the label of the first matching rule, or plains.
func Classify(s Sample) Label {
	l, _ := Explain(s)
	return l
}

// Explain is Classify plus the name of the rule that fired ("" for the
// plains fallback).
func Explain(s Sample) (Label, string) {
	for _, r := range Rules {
		if r.When(s) {
			return r.Label, r.Name
		}
	}
	return Plains, ""
}

// All is the fixed palette of labels Classify may emit, plus taiga which
// hosts may map onto.
func All() []Label {
	return []Label{
		Plains, Forest, Taiga, SnowyPlains, SnowyTaiga,
		Desert, Badlands, Jungle, Swamp,
		StonyPeaks, JaggedPeaks, SnowySlopes,
		DeepOcean, Beach, WindsweptHills,
		UrbanPlains, UrbanForest,
	}
}
