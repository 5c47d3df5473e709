// Package colorscale maps turnout percentages and election years to
// fill colors for the choropleth.
package colorscale

// NeutralGray is the fill for regions with no data for the selected year.
const NeutralGray = "#cccccc"

// Band is one quantized step of a scale: values in [From, To) take Color.
type Band struct {
	From  float64 `json:"from" yaml:"from"`
	To    float64 `json:"to" yaml:"to"`
	Color string  `json:"color" yaml:"color"`
}

// Scale quantizes a continuous value into fixed color bands. Values
// outside the domain clamp to the nearest band rather than erroring;
// turnout below 40% or above 80% is rare but legal input.
type Scale struct {
	bands []Band
}

// New builds a Scale from ordered, contiguous bands.
func New(bands []Band) *Scale {
	out := make([]Band, len(bands))
	copy(out, bands)
	return &Scale{bands: out}
}

// Turnout is the production scale: domain [40, 80], eight 5-point
// bands from light yellow to dark blue-green.
func Turnout() *Scale {
	return New([]Band{
		{From: 40, To: 45, Color: "#ffffcc"},
		{From: 45, To: 50, Color: "#c7e9b4"},
		{From: 50, To: 55, Color: "#7fcdbb"},
		{From: 55, To: 60, Color: "#41b6c4"},
		{From: 60, To: 65, Color: "#1d91c0"},
		{From: 65, To: 70, Color: "#225ea8"},
		{From: 70, To: 75, Color: "#253494"},
		{From: 75, To: 80, Color: "#081d58"},
	})
}

// Color returns the band color for v, clamping outside the domain.
func (s *Scale) Color(v float64) string {
	if len(s.bands) == 0 {
		return NeutralGray
	}
	if v < s.bands[0].From {
		return s.bands[0].Color
	}
	last := s.bands[len(s.bands)-1]
	if v >= last.To {
		return last.Color
	}
	for _, b := range s.bands {
		if v >= b.From && v < b.To {
			return b.Color
		}
	}
	return last.Color
}

// Bands returns a copy of the scale's bands for legend rendering.
func (s *Scale) Bands() []Band {
	out := make([]Band, len(s.bands))
	copy(out, s.bands)
	return out
}

// YearTint colors a year within [first, last] on a single-hue ramp,
// oldest lightest. The summary maps use it so a state's extreme year is
// readable at a glance.
func YearTint(year, first, last int) string {
	ramp := []string{"#fee5d9", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#99000d"}
	if last <= first {
		return ramp[len(ramp)/2]
	}
	t := float64(year-first) / float64(last-first)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	i := int(t * float64(len(ramp)-1))
	return ramp[i]
}
