// Package label computes label and leader-line anchor positions for
// region labels on the choropleth.
package label

import "github.com/electomaps/turnoutmap/internal/geo"

// Placement is where a region's label goes and whether a leader line
// connects it back to the region's centroid.
type Placement struct {
	X          float64
	Y          float64
	LeaderLine bool
}

// Offset nudges a label relative to the region's geometric centroid,
// for states whose centroid falls in a visually bad spot.
type Offset struct {
	DX float64 `json:"dx" yaml:"dx"`
	DY float64 `json:"dy" yaml:"dy"`
}

// Anchor is an absolute label position used instead of the centroid,
// for regions too small or crowded for an inline label. The map draws a
// leader line from the true centroid to the anchor.
type Anchor struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Place resolves a region's label position. A leader-line anchor takes
// precedence over an offset; a region in neither table labels at its
// centroid. Names absent from the geography are allowed in either table
// and names absent from both tables are allowed in the geography, so
// Place never fails.
func Place(name string, centroid geo.Point, offsets map[string]Offset, anchors map[string]Anchor) Placement {
	if a, ok := anchors[name]; ok {
		return Placement{X: a.X, Y: a.Y, LeaderLine: true}
	}
	if o, ok := offsets[name]; ok {
		return Placement{X: centroid.X + o.DX, Y: centroid.Y + o.DY}
	}
	return Placement{X: centroid.X, Y: centroid.Y}
}

// DefaultOffsets are hand-tuned pixel nudges against the 960x600
// Albers-USA projection. The values were settled visually; changing them
// changes where labels land on every rendered map.
var DefaultOffsets = map[string]Offset{
	"California": {DX: -12, DY: 8},
	"Florida":    {DX: 14, DY: 4},
	"Hawaii":     {DX: 20, DY: -10},
	"Idaho":      {DX: 0, DY: 14},
	"Kentucky":   {DX: 8, DY: 0},
	"Louisiana":  {DX: -10, DY: 0},
	"Michigan":   {DX: 10, DY: 24},
	"Minnesota":  {DX: -6, DY: 10},
	"New York":   {DX: 6, DY: -4},
	"Oklahoma":   {DX: 6, DY: 6},
	"Tennessee":  {DX: 0, DY: 2},
	"Texas":      {DX: -4, DY: -6},
	"Virginia":   {DX: 10, DY: 2},
}

// DefaultAnchors place the small Northeastern states and DC in a column
// off the Atlantic coast, matching the 960x600 projection. Each gets a
// leader line back to its centroid.
var DefaultAnchors = map[string]Anchor{
	"Vermont":              {X: 835, Y: 80},
	"New Hampshire":        {X: 890, Y: 110},
	"Massachusetts":        {X: 915, Y: 150},
	"Rhode Island":         {X: 925, Y: 185},
	"Connecticut":          {X: 910, Y: 220},
	"New Jersey":           {X: 890, Y: 255},
	"Delaware":             {X: 885, Y: 290},
	"Maryland":             {X: 870, Y: 325},
	"District of Columbia": {X: 855, Y: 360},
}
