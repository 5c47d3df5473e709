// Package geo loads pre-projected state geometry and exposes the
// path/centroid operations the map views render through.
package geo

import (
	"encoding/json"
	"fmt"
	"os"
)

// Point is a planar coordinate in the projected pixel space.
type Point struct {
	X float64
	Y float64
}

// Feature is one renderable region: a FIPS id plus one or more closed
// rings in projected coordinates. Multi-ring features cover states with
// islands (Hawaii, Michigan).
type Feature struct {
	ID    string
	Rings [][]Point
}

// Geography is the ordered feature set for one map. Order is the draw
// order and is preserved from the source file.
type Geography []Feature

// featureJSON is the on-disk shape: rings as [x, y] pairs.
type featureJSON struct {
	ID    string        `json:"id"`
	Rings [][][2]float64 `json:"rings"`
}

// LoadGeography reads a projected-geometry JSON file, as produced by the
// offline topology conversion step. The file is an array of features;
// coordinate pairs are already in pixel space.
func LoadGeography(path string) (Geography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading geography %s: %w", path, err)
	}
	return ParseGeography(data)
}

// ParseGeography decodes geography JSON from memory.
func ParseGeography(data []byte) (Geography, error) {
	var raw []featureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing geography: %w", err)
	}

	geo := make(Geography, 0, len(raw))
	for _, f := range raw {
		feat := Feature{ID: f.ID}
		for _, ring := range f.Rings {
			pts := make([]Point, len(ring))
			for i, p := range ring {
				pts[i] = Point{X: p[0], Y: p[1]}
			}
			feat.Rings = append(feat.Rings, pts)
		}
		geo = append(geo, feat)
	}
	return geo, nil
}

// Projection turns a feature into drawable output. Implementations must
// be safe for concurrent use; the planar one is stateless.
type Projection interface {
	// Path returns SVG path data for the feature's rings.
	Path(f Feature) string
	// Centroid returns the feature's geometric center in pixel space.
	Centroid(f Feature) Point
}

// Planar renders pre-projected coordinates as-is. This is the projection
// used in production: the geometry file already went through an
// Albers-USA projection offline.
type Planar struct{}

// Path emits one closed subpath per ring, coordinates rounded to two
// decimals to keep documents small.
func (Planar) Path(f Feature) string {
	var buf []byte
	for _, ring := range f.Rings {
		if len(ring) == 0 {
			continue
		}
		buf = appendCommand(buf, 'M', ring[0])
		for _, p := range ring[1:] {
			buf = appendCommand(buf, 'L', p)
		}
		buf = append(buf, 'Z')
	}
	return string(buf)
}

func appendCommand(buf []byte, cmd byte, p Point) []byte {
	buf = append(buf, cmd)
	buf = appendCoord(buf, p.X)
	buf = append(buf, ',')
	buf = appendCoord(buf, p.Y)
	return buf
}

func appendCoord(buf []byte, v float64) []byte {
	return append(buf, fmt.Sprintf("%.2f", v)...)
}

// Centroid computes the area-weighted centroid over all rings using the
// shoelace formula. Degenerate rings (fewer than three points, or zero
// area) fall back to the vertex mean so the result is always defined.
func (Planar) Centroid(f Feature) Point {
	var cx, cy, area float64
	for _, ring := range f.Rings {
		if len(ring) < 3 {
			continue
		}
		for i := 0; i < len(ring); i++ {
			j := (i + 1) % len(ring)
			cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
			area += cross
			cx += (ring[i].X + ring[j].X) * cross
			cy += (ring[i].Y + ring[j].Y) * cross
		}
	}
	if area != 0 {
		area /= 2
		return Point{X: cx / (6 * area), Y: cy / (6 * area)}
	}

	var sx, sy float64
	n := 0
	for _, ring := range f.Rings {
		for _, p := range ring {
			sx += p.X
			sy += p.Y
			n++
		}
	}
	if n == 0 {
		return Point{}
	}
	return Point{X: sx / float64(n), Y: sy / float64(n)}
}
