// Package svg renders sampled map scenes into standalone SVG documents.
package svg

import (
	"bytes"
	"fmt"
	"html"

	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/mapview"
)

const (
	labelFontSize  = 11
	labelFont      = "Helvetica, Arial, sans-serif"
	strokeColor    = "#ffffff"
	leaderColor    = "#777777"
	legendSwatchPx = 18
)

// Options control document-level rendering.
type Options struct {
	Width  int
	Height int
	Title  string
	Legend []colorscale.Band // omitted when empty
}

// Render produces a complete SVG document for one scene. Regions draw
// in scene order; each region's leader line draws before its label so
// the label sits on top.
func Render(scene mapview.Scene, opts Options) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)

	if opts.Title != "" {
		fmt.Fprintf(&buf, `  <title>%s</title>`+"\n", html.EscapeString(opts.Title))
	}

	tf := scene.Transform
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f,%.2f) scale(%.3f)">`+"\n",
		tf.TranslateX, tf.TranslateY, tf.Scale)

	// Shapes first, then leader lines, then labels, so no label is ever
	// covered by a neighboring shape.
	for _, r := range scene.Regions {
		fmt.Fprintf(&buf, `    <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="0.5"/>`+"\n",
			r.Path, r.Fill, r.Opacity, strokeColor)
	}
	for _, r := range scene.Regions {
		if r.Leader != nil {
			fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.75"/>`+"\n",
				r.Leader.X1, r.Leader.Y1, r.Leader.X2, r.Leader.Y2, leaderColor)
		}
	}
	for _, r := range scene.Regions {
		if r.Label != nil {
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%d" text-anchor="middle">%s</text>`+"\n",
				r.Label.X, r.Label.Y, labelFont, labelFontSize, html.EscapeString(r.Label.Text))
		}
	}
	buf.WriteString("  </g>\n")

	if len(opts.Legend) > 0 {
		renderLegend(&buf, opts)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderLegend draws the band swatches along the bottom edge, outside
// the zoom transform so they stay put.
func renderLegend(buf *bytes.Buffer, opts Options) {
	y := opts.Height - 30
	x := 20
	buf.WriteString("  <g>\n")
	for _, b := range opts.Legend {
		fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			x, y, legendSwatchPx, legendSwatchPx, b.Color)
		fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="%s" font-size="9" text-anchor="middle">%.0f</text>`+"\n",
			x, y+legendSwatchPx+10, labelFont, b.From)
		x += legendSwatchPx
	}
	last := opts.Legend[len(opts.Legend)-1]
	fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="%s" font-size="9" text-anchor="middle">%.0f</text>`+"\n",
		x, y+legendSwatchPx+10, labelFont, last.To)
	buf.WriteString("  </g>\n")
}
