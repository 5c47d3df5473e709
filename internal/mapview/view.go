// Package mapview renders a per-state dataset onto projected geography
// and manages label placement, value transitions and interaction state
// for one map instance.
package mapview

import (
	"fmt"
	"time"

	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/geo"
	"github.com/electomaps/turnoutmap/internal/label"
	"github.com/electomaps/turnoutmap/internal/region"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

// DefaultTransition is the fill/label animation duration.
const DefaultTransition = 600 * time.Millisecond

// Opacity levels for the interaction states.
const (
	opacityFull   = 1.0
	opacityNoData = 0.3
	dimHidden     = 0.3 // non-hovered regions, labels hidden
	dimShowAll    = 0.6 // non-hovered regions while every label is shown
)

// FillFunc overrides the default color encoding for a region. ok is
// false when the region has no entry in the current dataset.
type FillFunc func(name string, e turnout.Entry, ok bool) string

// FormatFunc renders a region's label text from its animated value. The
// entry carries the target year for formatters that show it.
type FormatFunc func(name string, value float64, e turnout.Entry) string

// Config constructs a View. Geography and Projection are required for a
// non-empty map; everything else has a usable default.
type Config struct {
	Geography  geo.Geography
	Projection geo.Projection
	Scale      *colorscale.Scale
	Offsets    map[string]label.Offset
	Anchors    map[string]label.Anchor
	Transition time.Duration
}

// regionState is the retained per-region render state. Identity is the
// region name, stable across updates.
type regionState struct {
	name      string
	path      string
	centroid  geo.Point
	placement label.Placement

	hasData bool
	entry   turnout.Entry

	fill    colorTransition
	opacity transition
	value   transition
}

// View is one map instance. It owns its dataset snapshot and interaction
// state exclusively; two views over the same geography share nothing.
type View struct {
	cfg     Config
	order   []string // draw order, from geography order
	regions map[string]*regionState

	fillFn    FillFunc
	formatFn  FormatFunc
	showAll   bool
	hovered   string
	transform Transform

	now func() time.Time
}

// Update retargets a view at a new dataset. Zero-value fields keep the
// previous encoding functions.
type Update struct {
	Dataset map[string]turnout.Entry
	Fill    FillFunc
	Format  FormatFunc
}

// New draws the geography once and returns an idle view. An empty
// geography yields a view that renders an empty scene; that is not an
// error.
func New(cfg Config) *View {
	if cfg.Projection == nil {
		cfg.Projection = geo.Planar{}
	}
	if cfg.Scale == nil {
		cfg.Scale = colorscale.Turnout()
	}
	if cfg.Transition == 0 {
		cfg.Transition = DefaultTransition
	}

	v := &View{
		cfg:       cfg,
		regions:   make(map[string]*regionState),
		formatFn:  defaultFormat,
		transform: Identity,
		now:       time.Now,
	}
	v.fillFn = v.defaultFill

	for _, f := range cfg.Geography {
		name := region.Resolve(f.ID)
		if name == region.Unknown {
			// Still drawn, but never labeled and never matched by data.
			name = region.Unknown + ":" + f.ID
		}
		if _, dup := v.regions[name]; dup {
			continue
		}
		centroid := cfg.Projection.Centroid(f)
		v.regions[name] = &regionState{
			name:      name,
			path:      cfg.Projection.Path(f),
			centroid:  centroid,
			placement: label.Place(name, centroid, cfg.Offsets, cfg.Anchors),
			fill:      fixedColor(colorscale.NeutralGray),
			opacity:   fixed(opacityNoData),
			value:     fixed(0),
		}
		v.order = append(v.order, name)
	}
	return v
}

func defaultFormat(_ string, value float64, _ turnout.Entry) string {
	return fmt.Sprintf("%.1f%%", value)
}

func (v *View) defaultFill(_ string, e turnout.Entry, ok bool) string {
	if !ok {
		return colorscale.NeutralGray
	}
	return v.cfg.Scale.Color(e.Value)
}

// ApplyUpdate binds a new dataset to the view. Every region's fill,
// opacity and label value start animating from their currently displayed
// values toward the new targets; labels reconcile by region name so
// regions present in both datasets keep their element identity. Calling
// again mid-transition is safe: the newest targets win.
func (v *View) ApplyUpdate(u Update) {
	if u.Fill != nil {
		v.fillFn = u.Fill
	}
	if u.Format != nil {
		v.formatFn = u.Format
	}
	now := v.now()
	d := v.cfg.Transition

	old := make(map[string]bool, len(v.regions))
	target := make(map[string]bool, len(u.Dataset))
	for name, rs := range v.regions {
		if rs.hasData {
			old[name] = true
		}
	}
	for name := range u.Dataset {
		if _, known := v.regions[name]; known {
			target[name] = true
		}
	}
	diff := Reconcile(old, target)

	for _, name := range diff.Enter {
		rs := v.regions[name]
		e := u.Dataset[name]
		rs.hasData = true
		rs.entry = e
		rs.fill = rs.fill.retarget(v.fillFn(name, e, true), now, d)
		rs.opacity = rs.opacity.retarget(opacityFull, now, d)
		// A label appearing fresh shows its value immediately; there is
		// no previous displayed value to animate from.
		rs.value = fixed(e.Value)
	}
	for _, name := range diff.Update {
		rs := v.regions[name]
		e := u.Dataset[name]
		rs.entry = e
		rs.fill = rs.fill.retarget(v.fillFn(name, e, true), now, d)
		rs.opacity = rs.opacity.retarget(opacityFull, now, d)
		rs.value = rs.value.retarget(e.Value, now, d)
	}
	for _, name := range diff.Exit {
		rs := v.regions[name]
		rs.hasData = false
		rs.entry = turnout.Entry{}
		rs.fill = rs.fill.retarget(v.fillFn(name, turnout.Entry{}, false), now, d)
		rs.opacity = rs.opacity.retarget(opacityNoData, now, d)
		rs.value = fixed(0)
	}

	// Regions in neither dataset still re-encode: a custom fill function
	// applies to no-data regions too.
	for name, rs := range v.regions {
		if target[name] || old[name] {
			continue
		}
		rs.fill = rs.fill.retarget(v.fillFn(name, turnout.Entry{}, false), now, d)
		rs.opacity = rs.opacity.retarget(opacityNoData, now, d)
	}
}

// SetShowAllLabels switches between showing every label and showing
// only the hovered region's label.
func (v *View) SetShowAllLabels(show bool) {
	v.showAll = show
}

// ShowAllLabels reports the current visibility policy.
func (v *View) ShowAllLabels() bool { return v.showAll }

// HoverEnter marks a region as hovered. Unknown names are ignored.
func (v *View) HoverEnter(name string) {
	if _, ok := v.regions[name]; ok {
		v.hovered = name
	}
}

// HoverLeave clears the hover state.
func (v *View) HoverLeave() {
	v.hovered = ""
}

// Hovered returns the hovered region name, or "".
func (v *View) Hovered() string { return v.hovered }

// SetZoom applies a zoom/pan transform, clamping scale to the allowed
// bounds. The transform covers shapes, labels and leader lines together,
// so label geometry stays correct at any zoom.
func (v *View) SetZoom(t Transform) {
	if t.Scale < MinZoom {
		t.Scale = MinZoom
	}
	if t.Scale > MaxZoom {
		t.Scale = MaxZoom
	}
	v.transform = t
}

// Transform returns the current zoom/pan transform.
func (v *View) Transform() Transform { return v.transform }

// Frame samples every in-flight transition at the given instant and
// returns the drawable scene. Hover dimming is applied at sample time so
// it never disturbs the data-driven transitions underneath.
func (v *View) Frame(at time.Time) Scene {
	scene := Scene{Transform: v.transform, Regions: make([]RegionVisual, 0, len(v.order))}

	for _, name := range v.order {
		rs := v.regions[name]
		vis := RegionVisual{
			Name:    rs.name,
			Path:    rs.path,
			Fill:    rs.fill.at(at),
			Opacity: rs.opacity.at(at),
		}
		if v.hovered != "" && v.hovered != name {
			if v.showAll {
				vis.Opacity = dimShowAll
			} else {
				vis.Opacity = dimHidden
			}
		}
		if rs.hasData && v.labelVisible(name) {
			vis.Label = &LabelVisual{
				Text: v.formatFn(name, rs.value.at(at), rs.entry),
				X:    rs.placement.X,
				Y:    rs.placement.Y,
			}
			if rs.placement.LeaderLine {
				vis.Leader = &LeaderLine{
					X1: rs.centroid.X,
					Y1: rs.centroid.Y,
					X2: rs.placement.X,
					Y2: rs.placement.Y,
				}
			}
		}
		scene.Regions = append(scene.Regions, vis)
	}
	return scene
}

// labelVisible implements the visibility policy: all labels under
// show-all, otherwise only the hovered region's.
func (v *View) labelVisible(name string) bool {
	return v.showAll || v.hovered == name
}
