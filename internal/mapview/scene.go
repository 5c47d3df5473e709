package mapview

// Scene is one sampled frame of a map view, renderer-agnostic: enough
// for SVG, canvas or a retained scene graph to reproduce the view.
type Scene struct {
	Transform Transform      `json:"transform"`
	Regions   []RegionVisual `json:"regions"`
}

// RegionVisual is the drawable state of one region at sample time.
// Label and Leader are nil when the region has no data or its label is
// hidden by the current visibility policy.
type RegionVisual struct {
	Name    string       `json:"name"`
	Path    string       `json:"path"`
	Fill    string       `json:"fill"`
	Opacity float64      `json:"opacity"`
	Label   *LabelVisual `json:"label,omitempty"`
	Leader  *LeaderLine  `json:"leader,omitempty"`
}

// LabelVisual is a positioned text label.
type LabelVisual struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// LeaderLine connects a region's true centroid to its displaced label.
// Renderers draw it beneath the label.
type LeaderLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Transform is the zoom/pan affine transform applied to the whole
// rendered group, labels and leader lines included.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

// Identity is the untransformed view.
var Identity = Transform{Scale: 1}

// Zoom scale bounds. Values outside clamp rather than error.
const (
	MinZoom = 0.85
	MaxZoom = 8.0
)
