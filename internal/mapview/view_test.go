package mapview

import (
	"testing"
	"time"

	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/geo"
	"github.com/electomaps/turnoutmap/internal/label"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

// testGeography builds three squares with real FIPS ids: Texas (48),
// Ohio (39) and Delaware (10).
func testGeography() geo.Geography {
	sq := func(id string, x, y float64) geo.Feature {
		return geo.Feature{ID: id, Rings: [][]geo.Point{{
			{X: x, Y: y}, {X: x + 10, Y: y}, {X: x + 10, Y: y + 10}, {X: x, Y: y + 10},
		}}}
	}
	return geo.Geography{sq("48", 0, 0), sq("39", 20, 0), sq("10", 40, 0)}
}

func testView(t *testing.T) (*View, *time.Time) {
	t.Helper()
	v := New(Config{
		Geography: testGeography(),
		Anchors:   map[string]label.Anchor{"Delaware": {X: 100, Y: 5}},
	})
	now := time.Unix(1000, 0)
	v.now = func() time.Time { return now }
	return v, &now
}

func findRegion(t *testing.T, s Scene, name string) RegionVisual {
	t.Helper()
	for _, r := range s.Regions {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("region %q not in scene", name)
	return RegionVisual{}
}

func TestEmptyGeography(t *testing.T) {
	v := New(Config{})
	scene := v.Frame(time.Now())
	if len(scene.Regions) != 0 {
		t.Errorf("empty geography rendered %d regions", len(scene.Regions))
	}
}

func TestInitialFrameIsNoData(t *testing.T) {
	v, now := testView(t)
	scene := v.Frame(*now)

	for _, r := range scene.Regions {
		if r.Fill != colorscale.NeutralGray {
			t.Errorf("%s initial fill = %q, want neutral gray", r.Name, r.Fill)
		}
		if r.Opacity != 0.3 {
			t.Errorf("%s initial opacity = %v, want 0.3", r.Name, r.Opacity)
		}
		if r.Label != nil || r.Leader != nil {
			t.Errorf("%s has a label before any data arrived", r.Name)
		}
	}
}

func TestUpdateFillsAndAnimates(t *testing.T) {
	v, now := testView(t)
	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{
		"Texas": {Value: 60.4, Year: 2020},
	}})

	// Mid-transition the opacity is between the no-data and full levels.
	mid := now.Add(DefaultTransition / 2)
	tx := findRegion(t, v.Frame(mid), "Texas")
	if tx.Opacity <= 0.3 || tx.Opacity >= 1.0 {
		t.Errorf("mid-transition opacity = %v, want strictly between 0.3 and 1", tx.Opacity)
	}

	done := now.Add(2 * DefaultTransition)
	tx = findRegion(t, v.Frame(done), "Texas")
	if tx.Opacity != 1.0 {
		t.Errorf("settled opacity = %v, want 1", tx.Opacity)
	}
	if tx.Fill != colorscale.Turnout().Color(60.4) {
		t.Errorf("settled fill = %q, want scale color for 60.4", tx.Fill)
	}

	oh := findRegion(t, v.Frame(done), "Ohio")
	if oh.Opacity != 0.3 || oh.Fill != colorscale.NeutralGray {
		t.Errorf("no-data region = fill %q opacity %v, want neutral 0.3", oh.Fill, oh.Opacity)
	}
}

func TestLabelValueAnimatesBetweenYears(t *testing.T) {
	v, now := testView(t)
	v.SetShowAllLabels(true)

	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{"Texas": {Value: 51.6, Year: 2016}}})
	*now = now.Add(time.Second) // let the first transition settle

	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{"Texas": {Value: 60.4, Year: 2020}}})

	mid := now.Add(DefaultTransition / 2)
	tx := findRegion(t, v.Frame(mid), "Texas")
	if tx.Label == nil {
		t.Fatal("Texas has no label under show-all")
	}
	if tx.Label.Text != "56.0%" {
		t.Errorf("mid-transition label = %q, want 56.0%% (halfway 51.6 -> 60.4)", tx.Label.Text)
	}

	tx = findRegion(t, v.Frame(now.Add(time.Second)), "Texas")
	if tx.Label.Text != "60.4%" {
		t.Errorf("settled label = %q, want 60.4%%", tx.Label.Text)
	}
}

func TestSupersedingUpdateRetargets(t *testing.T) {
	v, now := testView(t)
	v.SetShowAllLabels(true)

	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{"Texas": {Value: 50, Year: 2016}}})
	*now = now.Add(time.Second)

	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{"Texas": {Value: 70, Year: 2020}}})
	*now = now.Add(DefaultTransition / 2) // displayed value is now 60

	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{"Texas": {Value: 40, Year: 2024}}})

	// The new transition starts from the in-flight 60, not from 70.
	tx := findRegion(t, v.Frame(*now), "Texas")
	if tx.Label.Text != "60.0%" {
		t.Errorf("label right after superseding update = %q, want 60.0%%", tx.Label.Text)
	}
	tx = findRegion(t, v.Frame(now.Add(time.Second)), "Texas")
	if tx.Label.Text != "40.0%" {
		t.Errorf("label after settle = %q, want 40.0%% (newest target wins)", tx.Label.Text)
	}
}

func TestAbsentRegionsLoseLabels(t *testing.T) {
	v, now := testView(t)
	v.SetShowAllLabels(true)

	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{
		"Texas":    {Value: 60, Year: 2020},
		"Delaware": {Value: 62, Year: 2020},
	}})
	*now = now.Add(time.Second)

	dl := findRegion(t, v.Frame(*now), "Delaware")
	if dl.Label == nil || dl.Leader == nil {
		t.Fatal("Delaware should have an anchored label with a leader line")
	}

	// Next year has no Delaware record: label and leader both go.
	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{"Texas": {Value: 61, Year: 2024}}})
	settled := v.Frame(now.Add(time.Second))
	dl = findRegion(t, settled, "Delaware")
	if dl.Label != nil || dl.Leader != nil {
		t.Error("Delaware kept its label/leader line after exiting the dataset")
	}
	if dl.Opacity != 0.3 {
		t.Errorf("exited region opacity = %v, want 0.3", dl.Opacity)
	}
}

func TestHoverShowsSingleLabel(t *testing.T) {
	v, now := testView(t)
	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{
		"Texas": {Value: 60, Year: 2020},
		"Ohio":  {Value: 67, Year: 2020},
	}})
	*now = now.Add(time.Second)

	v.HoverEnter("Texas")
	scene := v.Frame(*now)

	if findRegion(t, scene, "Texas").Label == nil {
		t.Error("hovered region has no label")
	}
	if findRegion(t, scene, "Ohio").Label != nil {
		t.Error("non-hovered region shows a label without show-all")
	}
	if got := findRegion(t, scene, "Ohio").Opacity; got != 0.3 {
		t.Errorf("non-hovered opacity = %v, want 0.3", got)
	}

	v.HoverLeave()
	scene = v.Frame(*now)
	if findRegion(t, scene, "Texas").Label != nil {
		t.Error("label survived hover leave")
	}
	if got := findRegion(t, scene, "Ohio").Opacity; got != 1.0 {
		t.Errorf("opacity after hover leave = %v, want restored 1.0", got)
	}
}

func TestShowAllTogglesDuringHover(t *testing.T) {
	v, now := testView(t)
	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{
		"Texas": {Value: 60, Year: 2020},
		"Ohio":  {Value: 67, Year: 2020},
	}})
	*now = now.Add(time.Second)
	v.HoverEnter("Texas")

	v.SetShowAllLabels(true)
	scene := v.Frame(*now)
	if findRegion(t, scene, "Ohio").Label == nil {
		t.Error("show-all did not reveal non-hovered labels immediately")
	}
	if got := findRegion(t, scene, "Ohio").Opacity; got != 0.6 {
		t.Errorf("non-hovered opacity under show-all = %v, want 0.6", got)
	}
}

func TestHoverUnknownRegionIgnored(t *testing.T) {
	v, _ := testView(t)
	v.HoverEnter("Narnia")
	if v.Hovered() != "" {
		t.Errorf("Hovered() = %q after entering unknown region", v.Hovered())
	}
}

func TestZoomClamps(t *testing.T) {
	v, _ := testView(t)

	v.SetZoom(Transform{Scale: 20, TranslateX: 5, TranslateY: -5})
	if got := v.Transform().Scale; got != MaxZoom {
		t.Errorf("scale = %v, want clamped to %v", got, MaxZoom)
	}
	v.SetZoom(Transform{Scale: 0.1})
	if got := v.Transform().Scale; got != MinZoom {
		t.Errorf("scale = %v, want clamped to %v", got, MinZoom)
	}

	v.SetZoom(Transform{Scale: 2, TranslateX: 30, TranslateY: 40})
	scene := v.Frame(time.Now())
	if scene.Transform.Scale != 2 || scene.Transform.TranslateX != 30 {
		t.Errorf("scene transform = %+v, want the applied zoom", scene.Transform)
	}
}

func TestDatasetEntryOutsideGeographyIgnored(t *testing.T) {
	v, now := testView(t)
	v.SetShowAllLabels(true)
	v.ApplyUpdate(Update{Dataset: map[string]turnout.Entry{
		"Texas":       {Value: 60, Year: 2020},
		"Puerto Rico": {Value: 55, Year: 2020}, // not in the geography
	}})

	scene := v.Frame(now.Add(time.Second))
	if len(scene.Regions) != 3 {
		t.Fatalf("scene has %d regions, want the 3 geographic ones", len(scene.Regions))
	}
	for _, r := range scene.Regions {
		if r.Name == "Puerto Rico" {
			t.Error("non-geographic dataset entry leaked into the scene")
		}
	}
}

func TestCustomFillAndFormat(t *testing.T) {
	v, now := testView(t)
	v.SetShowAllLabels(true)

	v.ApplyUpdate(Update{
		Dataset: map[string]turnout.Entry{"Ohio": {Value: 67.4, Year: 2008}},
		Fill: func(_ string, e turnout.Entry, ok bool) string {
			if !ok {
				return "#eeeeee"
			}
			return "#123456"
		},
		Format: func(_ string, value float64, e turnout.Entry) string {
			return "2008"
		},
	})

	scene := v.Frame(now.Add(time.Second))
	oh := findRegion(t, scene, "Ohio")
	if oh.Fill != "#123456" {
		t.Errorf("custom fill = %q, want #123456", oh.Fill)
	}
	if oh.Label == nil || oh.Label.Text != "2008" {
		t.Errorf("custom label = %+v, want year text", oh.Label)
	}
	tx := findRegion(t, scene, "Texas")
	if tx.Fill != "#eeeeee" {
		t.Errorf("custom no-data fill = %q, want #eeeeee", tx.Fill)
	}
}
