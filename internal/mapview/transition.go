package mapview

import (
	"fmt"
	"strconv"
	"time"
)

// Interpolate linearly maps t in [0, 1] onto [start, end]. t outside the
// unit interval clamps, so a sample taken after a transition's end time
// holds the final value.
func Interpolate(start, end, t float64) float64 {
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}
	return start + (end-start)*t
}

// transition is one animated numeric value. The view stores start/end
// and lets the host sample at its own cadence; nothing here drives a
// clock.
type transition struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

func (tr transition) at(now time.Time) float64 {
	if tr.duration <= 0 {
		return tr.to
	}
	t := float64(now.Sub(tr.start)) / float64(tr.duration)
	return Interpolate(tr.from, tr.to, t)
}

// retarget begins a new transition toward "to" from whatever value is
// currently displayed, preserving visual continuity when an update
// supersedes one still in flight.
func (tr transition) retarget(to float64, now time.Time, d time.Duration) transition {
	return transition{from: tr.at(now), to: to, start: now, duration: d}
}

func fixed(v float64) transition {
	return transition{from: v, to: v}
}

// colorTransition animates between two hex fills by componentwise RGB
// interpolation.
type colorTransition struct {
	from     string
	to       string
	start    time.Time
	duration time.Duration
}

func (tr colorTransition) at(now time.Time) string {
	if tr.duration <= 0 || tr.from == tr.to {
		return tr.to
	}
	t := float64(now.Sub(tr.start)) / float64(tr.duration)
	return lerpHex(tr.from, tr.to, t)
}

func (tr colorTransition) retarget(to string, now time.Time, d time.Duration) colorTransition {
	return colorTransition{from: tr.at(now), to: to, start: now, duration: d}
}

func fixedColor(c string) colorTransition {
	return colorTransition{from: c, to: c}
}

// lerpHex interpolates between two #rrggbb colors. Unparseable input
// snaps to the target color.
func lerpHex(from, to string, t float64) string {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	fr, fg, fb, ok1 := parseHex(from)
	tr, tg, tb, ok2 := parseHex(to)
	if !ok1 || !ok2 {
		return to
	}
	r := int(Interpolate(float64(fr), float64(tr), t) + 0.5)
	g := int(Interpolate(float64(fg), float64(tg), t) + 0.5)
	b := int(Interpolate(float64(fb), float64(tb), t) + 0.5)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func parseHex(c string) (r, g, b int, ok bool) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseInt(c[1:3], 16, 0)
	gv, err2 := strconv.ParseInt(c[3:5], 16, 0)
	bv, err3 := strconv.ParseInt(c[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}
