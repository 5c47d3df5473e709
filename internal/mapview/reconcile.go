package mapview

import "sort"

// Diff partitions a rendered set against a target set, keyed by region
// name. Enter holds names only in the target, Exit names only in the old
// set, Update the intersection. The three slices are sorted so callers
// apply changes deterministically.
type Diff struct {
	Enter  []string
	Update []string
	Exit   []string
}

// Reconcile computes the enter/update/exit partition between the
// currently rendered names and the target names. Keying by region name
// keeps element identity stable across updates, so an in-flight
// animation on an unchanged region is retargeted rather than restarted.
func Reconcile(old, target map[string]bool) Diff {
	var d Diff
	for name := range target {
		if old[name] {
			d.Update = append(d.Update, name)
		} else {
			d.Enter = append(d.Enter, name)
		}
	}
	for name := range old {
		if !target[name] {
			d.Exit = append(d.Exit, name)
		}
	}
	sort.Strings(d.Enter)
	sort.Strings(d.Update)
	sort.Strings(d.Exit)
	return d
}
