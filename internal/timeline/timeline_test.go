package timeline

import (
	"reflect"
	"testing"
)

func TestNewStartsAtLatestYear(t *testing.T) {
	c := New(DefaultYears(), nil)
	if got := c.Active(); got != 2024 {
		t.Errorf("Active() = %d, want 2024", got)
	}
}

func TestSetIndexClamps(t *testing.T) {
	c := New([]int{2016, 2020, 2024}, nil)

	c.SetIndex(-5)
	if got := c.Active(); got != 2016 {
		t.Errorf("Active() after SetIndex(-5) = %d, want 2016", got)
	}
	c.SetIndex(99)
	if got := c.Active(); got != 2024 {
		t.Errorf("Active() after SetIndex(99) = %d, want 2024", got)
	}
}

func TestArrowKeysClampAtBounds(t *testing.T) {
	c := New([]int{2016, 2020}, nil)

	c.Next() // already at the end
	if got := c.Active(); got != 2020 {
		t.Errorf("Next at end moved to %d", got)
	}
	c.Prev()
	c.Prev()
	c.Prev()
	if got := c.Active(); got != 2016 {
		t.Errorf("repeated Prev moved past start, at %d", got)
	}
	c.Next()
	if got := c.Active(); got != 2020 {
		t.Errorf("Next = %d, want 2020", got)
	}
}

func TestOnChangeFiresOnEffectiveMoves(t *testing.T) {
	var fired []int
	c := New([]int{2016, 2020, 2024}, func(year int) { fired = append(fired, year) })

	c.Prev()        // 2020
	c.Prev()        // 2016
	c.Prev()        // clamped, no change
	c.SetYear(2024) // 2024
	c.SetYear(1999) // unknown, ignored

	want := []int{2020, 2016, 2024}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("onChange fired for %v, want %v", fired, want)
	}
}

func TestActiveCandidates(t *testing.T) {
	c := New([]int{2020}, nil)
	ann, ok := c.ActiveCandidates()
	if !ok {
		t.Fatal("no candidate annotation for 2020")
	}
	if ann.Winner != "Joe Biden" || ann.WinnerParty != "D" {
		t.Errorf("2020 annotation = %+v", ann)
	}
}

func TestCandidatesCoverDefaultYears(t *testing.T) {
	for _, y := range DefaultYears() {
		if _, ok := CandidatesFor(y); !ok {
			t.Errorf("no candidate annotation for %d", y)
		}
	}
}

func TestEmptySequence(t *testing.T) {
	c := New(nil, nil)
	if got := c.Active(); got != 0 {
		t.Errorf("Active() on empty sequence = %d, want 0", got)
	}
	c.Next()
	c.SetIndex(3)
	if got := c.Index(); got != 0 {
		t.Errorf("Index() on empty sequence = %d, want 0", got)
	}
}
