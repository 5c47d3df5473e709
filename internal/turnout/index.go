package turnout

import "sort"

// Index provides year-oriented and state-oriented views over one
// data source's records. It is immutable after BuildIndex returns; a
// data-source change rebuilds the whole index rather than mutating it.
type Index struct {
	byYear  map[int]map[string]float64
	byState map[string][]Entry // sorted ascending by year
	years   []int              // years with at least one record, ascending
}

// BuildIndex constructs an Index from normalized records. Records whose
// year is not in validYears are dropped; duplicate (state, year) pairs
// resolve last-write-wins. An empty validYears set keeps nothing.
func BuildIndex(records []Record, validYears []int) *Index {
	valid := make(map[int]bool, len(validYears))
	for _, y := range validYears {
		valid[y] = true
	}

	idx := &Index{
		byYear:  make(map[int]map[string]float64),
		byState: make(map[string][]Entry),
	}

	for _, r := range records {
		if !valid[r.Year] {
			continue
		}
		states := idx.byYear[r.Year]
		if states == nil {
			states = make(map[string]float64)
			idx.byYear[r.Year] = states
		}
		if _, dup := states[r.State]; dup {
			// Last write wins; replace the byState entry in place too.
			seq := idx.byState[r.State]
			for i := range seq {
				if seq[i].Year == r.Year {
					seq[i].Value = r.Turnout
				}
			}
		} else {
			idx.byState[r.State] = append(idx.byState[r.State], Entry{Value: r.Turnout, Year: r.Year})
		}
		states[r.State] = r.Turnout
	}

	for state := range idx.byState {
		seq := idx.byState[state]
		sort.Slice(seq, func(i, j int) bool { return seq[i].Year < seq[j].Year })
	}

	for y := range idx.byYear {
		idx.years = append(idx.years, y)
	}
	sort.Ints(idx.years)

	return idx
}

// DatasetForYear returns state → turnout for one year. A year with no
// records yields an empty map, not nil and not an error; callers render
// every region in the no-data style.
func (idx *Index) DatasetForYear(year int) map[string]float64 {
	src := idx.byYear[year]
	out := make(map[string]float64, len(src))
	for state, v := range src {
		out[state] = v
	}
	return out
}

// EntriesForYear is DatasetForYear with the year attached to each value,
// in the shape the map views consume.
func (idx *Index) EntriesForYear(year int) map[string]Entry {
	src := idx.byYear[year]
	out := make(map[string]Entry, len(src))
	for state, v := range src {
		out[state] = Entry{Value: v, Year: year}
	}
	return out
}

// StateSeries returns one state's observations sorted ascending by year.
// The returned slice is a copy.
func (idx *Index) StateSeries(state string) []Entry {
	src := idx.byState[state]
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// Years returns the years that have at least one record, ascending.
func (idx *Index) Years() []int {
	out := make([]int, len(idx.years))
	copy(out, idx.years)
	return out
}

// ComputeExtrema walks each state's series once and reports the highest
// and lowest observation per state. Ties on value prefer the later year,
// for the maximum and the minimum alike. The result is computed fresh on
// every call and is identical across calls on the same index.
func (idx *Index) ComputeExtrema() Extrema {
	ex := Extrema{
		Highest: make(map[string]Entry, len(idx.byState)),
		Lowest:  make(map[string]Entry, len(idx.byState)),
	}
	for state, seq := range idx.byState {
		if len(seq) == 0 {
			continue
		}
		hi, lo := seq[0], seq[0]
		for _, e := range seq[1:] {
			if e.Value > hi.Value || (e.Value == hi.Value && e.Year > hi.Year) {
				hi = e
			}
			if e.Value < lo.Value || (e.Value == lo.Value && e.Year > lo.Year) {
				lo = e
			}
		}
		ex.Highest[state] = hi
		ex.Lowest[state] = lo
	}
	return ex
}
