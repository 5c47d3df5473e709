// Package turnout indexes normalized voter-turnout records for rendering.
package turnout

// Record is one normalized turnout observation: the share of the
// voting-eligible population that voted in a state in a presidential
// election year. Records are produced offline by the import pipeline and
// treated as pre-validated input.
type Record struct {
	State   string  `json:"state"`
	Year    int     `json:"year"`
	Turnout float64 `json:"turnout"`
}

// Entry pairs a turnout value with the year it was observed. It is the
// unit the map views consume: the primary map carries just the value, the
// summary maps carry value plus year.
type Entry struct {
	Value float64 `json:"value"`
	Year  int     `json:"year,omitempty"`
}

// Extrema holds, per state, the highest and lowest turnout observation
// across all recorded years.
type Extrema struct {
	Highest map[string]Entry `json:"highest"`
	Lowest  map[string]Entry `json:"lowest"`
}
