// Package timeline tracks the selected election year and its candidate
// annotation, and drives the primary map on year changes.
package timeline

// Candidates annotates one election year with the major-party ticket
// outcome shown next to the active year marker.
type Candidates struct {
	Winner      string `json:"winner"`
	WinnerParty string `json:"winnerParty"`
	Loser       string `json:"loser"`
	LoserParty  string `json:"loserParty"`
}

// candidatesByYear covers every presidential election in the default
// year sequence.
var candidatesByYear = map[int]Candidates{
	1980: {Winner: "Ronald Reagan", WinnerParty: "R", Loser: "Jimmy Carter", LoserParty: "D"},
	1984: {Winner: "Ronald Reagan", WinnerParty: "R", Loser: "Walter Mondale", LoserParty: "D"},
	1988: {Winner: "George H. W. Bush", WinnerParty: "R", Loser: "Michael Dukakis", LoserParty: "D"},
	1992: {Winner: "Bill Clinton", WinnerParty: "D", Loser: "George H. W. Bush", LoserParty: "R"},
	1996: {Winner: "Bill Clinton", WinnerParty: "D", Loser: "Bob Dole", LoserParty: "R"},
	2000: {Winner: "George W. Bush", WinnerParty: "R", Loser: "Al Gore", LoserParty: "D"},
	2004: {Winner: "George W. Bush", WinnerParty: "R", Loser: "John Kerry", LoserParty: "D"},
	2008: {Winner: "Barack Obama", WinnerParty: "D", Loser: "John McCain", LoserParty: "R"},
	2012: {Winner: "Barack Obama", WinnerParty: "D", Loser: "Mitt Romney", LoserParty: "R"},
	2016: {Winner: "Donald Trump", WinnerParty: "R", Loser: "Hillary Clinton", LoserParty: "D"},
	2020: {Winner: "Joe Biden", WinnerParty: "D", Loser: "Donald Trump", LoserParty: "R"},
	2024: {Winner: "Donald Trump", WinnerParty: "R", Loser: "Kamala Harris", LoserParty: "D"},
}

// CandidatesFor returns the annotation for a year, if one exists.
func CandidatesFor(year int) (Candidates, bool) {
	c, ok := candidatesByYear[year]
	return c, ok
}

// DefaultYears is the presidential election year sequence the timeline
// scrubs through. It is configuration: a year listed here may have no
// records under the active data source.
func DefaultYears() []int {
	return []int{1980, 1984, 1988, 1992, 1996, 2000, 2004, 2008, 2012, 2016, 2020, 2024}
}

// Controller holds the current position in a fixed year sequence. The
// index is always in range by construction; every mutation clamps.
type Controller struct {
	years    []int
	index    int
	onChange func(year int)
}

// New creates a controller positioned at the last year of the sequence.
// onChange fires on every effective position change; it may be nil.
func New(years []int, onChange func(year int)) *Controller {
	c := &Controller{years: years, onChange: onChange}
	if len(years) > 0 {
		c.index = len(years) - 1
	}
	return c
}

// Years returns the configured sequence.
func (c *Controller) Years() []int {
	out := make([]int, len(c.years))
	copy(out, c.years)
	return out
}

// Active returns the selected year, or 0 for an empty sequence.
func (c *Controller) Active() int {
	if len(c.years) == 0 {
		return 0
	}
	return c.years[c.index]
}

// ActiveCandidates returns the annotation for the selected year. Only
// the active year shows its annotation.
func (c *Controller) ActiveCandidates() (Candidates, bool) {
	return CandidatesFor(c.Active())
}

// Index returns the current position.
func (c *Controller) Index() int { return c.index }

// SetIndex moves to position i, clamped to the sequence bounds.
func (c *Controller) SetIndex(i int) {
	if len(c.years) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(c.years) {
		i = len(c.years) - 1
	}
	if i == c.index {
		return
	}
	c.index = i
	if c.onChange != nil {
		c.onChange(c.years[c.index])
	}
}

// SetYear selects a year by value; unknown years are ignored.
func (c *Controller) SetYear(year int) {
	for i, y := range c.years {
		if y == year {
			c.SetIndex(i)
			return
		}
	}
}

// Next advances one year, stopping at the end (right arrow key).
func (c *Controller) Next() { c.SetIndex(c.index + 1) }

// Prev steps back one year, stopping at the start (left arrow key).
func (c *Controller) Prev() { c.SetIndex(c.index - 1) }
