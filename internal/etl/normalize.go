// Package etl normalizes raw turnout exports into the flat record set
// the index consumes. It understands the U.S. Elections Project CSV
// layouts (which changed across years) and the Census voting-supplement
// table export.
package etl

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/electomaps/turnoutmap/internal/turnout"
)

// Format identifies a source file layout.
type Format string

const (
	// FormatMultiYear is the 1980-2014 Elections Project file: one row
	// per (year, state), year in column 0, state in column 3.
	FormatMultiYear Format = "multi-year"
	// FormatSingleYear is the 2016/2020 layout: one file per year, two
	// header rows, state in column 0.
	FormatSingleYear Format = "single-year"
	// FormatWide2024 is the 2024 layout: one header row with named
	// columns STATE and VEP_TURNOUT_RATE.
	FormatWide2024 Format = "2024"
	// FormatCensus is the CPS voting-supplement table export: blocks of
	// year columns with Total/Citizen subcolumns.
	FormatCensus Format = "census"
)

// vepColumns are the turnout column names seen across Elections Project
// releases.
var vepColumns = []string{
	"VEP Highest Office",
	"VEP Turnout Rate (Highest Office)",
	"VEP Turnout Rate (highest office)",
	"VEP turnout rate (Highest Office)",
}

// cleanPercentage parses "54.2%" or "54.2" into 54.2. Empty cells
// report ok=false rather than zero.
func cleanPercentage(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "%", ""), ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// skipRow reports whether a state cell is an aggregate or footnote row.
func skipRow(state string) bool {
	return state == "" || state == "United States" ||
		strings.HasPrefix(state, "Note:") || strings.HasPrefix(state, "*")
}

// Normalize parses one source file in the given format. year is only
// consulted for FormatSingleYear, where the file itself does not name
// its year.
func Normalize(format Format, r io.Reader, year int) ([]turnout.Record, error) {
	switch format {
	case FormatMultiYear:
		return normalizeMultiYear(r)
	case FormatSingleYear:
		return normalizeSingleYear(r, year)
	case FormatWide2024:
		return normalizeWide2024(r)
	case FormatCensus:
		return normalizeCensus(r)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // source files have ragged note rows
	return cr
}

func findVEPColumn(headers []string) int {
	for _, want := range vepColumns {
		for i, h := range headers {
			if strings.TrimSpace(h) == want {
				return i
			}
		}
	}
	return -1
}

// normalizeSingleYear handles the 2016 and 2020 files: a caption row,
// then the real header row, then data with the state in column 0.
func normalizeSingleYear(r io.Reader, year int) ([]turnout.Record, error) {
	cr := newReader(r)

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("reading caption row: %w", err)
	}
	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	turnoutIdx := findVEPColumn(headers)
	if turnoutIdx < 0 {
		return nil, fmt.Errorf("no VEP turnout column in headers %v", headers)
	}

	var records []turnout.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading data row: %w", err)
		}
		if len(row) <= turnoutIdx {
			continue
		}
		state := strings.TrimSpace(row[0])
		if skipRow(state) {
			continue
		}
		if v, ok := cleanPercentage(row[turnoutIdx]); ok {
			records = append(records, turnout.Record{State: state, Year: year, Turnout: v})
		}
	}
	return records, nil
}

// normalizeMultiYear handles the 1980-2014 file: two header rows, year
// in column 0, state in column 3.
func normalizeMultiYear(r io.Reader) ([]turnout.Record, error) {
	cr := newReader(r)

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("reading caption row: %w", err)
	}
	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	turnoutIdx := findVEPColumn(headers)
	if turnoutIdx < 0 {
		return nil, fmt.Errorf("no VEP turnout column in headers %v", headers)
	}

	const (
		yearIdx  = 0
		stateIdx = 3
	)

	var records []turnout.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading data row: %w", err)
		}
		if len(row) <= turnoutIdx || len(row) <= stateIdx {
			continue
		}
		yearStr := strings.TrimSpace(row[yearIdx])
		state := strings.TrimSpace(row[stateIdx])
		year, err := strconv.Atoi(yearStr)
		if err != nil || state == "United States" || state == "" {
			continue
		}
		if v, ok := cleanPercentage(row[turnoutIdx]); ok {
			records = append(records, turnout.Record{State: state, Year: year, Turnout: v})
		}
	}
	return records, nil
}

// normalizeWide2024 handles the 2024 release: named columns, matched
// case-insensitively because the header casing drifted between drafts.
func normalizeWide2024(r io.Reader) ([]turnout.Record, error) {
	cr := newReader(r)

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	stateIdx, turnoutIdx := -1, -1
	vepNames := []string{"vep_turnout_rate", "vep turnout rate", "vep turnout rate (highest office)"}
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "state" {
			stateIdx = i
		}
		for _, want := range vepNames {
			if key == want {
				turnoutIdx = i
			}
		}
	}
	if stateIdx < 0 || turnoutIdx < 0 {
		return nil, fmt.Errorf("missing STATE or VEP_TURNOUT_RATE column in headers %v", headers)
	}

	var records []turnout.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading data row: %w", err)
		}
		if len(row) <= stateIdx || len(row) <= turnoutIdx {
			continue
		}
		state := strings.TrimSpace(row[stateIdx])
		if skipRow(state) {
			continue
		}
		if v, ok := cleanPercentage(row[turnoutIdx]); ok {
			records = append(records, turnout.Record{State: state, Year: 2024, Turnout: v})
		}
	}
	return records, nil
}

// normalizeCensus handles the CPS table export. The sheet is a sequence
// of blocks: a header row of 4-digit years, a subheader row of
// Total/Citizen pairs, then one data row per state. Citizen percentages
// are preferred over Total when both exist.
func normalizeCensus(r io.Reader) ([]turnout.Record, error) {
	cr := newReader(r)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading census export: %w", err)
	}

	var records []turnout.Record
	i := 0
	for i < len(rows)-1 {
		yearCols := headerYears(rows[i])
		if len(yearCols) < 3 {
			i++
			continue
		}

		sub := rows[i+1]
		// year -> column holding the preferred percentage
		valueCol := make(map[int]int, len(yearCols))
		for col, year := range yearCols {
			chosen := -1
			for _, c := range []int{col, col + 1} {
				if c >= len(sub) {
					continue
				}
				s := strings.ToLower(strings.TrimSpace(sub[c]))
				if strings.HasPrefix(s, "citizen") {
					chosen = c
					break
				}
				if strings.HasPrefix(s, "total") && chosen < 0 {
					chosen = c
				}
			}
			if chosen >= 0 {
				valueCol[year] = chosen
			}
		}

		// Data rows start two rows below the year header and run until
		// the next block.
		j := i + 2
		for ; j < len(rows); j++ {
			if len(headerYears(rows[j])) >= 3 {
				break
			}
			row := rows[j]
			if len(row) == 0 {
				continue
			}
			state := strings.TrimSpace(row[0])
			if skipRow(state) {
				continue
			}
			for year, col := range valueCol {
				if col >= len(row) {
					continue
				}
				if v, ok := cleanPercentage(row[col]); ok {
					records = append(records, turnout.Record{State: state, Year: year, Turnout: v})
				}
			}
		}
		i = j
	}
	return records, nil
}

// headerYears maps column index -> year for cells holding a plausible
// 4-digit election year.
func headerYears(row []string) map[int]int {
	years := make(map[int]int)
	for j := 1; j < len(row); j++ {
		s := strings.TrimSpace(row[j])
		if len(s) != 4 {
			continue
		}
		y, err := strconv.Atoi(s)
		if err == nil && y >= 1900 && y <= 2100 {
			years[j] = y
		}
	}
	return years
}

// WriteJSON writes normalized records to path as a JSON array, the
// shape downstream consumers load.
func WriteJSON(records []turnout.Record, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a normalized record file. Unknown fields in the source
// objects are ignored.
func ReadJSON(path string) ([]turnout.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []turnout.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
