package etl

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/electomaps/turnoutmap/internal/turnout"
)

func TestNormalizeSingleYear(t *testing.T) {
	csv := `2016 November General Election,,,
State,Status,VEP Turnout Rate (Highest Office),Total Ballots
United States,Final,60.1%,136669276
Alabama,Final,59.0%,2134061
Wyoming,Final,60.2%,258788
,,,
Note: VEP denotes voting-eligible population,,,
`
	records, err := Normalize(FormatSingleYear, strings.NewReader(csv), 2016)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []turnout.Record{
		{State: "Alabama", Year: 2016, Turnout: 59.0},
		{State: "Wyoming", Year: 2016, Turnout: 60.2},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(records), len(want), records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestNormalizeSingleYearMissingColumn(t *testing.T) {
	csv := `caption,,
State,Status,Ballots
Alabama,Final,2134061
`
	if _, err := Normalize(FormatSingleYear, strings.NewReader(csv), 2016); err == nil {
		t.Fatal("expected error for missing VEP column")
	}
}

func TestNormalizeMultiYear(t *testing.T) {
	csv := `1980-2014 November General Election,,,,,
Year,ICPSR Code,Alpha Code,State,VEP Highest Office,VAP Highest Office
1980,41,AL,Alabama,49.6%,47.5%
1980,0,US,United States,54.2%,52.8%
1984,41,AL,Alabama,50.2%,48.0%
Total,,,,,
`
	records, err := Normalize(FormatMultiYear, strings.NewReader(csv), 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(records), records)
	}
	if records[0] != (turnout.Record{State: "Alabama", Year: 1980, Turnout: 49.6}) {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Year != 1984 || records[1].Turnout != 50.2 {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestNormalizeWide2024(t *testing.T) {
	csv := `STATE,VEP_TURNOUT_RATE,TOTAL_BALLOTS
United States,63.60%,155238302
Texas,56.91%,11144845
Minnesota,76.36%,3241107
`
	records, err := Normalize(FormatWide2024, strings.NewReader(csv), 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0] != (turnout.Record{State: "Texas", Year: 2024, Turnout: 56.91}) {
		t.Errorf("first record = %+v", records[0])
	}
}

func TestNormalizeCensusPrefersCitizen(t *testing.T) {
	csv := `Table A-5,2020,,2016,,2012,
,Total,Citizen,Total,Citizen,Total,Citizen
,,,,,,
Alabama,59.8,63.1,56.0,59.1,56.1,59.0
United States,61.3,66.8,56.0,61.4,56.5,61.8
Alaska,64.2,68.0,60.1,63.5,58.2,60.9
`
	records, err := Normalize(FormatCensus, strings.NewReader(csv), 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	byKey := make(map[string]float64)
	for _, r := range records {
		byKey[r.State+"/"+strconv.Itoa(r.Year)] = r.Turnout
	}
	if got := byKey["Alabama/2020"]; got != 63.1 {
		t.Errorf("Alabama 2020 = %v, want the Citizen column 63.1", got)
	}
	if got := byKey["Alaska/2012"]; got != 60.9 {
		t.Errorf("Alaska 2012 = %v, want 60.9", got)
	}
	if _, ok := byKey["United States/2020"]; ok {
		t.Error("national aggregate row leaked into records")
	}
}

func TestCleanPercentage(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"54.2%", 54.2, true},
		{" 60.1 ", 60.1, true},
		{"1,234.5", 1234.5, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := cleanPercentage(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("cleanPercentage(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "normalized.json")

	records := []turnout.Record{
		{State: "Texas", Year: 2020, Turnout: 60.4},
		{State: "Maine", Year: 2020, Turnout: 79.2},
	}
	if err := WriteJSON(records, path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != 2 || got[0] != records[0] || got[1] != records[1] {
		t.Errorf("round trip = %+v, want %+v", got, records)
	}
}

func TestReadJSONIgnoresUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.json")
	data := `[{"state": "Texas", "year": 2020, "turnout": 60.4, "source_note": "final"}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != 1 || got[0].Turnout != 60.4 {
		t.Errorf("ReadJSON = %+v", got)
	}
}

func TestDiscoverAndGuessFormat(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"1980-2014 November General Election - Turnout Rates.csv",
		"2016 November General Election - Turnout Rates.csv",
		"2024-turnout.csv",
		"census-a5a.csv",
		"readme.txt",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Discover([]string{filepath.Join(dir, "**", "*.csv"), filepath.Join(dir, "*.csv")})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 4 {
		t.Errorf("Discover found %d files, want 4: %v", len(files), files)
	}

	cases := map[string]Format{
		names[0]: FormatMultiYear,
		names[1]: FormatSingleYear,
		names[2]: FormatWide2024,
		names[3]: FormatCensus,
		"mystery.csv": "",
	}
	for name, want := range cases {
		if got := GuessFormat(name); got != want {
			t.Errorf("GuessFormat(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestYearFromName(t *testing.T) {
	if got := YearFromName("2016 November General Election - Turnout Rates.csv"); got != 2016 {
		t.Errorf("YearFromName = %d, want 2016", got)
	}
	if got := YearFromName("turnout.csv"); got != 0 {
		t.Errorf("YearFromName(no year) = %d, want 0", got)
	}
}
