// Package region maps Census FIPS codes to canonical state names.
package region

import (
	"sort"
	"strings"
)

// Unknown is returned by Resolve for any code outside the 51-entry table.
const Unknown = "Unknown"

// fipsNames covers the 50 states plus the District of Columbia, keyed by
// the two-digit FIPS state code. Codes 03, 07, 14, 43 and 52 are unassigned.
var fipsNames = map[string]string{
	"01": "Alabama",
	"02": "Alaska",
	"04": "Arizona",
	"05": "Arkansas",
	"06": "California",
	"08": "Colorado",
	"09": "Connecticut",
	"10": "Delaware",
	"11": "District of Columbia",
	"12": "Florida",
	"13": "Georgia",
	"15": "Hawaii",
	"16": "Idaho",
	"17": "Illinois",
	"18": "Indiana",
	"19": "Iowa",
	"20": "Kansas",
	"21": "Kentucky",
	"22": "Louisiana",
	"23": "Maine",
	"24": "Maryland",
	"25": "Massachusetts",
	"26": "Michigan",
	"27": "Minnesota",
	"28": "Mississippi",
	"29": "Missouri",
	"30": "Montana",
	"31": "Nebraska",
	"32": "Nevada",
	"33": "New Hampshire",
	"34": "New Jersey",
	"35": "New Mexico",
	"36": "New York",
	"37": "North Carolina",
	"38": "North Dakota",
	"39": "Ohio",
	"40": "Oklahoma",
	"41": "Oregon",
	"42": "Pennsylvania",
	"44": "Rhode Island",
	"45": "South Carolina",
	"46": "South Dakota",
	"47": "Tennessee",
	"48": "Texas",
	"49": "Utah",
	"50": "Vermont",
	"51": "Virginia",
	"53": "Washington",
	"54": "West Virginia",
	"55": "Wisconsin",
	"56": "Wyoming",
}

// Resolve returns the canonical state name for a FIPS state code.
// Codes shorter than two digits are zero-padded, so "6" and "06" both
// resolve to California. Unrecognized codes return Unknown; callers treat
// that as "no renderable match" rather than an error.
func Resolve(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 1 {
		code = "0" + code
	}
	if name, ok := fipsNames[code]; ok {
		return name
	}
	return Unknown
}

// Code returns the FIPS code for a canonical state name, or "" if the
// name is not one of the 51 known regions. Used by the import pipeline
// to validate normalized state names against the render table.
func Code(name string) string {
	for code, n := range fipsNames {
		if n == name {
			return code
		}
	}
	return ""
}

// Names returns all 51 canonical region names in FIPS-code order.
func Names() []string {
	names := make([]string, 0, len(fipsNames))
	for _, code := range Codes() {
		names = append(names, fipsNames[code])
	}
	return names
}

// Codes returns all valid FIPS codes in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(fipsNames))
	for code := range fipsNames {
		codes = append(codes, code)
	}
	// Codes are two-digit strings, so lexical order is numeric order.
	sort.Strings(codes)
	return codes
}
