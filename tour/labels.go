/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"strings"
)

// TierClass maps a tier label to its badge class. Substring tests run
// in a fixed order so "ATP Challenger 125" classifies as challenger,
// not 125. Unknown tiers fall back to "badge-other".
func TierClass(tier string) string {
	t := strings.ToLower(tier)
	switch {
	case strings.Contains(t, "1000"):
		return "badge-1000"
	case strings.Contains(t, "500"):
		return "badge-500"
	case strings.Contains(t, "250"):
		return "badge-250"
	case strings.Contains(t, "challenger"):
		return "badge-challenger"
	case strings.Contains(t, "125"):
		return "badge-125"
	case strings.Contains(t, "itf"):
		return "badge-itf"
	}
	return "badge-other"
}

// tierOrder fixes the browsing precedence of known tier labels. Lower
// sorts first. Unlisted tiers get unlistedTierOrder and land last.
var tierOrder = map[string]int{
	"Grand Slam":         0,
	"ATP 1000":           1,
	"WTA 1000":           1,
	"ATP 500":            2,
	"WTA 500":            2,
	"ATP 250":            3,
	"WTA 250":            3,
	"ATP":                4,
	"WTA":                4,
	"ATP Challenger 175": 5,
	"ATP Challenger 125": 6,
	"ATP Challenger 100": 7,
	"ATP Challenger 75":  8,
	"ATP Challenger 50":  9,
	"ATP Challenger":     10,
	"WTA 125":            11,
}

const unlistedTierOrder = 99

// TierPrecedence returns the browsing sort position for a tier label.
func TierPrecedence(tier string) int {
	if p, ok := tierOrder[tier]; ok {
		return p
	}
	return unlistedTierOrder
}

// ShortSection abbreviates a draw-section label for narrow columns.
// Unknown sections abbreviate to their first three runes uppercased.
func ShortSection(section string) string {
	s := strings.ToLower(section)
	switch {
	case strings.Contains(s, "main"):
		return "MD"
	case s == "qualifying":
		return "Q"
	case strings.Contains(s, "qual") && strings.Contains(s, "alt"):
		return "QA"
	case strings.Contains(s, "qual") &&
		(strings.Contains(s, "wc") || strings.Contains(s, "wild")):
		return "QWC"
	case strings.Contains(s, "alt"):
		return "ALT"
	case strings.Contains(s, "wild"):
		return "WC"
	}

	r := []rune(section)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// sectionOrder fixes how sections group within a tournament detail,
// main draw first. Unknown sections land after the known set.
var sectionOrder = map[string]int{
	"Main Draw":      0,
	"Qualifying":     1,
	"Qualifying WC":  2,
	"Qualifying Alt": 3,
	"Alternates":     4,
	"Wild Card":      5,
}

// SectionPrecedence returns the grouping sort position for a section.
func SectionPrecedence(section string) int {
	if p, ok := sectionOrder[section]; ok {
		return p
	}
	return len(sectionOrder)
}

// countryNames maps the IOC-style codes the rankings sources emit to
// display names. Codes absent here pass through unchanged.
var countryNames = map[string]string{
	"ARG": "Argentina",
	"AUS": "Australia",
	"AUT": "Austria",
	"BEL": "Belgium",
	"BIH": "Bosnia and Herzegovina",
	"BLR": "Belarus",
	"BOL": "Bolivia",
	"BRA": "Brazil",
	"BUL": "Bulgaria",
	"CAN": "Canada",
	"CHI": "Chile",
	"CHN": "China",
	"COL": "Colombia",
	"CRO": "Croatia",
	"CYP": "Cyprus",
	"CZE": "Czechia",
	"DEN": "Denmark",
	"ECU": "Ecuador",
	"EGY": "Egypt",
	"ESP": "Spain",
	"EST": "Estonia",
	"FIN": "Finland",
	"FRA": "France",
	"GBR": "Great Britain",
	"GEO": "Georgia",
	"GER": "Germany",
	"GRE": "Greece",
	"HKG": "Hong Kong",
	"HUN": "Hungary",
	"INA": "Indonesia",
	"IND": "India",
	"IRL": "Ireland",
	"ISR": "Israel",
	"ITA": "Italy",
	"JPN": "Japan",
	"KAZ": "Kazakhstan",
	"KOR": "South Korea",
	"LAT": "Latvia",
	"LTU": "Lithuania",
	"MAR": "Morocco",
	"MDA": "Moldova",
	"MEX": "Mexico",
	"MON": "Monaco",
	"NED": "Netherlands",
	"NOR": "Norway",
	"NZL": "New Zealand",
	"PER": "Peru",
	"PHI": "Philippines",
	"POL": "Poland",
	"POR": "Portugal",
	"QAT": "Qatar",
	"ROU": "Romania",
	"RSA": "South Africa",
	"RUS": "Russia",
	"SRB": "Serbia",
	"SUI": "Switzerland",
	"SVK": "Slovakia",
	"SLO": "Slovenia",
	"SWE": "Sweden",
	"THA": "Thailand",
	"TPE": "Chinese Taipei",
	"TUN": "Tunisia",
	"TUR": "Turkey",
	"UKR": "Ukraine",
	"URU": "Uruguay",
	"USA": "United States",
	"UZB": "Uzbekistan",
	"VEN": "Venezuela",
	"VIE": "Vietnam",
}

// CountryName resolves an IOC-style country code to a display name,
// passing unknown codes through as-is.
func CountryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// entryMethodNames expands the entry-method indicators carried on
// acceptance lists.
var entryMethodNames = map[string]string{
	"WC": "Wild Card",
	"PR": "Protected Ranking",
	"LL": "Lucky Loser",
	"SE": "Special Exempt",
}

// EntryMethodName resolves an entry-method code to a display name,
// passing unknown codes through as-is.
func EntryMethodName(code string) string {
	if name, ok := entryMethodNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}
