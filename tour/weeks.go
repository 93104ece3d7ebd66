/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var monthNums = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

var monthAbbrevs = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May",
	"Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var (
	monthFirstRe = regexp.MustCompile(`^(\w{3})\s+(\d{1,2})`)
	dayFirstRe   = regexp.MustCompile(`^(\d{1,2})\s+(\w{3})\s*(?:-|to)`)
	dayRangeRe   = regexp.MustCompile(`^(\d{1,2})\s*(?:-|to)\s*\d{1,2}\s+(\w{3})`)
	weekNumRe    = regexp.MustCompile(`^Week\s+(\d+)`)
	weekMarkerRe = regexp.MustCompile(`\s*[❔?]\s*$`)
)

// monthNum resolves a 3-letter month abbreviation in any casing.
func monthNum(abbr string) (int, bool) {
	if len(abbr) != 3 {
		return 0, false
	}
	abbr = strings.ToUpper(abbr[:1]) + strings.ToLower(abbr[1:])
	num, ok := monthNums[abbr]
	return num, ok
}

// ExtractStartDate parses the start (month, day) out of any week label
// format the sources produce:
//
//	"Feb 16"                 -> (2, 16)
//	"Feb 9-15"               -> (2, 9)
//	"Feb 23 - Mar 1"         -> (2, 23)
//	"09 Feb to 15 Feb 2026"  -> (2, 9)
//	"16 Feb - 22 Feb 2026"   -> (2, 16)
//	"16 - 22 Feb 2026"       -> (2, 16)
//
// ok is false when the label carries no recognizable start date.
func ExtractStartDate(week string) (month int, day int, ok bool) {
	if week == "" {
		return 0, 0, false
	}

	if m := monthFirstRe.FindStringSubmatch(week); m != nil {
		if num, found := monthNum(m[1]); found {
			day, _ := strconv.Atoi(m[2])
			return num, day, true
		}
	}

	// "DD Mon - DD Mon YYYY" as emitted by the ITF calendar
	if m := dayFirstRe.FindStringSubmatch(week); m != nil {
		if num, found := monthNum(m[2]); found {
			day, _ := strconv.Atoi(m[1])
			return num, day, true
		}
	}

	// "DD - DD Mon YYYY" with the month named once
	if m := dayRangeRe.FindStringSubmatch(week); m != nil {
		if num, found := monthNum(m[2]); found {
			day, _ := strconv.Atoi(m[1])
			return num, day, true
		}
	}

	return 0, 0, false
}

// NormalizeWeek canonicalizes a week label to "Mon D" form using its
// start date, after dropping the trailing tentative markers some
// sources append. Labels with no recognizable date pass through with
// only the markers removed. Canonicalizing merges overlapping labels
// from different sources ("Feb 16" and "Feb 16-22" both become
// "Feb 16").
func NormalizeWeek(week string) string {
	week = strings.TrimSpace(weekMarkerRe.ReplaceAllString(week, ""))

	month, day, ok := ExtractStartDate(week)
	if !ok {
		return week
	}
	return fmt.Sprintf("%s %d", monthAbbrevs[month], day)
}

// MergeCloseWeeks builds a mapping from each week label to a canonical
// one. Labels whose start dates fall within 5 days of the earliest in
// their run merge to it; this reconciles sources that disagree on the
// exact Monday of a tournament week. Undated labels map to themselves.
func MergeCloseWeeks(weeks []string) map[string]string {
	type datedWeek struct {
		sortKey int
		label   string
	}

	seen := make(map[string]bool)
	var dated []datedWeek
	var undated []string
	for _, w := range weeks {
		if seen[w] {
			continue
		}
		seen[w] = true
		if month, day, ok := ExtractStartDate(w); ok {
			dated = append(dated, datedWeek{month*100 + day, w})
		} else {
			undated = append(undated, w)
		}
	}

	sort.Slice(dated, func(i, j int) bool {
		if dated[i].sortKey != dated[j].sortKey {
			return dated[i].sortKey < dated[j].sortKey
		}
		return dated[i].label < dated[j].label
	})

	mergeMap := make(map[string]string)
	var groupKey int
	var groupCanonical string
	for idx, dw := range dated {
		if idx == 0 || dw.sortKey-groupKey > 5 {
			groupKey = dw.sortKey
			groupCanonical = dw.label
		}
		mergeMap[dw.label] = groupCanonical
	}

	for _, w := range undated {
		mergeMap[w] = w
	}

	return mergeMap
}

// WeekSortKey orders week labels chronologically: dated labels first
// by start date, then "Week N" placeholders by N, then everything
// else. Compare the pair lexicographically.
func WeekSortKey(week string) (int, int) {
	if week == "" {
		return 2, 0
	}

	if month, day, ok := ExtractStartDate(week); ok {
		return 0, month*100 + day
	}

	if m := weekNumRe.FindStringSubmatch(week); m != nil {
		n, _ := strconv.Atoi(m[1])
		return 1, n
	}

	return 2, 0
}

// WeekLess reports whether week label a sorts before b under
// WeekSortKey ordering.
func WeekLess(a, b string) bool {
	ak, ak2 := WeekSortKey(a)
	bk, bk2 := WeekSortKey(b)
	if ak != bk {
		return ak < bk
	}
	return ak2 < bk2
}

// FilterCurrentWeeks keeps only the current/upcoming portion of the
// dataset's week horizon, plus a 10 day trailing grace window for
// in-progress events. Labels carry no year, so each parses against
// now's year and rolls forward a year when that lands more than 180
// days in the past (December datasets referencing January weeks).
// Unparseable labels are retained rather than dropped. Order is
// preserved.
func FilterCurrentWeeks(labels []string, now time.Time) []string {
	cutoff := now.AddDate(0, 0, -10)

	kept := make([]string, 0, len(labels))
	for _, label := range labels {
		parsed, ok := parseWeekDate(label, now)
		if !ok || !parsed.Before(cutoff) {
			kept = append(kept, label)
		}
	}
	return kept
}

// parseWeekDate resolves a "Mon DD" style label to a concrete date
// near now. ok is false for labels that do not parse.
func parseWeekDate(label string, now time.Time) (time.Time, bool) {
	tokens := strings.Fields(label)
	if len(tokens) < 2 {
		return time.Time{}, false
	}

	month, found := monthNum(tokens[0])
	if !found {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimRight(tokens[1], ","))
	if err != nil {
		return time.Time{}, false
	}

	parsed := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0,
		now.Location())
	if now.Sub(parsed) > 180*24*time.Hour {
		parsed = parsed.AddDate(1, 0, 0)
	}

	return parsed, true
}
