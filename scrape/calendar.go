/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scrape

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed tour_calendar.txt
var tourCalendarData string

// TournamentVenue holds the static calendar facts for one tour-level
// tournament.
type TournamentVenue struct {
	City    string
	Country string
	Surface string
	Dates   string
}

// TourCalendar returns the season's tour-level calendar keyed by
// lowercased canonical tournament name. The table mirrors the calendar
// as published at the start of the season; mid-season venue moves are
// not tracked.
func TourCalendar() map[string]TournamentVenue {
	cal := make(map[string]TournamentVenue)

	scanner := bufio.NewScanner(strings.NewReader(tourCalendarData))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			panic(fmt.Sprintf("failed to parse calendar line: %v", line))
		}
		cal[strings.ToLower(strings.TrimSpace(fields[0]))] = TournamentVenue{
			City:    strings.TrimSpace(fields[1]),
			Country: strings.TrimSpace(fields[2]),
			Surface: strings.TrimSpace(fields[3]),
			Dates:   strings.TrimSpace(fields[4]),
		}
	}
	if scanner.Err() != nil {
		panic(fmt.Sprintf("failed to parse calendar: %v", scanner.Err()))
	}

	return cal
}
