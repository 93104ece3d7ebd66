/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scrape

import (
	"testing"
)

func TestTourCalendar(t *testing.T) {
	cal := TourCalendar()

	if len(cal) < 50 {
		t.Fatalf("expected a full season calendar, got %v entries", len(cal))
	}

	wimbledon, ok := cal["wimbledon"]
	if !ok {
		t.Fatal("missing wimbledon")
	}
	want := TournamentVenue{
		City:    "London",
		Country: "Great Britain",
		Surface: "Grass",
		Dates:   "29 Jun - 12 Jul",
	}
	if wimbledon != want {
		t.Errorf("wimbledon = %+v; want %+v", wimbledon, want)
	}

	// The calendar key is the tournament name; the venue city can
	// differ.
	if mc := cal["monte carlo"]; mc.City != "Monte-Carlo" || mc.Country != "Monaco" {
		t.Errorf("monte carlo = %+v; want Monte-Carlo, Monaco", mc)
	}

	if _, ok := cal["no such event"]; ok {
		t.Error("unexpected entry for unknown tournament")
	}
}
