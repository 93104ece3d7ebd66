/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package site

import (
	"reflect"
	"testing"
	"time"

	"github.com/mikeb26/tennistour-entrybot/match"
	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

func TestBuildDataset(t *testing.T) {
	players := []rankings.RankedPlayer{
		{Name: "Carlos Alcaraz", Rank: 2, Gender: "M", Country: "ESP"},
		{Name: "Iga Swiatek", Rank: 1, Gender: "F", Country: "POL"},
	}
	entryMap := map[string][]scrape.Entry{
		"Carlos Alcaraz|M": {
			{Tournament: "Qatar ExxonMobil Open", Tier: "ATP 500",
				Week: "Feb 16-22", Section: "Main Draw", Gender: "M",
				Source: scrape.SourceTickTock},
			// Same event under its city name from a second source, one
			// day off; canonicalization and week merging collapse it.
			{Tournament: "Doha", Tier: "ATP 500", Week: "Feb 17 ❔",
				Section: "Main Draw", Gender: "M",
				Source: scrape.SourceTickTock},
			{Tournament: "Wimbledon", Tier: "Grand Slam", Week: "Jun 29",
				Section: "Main Draw", Gender: "M",
				Source: scrape.SourceTickTock},
		},
		"Iga Swiatek|F": {
			{Tournament: "Doha", Tier: "WTA 1000", Week: "Feb 16",
				Section: "Main Draw", Gender: "F", Withdrawn: true,
				Source: scrape.SourceWTAOfficial},
		},
	}

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ds := BuildDataset(players, entryMap, nil, nil, now)

	if len(ds.Players) != 2 {
		t.Fatalf("dataset has %v players; want 2", len(ds.Players))
	}
	if ds.Players[0].Name != "Iga Swiatek" || ds.Players[0].Gender != "Women" {
		t.Errorf("Players[0] = %v (%v); want Iga Swiatek (Women) first",
			ds.Players[0].Name, ds.Players[0].Gender)
	}

	alcaraz := ds.Players[1]
	if len(alcaraz.Entries) != 2 {
		t.Fatalf("Alcaraz has %v entries; want 2 after dedupe: %+v",
			len(alcaraz.Entries), alcaraz.Entries)
	}
	want := tour.Entry{Tournament: "Doha", Tier: "ATP 500", Week: "Feb 16",
		Section: "Main Draw", Source: "Tick Tock Tennis"}
	if alcaraz.Entries[0] != want {
		t.Errorf("Alcaraz entry = %+v; want %+v", alcaraz.Entries[0], want)
	}
	if alcaraz.Entries[1].Tournament != "Wimbledon" {
		t.Errorf("Alcaraz entries not week ordered: %+v", alcaraz.Entries)
	}

	if !ds.Players[0].Entries[0].Withdrawn {
		t.Errorf("Swiatek withdrawal flag lost: %+v", ds.Players[0].Entries[0])
	}

	wantWeeks := []string{"Feb 16", "Jun 29"}
	if !reflect.DeepEqual(ds.Weeks, wantWeeks) {
		t.Errorf("Weeks = %v; want %v", ds.Weeks, wantWeeks)
	}

	if len(ds.Tournaments) != 3 {
		t.Fatalf("dataset has %v tournaments; want 3: %+v",
			len(ds.Tournaments), ds.Tournaments)
	}
	for _, meta := range ds.Tournaments {
		if meta.Name == "Wimbledon" {
			if meta.City != "London" || meta.Surface != "Grass" {
				t.Errorf("Wimbledon not enriched from calendar: %+v", meta)
			}
			if meta.PlayerCount != 1 || meta.Gender != "Men" {
				t.Errorf("Wimbledon aggregate = %+v", meta)
			}
		}
	}
	if ds.Tournaments[2].Name != "Wimbledon" {
		t.Errorf("tournaments not week ordered: last = %v",
			ds.Tournaments[2].Name)
	}

	stats := ds.Stats
	if stats.TotalPlayers != 2 || stats.PlayersWithEntries != 2 ||
		stats.TotalEntries != 3 || stats.UniqueTournaments != 3 {
		t.Errorf("Stats = %+v; want 2/2/3/3", stats)
	}
	if stats.GeneratedAt != "2026-02-01 12:00" {
		t.Errorf("GeneratedAt = %v; want 2026-02-01 12:00",
			stats.GeneratedAt)
	}
}

func TestBuildDatasetFullEntries(t *testing.T) {
	players := []rankings.RankedPlayer{
		{Name: "Pablo Ruiz", Rank: 150, Gender: "M", Country: "ESP"},
	}
	entryMap := map[string][]scrape.Entry{
		"Pablo Ruiz|M": {
			{Tournament: "Canberra", Tier: "Challenger 75", Week: "Feb 16",
				Section: "Main Draw", Gender: "M",
				Source: scrape.SourceTickTock},
		},
	}
	rawFull := []scrape.Entry{
		{Tournament: "Canberra", Tier: "Challenger 75", Week: "Feb 16",
			Section: "Main Draw", PlayerName: "Pablo Ruiz", PlayerRank: 150,
			PlayerCountry: "ESP", Gender: "M", Source: scrape.SourceTickTock},
		{Tournament: "Canberra", Tier: "Challenger 75", Week: "Feb 16",
			Section: "Main Draw", PlayerName: "Jiri Vesely", Gender: "M",
			Source: scrape.SourceTickTock},
		// Repeat of Vesely with rank and country known; the first row
		// gets backfilled rather than duplicated.
		{Tournament: "Canberra", Tier: "Challenger 75", Week: "Feb 16",
			Section: "Main Draw", PlayerName: "Jiri Vesely", PlayerRank: 420,
			PlayerCountry: "CZE", Gender: "M", Source: scrape.SourceTickTock},
	}

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ds := BuildDataset(players, entryMap, rawFull, nil, now)

	list, ok := ds.FullEntries["canberra|men"]
	if !ok {
		t.Fatalf("FullEntries missing key canberra|men; have %v",
			ds.FullEntries)
	}
	if list.Name != "Canberra" || list.Tier != "Challenger 75" ||
		list.Gender != "Men" || list.Week != "Feb 16" {
		t.Errorf("full list header = %+v", list)
	}
	if len(list.Players) != 2 {
		t.Fatalf("full list has %v players; want 2: %+v",
			len(list.Players), list.Players)
	}
	if list.Players[0].Name != "Pablo Ruiz" {
		t.Errorf("full list not rank ordered: %+v", list.Players)
	}
	vesely := list.Players[1]
	if vesely.Rank != 420 || vesely.Country != "CZE" {
		t.Errorf("duplicate row not backfilled: %+v", vesely)
	}

	// The override key must line up with the key the read-side index
	// derives from the matched player entries.
	idx := tour.BuildIndexes(ds, now)
	agg, ok := idx.Tournaments[tour.NewTournamentKey("Canberra", "Men")]
	if !ok {
		t.Fatal("tournament index missing Canberra aggregate")
	}
	if !agg.HasFullList {
		t.Errorf("aggregate not marked HasFullList: %+v", agg)
	}
	if len(agg.Entrants) != 2 {
		t.Errorf("aggregate has %v entrants; want the full list's 2",
			len(agg.Entrants))
	}
}

func TestBuildDatasetItf(t *testing.T) {
	players := []rankings.RankedPlayer{
		{Name: "Maya Joint", Rank: 800, Gender: "F", Country: "AUS"},
	}
	entryMap := map[string][]scrape.Entry{"Maya Joint|F": nil}

	monastir := tour.NewItfKey("W15 Monastir", "ITF", "Women", "Feb 23").String()
	sharm := tour.NewItfKey("W15 Sharm El Sheikh", "ITF", "Women", "Feb 16").String()
	itf := &scrape.ItfResult{
		Lists: map[string]tour.ItfEntryList{
			monastir: {Name: "W15 Monastir", Tier: "ITF", Gender: "Women",
				Week: "Feb 23", Dates: "23 Feb - 1 Mar 2026",
				Players: []tour.ListPlayer{{Name: "Maya Joint", Rank: 800}}},
			sharm: {Name: "W15 Sharm El Sheikh", Tier: "ITF",
				Gender: "Women", Week: "Feb 16",
				Players: []tour.ListPlayer{{Name: "Lucie Havlickova"}}},
		},
	}

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ds := BuildDataset(players, entryMap, nil, itf, now)

	if len(ds.ItfTournaments) != 2 {
		t.Fatalf("dataset has %v ITF tournaments; want 2",
			len(ds.ItfTournaments))
	}
	if ds.ItfTournaments[0].Name != "W15 Sharm El Sheikh" {
		t.Errorf("ITF tournaments not week ordered: %+v", ds.ItfTournaments)
	}
	if len(ds.ItfEntries) != 2 {
		t.Errorf("dataset has %v ITF lists; want 2", len(ds.ItfEntries))
	}
	if _, ok := ds.ItfEntries[monastir]; !ok {
		t.Errorf("ITF lists missing key %q", monastir)
	}
}

func TestBuildDatasetEmpty(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ds := BuildDataset(nil, nil, nil, nil, now)

	if len(ds.Players) != 0 || len(ds.Weeks) != 0 || len(ds.Tournaments) != 0 {
		t.Errorf("empty inputs produced non-empty dataset: %+v", ds)
	}
	if ds.FullEntries != nil {
		t.Errorf("FullEntries = %v; want nil for empty input", ds.FullEntries)
	}
	if ds.Stats.TotalPlayers != 0 {
		t.Errorf("Stats = %+v; want zeroes", ds.Stats)
	}
}

func TestPlayerKeyAgreement(t *testing.T) {
	// BuildDataset looks entries up under the same key the matcher
	// stores them under.
	p := rankings.RankedPlayer{Name: "Iga Swiatek", Gender: "F"}
	if got := match.PlayerKey(p); got != "Iga Swiatek|F" {
		t.Errorf("PlayerKey = %q; want %q", got, "Iga Swiatek|F")
	}
}
