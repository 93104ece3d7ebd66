/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"strings"
	"testing"
)

const testDatasetJSON = `{
  "players": [
    {"rank": 1, "name": "Milan Kovac", "gender": "Men", "country": "SRB",
     "entries": [
       {"tournament": "Doha", "tier": "ATP 500", "week": "Feb 16",
        "section": "Main Draw", "source": "atp"},
       {"tournament": "Dubai", "tier": "ATP 500", "week": "Feb 23",
        "section": "Main Draw", "source": "atp", "withdrawn": true,
        "withdrawalType": "WD"}
     ]},
    {"rank": 2, "name": "Iva Maric", "gender": "Women", "country": "CRO",
     "entries": []}
  ],
  "weeks": ["Feb 16", "Feb 23"],
  "tournaments": [
    {"name": "Doha", "tier": "ATP 500", "gender": "Men", "surface": "Hard",
     "city": "Doha", "country": "Qatar", "dates": "16 Feb - 22 Feb",
     "week": "Feb 16", "playerCount": 1, "sections": ["Main Draw"]}
  ],
  "stats": {"totalPlayers": 2, "playersWithEntries": 1, "totalEntries": 2,
   "uniqueTournaments": 2, "generatedAt": "2026-02-10 14:05"},
  "fullEntries": {
    "canberra|women": {"name": "Canberra", "tier": "WTA 125",
     "week": "Feb 16", "gender": "Women",
     "players": [{"n": "Iva Maric", "r": 2, "c": "CRO", "s": "Main Draw"}]}
  },
  "itfTournaments": [
    {"name": "Cancun", "tier": "W35", "gender": "Women", "week": "Feb 16",
     "dates": "16 Feb to 22 Feb 2026"}
  ],
  "itfEntries": {
    "cancun|itf|women|feb 16": {"name": "Cancun", "tier": "W35",
     "gender": "Women", "week": "Feb 16",
     "players": [{"n": "Ana Lopez", "r": 310, "c": "MEX", "s": "Main Draw"}]}
  }
}`

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset(strings.NewReader(testDatasetJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ds.Players) != 2 {
		t.Fatalf("Players count = %v; want 2", len(ds.Players))
	}
	if ds.Players[0].Name != "Milan Kovac" || ds.Players[0].Rank != 1 {
		t.Errorf("Players[0] = %v #%v; want Milan Kovac #1",
			ds.Players[0].Name, ds.Players[0].Rank)
	}
	if len(ds.Players[0].Entries) != 2 {
		t.Fatalf("Players[0] entries = %v; want 2", len(ds.Players[0].Entries))
	}
	if !ds.Players[0].Entries[1].Withdrawn {
		t.Errorf("expected second entry to be withdrawn")
	}
	if ds.Stats.TotalEntries != 2 {
		t.Errorf("Stats.TotalEntries = %v; want 2", ds.Stats.TotalEntries)
	}
	if _, ok := ds.FullEntries["canberra|women"]; !ok {
		t.Errorf("expected fullEntries key %q", "canberra|women")
	}
	if _, ok := ds.ItfEntries["cancun|itf|women|feb 16"]; !ok {
		t.Errorf("expected itfEntries key %q", "cancun|itf|women|feb 16")
	}
}

func TestLoadDatasetDataJsForm(t *testing.T) {
	// the published site wraps the JSON in a JS assignment
	wrapped := "window.TENNIS_DATA=" + testDatasetJSON + ";"

	ds, err := LoadDataset(strings.NewReader(wrapped))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Players) != 2 || len(ds.Weeks) != 2 {
		t.Errorf("data.js form: players = %v, weeks = %v; want 2, 2",
			len(ds.Players), len(ds.Weeks))
	}
}

func TestLoadDatasetBadInput(t *testing.T) {
	_, err := LoadDataset(strings.NewReader("window.TENNIS_DATA=nonsense;"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unable to load dataset") {
		t.Errorf("error = %v; want dataset load error", err)
	}
}

func TestGeneratedAtTime(t *testing.T) {
	s := Stats{GeneratedAt: "2026-02-10 14:05"}
	got := s.GeneratedAtTime()
	if got.IsZero() {
		t.Fatal("expected parseable generatedAt")
	}
	if got.Year() != 2026 || got.Hour() != 14 {
		t.Errorf("GeneratedAtTime = %v; want 2026-02-10 14:05", got)
	}

	if !(Stats{}).GeneratedAtTime().IsZero() {
		t.Errorf("empty generatedAt should produce the zero time")
	}
}
