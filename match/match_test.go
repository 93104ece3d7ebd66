/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package match

import (
	"testing"

	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Carlos Alcaraz", "carlos alcaraz"},
		{"accented", "Djoković", "djokovic"},
		{"last comma first", "Alcaraz Garfia, Carlos", "carlos alcaraz garfia"},
		{"comma with accents", "Báez, Sebastián", "sebastian baez"},
		{"apostrophe", "O'Connell", "oconnell"},
		{"curly apostrophe", "O’Connell", "oconnell"},
		{"hyphenated", "Auger-Aliassime", "auger aliassime"},
		{"whitespace collapse", "  Holger   Rune ", "holger rune"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeName(tc.in)
			if got != tc.want {
				t.Errorf("NormalizeName(%q) = %q; want %q", tc.in, got,
					tc.want)
			}
		})
	}
}

func TestMatchScore(t *testing.T) {
	testCases := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "carlos alcaraz", "carlos alcaraz", 100},
		{"word order ignored", "alcaraz carlos", "carlos alcaraz", 100},
		{"dropped letter", "alexander zverev", "alexandr zverev", 97},
		{"swapped letter", "carlos alcaraz", "carlos alcaras", 93},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchScore(tc.a, tc.b)
			if got != tc.want {
				t.Errorf("MatchScore(%q, %q) = %v; want %v", tc.a, tc.b,
					got, tc.want)
			}
		})
	}

	if got := MatchScore("novak djokovic", "rafael nadal"); got >= matchThreshold {
		t.Errorf("MatchScore for unrelated names = %v; want < %v", got,
			matchThreshold)
	}
}

func TestMatchPlayerToEntries(t *testing.T) {
	mk := func(name, country, gender string) scrape.Entry {
		return scrape.Entry{
			Tournament:    "Doha",
			PlayerName:    name,
			PlayerCountry: country,
			Gender:        gender,
		}
	}

	testCases := []struct {
		name    string
		player  rankings.RankedPlayer
		entries []scrape.Entry
		want    int
	}{
		{
			name:   "exact after normalization",
			player: rankings.RankedPlayer{Name: "Carlos Alcaraz", Gender: "M", Country: "ESP"},
			entries: []scrape.Entry{
				mk("Alcaraz, Carlos", "", "M"),
			},
			want: 1,
		},
		{
			name:   "strict fuzzy needs no country",
			player: rankings.RankedPlayer{Name: "Alexander Zverev", Gender: "M"},
			entries: []scrape.Entry{
				mk("Alexandr Zverev", "", "M"),
			},
			want: 1,
		},
		{
			name:   "borderline fuzzy with matching country",
			player: rankings.RankedPlayer{Name: "Carlos Alcaraz", Gender: "M", Country: "ESP"},
			entries: []scrape.Entry{
				mk("Carlos Alcaras", "esp", "M"),
			},
			want: 1,
		},
		{
			name:   "borderline fuzzy with wrong country",
			player: rankings.RankedPlayer{Name: "Carlos Alcaraz", Gender: "M", Country: "ESP"},
			entries: []scrape.Entry{
				mk("Carlos Alcaras", "ARG", "M"),
			},
			want: 0,
		},
		{
			name:   "borderline fuzzy with missing country",
			player: rankings.RankedPlayer{Name: "Carlos Alcaraz", Gender: "M", Country: "ESP"},
			entries: []scrape.Entry{
				mk("Carlos Alcaras", "", "M"),
			},
			want: 0,
		},
		{
			name:   "gender mismatch skips exact name",
			player: rankings.RankedPlayer{Name: "Iga Swiatek", Gender: "F", Country: "POL"},
			entries: []scrape.Entry{
				mk("Iga Swiatek", "POL", "M"),
			},
			want: 0,
		},
		{
			name:   "unknown entry gender still matches",
			player: rankings.RankedPlayer{Name: "Iga Swiatek", Gender: "F", Country: "POL"},
			entries: []scrape.Entry{
				mk("Iga Swiatek", "POL", ""),
			},
			want: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchPlayerToEntries(tc.player, tc.entries)
			if len(got) != tc.want {
				t.Errorf("MatchPlayerToEntries() returned %v entries; want %v",
					len(got), tc.want)
			}
		})
	}
}

func TestBuildPlayerEntryMap(t *testing.T) {
	players := []rankings.RankedPlayer{
		{Name: "Iga Swiatek", Rank: 1, Gender: "F", Country: "POL"},
		{Name: "Alexander Zverev", Rank: 3, Gender: "M", Country: "GER"},
		{Name: "Sam Taylor", Rank: 900, Gender: "", Country: "USA"},
		{Name: "Nobody Here", Rank: 1200, Gender: "M", Country: "USA"},
	}
	entries := []scrape.Entry{
		{Tournament: "Doha", PlayerName: "Swiatek, Iga", Gender: "F"},
		// Same name under the wrong gender must not pollute the match.
		{Tournament: "Doha", PlayerName: "Iga Swiatek", Gender: "M"},
		{Tournament: "Rotterdam", PlayerName: "Alexandr Zverev",
			PlayerCountry: "GER", Gender: "M"},
		{Tournament: "Rotterdam", PlayerName: "Alexandr Zverev",
			PlayerCountry: "GER", Gender: "F"},
		{Tournament: "M25 Vero Beach", PlayerName: "Sam Tailor",
			PlayerCountry: "USA", Gender: "M"},
	}

	entryMap := BuildPlayerEntryMap(players, entries)

	if len(entryMap) != len(players) {
		t.Fatalf("BuildPlayerEntryMap() has %v keys; want %v", len(entryMap),
			len(players))
	}

	swiatek, ok := entryMap["Iga Swiatek|F"]
	if !ok {
		t.Fatalf("missing key %q", "Iga Swiatek|F")
	}
	if len(swiatek) != 1 || swiatek[0].Gender != "F" {
		t.Errorf("Swiatek matches = %+v; want the single F entry", swiatek)
	}

	zverev, ok := entryMap["Alexander Zverev|M"]
	if !ok {
		t.Fatalf("missing key %q", "Alexander Zverev|M")
	}
	if len(zverev) != 1 || zverev[0].Gender != "M" {
		t.Errorf("Zverev matches = %+v; want the single fuzzy M entry", zverev)
	}

	// Unknown player gender falls back to fuzzy matching over every
	// entry.
	taylor, ok := entryMap["Sam Taylor|"]
	if !ok {
		t.Fatalf("missing key %q", "Sam Taylor|")
	}
	if len(taylor) != 1 || taylor[0].PlayerName != "Sam Tailor" {
		t.Errorf("Taylor matches = %+v; want the Vero Beach entry", taylor)
	}

	nobody, ok := entryMap["Nobody Here|M"]
	if !ok {
		t.Fatalf("missing key %q", "Nobody Here|M")
	}
	if len(nobody) != 0 {
		t.Errorf("unmatched player entries = %+v; want none", nobody)
	}
}
