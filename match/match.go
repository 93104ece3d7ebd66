/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package match cross-references ranked players against scraped entry
// lists. Names arrive in different shapes per source ("Alcaraz, Carlos",
// "Carlos Alcaraz", accents present or stripped), so matching runs on
// normalized names with a fuzzy fallback.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
)

const (
	// Fuzzy scores at or above strictMatchThreshold are accepted
	// outright; scores in [matchThreshold, strictMatchThreshold) also
	// need matching countries.
	matchThreshold       = 85
	strictMatchThreshold = 95
)

// NormalizeName canonicalizes a player name for matching: "Last, First"
// flips to "First Last", accents strip, case folds, hyphens become
// spaces, apostrophes drop, and whitespace collapses.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	if idx := strings.Index(name, ","); idx >= 0 {
		name = strings.TrimSpace(name[idx+1:]) + " " +
			strings.TrimSpace(name[:idx])
	}

	name = strings.ToLower(internal.StripAccents(name))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, "’", "")

	return strings.Join(strings.Fields(name), " ")
}

// MatchScore is a 0-100 similarity between two normalized names. Tokens
// sort first so word order differences do not count against the score.
func MatchScore(a, b string) int {
	aTokens := strings.Fields(a)
	sort.Strings(aTokens)
	bTokens := strings.Fields(b)
	sort.Strings(bTokens)

	m := difflib.NewMatcher(
		strings.Split(strings.Join(aTokens, " "), ""),
		strings.Split(strings.Join(bTokens, " "), ""))

	return int(math.Round(m.Ratio() * 100))
}

// PlayerKey is the map key BuildPlayerEntryMap stores matches under.
func PlayerKey(player rankings.RankedPlayer) string {
	return player.Name + "|" + player.Gender
}

// MatchPlayerToEntries finds every entry belonging to the given ranked
// player. Entries with a known different gender never match. Borderline
// fuzzy scores require the countries to agree.
func MatchPlayerToEntries(player rankings.RankedPlayer,
	entries []scrape.Entry) []scrape.Entry {

	playerNorm := NormalizeName(player.Name)
	playerCountry := strings.ToUpper(player.Country)

	var matches []scrape.Entry
	for _, entry := range entries {
		if player.Gender != "" && entry.Gender != "" &&
			player.Gender != entry.Gender {
			continue
		}

		entryNorm := NormalizeName(entry.PlayerName)
		if playerNorm == entryNorm {
			matches = append(matches, entry)
			continue
		}

		score := MatchScore(playerNorm, entryNorm)
		if score >= strictMatchThreshold {
			matches = append(matches, entry)
		} else if score >= matchThreshold {
			entryCountry := strings.ToUpper(entry.PlayerCountry)
			if playerCountry != "" && entryCountry != "" &&
				playerCountry == entryCountry {
				matches = append(matches, entry)
			}
		}
	}

	return matches
}

// BuildPlayerEntryMap matches every ranked player against the combined
// entry list. An index over normalized names serves the common case;
// players without an exact hit fall back to fuzzy matching against
// their gender's entries. Every player gets a key, even with no
// matches.
func BuildPlayerEntryMap(players []rankings.RankedPlayer,
	entries []scrape.Entry) map[string][]scrape.Entry {

	byGender := map[string][]scrape.Entry{"M": nil, "F": nil}
	for _, e := range entries {
		if _, ok := byGender[e.Gender]; ok {
			byGender[e.Gender] = append(byGender[e.Gender], e)
		}
	}

	nameIndex := make(map[string][]scrape.Entry)
	for _, e := range entries {
		norm := NormalizeName(e.PlayerName)
		nameIndex[norm] = append(nameIndex[norm], e)
	}

	result := make(map[string][]scrape.Entry, len(players))
	for _, player := range players {
		playerNorm := NormalizeName(player.Name)

		var exact []scrape.Entry
		for _, e := range nameIndex[playerNorm] {
			if player.Gender != "" && e.Gender != "" &&
				player.Gender != e.Gender {
				continue
			}
			exact = append(exact, e)
		}
		if len(exact) > 0 {
			result[PlayerKey(player)] = exact
			continue
		}

		genderEntries, ok := byGender[player.Gender]
		if !ok {
			genderEntries = entries
		}
		result[PlayerKey(player)] = MatchPlayerToEntries(player, genderEntries)
	}

	return result
}
