/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package site assembles the published dataset from the pipeline's
// rankings, matches, and scraped lists, and writes the site data.js,
// dataset JSON, and CSV artifacts.
package site

import (
	"sort"
	"strings"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/match"
	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

// sortPlayersForOutput orders players by gender code then ascending
// rank, the order the published dataset carries.
func sortPlayersForOutput(players []rankings.RankedPlayer) []rankings.RankedPlayer {
	ordered := make([]rankings.RankedPlayer, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Gender != ordered[j].Gender {
			return ordered[i].Gender < ordered[j].Gender
		}
		return ordered[i].Rank < ordered[j].Rank
	})
	return ordered
}

// canonicalWeek normalizes a raw week label and folds it into its merge
// group.
func canonicalWeek(week string, mergeMap map[string]string) string {
	w := tour.NormalizeWeek(week)
	if canon, ok := mergeMap[w]; ok {
		return canon
	}
	return w
}

// BuildDataset assembles the published dataset: per-player deduped
// entries with normalized tournament names and merged week labels,
// the week horizon, per-tournament metadata enriched from the embedded
// tour calendar, aggregate stats, full entry lists for the lower tiers,
// and the ITF payload. Players order by gender then rank; entries by
// week; tournaments by week in first-appearance order.
func BuildDataset(players []rankings.RankedPlayer,
	entryMap map[string][]scrape.Entry, rawFull []scrape.Entry,
	itf *scrape.ItfResult, now time.Time) *tour.Dataset {

	// Pass 1: collect every normalized week so close labels from
	// different sources merge to one canonical label.
	weekSet := make(map[string]bool)
	for _, p := range players {
		for _, e := range entryMap[match.PlayerKey(p)] {
			if w := tour.NormalizeWeek(e.Week); w != "" {
				weekSet[w] = true
			}
		}
	}
	rawWeeks := make([]string, 0, len(weekSet))
	for w := range weekSet {
		rawWeeks = append(rawWeeks, w)
	}
	mergeMap := tour.MergeCloseWeeks(rawWeeks)

	// Pass 2: per-player entry lists, deduped on (tournament, section,
	// week) after canonicalization.
	type dedupKey struct {
		tournament string
		section    string
		week       string
	}

	usedWeeks := make(map[string]bool)
	dsPlayers := make([]tour.Player, 0, len(players))
	for _, p := range sortPlayersForOutput(players) {
		entries := entryMap[match.PlayerKey(p)]

		seen := make(map[dedupKey]bool)
		deduped := []tour.Entry{}
		for _, e := range entries {
			week := canonicalWeek(e.Week, mergeMap)
			name := tour.CanonicalTournamentName(e.Tournament)

			key := dedupKey{name, e.Section, week}
			if seen[key] {
				continue
			}
			seen[key] = true

			if week != "" {
				usedWeeks[week] = true
			}

			deduped = append(deduped, tour.Entry{
				Tournament:  name,
				Tier:        e.Tier,
				Week:        week,
				Section:     e.Section,
				Source:      e.Source.String(),
				Withdrawn:   e.Withdrawn,
				EntryMethod: e.EntryMethod,
			})
		}
		sort.SliceStable(deduped, func(i, j int) bool {
			return tour.WeekLess(deduped[i].Week, deduped[j].Week)
		})

		dsPlayers = append(dsPlayers, tour.Player{
			Rank:    p.Rank,
			Name:    p.Name,
			Gender:  internal.GenderLabel(p.Gender),
			Country: p.Country,
			Entries: deduped,
		})
	}

	weeks := make([]string, 0, len(usedWeeks))
	for w := range usedWeeks {
		weeks = append(weeks, w)
	}
	sortWeekLabels(weeks)

	tournaments := buildTournamentMeta(dsPlayers)

	playersWithEntries := 0
	totalEntries := 0
	for _, p := range dsPlayers {
		if len(p.Entries) > 0 {
			playersWithEntries++
		}
		totalEntries += len(p.Entries)
	}

	ds := &tour.Dataset{
		Players:     dsPlayers,
		Weeks:       weeks,
		Tournaments: tournaments,
		Stats: tour.Stats{
			TotalPlayers:       len(dsPlayers),
			PlayersWithEntries: playersWithEntries,
			TotalEntries:       totalEntries,
			UniqueTournaments:  len(tournaments),
			GeneratedAt:        now.Format("2006-01-02 15:04"),
		},
		FullEntries: buildFullEntries(rawFull, mergeMap),
	}

	if itf != nil && len(itf.Lists) > 0 {
		ds.ItfEntries = itf.Lists
		ds.ItfTournaments = buildItfTournaments(itf.Lists)
	}

	return ds
}

// buildTournamentMeta derives one metadata record per (tournament,
// gender) from the already-normalized player entries, first-seen wins
// for tier and week, enriched with venue facts from the embedded tour
// calendar. Order is first appearance, stably re-sorted by week.
func buildTournamentMeta(players []tour.Player) []tour.TournamentMeta {
	type metaKey struct {
		name   string
		gender string
	}

	calendar := scrape.TourCalendar()

	idx := make(map[metaKey]*tour.TournamentMeta)
	var order []metaKey
	for _, p := range players {
		for _, e := range p.Entries {
			key := metaKey{strings.ToLower(e.Tournament),
				strings.ToLower(p.Gender)}
			meta, ok := idx[key]
			if !ok {
				meta = &tour.TournamentMeta{
					Name:   e.Tournament,
					Tier:   e.Tier,
					Gender: p.Gender,
					Week:   e.Week,
				}
				if venue, found := calendar[key.name]; found {
					meta.Surface = venue.Surface
					meta.City = venue.City
					meta.Country = venue.Country
					meta.Dates = venue.Dates
				}
				idx[key] = meta
				order = append(order, key)
			}
			meta.PlayerCount++
			addSection(meta, e.Section)
		}
	}

	tournaments := make([]tour.TournamentMeta, 0, len(order))
	for _, key := range order {
		meta := idx[key]
		sort.Strings(meta.Sections)
		tournaments = append(tournaments, *meta)
	}
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tour.WeekLess(tournaments[i].Week, tournaments[j].Week)
	})

	return tournaments
}

func addSection(meta *tour.TournamentMeta, section string) {
	for _, s := range meta.Sections {
		if s == section {
			return
		}
	}
	meta.Sections = append(meta.Sections, section)
}

// buildFullEntries groups the raw lower-tier records into authoritative
// per-tournament lists keyed "name|gender" in lowercase, matching the
// key the read-side index derives from player entries.
func buildFullEntries(rawFull []scrape.Entry,
	mergeMap map[string]string) map[string]tour.FullEntryList {

	if len(rawFull) == 0 {
		return nil
	}

	lists := make(map[string]tour.FullEntryList)
	for _, e := range rawFull {
		name := tour.CanonicalTournamentName(e.Tournament)
		label := internal.GenderLabel(e.Gender)
		key := strings.ToLower(name) + "|" + strings.ToLower(label)

		list, ok := lists[key]
		if !ok {
			list = tour.FullEntryList{
				Name:   name,
				Tier:   e.Tier,
				Week:   canonicalWeek(e.Week, mergeMap),
				Gender: label,
			}
		}
		list.Players = append(list.Players, tour.ListPlayer{
			Name:        e.PlayerName,
			Rank:        e.PlayerRank,
			Country:     e.PlayerCountry,
			Section:     e.Section,
			Withdrawn:   e.Withdrawn,
			EntryMethod: e.EntryMethod,
		})
		lists[key] = list
	}

	for key, list := range lists {
		list.Players = tour.DedupeListPlayers(list.Players)
		tour.SortListPlayersByRank(list.Players)
		lists[key] = list
	}

	return lists
}

// buildItfTournaments flattens the ITF lists into calendar rows ordered
// by week.
func buildItfTournaments(
	lists map[string]tour.ItfEntryList) []tour.ItfTournament {

	ts := make([]tour.ItfTournament, 0, len(lists))
	for _, list := range lists {
		ts = append(ts, tour.ItfTournament{
			Name:   list.Name,
			Tier:   list.Tier,
			Gender: list.Gender,
			Week:   list.Week,
			Dates:  list.Dates,
		})
	}
	sort.Slice(ts, func(i, j int) bool {
		ik, ik2 := tour.WeekSortKey(ts[i].Week)
		jk, jk2 := tour.WeekSortKey(ts[j].Week)
		if ik != jk {
			return ik < jk
		}
		if ik2 != jk2 {
			return ik2 < jk2
		}
		if ts[i].Name != ts[j].Name {
			return ts[i].Name < ts[j].Name
		}
		return ts[i].Gender < ts[j].Gender
	})

	return ts
}

// sortWeekLabels orders week labels chronologically with a lexical
// tie-break so output is deterministic.
func sortWeekLabels(weeks []string) {
	sort.Slice(weeks, func(i, j int) bool {
		ik, ik2 := tour.WeekSortKey(weeks[i])
		jk, jk2 := tour.WeekSortKey(weeks[j])
		if ik != jk {
			return ik < jk
		}
		if ik2 != jk2 {
			return ik2 < jk2
		}
		return weeks[i] < weeks[j]
	})
}
