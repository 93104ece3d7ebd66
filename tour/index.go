/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TournamentKey identifies one tournament aggregate. Both fields are
// lowercased; the same event name runs separately per tour.
type TournamentKey struct {
	Name   string
	Gender string
}

func NewTournamentKey(name, gender string) TournamentKey {
	return TournamentKey{
		Name:   strings.ToLower(name),
		Gender: strings.ToLower(gender),
	}
}

// parseTournamentKeyString decodes the serialized "name|gender" form
// used by the dataset's fullEntries map. The gender sits after the
// last delimiter so names containing one still parse.
func parseTournamentKeyString(s string) TournamentKey {
	idx := strings.LastIndex(s, "|")
	if idx < 0 {
		return TournamentKey{Name: strings.ToLower(s)}
	}
	return NewTournamentKey(s[:idx], s[idx+1:])
}

// ItfKey identifies one ITF acceptance list. All fields are lowercased.
// The serialized form is "city|itf|gender|week".
type ItfKey struct {
	Name   string
	Tier   string
	Gender string
	Week   string
}

func NewItfKey(name, tier, gender, week string) ItfKey {
	return ItfKey{
		Name:   strings.ToLower(name),
		Tier:   strings.ToLower(tier),
		Gender: strings.ToLower(gender),
		Week:   strings.ToLower(week),
	}
}

// ParseItfKey decodes the serialized 4-field form.
func ParseItfKey(s string) (ItfKey, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 {
		return ItfKey{}, fmt.Errorf(
			"unable to parse itf key %q: expected 4 fields, have %v", s,
			len(parts))
	}
	return NewItfKey(parts[0], parts[1], parts[2], parts[3]), nil
}

func (k ItfKey) String() string {
	return strings.Join([]string{k.Name, k.Tier, k.Gender, k.Week}, "|")
}

// TournamentEntrant is one player's presence on a tournament's list.
// Rank 0 means unranked.
type TournamentEntrant struct {
	Name        string
	Rank        int
	Gender      string
	Country     string
	Section     string
	Withdrawn   bool
	EntryMethod string
}

// TournamentEntries aggregates every matched player's entry for one
// tournament. Entrants stay sorted ascending by rank with unranked
// players last. HasFullList marks aggregates whose entrants came from
// an authoritative full entry list rather than the ranked-player scan.
type TournamentEntries struct {
	Key         TournamentKey
	Name        string
	Tier        string
	Week        string
	Gender      string
	Entrants    []TournamentEntrant
	Sections    []string
	HasFullList bool
}

func (te *TournamentEntries) addSection(section string) {
	for _, s := range te.Sections {
		if s == section {
			return
		}
	}
	te.Sections = append(te.Sections, section)
}

// ItfTournamentEntries aggregates one ITF acceptance list. Unlike tour
// aggregates there is no override step; the list is authoritative as
// given.
type ItfTournamentEntries struct {
	Key      ItfKey
	Name     string
	Tier     string
	Gender   string
	Week     string
	Dates    string
	Entrants []TournamentEntrant
	Sections []string
}

func (ie *ItfTournamentEntries) addSection(section string) {
	for _, s := range ie.Sections {
		if s == section {
			return
		}
	}
	ie.Sections = append(ie.Sections, section)
}

// sortEntrantsByRank orders ascending by rank, rank 0 (unranked) last,
// stable on ties so dataset order is preserved.
func sortEntrantsByRank(entrants []TournamentEntrant) {
	sort.SliceStable(entrants, func(i, j int) bool {
		ri, rj := entrants[i].Rank, entrants[j].Rank
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})
}

// DedupeListPlayers drops duplicate rows for the same player within a
// section. Source lists repeat a player when a page carries both the
// original and updated list; later duplicates backfill rank and
// country when the first occurrence lacked them.
func DedupeListPlayers(players []ListPlayer) []ListPlayer {
	type playerKey struct {
		name    string
		section string
	}

	seen := make(map[playerKey]int)
	deduped := make([]ListPlayer, 0, len(players))
	for _, p := range players {
		key := playerKey{strings.ToLower(p.Name), p.Section}
		if idx, ok := seen[key]; ok {
			if p.Rank > 0 && deduped[idx].Rank == 0 {
				deduped[idx].Rank = p.Rank
			}
			if p.Country != "" && deduped[idx].Country == "" {
				deduped[idx].Country = p.Country
			}
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, p)
	}

	return deduped
}

// SortListPlayersByRank orders ascending by rank with unranked (rank 0)
// players last, stable on ties.
func SortListPlayersByRank(players []ListPlayer) {
	sort.SliceStable(players, func(i, j int) bool {
		ri, rj := players[i].Rank, players[j].Rank
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})
}

// BuildPlayerIndex maps lowercased player name to the player record.
// Duplicate names resolve last-write-wins; the dataset treats the name
// as identity and a later record supersedes an earlier one.
func BuildPlayerIndex(players []Player) map[string]*Player {
	idx := make(map[string]*Player, len(players))
	for i := range players {
		idx[strings.ToLower(players[i].Name)] = &players[i]
	}
	return idx
}

// BuildTournamentMetaIndex maps (name, gender) to the tournament's
// metadata record. Duplicate keys resolve first-seen-wins; later
// duplicates are discarded silently.
func BuildTournamentMetaIndex(
	tournaments []TournamentMeta) map[TournamentKey]*TournamentMeta {

	idx := make(map[TournamentKey]*TournamentMeta, len(tournaments))
	for i := range tournaments {
		key := NewTournamentKey(tournaments[i].Name, tournaments[i].Gender)
		if _, ok := idx[key]; !ok {
			idx[key] = &tournaments[i]
		}
	}
	return idx
}

// listEntrants expands compact list records into entrant records.
// Empty sections default to defaultSection when one is given.
func listEntrants(players []ListPlayer, gender string,
	defaultSection string) []TournamentEntrant {

	entrants := make([]TournamentEntrant, 0, len(players))
	for _, lp := range players {
		section := lp.Section
		if section == "" {
			section = defaultSection
		}
		entrants = append(entrants, TournamentEntrant{
			Name:        lp.Name,
			Rank:        lp.Rank,
			Gender:      gender,
			Country:     lp.Country,
			Section:     section,
			Withdrawn:   lp.Withdrawn,
			EntryMethod: lp.EntryMethod,
		})
	}
	return entrants
}

// BuildTournamentEntryIndex derives the per-tournament aggregates from
// every player's entries, then applies full-entry-list overrides. An
// override replaces the rank-derived entrants wholesale; ranked players
// absent from the authoritative list are not reinstated. Override
// records default a missing rank to 0, a missing section to
// "Main Draw", and a missing gender context to "Women" (the full-list
// sources began as WTA-only and the dataset retains that default).
func BuildTournamentEntryIndex(players []Player,
	fullEntries map[string]FullEntryList) map[TournamentKey]*TournamentEntries {

	idx := make(map[TournamentKey]*TournamentEntries)

	for i := range players {
		p := &players[i]
		for _, entry := range p.Entries {
			key := NewTournamentKey(entry.Tournament, p.Gender)
			agg, ok := idx[key]
			if !ok {
				agg = &TournamentEntries{
					Key:    key,
					Name:   entry.Tournament,
					Tier:   entry.Tier,
					Week:   entry.Week,
					Gender: p.Gender,
				}
				idx[key] = agg
			}
			agg.Entrants = append(agg.Entrants, TournamentEntrant{
				Name:        p.Name,
				Rank:        p.Rank,
				Gender:      p.Gender,
				Country:     p.Country,
				Section:     entry.Section,
				Withdrawn:   entry.Withdrawn,
				EntryMethod: entry.EntryMethod,
			})
			agg.addSection(entry.Section)
		}
	}

	for _, agg := range idx {
		sortEntrantsByRank(agg.Entrants)
	}

	for rawKey, list := range fullEntries {
		key := parseTournamentKeyString(rawKey)
		agg, ok := idx[key]
		if !ok {
			agg = &TournamentEntries{Key: key, Name: key.Name}
			idx[key] = agg
		}
		agg.HasFullList = true

		if list.Name != "" {
			agg.Name = list.Name
		}
		if list.Tier != "" {
			agg.Tier = list.Tier
		}
		if list.Week != "" {
			agg.Week = list.Week
		}
		gender := list.Gender
		if gender == "" {
			gender = "Women"
		}
		agg.Gender = gender

		agg.Entrants = listEntrants(list.Players, gender, "Main Draw")
		sortEntrantsByRank(agg.Entrants)

		agg.Sections = nil
		for _, e := range agg.Entrants {
			agg.addSection(e.Section)
		}
	}

	return idx
}

// BuildItfIndex maps each serialized ITF key to its aggregate.
func BuildItfIndex(
	itfEntries map[string]ItfEntryList) map[ItfKey]*ItfTournamentEntries {

	idx := make(map[ItfKey]*ItfTournamentEntries, len(itfEntries))
	for rawKey, list := range itfEntries {
		key, err := ParseItfKey(rawKey)
		if err != nil {
			// tolerate malformed keys rather than dropping the list
			key = NewItfKey(rawKey, "itf", list.Gender, list.Week)
		}

		agg := &ItfTournamentEntries{
			Key:      key,
			Name:     list.Name,
			Tier:     list.Tier,
			Gender:   list.Gender,
			Week:     list.Week,
			Dates:    list.Dates,
			Entrants: listEntrants(list.Players, list.Gender, ""),
		}
		sortEntrantsByRank(agg.Entrants)
		for _, e := range agg.Entrants {
			if e.Section != "" {
				agg.addSection(e.Section)
			}
		}
		idx[key] = agg
	}
	return idx
}

// buildTournamentOrder records the first-appearance order of aggregate
// keys across the player scan, the order the browse views group weeks
// in. Aggregates reachable only through a full entry list follow the
// scan order, sorted by key for determinism.
func buildTournamentOrder(players []Player,
	fullEntries map[string]FullEntryList) []TournamentKey {

	var order []TournamentKey
	seen := make(map[TournamentKey]bool)
	for i := range players {
		p := &players[i]
		for _, entry := range p.Entries {
			key := NewTournamentKey(entry.Tournament, p.Gender)
			if !seen[key] {
				seen[key] = true
				order = append(order, key)
			}
		}
	}

	var extra []TournamentKey
	for rawKey := range fullEntries {
		key := parseTournamentKeyString(rawKey)
		if !seen[key] {
			seen[key] = true
			extra = append(extra, key)
		}
	}
	sort.Slice(extra, func(i, j int) bool {
		if extra[i].Name != extra[j].Name {
			return extra[i].Name < extra[j].Name
		}
		return extra[i].Gender < extra[j].Gender
	})

	return append(order, extra...)
}

// Indexes bundles every derived lookup structure plus the windowed
// week horizon. Built once per dataset load and read-only thereafter;
// rebuild from scratch if the dataset changes.
type Indexes struct {
	Players         map[string]*Player
	Meta            map[TournamentKey]*TournamentMeta
	Tournaments     map[TournamentKey]*TournamentEntries
	TournamentOrder []TournamentKey
	Itf             map[ItfKey]*ItfTournamentEntries
	Weeks           []string
	Dataset         *Dataset
}

func BuildIndexes(ds *Dataset, now time.Time) *Indexes {
	return &Indexes{
		Players:         BuildPlayerIndex(ds.Players),
		Meta:            BuildTournamentMetaIndex(ds.Tournaments),
		Tournaments:     BuildTournamentEntryIndex(ds.Players, ds.FullEntries),
		TournamentOrder: buildTournamentOrder(ds.Players, ds.FullEntries),
		Itf:             BuildItfIndex(ds.ItfEntries),
		Weeks:           FilterCurrentWeeks(ds.Weeks, now),
		Dataset:         ds,
	}
}

// OrderedTournaments returns every tournament aggregate in dataset
// first-appearance order.
func (ix *Indexes) OrderedTournaments() []*TournamentEntries {
	out := make([]*TournamentEntries, 0, len(ix.TournamentOrder))
	for _, key := range ix.TournamentOrder {
		if agg, ok := ix.Tournaments[key]; ok {
			out = append(out, agg)
		}
	}
	return out
}
