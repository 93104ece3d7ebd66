/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"sort"
	"strings"
)

const (
	// FilterAll is the wildcard value accepted by every select-style
	// filter (gender, tier, section).
	FilterAll = "all"

	GenderMen   = "Men"
	GenderWomen = "Women"

	// DefaultRankMax bounds the player list; the pipeline fetches
	// rankings this deep.
	DefaultRankMax = 1500

	// UnscheduledWeek keys entries whose week label is empty.
	UnscheduledWeek = "Unscheduled"
)

// FilterState carries every user-adjustable filter. Engine functions
// take it explicitly and never read ambient state, so a render is a
// pure function of (indexes, FilterState).
type FilterState struct {
	Gender      string
	Search      string
	EntriesOnly bool
	RankMin     int
	RankMax     int

	// tournament browser sub-filters
	Tier    string
	Section string

	// itf browser sub-filters
	ItfGender  string
	ItfTier    string
	ItfSection string
}

// DefaultFilterState returns the identity filter: every player passes.
func DefaultFilterState() FilterState {
	return FilterState{
		Gender:     FilterAll,
		RankMin:    1,
		RankMax:    DefaultRankMax,
		Tier:       FilterAll,
		Section:    FilterAll,
		ItfGender:  FilterAll,
		ItfTier:    FilterAll,
		ItfSection: FilterAll,
	}
}

// ApplyPlayerFilters returns the players passing every active filter,
// preserving input order (rank order, since the dataset is rank-sorted
// on load). Search matches case-insensitively against the player's
// name, country, or any entry's tournament name, first hit wins.
// RankMin > RankMax yields an empty result.
func ApplyPlayerFilters(players []Player, st FilterState) []Player {
	search := strings.ToLower(strings.TrimSpace(st.Search))

	kept := make([]Player, 0, len(players))
	for i := range players {
		p := &players[i]
		if st.Gender != "" && st.Gender != FilterAll && p.Gender != st.Gender {
			continue
		}
		if st.EntriesOnly && len(p.Entries) == 0 {
			continue
		}
		if p.Rank < st.RankMin || p.Rank > st.RankMax {
			continue
		}
		if search != "" && !playerMatchesSearch(p, search) {
			continue
		}
		kept = append(kept, *p)
	}
	return kept
}

func playerMatchesSearch(p *Player, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Country), search) {
		return true
	}
	for _, e := range p.Entries {
		if strings.Contains(strings.ToLower(e.Tournament), search) {
			return true
		}
	}
	return false
}

// GroupEntriesByWeek buckets entries by week label, preserving entry
// order inside each bucket. Entries without a week land under
// UnscheduledWeek. Callers building week columns must drive them from
// the global windowed week list, not from this map's keys; a player
// with no entry in a windowed week still owns an (empty) column.
func GroupEntriesByWeek(entries []Entry) map[string][]Entry {
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		week := e.Week
		if week == "" {
			week = UnscheduledWeek
		}
		grouped[week] = append(grouped[week], e)
	}
	return grouped
}

// SortTournamentsForBrowsing orders aggregates for the tournament
// browser: week groups in order of first appearance, then tier
// precedence within each week. The sort is stable so equal-tier
// tournaments keep their input order. The input slice is not modified.
func SortTournamentsForBrowsing(
	tournaments []*TournamentEntries) []*TournamentEntries {

	weekOrder := make(map[string]int)
	for _, t := range tournaments {
		if _, ok := weekOrder[t.Week]; !ok {
			weekOrder[t.Week] = len(weekOrder)
		}
	}

	sorted := make([]*TournamentEntries, len(tournaments))
	copy(sorted, tournaments)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, wj := weekOrder[sorted[i].Week], weekOrder[sorted[j].Week]
		if wi != wj {
			return wi < wj
		}
		return TierPrecedence(sorted[i].Tier) < TierPrecedence(sorted[j].Tier)
	})
	return sorted
}

// TournamentWeekGroup is one week's worth of browsable tournaments.
type TournamentWeekGroup struct {
	Week        string
	Tournaments []*TournamentEntries
}

// GroupTournamentsByWeek splits a browse-sorted aggregate list into
// contiguous week groups.
func GroupTournamentsByWeek(
	sorted []*TournamentEntries) []TournamentWeekGroup {

	var groups []TournamentWeekGroup
	for _, t := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].Week != t.Week {
			groups = append(groups, TournamentWeekGroup{Week: t.Week})
		}
		last := &groups[len(groups)-1]
		last.Tournaments = append(last.Tournaments, t)
	}
	return groups
}

// SplitActiveWithdrawn partitions an aggregate's entrants by the
// withdrawn flag, preserving relative order within each partition.
func SplitActiveWithdrawn(
	entrants []TournamentEntrant) (active []TournamentEntrant,
	withdrawn []TournamentEntrant) {

	for _, e := range entrants {
		if e.Withdrawn {
			withdrawn = append(withdrawn, e)
		} else {
			active = append(active, e)
		}
	}
	return active, withdrawn
}

// WithdrawalCard is one player's withdrawals within a single week.
type WithdrawalCard struct {
	Player  string
	Rank    int
	Gender  string
	Country string
	Entries []Entry
}

// WithdrawalGenderGroup subdivides a week's cards by tour.
type WithdrawalGenderGroup struct {
	Gender string
	Cards  []WithdrawalCard
}

// WithdrawalWeek is one week group of the feed.
type WithdrawalWeek struct {
	Week   string
	Groups []WithdrawalGenderGroup
}

// WithdrawalFeed is the fully grouped withdrawals view model.
// PlayerCount counts distinct players, not withdrawn entries; the two
// are equal only when no player withdrew from more than one event.
type WithdrawalFeed struct {
	Weeks       []WithdrawalWeek
	PlayerCount int
	EntryCount  int
}

type withdrawnRecord struct {
	player  string
	rank    int
	gender  string
	country string
	entry   Entry
}

// BuildWithdrawalFeed flattens every withdrawn entry across every
// player, sorts Men before Women then ascending rank, groups by week
// in first-appearance order, subdivides each week by gender, and
// coalesces consecutive records of the same player into one card.
func BuildWithdrawalFeed(players []Player) WithdrawalFeed {
	var flat []withdrawnRecord
	for i := range players {
		p := &players[i]
		for _, e := range p.Entries {
			if !e.Withdrawn {
				continue
			}
			flat = append(flat, withdrawnRecord{
				player:  p.Name,
				rank:    p.Rank,
				gender:  p.Gender,
				country: p.Country,
				entry:   e,
			})
		}
	}

	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].gender != flat[j].gender {
			return flat[i].gender == GenderMen
		}
		return flat[i].rank < flat[j].rank
	})

	feed := WithdrawalFeed{EntryCount: len(flat)}

	distinct := make(map[string]bool)
	for _, r := range flat {
		distinct[strings.ToLower(r.player)] = true
	}
	feed.PlayerCount = len(distinct)

	var weekOrder []string
	weekSeen := make(map[string]bool)
	for _, r := range flat {
		week := recordWeek(r)
		if !weekSeen[week] {
			weekSeen[week] = true
			weekOrder = append(weekOrder, week)
		}
	}

	for _, week := range weekOrder {
		ww := WithdrawalWeek{Week: week}
		for _, gender := range []string{GenderMen, GenderWomen} {
			var cards []WithdrawalCard
			for _, r := range flat {
				if recordWeek(r) != week || r.gender != gender {
					continue
				}
				if len(cards) > 0 && cards[len(cards)-1].Player == r.player {
					last := &cards[len(cards)-1]
					last.Entries = append(last.Entries, r.entry)
					continue
				}
				cards = append(cards, WithdrawalCard{
					Player:  r.player,
					Rank:    r.rank,
					Gender:  r.gender,
					Country: r.country,
					Entries: []Entry{r.entry},
				})
			}
			if len(cards) > 0 {
				ww.Groups = append(ww.Groups, WithdrawalGenderGroup{
					Gender: gender,
					Cards:  cards,
				})
			}
		}
		feed.Weeks = append(feed.Weeks, ww)
	}

	return feed
}

func recordWeek(r withdrawnRecord) string {
	if r.entry.Week == "" {
		return UnscheduledWeek
	}
	return r.entry.Week
}
