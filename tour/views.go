/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"sort"
	"strings"
)

// LookupStatus distinguishes a subject that exists with content, one
// that exists with no entries, and one that does not exist at all.
// Views owe the reader that distinction; a bare nil cannot carry it.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupFoundEmpty
	LookupNotFound
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupFoundEmpty:
		return "found-empty"
	}
	return "not-found"
}

// DashboardRow is one player's line of the dashboard grid:
// WeekEntries runs parallel to the view's Weeks columns, empty slices
// marking weeks without an entry.
type DashboardRow struct {
	Player      Player
	WeekEntries [][]Entry
	Unscheduled []Entry
}

// DashboardView is the ranked-player grid with per-week entry columns.
type DashboardView struct {
	Weeks []string
	Rows  []DashboardRow
	Stats Stats
}

// BuildDashboardView applies the player filters and lays each player's
// entries out against the windowed week columns.
func BuildDashboardView(ix *Indexes, st FilterState) DashboardView {
	view := DashboardView{Weeks: ix.Weeks, Stats: ix.Dataset.Stats}

	for _, p := range ApplyPlayerFilters(ix.Dataset.Players, st) {
		grouped := GroupEntriesByWeek(p.Entries)
		row := DashboardRow{
			Player:      p,
			WeekEntries: make([][]Entry, 0, len(ix.Weeks)),
			Unscheduled: grouped[UnscheduledWeek],
		}
		for _, w := range ix.Weeks {
			row.WeekEntries = append(row.WeekEntries, grouped[w])
		}
		view.Rows = append(view.Rows, row)
	}

	return view
}

// PlayerView is one player's profile: their schedule timeline against
// the windowed weeks plus the active/withdrawn split.
type PlayerView struct {
	Player    *Player
	Weeks     []string
	ByWeek    map[string][]Entry
	Active    []Entry
	Withdrawn []Entry
}

// BuildPlayerView looks up a player by name, case-insensitively.
func BuildPlayerView(ix *Indexes, name string) (PlayerView, LookupStatus) {
	p, ok := ix.Players[strings.ToLower(name)]
	if !ok {
		return PlayerView{}, LookupNotFound
	}

	view := PlayerView{
		Player: p,
		Weeks:  ix.Weeks,
		ByWeek: GroupEntriesByWeek(p.Entries),
	}
	for _, e := range p.Entries {
		if e.Withdrawn {
			view.Withdrawn = append(view.Withdrawn, e)
		} else {
			view.Active = append(view.Active, e)
		}
	}

	if len(p.Entries) == 0 {
		return view, LookupFoundEmpty
	}
	return view, LookupFound
}

// TournamentsView is the browsable tournament card list, grouped by
// week in first-appearance order.
type TournamentsView struct {
	Groups []TournamentWeekGroup
	Total  int
}

func aggregateMatchesFilters(t *TournamentEntries, st FilterState) bool {
	if st.Gender != "" && st.Gender != FilterAll && t.Gender != st.Gender {
		return false
	}
	if st.Tier != "" && st.Tier != FilterAll && t.Tier != st.Tier {
		return false
	}
	if st.Section != "" && st.Section != FilterAll {
		found := false
		for _, s := range t.Sections {
			if s == st.Section {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func buildTournamentsView(ix *Indexes, st FilterState,
	keep func(*TournamentEntries) bool) TournamentsView {

	var filtered []*TournamentEntries
	for _, t := range ix.OrderedTournaments() {
		if keep != nil && !keep(t) {
			continue
		}
		if !aggregateMatchesFilters(t, st) {
			continue
		}
		filtered = append(filtered, t)
	}

	sorted := SortTournamentsForBrowsing(filtered)
	return TournamentsView{
		Groups: GroupTournamentsByWeek(sorted),
		Total:  len(sorted),
	}
}

// BuildTournamentsView renders every tournament passing the browser
// filters.
func BuildTournamentsView(ix *Indexes, st FilterState) TournamentsView {
	return buildTournamentsView(ix, st, nil)
}

// BuildEntryListsView is the tournaments view pre-filtered to the
// Challenger and 125 tiers, where full entry lists exist.
func BuildEntryListsView(ix *Indexes, st FilterState) TournamentsView {
	return buildTournamentsView(ix, st, func(t *TournamentEntries) bool {
		return strings.Contains(t.Tier, "Challenger") ||
			strings.Contains(t.Tier, "125")
	})
}

// SectionGroup is one draw section's entrants, rank order preserved.
type SectionGroup struct {
	Section  string
	Entrants []TournamentEntrant
}

func groupEntrantsBySection(entrants []TournamentEntrant) []SectionGroup {
	var sections []string
	bySection := make(map[string][]TournamentEntrant)
	for _, e := range entrants {
		if _, ok := bySection[e.Section]; !ok {
			sections = append(sections, e.Section)
		}
		bySection[e.Section] = append(bySection[e.Section], e)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return SectionPrecedence(sections[i]) < SectionPrecedence(sections[j])
	})

	groups := make([]SectionGroup, 0, len(sections))
	for _, s := range sections {
		groups = append(groups, SectionGroup{Section: s, Entrants: bySection[s]})
	}
	return groups
}

// TournamentDetailView is one tournament's full entry list, grouped by
// section, with the active/withdrawn split.
type TournamentDetailView struct {
	Tournament *TournamentEntries
	Meta       *TournamentMeta
	Sections   []SectionGroup
	Active     []TournamentEntrant
	Withdrawn  []TournamentEntrant
}

// BuildTournamentDetailView looks up a tournament aggregate. With an
// empty gender the men's aggregate is probed first, then the women's;
// events running both tours resolve to the men's list unless the route
// names a gender.
func BuildTournamentDetailView(ix *Indexes, name string,
	gender string) (TournamentDetailView, LookupStatus) {

	var agg *TournamentEntries
	if gender != "" {
		agg = ix.Tournaments[NewTournamentKey(name, gender)]
	} else {
		for _, g := range []string{GenderMen, GenderWomen, ""} {
			if agg = ix.Tournaments[NewTournamentKey(name, g)]; agg != nil {
				break
			}
		}
	}
	if agg == nil {
		return TournamentDetailView{}, LookupNotFound
	}

	view := TournamentDetailView{
		Tournament: agg,
		Meta:       ix.Meta[agg.Key],
		Sections:   groupEntrantsBySection(agg.Entrants),
	}
	view.Active, view.Withdrawn = SplitActiveWithdrawn(agg.Entrants)

	if len(agg.Entrants) == 0 {
		return view, LookupFoundEmpty
	}
	return view, LookupFound
}

// WithdrawalsView wraps the grouped withdrawal feed.
type WithdrawalsView struct {
	Feed WithdrawalFeed
}

func BuildWithdrawalsView(ix *Indexes) WithdrawalsView {
	return WithdrawalsView{Feed: BuildWithdrawalFeed(ix.Dataset.Players)}
}

// ItfWeekGroup is one week of the ITF calendar.
type ItfWeekGroup struct {
	Week        string
	Tournaments []ItfTournament
}

// ItfView is the ITF calendar grouped by week.
type ItfView struct {
	Groups []ItfWeekGroup
	Total  int
}

// BuildItfView renders the ITF calendar, honoring the ITF sub-filters.
func BuildItfView(ix *Indexes, st FilterState) ItfView {
	var view ItfView
	for _, t := range ix.Dataset.ItfTournaments {
		if st.ItfGender != "" && st.ItfGender != FilterAll &&
			t.Gender != st.ItfGender {
			continue
		}
		if st.ItfTier != "" && st.ItfTier != FilterAll && t.Tier != st.ItfTier {
			continue
		}

		view.Total++
		if len(view.Groups) == 0 ||
			view.Groups[len(view.Groups)-1].Week != t.Week {
			view.Groups = append(view.Groups, ItfWeekGroup{Week: t.Week})
		}
		last := &view.Groups[len(view.Groups)-1]
		last.Tournaments = append(last.Tournaments, t)
	}
	return view
}

// ItfDetailView is one ITF acceptance list grouped by section.
type ItfDetailView struct {
	Tournament *ItfTournamentEntries
	Sections   []SectionGroup
	Active     []TournamentEntrant
	Withdrawn  []TournamentEntrant
}

// BuildItfDetailView looks up an ITF acceptance list by key.
func BuildItfDetailView(ix *Indexes, key ItfKey) (ItfDetailView, LookupStatus) {
	agg, ok := ix.Itf[key]
	if !ok {
		return ItfDetailView{}, LookupNotFound
	}

	view := ItfDetailView{
		Tournament: agg,
		Sections:   groupEntrantsBySection(agg.Entrants),
	}
	view.Active, view.Withdrawn = SplitActiveWithdrawn(agg.Entrants)

	if len(agg.Entrants) == 0 {
		return view, LookupFoundEmpty
	}
	return view, LookupFound
}

// ViewForRoute dispatches a parsed route to its view builder. The
// returned value is one of the view model types above; status reports
// the lookup outcome for detail views and LookupFound otherwise.
func ViewForRoute(ix *Indexes, rt Route, st FilterState) (any, LookupStatus) {
	switch rt.View {
	case ViewPlayer:
		return BuildPlayerView(ix, rt.Player)
	case ViewTournaments:
		return BuildTournamentsView(ix, st), LookupFound
	case ViewEntryLists:
		return BuildEntryListsView(ix, st), LookupFound
	case ViewWithdrawals:
		return BuildWithdrawalsView(ix), LookupFound
	case ViewItf:
		return BuildItfView(ix, st), LookupFound
	case ViewItfTournament:
		return BuildItfDetailView(ix, rt.ItfKey)
	case ViewTournamentDetail:
		return BuildTournamentDetailView(ix, rt.Tournament, rt.Gender)
	}
	return BuildDashboardView(ix, st), LookupFound
}
