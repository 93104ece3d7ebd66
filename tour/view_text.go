/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"fmt"
	"strings"
)

// entrySummary compacts one entry for inline display, e.g.
// "Doha (MD, Feb 16)" or "Rotterdam (Q, Feb 9, WD)".
func entrySummary(e Entry) string {
	parts := []string{ShortSection(e.Section)}
	if e.Week != "" {
		parts = append(parts, e.Week)
	}
	if e.Withdrawn {
		parts = append(parts, "WD")
	}
	return fmt.Sprintf("%s (%s)", e.Tournament, strings.Join(parts, ", "))
}

func entrantNotes(e TournamentEntrant) string {
	var notes []string
	if e.EntryMethod != "" {
		notes = append(notes, e.EntryMethod)
	}
	if e.Withdrawn {
		notes = append(notes, "WD")
	}
	return strings.Join(notes, ", ")
}

// BuildDashboardOutput formats the dashboard grid as an aligned table,
// one player per row with their entries inline.
func BuildDashboardOutput(view DashboardView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Tennis entry lists (generated %v)\n", view.Stats.GeneratedAt))
	sb.WriteString(fmt.Sprintf(
		"%v players, %v with entries, %v entries across %v tournaments\n\n",
		view.Stats.TotalPlayers, view.Stats.PlayersWithEntries,
		view.Stats.TotalEntries, view.Stats.UniqueTournaments))

	type row struct{ rank, player, country, entries string }
	var rows []row
	for _, r := range view.Rows {
		var summaries []string
		for _, weekEntries := range r.WeekEntries {
			for _, e := range weekEntries {
				summaries = append(summaries, entrySummary(e))
			}
		}
		for _, e := range r.Unscheduled {
			summaries = append(summaries, entrySummary(e))
		}
		rows = append(rows, row{
			rank:    fmt.Sprintf("%v.", r.Player.Rank),
			player:  r.Player.Name,
			country: r.Player.Country,
			entries: strings.Join(summaries, "; "),
		})
	}

	// Compute column widths
	maxR, maxP, maxC := len("Rank"), len("Player"), len("Ctry")
	for _, r := range rows {
		if l := len(r.rank); l > maxR {
			maxR = l
		}
		if l := len(r.player); l > maxP {
			maxP = l
		}
		if l := len(r.country); l > maxC {
			maxC = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxR, "Rank", maxP,
		"Player", maxC, "Ctry", "Entries"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxR, r.rank,
			maxP, r.player, maxC, r.country, r.entries))
	}

	return sb.String()
}

// BuildPlayerOutput formats one player's profile and schedule.
func BuildPlayerOutput(view PlayerView) string {
	p := view.Player
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v (%v), Rank %v, %v\n\n", p.Name,
		CountryName(p.Country), p.Rank, p.Gender))

	if len(p.Entries) == 0 {
		sb.WriteString("No tournament entries found\n")
		return sb.String()
	}

	writeEntryTable := func(title string, entries []Entry, withReason bool) {
		if len(entries) == 0 {
			return
		}

		type row struct{ week, tournament, tier, section, reason string }
		var rows []row
		for _, e := range entries {
			week := e.Week
			if week == "" {
				week = UnscheduledWeek
			}
			reason := e.Reason
			if e.WithdrawalType != "" {
				reason = strings.TrimSpace(e.WithdrawalType + " " + reason)
			}
			rows = append(rows, row{week: week, tournament: e.Tournament,
				tier: e.Tier, section: e.Section, reason: reason})
		}

		maxW, maxT, maxTi, maxS := len("Week"), len("Tournament"),
			len("Tier"), len("Section")
		for _, r := range rows {
			if l := len(r.week); l > maxW {
				maxW = l
			}
			if l := len(r.tournament); l > maxT {
				maxT = l
			}
			if l := len(r.tier); l > maxTi {
				maxTi = l
			}
			if l := len(r.section); l > maxS {
				maxS = l
			}
		}

		sb.WriteString(title + "\n")
		if withReason {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s\n", maxW,
				"Week", maxT, "Tournament", maxTi, "Tier", maxS, "Section",
				"Reason"))
		} else {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxW,
				"Week", maxT, "Tournament", maxTi, "Tier", maxS, "Section"))
		}
		for _, r := range rows {
			if withReason {
				sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s\n",
					maxW, r.week, maxT, r.tournament, maxTi, r.tier, maxS,
					r.section, r.reason))
			} else {
				sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxW,
					r.week, maxT, r.tournament, maxTi, r.tier, maxS,
					r.section))
			}
		}
		sb.WriteString("\n")
	}

	writeEntryTable("Entries", view.Active, false)
	writeEntryTable("Withdrawals", view.Withdrawn, true)

	return sb.String()
}

// BuildTournamentsOutput formats the tournament browser, one aligned
// table per week group.
func BuildTournamentsOutput(view TournamentsView) string {
	if view.Total == 0 {
		return "No tournaments match the current filters\n"
	}

	var sb strings.Builder
	for _, group := range view.Groups {
		week := group.Week
		if week == "" {
			week = UnscheduledWeek
		}
		sb.WriteString(fmt.Sprintf("Week of %v\n", week))

		type row struct{ name, tier, gender, players, sections string }
		var rows []row
		for _, t := range group.Tournaments {
			rows = append(rows, row{
				name:     t.Name,
				tier:     t.Tier,
				gender:   t.Gender,
				players:  fmt.Sprintf("%v", len(t.Entrants)),
				sections: strings.Join(t.Sections, ", "),
			})
		}

		maxN, maxT, maxG, maxP := len("Tournament"), len("Tier"),
			len("Tour"), len("Players")
		for _, r := range rows {
			if l := len(r.name); l > maxN {
				maxN = l
			}
			if l := len(r.tier); l > maxT {
				maxT = l
			}
			if l := len(r.gender); l > maxG {
				maxG = l
			}
			if l := len(r.players); l > maxP {
				maxP = l
			}
		}

		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s\n", maxN,
			"Tournament", maxT, "Tier", maxG, "Tour", maxP, "Players",
			"Sections"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s\n", maxN,
				r.name, maxT, r.tier, maxG, r.gender, maxP, r.players,
				r.sections))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeEntrantSections appends per-section aligned entrant tables, the
// section header included only when more than one section exists.
func writeEntrantSections(sb *strings.Builder, sections []SectionGroup) {
	for _, group := range sections {
		type row struct{ rank, player, country, notes string }
		var rows []row
		for _, e := range group.Entrants {
			rank := ""
			if e.Rank != 0 {
				rank = fmt.Sprintf("%v.", e.Rank)
			}
			rows = append(rows, row{rank: rank, player: e.Name,
				country: e.Country, notes: entrantNotes(e)})
		}

		maxR, maxP, maxC := len("Rank"), len("Player"), len("Ctry")
		for _, r := range rows {
			if l := len(r.rank); l > maxR {
				maxR = l
			}
			if l := len(r.player); l > maxP {
				maxP = l
			}
			if l := len(r.country); l > maxC {
				maxC = l
			}
		}

		if len(sections) > 1 {
			sec := group.Section
			if sec == "" {
				sec = "UNNAMED"
			}
			sb.WriteString(fmt.Sprintf("%s Section\n", sec))
		}
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxR, "Rank", maxP,
			"Player", maxC, "Ctry"))
		for _, r := range rows {
			line := fmt.Sprintf("%-*s  %-*s  %-*s", maxR, r.rank, maxP,
				r.player, maxC, r.country)
			if r.notes != "" {
				line += "  " + r.notes
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
}

// BuildTournamentDetailOutput formats one tournament's entry list.
func BuildTournamentDetailOutput(view TournamentDetailView) string {
	t := view.Tournament
	var sb strings.Builder

	header := t.Name
	if t.Tier != "" {
		header += fmt.Sprintf(" (%v)", t.Tier)
	}
	if t.Gender != "" {
		header += fmt.Sprintf(", %v", t.Gender)
	}
	if t.Week != "" {
		header += fmt.Sprintf(", week of %v", t.Week)
	}
	sb.WriteString(header + "\n")

	if m := view.Meta; m != nil {
		var details []string
		if m.City != "" {
			loc := m.City
			if m.Country != "" {
				loc += ", " + m.Country
			}
			details = append(details, loc)
		}
		if m.Surface != "" {
			details = append(details, m.Surface)
		}
		if m.Dates != "" {
			details = append(details, m.Dates)
		}
		if len(details) > 0 {
			sb.WriteString(strings.Join(details, "; ") + "\n")
		}
	}
	if t.HasFullList {
		sb.WriteString("Full entry list\n")
	}
	sb.WriteString("\n")

	if len(t.Entrants) == 0 {
		sb.WriteString("No entries found\n")
		return sb.String()
	}

	writeEntrantSections(&sb, view.Sections)

	if n := len(view.Withdrawn); n > 0 {
		sb.WriteString(fmt.Sprintf("%v of %v entrants withdrawn\n", n,
			len(t.Entrants)))
	}

	return sb.String()
}

// BuildWithdrawalsOutput formats the withdrawal feed grouped by week
// and tour.
func BuildWithdrawalsOutput(view WithdrawalsView) string {
	feed := view.Feed
	if feed.EntryCount == 0 {
		return "No withdrawals found\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v withdrawals by %v players\n\n",
		feed.EntryCount, feed.PlayerCount))

	for _, week := range feed.Weeks {
		sb.WriteString(fmt.Sprintf("Week of %v\n", week.Week))
		for _, group := range week.Groups {
			sb.WriteString(group.Gender + "\n")

			type row struct{ rank, player, country, entries string }
			var rows []row
			for _, card := range group.Cards {
				var summaries []string
				for _, e := range card.Entries {
					s := fmt.Sprintf("%s (%s", e.Tournament,
						ShortSection(e.Section))
					if e.WithdrawalType != "" {
						s += ", " + e.WithdrawalType
					}
					s += ")"
					summaries = append(summaries, s)
				}
				rows = append(rows, row{
					rank:    fmt.Sprintf("%v.", card.Rank),
					player:  card.Player,
					country: card.Country,
					entries: strings.Join(summaries, "; "),
				})
			}

			maxR, maxP, maxC := len("Rank"), len("Player"), len("Ctry")
			for _, r := range rows {
				if l := len(r.rank); l > maxR {
					maxR = l
				}
				if l := len(r.player); l > maxP {
					maxP = l
				}
				if l := len(r.country); l > maxC {
					maxC = l
				}
			}

			for _, r := range rows {
				sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxR,
					r.rank, maxP, r.player, maxC, r.country, r.entries))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildItfOutput formats the ITF calendar grouped by week.
func BuildItfOutput(view ItfView) string {
	if view.Total == 0 {
		return "No ITF tournaments match the current filters\n"
	}

	var sb strings.Builder
	for _, group := range view.Groups {
		week := group.Week
		if week == "" {
			week = UnscheduledWeek
		}
		sb.WriteString(fmt.Sprintf("Week of %v\n", week))

		type row struct{ name, tier, gender, dates string }
		var rows []row
		for _, t := range group.Tournaments {
			rows = append(rows, row{name: t.Name, tier: t.Tier,
				gender: t.Gender, dates: t.Dates})
		}

		maxN, maxT, maxG := len("Tournament"), len("Tier"), len("Tour")
		for _, r := range rows {
			if l := len(r.name); l > maxN {
				maxN = l
			}
			if l := len(r.tier); l > maxT {
				maxT = l
			}
			if l := len(r.gender); l > maxG {
				maxG = l
			}
		}

		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxN,
			"Tournament", maxT, "Tier", maxG, "Tour", "Dates"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxN,
				r.name, maxT, r.tier, maxG, r.gender, r.dates))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildItfDetailOutput formats one ITF acceptance list.
func BuildItfDetailOutput(view ItfDetailView) string {
	t := view.Tournament
	var sb strings.Builder

	header := t.Name
	if t.Tier != "" {
		header += fmt.Sprintf(" (%v)", t.Tier)
	}
	if t.Gender != "" {
		header += fmt.Sprintf(", %v", t.Gender)
	}
	if t.Week != "" {
		header += fmt.Sprintf(", week of %v", t.Week)
	}
	sb.WriteString(header + "\n")
	if t.Dates != "" {
		sb.WriteString(t.Dates + "\n")
	}
	sb.WriteString("\n")

	if len(t.Entrants) == 0 {
		sb.WriteString("No entries found\n")
		return sb.String()
	}

	writeEntrantSections(&sb, view.Sections)

	if n := len(view.Withdrawn); n > 0 {
		sb.WriteString(fmt.Sprintf("%v of %v entrants withdrawn\n", n,
			len(t.Entrants)))
	}

	return sb.String()
}

// BuildRouteOutput resolves a route to its view and renders it as
// text. Detail lookups that miss produce a short message instead of a
// table.
func BuildRouteOutput(ix *Indexes, rt Route, st FilterState) string {
	view, status := ViewForRoute(ix, rt, st)
	if status == LookupNotFound {
		switch rt.View {
		case ViewPlayer:
			return fmt.Sprintf("No player named %q found\n", rt.Player)
		case ViewItfTournament:
			return fmt.Sprintf("No ITF tournament %q found\n",
				rt.ItfKey.String())
		default:
			return fmt.Sprintf("No tournament named %q found\n",
				rt.Tournament)
		}
	}

	switch v := view.(type) {
	case DashboardView:
		return BuildDashboardOutput(v)
	case PlayerView:
		return BuildPlayerOutput(v)
	case TournamentsView:
		return BuildTournamentsOutput(v)
	case TournamentDetailView:
		return BuildTournamentDetailOutput(v)
	case WithdrawalsView:
		return BuildWithdrawalsOutput(v)
	case ItfView:
		return BuildItfOutput(v)
	case ItfDetailView:
		return BuildItfDetailOutput(v)
	}

	return ""
}
