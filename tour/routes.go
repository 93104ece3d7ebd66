/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"net/url"
	"strings"
)

// View discriminates the browsing surfaces.
type View int

const (
	ViewDashboard View = iota
	ViewPlayer
	ViewTournaments
	ViewEntryLists
	ViewWithdrawals
	ViewItf
	ViewItfTournament
	ViewTournamentDetail
)

func (v View) String() string {
	switch v {
	case ViewPlayer:
		return "player"
	case ViewTournaments:
		return "tournaments"
	case ViewEntryLists:
		return "entry-lists"
	case ViewWithdrawals:
		return "withdrawals"
	case ViewItf:
		return "itf"
	case ViewItfTournament:
		return "itf-tournament"
	case ViewTournamentDetail:
		return "tournament"
	}
	return "dashboard"
}

// Route is a parsed navigation fragment. Only the fields relevant to
// the View are set.
type Route struct {
	View       View
	Player     string
	Tournament string
	Gender     string
	ItfKey     ItfKey
}

// PlayerRoute links to a player profile.
func PlayerRoute(name string) Route {
	return Route{View: ViewPlayer, Player: name}
}

// TournamentRoute links to a tournament detail; gender may be empty.
func TournamentRoute(name, gender string) Route {
	return Route{View: ViewTournamentDetail, Tournament: name, Gender: gender}
}

// ItfTournamentRoute links to an ITF acceptance-list detail.
func ItfTournamentRoute(key ItfKey) Route {
	return Route{View: ViewItfTournament, ItfKey: key}
}

// ParseRoute maps a navigation fragment to a Route. Unrecognized
// fragments and fragments whose encoded parts fail to decode fall back
// to the dashboard; navigation never errors. Percent-encoding
// round-trips exactly with (Route).String.
func ParseRoute(fragment string) Route {
	fragment = strings.TrimPrefix(strings.TrimPrefix(fragment, "#"), "/")

	head, rest, _ := strings.Cut(fragment, "/")
	switch head {
	case "":
		return Route{View: ViewDashboard}
	case "player":
		name, err := url.PathUnescape(rest)
		if err != nil || name == "" {
			return Route{View: ViewDashboard}
		}
		return PlayerRoute(name)
	case "tournaments":
		return Route{View: ViewTournaments}
	case "entry-lists":
		return Route{View: ViewEntryLists}
	case "withdrawals":
		return Route{View: ViewWithdrawals}
	case "itf":
		return Route{View: ViewItf}
	case "itf-tournament":
		raw, err := url.PathUnescape(rest)
		if err != nil || raw == "" {
			return Route{View: ViewDashboard}
		}
		key, err := ParseItfKey(raw)
		if err != nil {
			return Route{View: ViewDashboard}
		}
		return ItfTournamentRoute(key)
	case "tournament":
		// the escaped name cannot contain a literal delimiter, so the
		// optional gender sits after the first "|"
		nameEsc, genderEsc, hasGender := strings.Cut(rest, "|")
		name, err := url.PathUnescape(nameEsc)
		if err != nil || name == "" {
			return Route{View: ViewDashboard}
		}
		gender := ""
		if hasGender {
			gender, err = url.PathUnescape(genderEsc)
			if err != nil {
				return Route{View: ViewDashboard}
			}
		}
		return TournamentRoute(name, gender)
	}

	return Route{View: ViewDashboard}
}

// String renders the navigation fragment for a Route.
func (r Route) String() string {
	switch r.View {
	case ViewPlayer:
		return "player/" + url.PathEscape(r.Player)
	case ViewTournamentDetail:
		s := "tournament/" + url.PathEscape(r.Tournament)
		if r.Gender != "" {
			s += "|" + url.PathEscape(r.Gender)
		}
		return s
	case ViewItfTournament:
		return "itf-tournament/" + url.PathEscape(r.ItfKey.String())
	case ViewTournaments, ViewEntryLists, ViewWithdrawals, ViewItf:
		return r.View.String()
	}
	return ""
}
