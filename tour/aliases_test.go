/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"testing"
)

func TestCanonicalTournamentName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "sponsor alias", in: "ABN AMRO Open", want: "Rotterdam"},
		{name: "alias is case insensitive", in: "qatar exxonmobil open", want: "Doha"},
		{name: "alias with apostrophe", in: "Internazionali BNL d'Italia", want: "Rome"},
		{name: "tour prefix stripped", in: "ATP DOHA", want: "Doha"},
		{name: "all caps title cased", in: "MONTE CARLO", want: "Monte Carlo"},
		{name: "all caps particle", in: "RIO DE JANEIRO", want: "Rio de Janeiro"},
		{name: "all caps then alias", in: "INTERNAZIONALI D'ITALIA", want: "Rome"},
		{name: "challenger suffix stripped", in: "Baton Rouge (CH 50)", want: "Baton Rouge"},
		{name: "challenger suffix then alias", in: "BRISBANE INTERNATIONAL (CH 125)", want: "Brisbane"},
		{name: "accents stripped", in: "Båstad", want: "Bastad"},
		{name: "short acronym kept", in: "ATP", want: "ATP"},
		{name: "plain city passthrough", in: "Brisbane", want: "Brisbane"},
		{name: "empty", in: "", want: ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanonicalTournamentName(c.in); got != c.want {
				t.Errorf("CanonicalTournamentName(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}
