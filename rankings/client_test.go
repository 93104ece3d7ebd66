/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rankings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type rewriteHostRoundTripper struct {
	base *url.URL
	up   http.RoundTripper
}

func (rt rewriteHostRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request and rewrite the destination to the test server.
	req2 := req.Clone(req.Context())
	u := *req.URL
	u.Scheme = rt.base.Scheme
	u.Host = rt.base.Host
	req2.URL = &u
	return rt.up.RoundTrip(req2)
}

func newTestClient(t *testing.T,
	handler http.HandlerFunc) (*Client, *httptest.Server) {

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	base, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server url: %v", err)
	}
	hc := &http.Client{
		Transport: rewriteHostRoundTripper{base: base, up: http.DefaultTransport},
	}

	return &Client{httpClient7day: hc, httpClient1day: hc}, ts
}

const liveApiJson = `{"rankings":[
  {"ranking":1,"points":9850,"rowName":"Aryna Sabalenka",
   "team":{"name":"Sabalenka A.","country":{"alpha3":"BLR","name":"Belarus"}}},
  {"ranking":2,"points":8120,"rowName":"Iga Swiatek",
   "team":{"name":"Swiatek I.","country":{"alpha3":"POL","name":"Poland"}}}
]}`

func TestFetchRankingsPrefersReport(t *testing.T) {
	ctx := context.Background()
	t.Setenv("RAPIDAPI_KEY", "test-key")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reports/wtaRankings.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><table id="reportable">
<tr><th>Rank</th><th>Player</th><th>Country</th></tr>
<tr><td>1</td><td>Aryna&nbsp;Sabalenka</td><td>BLR</td></tr>
<tr><td>2</td><td>Iga&nbsp;Swiatek</td><td>POL</td></tr>
<tr><td>3</td><td>Coco&nbsp;Gauff</td><td>USA</td></tr>
</table></body></html>`))
		case "/api/tennis/rankings/wta":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(liveApiJson))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	players, err := client.FetchRankings(ctx, "F", 500)
	if err != nil {
		t.Fatalf("FetchRankings returned error: %v", err)
	}

	// The report has three players, the live API only two; the report must
	// win whenever it is non-empty.
	if len(players) != 3 {
		t.Fatalf("len(players) = %d; want 3 (report result)", len(players))
	}
	if players[2].Name != "Coco Gauff" {
		t.Errorf("players[2].Name = %q; want %q", players[2].Name, "Coco Gauff")
	}
	if players[0].Points != 0 {
		t.Errorf("players[0].Points = %d; want 0 (report carries no points)",
			players[0].Points)
	}
}

func TestFetchRankingsFallsBackToAPI(t *testing.T) {
	ctx := context.Background()
	t.Setenv("RAPIDAPI_KEY", "test-key")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reports/wtaRankings.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><p>down for maintenance</p></body></html>`))
		case "/api/tennis/rankings/wta":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(liveApiJson))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	players, err := client.FetchRankings(ctx, "F", 500)
	if err != nil {
		t.Fatalf("FetchRankings returned error: %v", err)
	}

	if len(players) != 2 {
		t.Fatalf("len(players) = %d; want 2 (live API result)", len(players))
	}
	if players[0].Name != "Aryna Sabalenka" {
		t.Errorf("players[0].Name = %q; want %q",
			players[0].Name, "Aryna Sabalenka")
	}
	if players[0].CountryName != "Belarus" {
		t.Errorf("players[0].CountryName = %q; want %q",
			players[0].CountryName, "Belarus")
	}
	if players[0].Points != 9850 {
		t.Errorf("players[0].Points = %d; want 9850", players[0].Points)
	}
}

func TestFetchRankingsBothSourcesFail(t *testing.T) {
	ctx := context.Background()
	t.Setenv("RAPIDAPI_KEY", "test-key")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchRankings(ctx, "M", 500)
	if err == nil {
		t.Fatal("expected error when both sources fail")
	}
}
