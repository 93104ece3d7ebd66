/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tour models the published entry-list dataset and derives the
// read-only indexes, filters, and view models the browsing surfaces
// (CLI, discord bot, static site) are built from.
package tour

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
)

// Entry is one tournament commitment belonging to exactly one player.
type Entry struct {
	Tournament     string `json:"tournament"`
	Tier           string `json:"tier"`
	Week           string `json:"week"`
	Section        string `json:"section"`
	Source         string `json:"source"`
	Withdrawn      bool   `json:"withdrawn"`
	Reason         string `json:"reason,omitempty"`
	WithdrawalType string `json:"withdrawalType,omitempty"`
	EntryMethod    string `json:"entryMethod,omitempty"`
}

// Player is a ranked tour player plus every entry the pipeline matched
// to them. Gender carries the display label ("Men"/"Women").
type Player struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Gender  string  `json:"gender"`
	Country string  `json:"country"`
	Entries []Entry `json:"entries"`
}

// TournamentMeta is the per-tournament summary record emitted by the
// site generator. One record per (name, gender) pair.
type TournamentMeta struct {
	Name        string   `json:"name"`
	Tier        string   `json:"tier"`
	Gender      string   `json:"gender"`
	Surface     string   `json:"surface,omitempty"`
	City        string   `json:"city,omitempty"`
	Country     string   `json:"country,omitempty"`
	Dates       string   `json:"dates,omitempty"`
	Week        string   `json:"week"`
	PlayerCount int      `json:"playerCount"`
	Sections    []string `json:"sections"`
}

// ListPlayer is the compact per-player record used inside full entry
// lists and ITF acceptance lists. Rank 0 means unranked.
type ListPlayer struct {
	Name        string `json:"n"`
	Rank        int    `json:"r"`
	Country     string `json:"c"`
	Section     string `json:"s"`
	Withdrawn   bool   `json:"w,omitempty"`
	EntryMethod string `json:"m,omitempty"`
}

// FullEntryList is an authoritative complete player list for one
// tournament, superseding the rank-derived aggregate for lower-tier
// events where ranking data alone is incomplete.
type FullEntryList struct {
	Name    string       `json:"name"`
	Tier    string       `json:"tier"`
	Week    string       `json:"week"`
	Gender  string       `json:"gender"`
	Players []ListPlayer `json:"players"`
}

// ItfTournament is one row of the ITF calendar.
type ItfTournament struct {
	Name   string `json:"name"`
	Tier   string `json:"tier"`
	Gender string `json:"gender"`
	Week   string `json:"week"`
	Dates  string `json:"dates,omitempty"`
}

// ItfEntryList holds the acceptance list for one ITF tournament.
type ItfEntryList struct {
	Name    string       `json:"name"`
	Tier    string       `json:"tier"`
	Gender  string       `json:"gender"`
	Week    string       `json:"week"`
	Dates   string       `json:"dates,omitempty"`
	Players []ListPlayer `json:"players"`
}

// Stats carries the precomputed aggregate counters displayed on the
// dashboard header.
type Stats struct {
	TotalPlayers       int    `json:"totalPlayers"`
	PlayersWithEntries int    `json:"playersWithEntries"`
	TotalEntries       int    `json:"totalEntries"`
	UniqueTournaments  int    `json:"uniqueTournaments"`
	GeneratedAt        string `json:"generatedAt"`
}

// GeneratedAtTime parses the generation timestamp; zero when absent or
// unparseable.
func (s Stats) GeneratedAtTime() time.Time {
	t, err := internal.ParseDateOrZero(s.GeneratedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Dataset is the full published structure. Players arrive ordered by
// gender then ascending rank; weeks span the full calendar horizon
// before any window filtering. FullEntries is keyed "name|gender" and
// ItfEntries "city|itf|gender|week" in the serialized form; the typed
// keys live in the index layer.
type Dataset struct {
	Players        []Player                 `json:"players"`
	Weeks          []string                 `json:"weeks"`
	Tournaments    []TournamentMeta         `json:"tournaments"`
	Stats          Stats                    `json:"stats"`
	FullEntries    map[string]FullEntryList `json:"fullEntries,omitempty"`
	ItfTournaments []ItfTournament          `json:"itfTournaments,omitempty"`
	ItfEntries     map[string]ItfEntryList  `json:"itfEntries,omitempty"`
}

const dataJsPrefix = "window.TENNIS_DATA="

// LoadDataset decodes a dataset from r. Both the raw JSON form and the
// data.js form ("window.TENNIS_DATA=<json>;") are accepted so the same
// loader can read local pipeline output and the published site file.
func LoadDataset(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to load dataset (read): %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if idx := strings.Index(text, dataJsPrefix); idx >= 0 {
		text = text[idx+len(dataJsPrefix):]
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ";"))
	}

	var ds Dataset
	if err := json.Unmarshal([]byte(text), &ds); err != nil {
		return nil, fmt.Errorf("unable to load dataset (decode): %w", err)
	}

	return &ds, nil
}

// ReadDatasetFile loads a dataset from a local data.js or JSON file.
func ReadDatasetFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load dataset (open): %w", err)
	}
	defer f.Close()

	return LoadDataset(f)
}

// FetchDataset retrieves the published dataset over HTTP.
func FetchDataset(ctx context.Context, client *http.Client,
	url string) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch dataset (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch dataset (do): %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch dataset (http): status %v",
			resp.StatusCode)
	}

	return LoadDataset(resp.Body)
}
