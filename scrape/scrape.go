/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package scrape collects tournament entry lists from the public entry
// list sites and tour APIs. Each scraper emits Entry records in a common
// shape; matching entries to ranked players happens downstream.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/internal/httpcache"
)

type Source int

const (
	SourceTickTock Source = iota
	SourceWTAOfficial
	SourceITF
)

func (s Source) String() string {
	if s == SourceTickTock {
		return "TickTockTennis"
	} else if s == SourceWTAOfficial {
		return "WTA Official"
	} else if s == SourceITF {
		return "ITFEntries"
	} else {
		return "?"
	}
}

// Entry is one player's appearance on one tournament's entry list,
// before any matching against the rankings. Week carries whatever date
// label the source used; normalization happens at dataset build time.
type Entry struct {
	Tournament    string
	Tier          string
	Week          string
	Section       string
	PlayerName    string
	PlayerRank    int
	PlayerCountry string
	Withdrawn     bool
	Gender        string // "M" or "F"
	Source        Source
	EntryMethod   string // "PR" for protected-ranking entries
}

type Client struct {
	httpClient *http.Client
}

func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient: httpcache.NewCachedHttpClient(ctx, 4*time.Hour),
	}
}

// fetchPage gets the raw HTML at the given URL using the configured
// User-Agent.
func (client *Client) fetchPage(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func (client *Client) fetchDoc(url string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

var (
	prRankRe    = regexp.MustCompile(`^(\d+)\s*\(PR\s+\d+\)`)
	plainRankRe = regexp.MustCompile(`^\d+$`)

	placeholderEntrantRe = regexp.MustCompile(`^(?:\d+\.\s*)?(SE|WC|Q|LL)\s*$`)
)

// ParseEntryRank parses a ranking cell. "206" is a plain rank,
// "56 (PR 259)" is a protected-ranking entry (rank 56, method "PR"),
// and dashes or anything else mean unranked.
func ParseEntryRank(text string) (int, string) {
	text = strings.TrimSpace(text)

	if m := prRankRe.FindStringSubmatch(text); m != nil {
		rank, _ := strconv.Atoi(m[1])
		return rank, "PR"
	}
	if plainRankRe.MatchString(text) {
		rank, _ := strconv.Atoi(text)
		return rank, ""
	}

	return 0, ""
}

// IsPlaceholderEntrant reports whether an entrant cell holds a reserved
// slot marker ("22. SE", "27. Q", "LL") instead of a player name.
func IsPlaceholderEntrant(text string) bool {
	return placeholderEntrantRe.MatchString(strings.TrimSpace(text))
}
