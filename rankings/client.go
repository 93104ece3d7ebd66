/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rankings

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal/httpcache"
	"golang.org/x/sync/errgroup"
)

// RankedPlayer is one row of a tour ranking table.
type RankedPlayer struct {
	Name   string
	Rank   int
	Gender string // "M" (ATP) or "F" (WTA)
	// Country is the IOC country code, e.g. "USA". CountryName is only
	// populated by the live API; the Tennis Abstract report carries codes
	// only.
	Country     string
	CountryName string
	Points      int
}

type Client struct {
	// Rankings only move once a week (Monday); the live API keeps a
	// shorter leash in case the weekly report lags.
	httpClient7day *http.Client
	httpClient1day *http.Client
}

func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient7day: httpcache.NewCachedHttpClient(ctx, 7*24*time.Hour),
		httpClient1day: httpcache.NewCachedHttpClient(ctx, 24*time.Hour),
	}
}

// FetchRankings returns players ranked 1..maxRank for one tour. gender is
// "M" for ATP or "F" for WTA. The Tennis Abstract report is the primary
// source since it lists 2000+ players; the live API caps out around 500 so
// it only serves as a fallback. Both fetches run concurrently and the
// report result wins whenever it is non-empty.
func (client *Client) FetchRankings(ctx context.Context, gender string,
	maxRank int) ([]RankedPlayer, error) {

	var scraped, live []RankedPlayer
	var scrapeErr, liveErr error

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scraped, scrapeErr = client.fetchRankingsReport(ctx, gender, maxRank)
		return nil
	})
	g.Go(func() error {
		live, liveErr = client.fetchRankingsAPI(ctx, gender, maxRank)
		return nil
	})
	g.Wait()

	if scrapeErr == nil && len(scraped) > 0 {
		return scraped, nil
	}
	if scrapeErr != nil {
		log.Printf("rankings: warning Tennis Abstract fetch failed: %v; falling back to live API",
			scrapeErr)
	}
	if liveErr != nil {
		if scrapeErr != nil {
			return nil, fmt.Errorf("unable to fetch %v rankings (report: %v) (api): %w",
				tourName(gender), scrapeErr, liveErr)
		}
		return nil, fmt.Errorf("unable to fetch %v rankings (api): %w",
			tourName(gender), liveErr)
	}

	return live, nil
}

// tourName returns the tour label for a pipeline gender code.
func tourName(gender string) string {
	if gender == "F" {
		return "WTA"
	}
	return "ATP"
}
