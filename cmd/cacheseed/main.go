/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/internal/httpcache"
	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

// this program exists just to seed the http cache ahead of the
// scheduled pipeline run and the discord bot's interactions. ITF pages
// are not seeded; they need headless Chrome and only the pipeline host
// carries one.

func main() {
	ctx := context.Background()

	rankingsClient := rankings.NewClient(ctx)
	for _, gender := range []string{"M", "F"} {
		players, err := rankingsClient.FetchRankings(ctx, gender,
			tour.DefaultRankMax)
		time.Sleep(internal.RequestDelay) // avoid pegging the sources
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v %v ranked players\n", len(players), gender)
	}

	scrapeClient := scrape.NewClient(ctx)
	entries, err := scrapeClient.ScrapeTickTock(ctx)
	time.Sleep(internal.RequestDelay) // avoid pegging the sources
	if err == nil {
		fmt.Printf("seeded %v tick tock entries\n", len(entries))
	}

	wtaEntries, err := scrapeClient.ScrapeWTA(ctx)
	time.Sleep(internal.RequestDelay) // avoid pegging the sources
	if err == nil {
		fmt.Printf("seeded %v wta official entries\n", len(wtaEntries))
	}

	client := httpcache.NewCachedHttpClient(ctx, time.Hour)
	ds, err := tour.FetchDataset(ctx, client, internal.DefaultDatasetUrl)
	if err != nil {
		// best effort
		return
	}

	fmt.Printf("seeded dataset generated at %v\n", ds.Stats.GeneratedAt)
}
