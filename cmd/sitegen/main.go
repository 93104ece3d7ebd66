/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// sitegen runs the full publishing pipeline: fetch rankings, scrape
// entry lists from every enabled source, match players to entries,
// and write the data.js, dataset JSON, and CSV artifacts the static
// site serves.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/match"
	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
	"github.com/mikeb26/tennistour-entrybot/site"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

func main() {
	ctx := context.Background()

	fs := flag.NewFlagSet("sitegen", flag.ExitOnError)
	gender := fs.String("gender", "both",
		"Which tour to track: men, women, or both")
	maxRank := fs.Int("max-rank", tour.DefaultRankMax,
		"Highest rank to include")
	skipWta := fs.Bool("skip-wta", false,
		"Skip the WTA official site scrape")
	skipItf := fs.Bool("skip-itf", false,
		"Skip the ITF acceptance list scrape (needs headless Chrome)")
	limitItf := fs.Int("limit-itf", 0,
		"Only scrape the first N ITF tournaments per tour (0 = all)")
	outDir := fs.String("output", "docs",
		"Directory for the generated artifacts")
	csvName := fs.String("csv", "",
		"CSV filename (default: entry_lists_<timestamp>.csv)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	switch *gender {
	case "men", "women", "both":
	default:
		fmt.Fprintln(os.Stderr,
			"Please provide a valid -gender (men, women, or both).")
		fs.Usage()
		os.Exit(1)
	}

	now := time.Now()

	players := fetchRankings(ctx, *gender, *maxRank)
	entries, itfResult := scrapeSources(ctx, *gender, *skipWta, *skipItf,
		*limitItf)

	fmt.Printf("Matching %v players against %v entry records\n",
		len(players), len(entries))
	entryMap := match.BuildPlayerEntryMap(players, entries)

	rawFull := fullListEntries(entries)
	fmt.Printf("Full entry list records (Challenger and WTA 125): %v\n",
		len(rawFull))

	ds := site.BuildDataset(players, entryMap, rawFull, itfResult, now)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	name := *csvName
	if name == "" {
		name = fmt.Sprintf("entry_lists_%v.csv", now.Format("20060102_150405"))
	}
	csvPath := filepath.Join(*outDir, name)
	if err := site.WriteCSV(players, entryMap, csvPath); err != nil {
		log.Fatalf("Error writing CSV: %v", err)
	}

	dataJsPath := filepath.Join(*outDir, "data.js")
	if err := site.WriteDataJS(ds, dataJsPath); err != nil {
		log.Fatalf("Error writing data.js: %v", err)
	}

	jsonPath := filepath.Join(*outDir, "dataset.json")
	if err := site.WriteDatasetJSON(ds, jsonPath); err != nil {
		log.Fatalf("Error writing dataset JSON: %v", err)
	}

	fmt.Println()
	fmt.Printf("Players: %v (%v with entries); entries: %v across %v tournaments\n",
		ds.Stats.TotalPlayers, ds.Stats.PlayersWithEntries,
		ds.Stats.TotalEntries, ds.Stats.UniqueTournaments)
	fmt.Printf("Done. Results saved to:\n")
	fmt.Printf("  CSV:  %v\n", csvPath)
	fmt.Printf("  Site: %v\n", dataJsPath)
	fmt.Printf("  JSON: %v\n", jsonPath)
}

// fetchRankings pulls the ranking tables for the selected tours. A
// single tour failing degrades to a warning; both failing (or an
// empty result) aborts the run since nothing downstream can match.
func fetchRankings(ctx context.Context, gender string,
	maxRank int) []rankings.RankedPlayer {

	client := rankings.NewClient(ctx)

	var players []rankings.RankedPlayer
	if gender == "men" || gender == "both" {
		atp, err := client.FetchRankings(ctx, "M", maxRank)
		if err != nil {
			log.Printf("sitegen: warning unable to fetch ATP rankings: %v",
				err)
		}
		players = append(players, atp...)
		time.Sleep(internal.RequestDelay)
	}
	if gender == "women" || gender == "both" {
		wta, err := client.FetchRankings(ctx, "F", maxRank)
		if err != nil {
			log.Printf("sitegen: warning unable to fetch WTA rankings: %v",
				err)
		}
		players = append(players, wta...)
	}
	if len(players) == 0 {
		log.Fatalf("Error fetching rankings: no players returned")
	}
	fmt.Printf("Total ranked players: %v\n", len(players))

	return players
}

// scrapeSources gathers entry records from every enabled source and
// returns them alongside the full ITF acceptance lists. Individual
// source failures degrade to warnings.
func scrapeSources(ctx context.Context, gender string, skipWta,
	skipItf bool, limitItf int) ([]scrape.Entry, *scrape.ItfResult) {

	client := scrape.NewClient(ctx)

	entries, err := client.ScrapeTickTock(ctx)
	if err != nil {
		log.Printf("sitegen: warning Tick Tock Tennis scrape failed: %v", err)
	}
	fmt.Printf("Tick Tock Tennis: %v entry records\n", len(entries))

	if skipWta {
		fmt.Println("Skipping WTA Official (-skip-wta)")
	} else {
		time.Sleep(internal.RequestDelay)
		wtaEntries, err := client.ScrapeWTA(ctx)
		if err != nil {
			log.Printf("sitegen: warning WTA official scrape failed: %v", err)
		}
		fmt.Printf("WTA Official: %v entry records\n", len(wtaEntries))
		entries = append(entries, wtaEntries...)
	}

	var itfResult *scrape.ItfResult
	if skipItf {
		fmt.Println("Skipping ITF entries (-skip-itf)")
	} else {
		time.Sleep(internal.RequestDelay)
		itfResult, err = scrape.ScrapeITF(ctx, limitItf)
		if err != nil {
			log.Printf("sitegen: warning ITF scrape failed: %v", err)
		} else {
			fmt.Printf("ITF: %v entry records across %v acceptance lists\n",
				len(itfResult.Entries), len(itfResult.Lists))
			entries = append(entries, itfResult.Entries...)
		}
	}

	entries = filterByGender(entries, gender)
	fmt.Printf("Total entry list records: %v\n", len(entries))

	return entries, itfResult
}

// filterByGender drops entries from the tour that was not selected.
func filterByGender(entries []scrape.Entry, gender string) []scrape.Entry {
	var code string
	switch gender {
	case "men":
		code = "M"
	case "women":
		code = "F"
	default:
		return entries
	}

	filtered := make([]scrape.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Gender == code {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// fullListEntries keeps the records whose tiers publish complete
// acceptance lists on their tournament pages. These feed the
// tournament detail views verbatim rather than through player
// matching.
func fullListEntries(entries []scrape.Entry) []scrape.Entry {
	var full []scrape.Entry
	for _, e := range entries {
		if strings.Contains(e.Tier, "Challenger") ||
			strings.Contains(e.Tier, "125") {
			full = append(full, e)
		}
	}

	return full
}
