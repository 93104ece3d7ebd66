/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/internal/httpcache"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

//go:embed help.txt
var helpText string

// datasetCacheTtl bounds how stale a fetched dataset may be; the site
// generator publishes a fresh one daily.
const datasetCacheTtl = 6 * time.Hour

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":           handleHelp,
	"dashboard":      handleDashboard,
	"player":         handlePlayer,
	"tournaments":    handleTournaments,
	"entry-lists":    handleEntryLists,
	"tournament":     handleTournament,
	"withdrawals":    handleWithdrawals,
	"itf":            handleItf,
	"itf-tournament": handleItfTournament,
	"route":          handleRoute,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// datasetFlags selects where the dataset loads from.
type datasetFlags struct {
	data *string
	url  *string
}

func addDatasetFlags(fs *flag.FlagSet) datasetFlags {
	return datasetFlags{
		data: fs.String("data", "",
			"Load the dataset from a local data.js or JSON file"),
		url: fs.String("url", internal.DefaultDatasetUrl,
			"Fetch the dataset from this URL"),
	}
}

func (df datasetFlags) load(ctx context.Context) *tour.Indexes {
	var ds *tour.Dataset
	var err error
	if *df.data != "" {
		ds, err = tour.ReadDatasetFile(*df.data)
	} else {
		client := httpcache.NewCachedHttpClient(ctx, datasetCacheTtl)
		ds, err = tour.FetchDataset(ctx, client, *df.url)
	}
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}

	return tour.BuildIndexes(ds, time.Now())
}

// filterFlags mirror the site's filter controls.
type filterFlags struct {
	gender      *string
	search      *string
	rankMin     *int
	rankMax     *int
	entriesOnly *bool
	tier        *string
}

func addFilterFlags(fs *flag.FlagSet) filterFlags {
	return filterFlags{
		gender: fs.String("gender", tour.FilterAll,
			"Filter by tour: men, women, or all"),
		search: fs.String("search", "",
			"Substring match on player, country, or tournament name"),
		rankMin: fs.Int("rank-min", 1, "Lowest rank to include"),
		rankMax: fs.Int("rank-max", tour.DefaultRankMax,
			"Highest rank to include"),
		entriesOnly: fs.Bool("entries-only", false,
			"Only show players with at least one entry"),
		tier: fs.String("tier", tour.FilterAll,
			"Tier filter for tournament views"),
	}
}

func (ff filterFlags) state() tour.FilterState {
	st := tour.DefaultFilterState()
	st.Gender = genderFilter(*ff.gender)
	st.Search = *ff.search
	st.RankMin = *ff.rankMin
	st.RankMax = *ff.rankMax
	st.EntriesOnly = *ff.entriesOnly
	if *ff.tier != "" {
		st.Tier = *ff.tier
		st.ItfTier = *ff.tier
	}
	st.ItfGender = st.Gender

	return st
}

// genderFilter maps the flag value to the dataset's gender labels.
func genderFilter(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "m":
		return tour.GenderMen
	case "women", "w", "f":
		return tour.GenderWomen
	}
	return tour.FilterAll
}

// genderLabel maps the flag value for commands that want a concrete
// tour rather than a filter; empty means unspecified.
func genderLabel(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "m":
		return tour.GenderMen
	case "women", "w", "f":
		return tour.GenderWomen
	}
	return ""
}

// printChunked pages long output the way the site's incremental
// renderer does: the first chunk prints immediately and the rest is
// summarized unless -all was given.
func printChunked(text string, all bool) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")

	list := tour.NewChunkedList(len(lines), tour.DefaultChunkSize,
		func(start, end int) {
			for _, line := range lines[start:end] {
				fmt.Println(line)
			}
		})
	defer list.Dispose()

	if all {
		for list.Remaining() > 0 {
			list.Extend()
		}
		return
	}
	if rem := list.Remaining(); rem > 0 {
		fmt.Printf("... %v more rows; rerun with -all to print everything\n",
			rem)
	}
}

func handleDashboard(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	df := addDatasetFlags(fs)
	ff := addFilterFlags(fs)
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ix := df.load(ctx)
	view := tour.BuildDashboardView(ix, ff.state())
	printChunked(tour.BuildDashboardOutput(view), *all)
}

func handlePlayer(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("player", flag.ExitOnError)
	df := addDatasetFlags(fs)
	name := fs.String("name", "", "Player name to look up")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a player via -name.")
		fs.Usage()
		os.Exit(1)
	}

	ix := df.load(ctx)
	fmt.Print(tour.BuildRouteOutput(ix, tour.PlayerRoute(*name),
		tour.DefaultFilterState()))
}

func handleTournaments(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("tournaments", flag.ExitOnError)
	df := addDatasetFlags(fs)
	ff := addFilterFlags(fs)
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ix := df.load(ctx)
	view := tour.BuildTournamentsView(ix, ff.state())
	printChunked(tour.BuildTournamentsOutput(view), *all)
}

func handleEntryLists(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("entry-lists", flag.ExitOnError)
	df := addDatasetFlags(fs)
	ff := addFilterFlags(fs)
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ix := df.load(ctx)
	view := tour.BuildEntryListsView(ix, ff.state())
	printChunked(tour.BuildTournamentsOutput(view), *all)
}

func handleTournament(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("tournament", flag.ExitOnError)
	df := addDatasetFlags(fs)
	name := fs.String("name", "", "Tournament name to look up")
	gender := fs.String("gender", "",
		"Tour to show when both run the same week: men or women")
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a tournament via -name.")
		fs.Usage()
		os.Exit(1)
	}

	ix := df.load(ctx)
	rt := tour.TournamentRoute(*name, genderLabel(*gender))
	printChunked(tour.BuildRouteOutput(ix, rt, tour.DefaultFilterState()),
		*all)
}

func handleWithdrawals(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("withdrawals", flag.ExitOnError)
	df := addDatasetFlags(fs)
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ix := df.load(ctx)
	view := tour.BuildWithdrawalsView(ix)
	printChunked(tour.BuildWithdrawalsOutput(view), *all)
}

func handleItf(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("itf", flag.ExitOnError)
	df := addDatasetFlags(fs)
	ff := addFilterFlags(fs)
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ix := df.load(ctx)
	view := tour.BuildItfView(ix, ff.state())
	printChunked(tour.BuildItfOutput(view), *all)
}

func handleItfTournament(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("itf-tournament", flag.ExitOnError)
	df := addDatasetFlags(fs)
	rawKey := fs.String("key", "",
		"ITF list key, e.g. \"m15 monastir|itf|men|feb 16\"")
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *rawKey == "" {
		fmt.Fprintln(os.Stderr, "Please provide a list key via -key.")
		fs.Usage()
		os.Exit(1)
	}
	key, err := tour.ParseItfKey(*rawKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid key: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	ix := df.load(ctx)
	rt := tour.ItfTournamentRoute(key)
	printChunked(tour.BuildRouteOutput(ix, rt, tour.DefaultFilterState()),
		*all)
}

func handleRoute(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	df := addDatasetFlags(fs)
	ff := addFilterFlags(fs)
	all := fs.Bool("all", false, "Print every row")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr,
			"Please provide a route fragment, e.g. \"player/Iga%20Swiatek\".")
		fs.Usage()
		os.Exit(1)
	}

	ix := df.load(ctx)
	rt := tour.ParseRoute(fs.Arg(0))
	printChunked(tour.BuildRouteOutput(ix, rt, ff.state()), *all)
}
