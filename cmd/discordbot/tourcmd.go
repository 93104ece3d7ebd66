/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/internal/httpcache"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

type TourSubCommand string

const (
	TourAboutCmd         TourSubCommand = "about"
	TourHelpCmd          TourSubCommand = "help"
	TourDashboardCmd     TourSubCommand = "dashboard"
	TourPlayerCmd        TourSubCommand = "player"
	TourTournamentsCmd   TourSubCommand = "tournaments"
	TourEntryListsCmd    TourSubCommand = "entry-lists"
	TourTournamentCmd    TourSubCommand = "tournament"
	TourWithdrawalsCmd   TourSubCommand = "withdrawals"
	TourItfCmd           TourSubCommand = "itf"
	TourItfTournamentCmd TourSubCommand = "itf-tournament"
)

var tourSubCmdHdlrs = map[TourSubCommand]CmdHandler{
	TourAboutCmd:         tourAboutCmdHandler,
	TourHelpCmd:          tourHelpCmdHandler,
	TourDashboardCmd:     tourDashboardCmdHandler,
	TourPlayerCmd:        tourPlayerCmdHandler,
	TourTournamentsCmd:   tourTournamentsCmdHandler,
	TourEntryListsCmd:    tourEntryListsCmdHandler,
	TourTournamentCmd:    tourTournamentCmdHandler,
	TourWithdrawalsCmd:   tourWithdrawalsCmdHandler,
	TourItfCmd:           tourItfCmdHandler,
	TourItfTournamentCmd: tourItfTournamentCmdHandler,
}

func tourCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := tourHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := tourSubCmdHdlrs[TourSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

// The bot serves whatever dataset the site generator last published.
// datasetCacheTtl bounds how far behind an interaction may run.
const datasetCacheTtl = 1 * time.Hour

var datasetUrl = internal.DefaultDatasetUrl

var (
	datasetClientOnce sync.Once
	datasetClient     *http.Client
)

func loadIndexes(ctx context.Context) (*tour.Indexes, error) {
	datasetClientOnce.Do(func() {
		datasetClient = httpcache.NewCachedHttpClient(context.Background(),
			datasetCacheTtl)
	})

	ds, err := tour.FetchDataset(ctx, datasetClient, datasetUrl)
	if err != nil {
		return nil, err
	}
	return tour.BuildIndexes(ds, time.Now()), nil
}

//go:embed about.txt
var aboutText string

func tourAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func tourHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(helpText)
	return resp
}

func tourDashboardCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	st := tour.DefaultFilterState()
	broadcast := false
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "gender" {
				st.Gender = genderFilter(opt.StringValue())
				st.ItfGender = st.Gender
			} else if opt.Name == "search" {
				st.Search = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.dashboard: %v", resp.Data.Content)
		return resp
	}

	view := tour.BuildDashboardView(ix, st)
	resp.Data.Content = codeBlock(truncateContent(
		tour.BuildDashboardOutput(view)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tourPlayerCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	broadcast := false
	var name string
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "name" {
				name = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	if name == "" {
		resp.Data.Content = "Please provide a player name."
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = codeBlock(truncateContent(tour.BuildRouteOutput(ix,
		tour.PlayerRoute(name), tour.DefaultFilterState())))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tourTournamentsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return tournamentsResponse(ctx, inter, "tournaments", false)
}

func tourEntryListsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return tournamentsResponse(ctx, inter, "entry-lists", true)
}

// tournamentsResponse renders the tournament browser; fullListsOnly
// narrows it to aggregates backed by full acceptance lists.
func tournamentsResponse(ctx context.Context, inter *discordgo.Interaction,
	logName string, fullListsOnly bool) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	st := tour.DefaultFilterState()
	broadcast := false
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "gender" {
				st.Gender = genderFilter(opt.StringValue())
			} else if opt.Name == "tier" {
				st.Tier = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.%v: %v", logName, resp.Data.Content)
		return resp
	}

	var view tour.TournamentsView
	if fullListsOnly {
		view = tour.BuildEntryListsView(ix, st)
	} else {
		view = tour.BuildTournamentsView(ix, st)
	}
	resp.Data.Content = codeBlock(truncateContent(
		tour.BuildTournamentsOutput(view)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tourTournamentCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	broadcast := false
	var name, gender string
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "name" {
				name = opt.StringValue()
			} else if opt.Name == "gender" {
				gender = genderLabel(opt.StringValue())
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	if name == "" {
		resp.Data.Content = "Please provide a tournament name."
		log.Printf("discordbot.tournament: %v", resp.Data.Content)
		return resp
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.tournament: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = codeBlock(truncateContent(tour.BuildRouteOutput(ix,
		tour.TournamentRoute(name, gender), tour.DefaultFilterState())))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tourWithdrawalsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	broadcast := false
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.withdrawals: %v", resp.Data.Content)
		return resp
	}

	view := tour.BuildWithdrawalsView(ix)
	resp.Data.Content = codeBlock(truncateContent(
		tour.BuildWithdrawalsOutput(view)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tourItfCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	st := tour.DefaultFilterState()
	broadcast := false
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "gender" {
				st.ItfGender = genderFilter(opt.StringValue())
			} else if opt.Name == "tier" {
				st.ItfTier = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.itf: %v", resp.Data.Content)
		return resp
	}

	view := tour.BuildItfView(ix, st)
	resp.Data.Content = codeBlock(truncateContent(tour.BuildItfOutput(view)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tourItfTournamentCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	broadcast := false
	var rawKey string
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "key" {
				rawKey = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	if rawKey == "" {
		resp.Data.Content = "Please provide an acceptance list key."
		log.Printf("discordbot.itftournament: %v", resp.Data.Content)
		return resp
	}
	key, err := tour.ParseItfKey(rawKey)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Invalid key: %v", err)
		log.Printf("discordbot.itftournament: %v", resp.Data.Content)
		return resp
	}

	ix, err := loadIndexes(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading dataset: %v", err)
		log.Printf("discordbot.itftournament: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = codeBlock(truncateContent(tour.BuildRouteOutput(ix,
		tour.ItfTournamentRoute(key), tour.DefaultFilterState())))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// genderFilter maps an option value to the dataset's gender labels;
// anything unrecognized falls back to the wildcard.
func genderFilter(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "m":
		return tour.GenderMen
	case "women", "w", "f":
		return tour.GenderWomen
	}
	return tour.FilterAll
}

// genderLabel is genderFilter for commands wanting a concrete tour
// rather than a filter; empty means unspecified.
func genderLabel(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "m":
		return tour.GenderMen
	case "women", "w", "f":
		return tour.GenderWomen
	}
	return ""
}

// codeBlock wraps monospace table output for Discord rendering.
func codeBlock(s string) string {
	return fmt.Sprintf("```\n%s```", s)
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
