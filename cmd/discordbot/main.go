/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	_ "embed"
)

// Deployment config comes from the environment (or a .env file in the
// working directory):
//
//	DISCORD_BOT_TOKEN    bot token used to register slash commands
//	DISCORD_PUBLIC_KEY   hex ed25519 key used to verify interactions
//	DISCORD_APP_ID       application id owning the registration
//	DISCORD_TOUR_CMD_ID  existing /tour command id; empty registers anew
//	TOUR_DATASET_URL     dataset override; defaults to the published one
var (
	botPubKey  ed25519.PublicKey
	botAppId   string
	tourCmdId  string
	botSession *discordgo.Session
)

type TopLevelCommand string

const TourCmd TopLevelCommand = "tour"

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	TourCmd: tourCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interaction type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	_ = godotenv.Load(".env")

	if url := os.Getenv("TOUR_DATASET_URL"); url != "" {
		datasetUrl = url
	}
}

//go:embed lastupdate.hash
var lastCmdUpdateHash string

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hash := hasher.Sum(nil)
	hexString := hex.EncodeToString(hash)

	shouldUpdate := (hexString != strings.TrimSpace(lastCmdUpdateHash))

	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please update lastupdate.hash to %v",
			hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	tourCmd := &discordgo.ApplicationCommand{
		Name:        string(TourCmd),
		Description: "Tennis entry list commands; try /tour help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourHelpCmd),
				Description: "Show usage for tour",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourAboutCmd),
				Description: "Show information about tennistour-entrybot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourDashboardCmd),
				Description: "Show ranked players and their upcoming entries",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "gender",
						Description: "Restrict to one tour: men or women (default is both)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "search",
						Description: "Only players matching this name, country, or tournament",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourPlayerCmd),
				Description: "Show one player's entries week by week",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Player name as listed in the rankings",
						Required:    true,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourTournamentsCmd),
				Description: "Show tournaments grouped by week",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "gender",
						Description: "Restrict to one tour: men or women (default is both)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "tier",
						Description: "Only tournaments of this tier, e.g. ATP 500",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourEntryListsCmd),
				Description: "Show tournaments carrying full acceptance lists",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "gender",
						Description: "Restrict to one tour: men or women (default is both)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "tier",
						Description: "Only tournaments of this tier, e.g. Challenger 125",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourTournamentCmd),
				Description: "Show one tournament's entry list",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Tournament name",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "gender",
						Description: "Tour to show when both run the same week: men or women",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourWithdrawalsCmd),
				Description: "Show recent withdrawals grouped by week",
				Options: []*discordgo.ApplicationCommandOption{
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourItfCmd),
				Description: "Show ITF World Tennis Tour acceptance lists",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "gender",
						Description: "Restrict to one tour: men or women (default is both)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "tier",
						Description: "Only lists of this tier, e.g. M15 or W35",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourItfTournamentCmd),
				Description: "Show one ITF acceptance list",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "key",
						Description: "List key as shown by /tour itf, e.g. m15 monastir|itf|men|feb 16",
						Required:    true,
					},
					broadcastOption(),
				},
			},
		},
	}

	if tourCmdId == "" {
		cmd, err := botSession.ApplicationCommandCreate(botAppId, "", tourCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v",
				tourCmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); please set DISCORD_TOUR_CMD_ID",
			cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(tourCmd) {
		cmd, err := botSession.ApplicationCommandEdit(botAppId, "", tourCmdId,
			tourCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v",
				tourCmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func main() {
	pubKeyText := os.Getenv("DISCORD_PUBLIC_KEY")
	if pubKeyText == "" {
		log.Fatalf("discordbot.main: DISCORD_PUBLIC_KEY is not set")
	}
	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		log.Fatalf("discordbot.main: failed to parse public key: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	botToken := os.Getenv("DISCORD_BOT_TOKEN")
	if botToken == "" {
		log.Fatalf("discordbot.main: DISCORD_BOT_TOKEN is not set")
	}
	botAppId = os.Getenv("DISCORD_APP_ID")
	if botAppId == "" {
		log.Fatalf("discordbot.main: DISCORD_APP_ID is not set")
	}
	tourCmdId = os.Getenv("DISCORD_TOUR_CMD_ID")

	botSession, err = discordgo.New("Bot " + botToken)
	if err != nil {
		log.Fatalf("discordbot.main: failed to initialize discord client: %v",
			err)
	}

	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
