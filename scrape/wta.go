/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/tennistour-entrybot/internal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	wtaApiUrl        = "https://api.wtatennis.com/tennis/tournaments/"
	wtaPlayerListUrl = "https://www.wtatennis.com/tournaments/%v/%v/%v/player-list"

	// How far ahead the calendar query looks.
	wtaCalendarHorizon = 8 * 7 * 24 * time.Hour
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// wtaTournament is one upcoming tournament discovered via the calendar
// API.
type wtaTournament struct {
	id   int
	slug string
	year int
	name string
	tier string
	week string
}

// wtaCalendarResponse represents the JSON response from the tournaments
// API endpoint.
type wtaCalendarResponse struct {
	Content []struct {
		City            string `json:"city"`
		Level           string `json:"level"`
		StartDate       string `json:"startDate"`
		Year            int    `json:"year"`
		TournamentGroup struct {
			ID int `json:"id"`
		} `json:"tournamentGroup"`
	} `json:"content"`
}

// ScrapeWTA discovers upcoming tournaments through the official WTA API
// and scrapes each tournament's player-list page. The WTA never
// publishes ranks on those pages; ranks attach during matching.
func (client *Client) ScrapeWTA(ctx context.Context) ([]Entry, error) {
	tournaments, err := client.fetchWtaCalendar(time.Now())
	if err != nil {
		return nil, fmt.Errorf("unable to fetch WTA calendar: %w", err)
	}
	if len(tournaments) == 0 {
		log.Printf("scrape: no upcoming WTA tournaments found")
		return nil, nil
	}

	var entries []Entry
	for i, t := range tournaments {
		pageEntries, err := client.scrapeWtaPlayerList(t)
		if err != nil {
			log.Printf("scrape: warning unable to scrape %v player list: %v",
				t.name, err)
		} else {
			entries = append(entries, pageEntries...)
		}
		if i < len(tournaments)-1 {
			time.Sleep(internal.RequestDelay)
		}
	}

	return entries, nil
}

// fetchWtaCalendar queries the tournaments API for events starting
// within the calendar horizon. ITF-level events are excluded server
// side; those come from the ITF site directly.
func (client *Client) fetchWtaCalendar(now time.Time) ([]wtaTournament, error) {
	params := url.Values{}
	params.Set("from", now.Format("2006-01-02"))
	params.Set("to", now.Add(wtaCalendarHorizon).Format("2006-01-02"))
	params.Set("excludeLevels", "ITF")
	params.Set("pageSize", "50")

	req, err := http.NewRequest("GET", wtaApiUrl+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating calendar request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing calendar HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected calendar status %d: %s",
			resp.StatusCode, string(body))
	}

	var data wtaCalendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding calendar JSON: %w", err)
	}

	titler := cases.Title(language.English)

	var tournaments []wtaTournament
	for _, t := range data.Content {
		if t.TournamentGroup.ID == 0 {
			continue
		}

		// "2026-02-15" becomes the week label "Feb 15".
		week := ""
		if start, err := time.Parse("2006-01-02", t.StartDate); err == nil {
			week = start.Format("Jan 2")
		}

		// Any slug works in the player-list URL; the ID is what matters.
		slug := strings.Trim(
			slugRe.ReplaceAllString(strings.ToLower(t.City), "-"), "-")
		if slug == "" {
			slug = "t"
		}

		year := t.Year
		if year == 0 {
			year = now.Year()
		}

		tournaments = append(tournaments, wtaTournament{
			id:   t.TournamentGroup.ID,
			slug: slug,
			year: year,
			name: titler.String(strings.ToLower(t.City)),
			tier: t.Level,
			week: week,
		})
	}

	return tournaments, nil
}

func (client *Client) scrapeWtaPlayerList(t wtaTournament) ([]Entry, error) {
	pageUrl := fmt.Sprintf(wtaPlayerListUrl, t.id, t.slug, t.year)

	doc, err := client.fetchDoc(pageUrl)
	if err != nil {
		return nil, err
	}

	return parseWtaPlayerList(doc, t), nil
}

// parseWtaPlayerList walks the page's elements in document order,
// tracking the current section from tab markers and headings, and
// collects entrants from their data-tracking attributes. Doubles
// sections are skipped outright.
func parseWtaPlayerList(doc *goquery.Document, t wtaTournament) []Entry {
	var entries []Entry
	section := "Main Draw"

	doc.Find("*").Each(func(_ int, tag *goquery.Selection) {
		uiTab := strings.ToLower(tag.AttrOr("data-ui-tab", ""))
		text := strings.ToLower(strings.TrimSpace(tag.Text()))

		if strings.Contains(uiTab, "qualifying") || text == "qualifying" {
			section = "Qualifying"
		} else if strings.Contains(uiTab, "main draw") || text == "main draw" {
			section = "Main Draw"
		} else if strings.Contains(uiTab, "doubles") || text == "doubles" {
			section = "DOUBLES"
		}

		name := strings.TrimSpace(tag.AttrOr("data-tracking-player-name", ""))
		if name == "" || section == "DOUBLES" {
			return
		}

		country := ""
		if parent := tag.Parent(); parent.Length() > 0 {
			img := parent.Find("img[src*='flags/']").First()
			if img.Length() > 0 {
				country = strings.ToUpper(
					strings.TrimSpace(img.AttrOr("alt", "")))
			}
		}

		entries = append(entries, Entry{
			Tournament:    t.name,
			Tier:          t.tier,
			Week:          t.week,
			Section:       section,
			PlayerName:    name,
			PlayerCountry: country,
			Gender:        "F",
			Source:        SourceWTAOfficial,
		})
	})

	return entries
}
