/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mikeb26/tennistour-entrybot/internal"
)

const (
	ticktockAtpUrl = "https://entries.ticktocktennis.com/atp.html"
	ticktockWtaUrl = "https://entries.ticktocktennis.com/wta.html"
)

// tierNames maps the page's tier keys to display names.
var tierNames = map[string]string{
	"atp1000": "ATP 1000",
	"atp500":  "ATP 500",
	"atp250":  "ATP 250",
	"atp125":  "ATP Challenger",
	"wta1000": "WTA 1000",
	"wta500":  "WTA 500",
	"wta250":  "WTA 250",
	"wta125":  "WTA 125",
	"itf":     "ITF",
}

// ticktockSections lists the page's section keys in display order.
var ticktockSections = []struct {
	key   string
	label string
}{
	{"main", "Main Draw"},
	{"qual", "Qualifying"},
	{"alt", "Alternates"},
	{"wc", "Wild Card"},
	{"qualWc", "Qualifying WC"},
	{"qualAlt", "Qualifying Alt"},
}

var (
	// Week tabs look like:
	//   <button class="week-tab" onclick="showWeek('week1', this)">Feb 16</button>
	weekTabRe = regexp.MustCompile(`showWeek\(['"](\w+)['"][^>]*>([^<]+)<`)

	bareKeyRe       = regexp.MustCompile(`([{,]\s*)(\w+)\s*:`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	nonDigitsRe     = regexp.MustCompile(`\D`)
)

// ticktockTournament is one tournament object inside a week's data
// blob. Each section is an array of [rank, name, country, flag?] rows
// where a "W" flag marks a withdrawal.
type ticktockTournament struct {
	Name    string  `json:"name"`
	Main    [][]any `json:"main"`
	Qual    [][]any `json:"qual"`
	Alt     [][]any `json:"alt"`
	Wc      [][]any `json:"wc"`
	QualWc  [][]any `json:"qualWc"`
	QualAlt [][]any `json:"qualAlt"`
}

func (t *ticktockTournament) section(key string) [][]any {
	switch key {
	case "main":
		return t.Main
	case "qual":
		return t.Qual
	case "alt":
		return t.Alt
	case "wc":
		return t.Wc
	case "qualWc":
		return t.QualWc
	case "qualAlt":
		return t.QualAlt
	}
	return nil
}

// ScrapeTickTock fetches both tours' entry pages. A single page failing
// is tolerated; an error returns only when neither page yields entries.
func (client *Client) ScrapeTickTock(ctx context.Context) ([]Entry, error) {
	atp, atpErr := client.scrapeTickTockPage(ticktockAtpUrl, "atpData", "M")
	if atpErr != nil {
		log.Printf("scrape: warning unable to scrape ticktock ATP page: %v",
			atpErr)
	}
	time.Sleep(internal.RequestDelay)
	wta, wtaErr := client.scrapeTickTockPage(ticktockWtaUrl, "wtaData", "F")
	if wtaErr != nil {
		log.Printf("scrape: warning unable to scrape ticktock WTA page: %v",
			wtaErr)
	}

	if atpErr != nil && wtaErr != nil {
		return nil, fmt.Errorf("unable to scrape ticktock (atp: %v) (wta): %w",
			atpErr, wtaErr)
	}

	return append(atp, wta...), nil
}

func (client *Client) scrapeTickTockPage(url, varName,
	gender string) ([]Entry, error) {

	html, err := client.fetchPage(url)
	if err != nil {
		return nil, err
	}

	weekDates := extractWeekDates(html)
	data := extractTickTockData(html, varName)

	return parseTickTockData(data, gender, weekDates), nil
}

// extractWeekDates maps week keys to their tab labels, e.g.
// {"week1": "Feb 16", "week2": "Feb 23"}.
func extractWeekDates(html string) map[string]string {
	dates := make(map[string]string)
	for _, m := range weekTabRe.FindAllStringSubmatch(html, -1) {
		label := strings.TrimSpace(m[2])
		if label != "" {
			dates[m[1]] = label
		}
	}
	return dates
}

// extractTickTockData pulls the per-week JS object literals out of the
// page. The data arrives as assignments like
//
//	atpData.week1 = { "atp500": [ { name: "Doha", main: [[1,"Name","CC"]] } ] };
//
// located by regexp, bounded by brace-depth matching, and converted to
// JSON before decoding.
func extractTickTockData(html, varName string) map[string]map[string][]ticktockTournament {
	result := make(map[string]map[string][]ticktockTournament)

	weekAssignRe := regexp.MustCompile(
		regexp.QuoteMeta(varName) + `\.(week\d+)\s*=\s*`)

	for _, loc := range weekAssignRe.FindAllStringSubmatchIndex(html, -1) {
		weekKey := html[loc[2]:loc[3]]
		start := loc[1]

		depth := 0
		end := start
	scan:
		for i := start; i < len(html); i++ {
			switch html[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i + 1
					break scan
				}
			}
		}

		var weekData map[string][]ticktockTournament
		err := json.Unmarshal([]byte(jsToJson(html[start:end])), &weekData)
		if err != nil {
			log.Printf("scrape: warning could not parse %v.%v: %v",
				varName, weekKey, err)
			continue
		}
		result[weekKey] = weekData
	}

	return result
}

// jsToJson converts a JS object literal to valid JSON by quoting bare
// property keys and dropping trailing commas.
func jsToJson(js string) string {
	out := bareKeyRe.ReplaceAllString(js, `$1"$2":`)
	return trailingCommaRe.ReplaceAllString(out, `$1`)
}

// parseTickTockData flattens the decoded week data into entries. Week
// labels come from the tab markup when available, falling back to
// "Week N".
func parseTickTockData(data map[string]map[string][]ticktockTournament,
	gender string, weekDates map[string]string) []Entry {

	var entries []Entry

	weekKeys := make([]string, 0, len(data))
	for k := range data {
		weekKeys = append(weekKeys, k)
	}
	sort.Strings(weekKeys)

	for _, weekKey := range weekKeys {
		weekLabel, ok := weekDates[weekKey]
		if !ok {
			num := nonDigitsRe.ReplaceAllString(weekKey, "")
			if num != "" {
				weekLabel = "Week " + num
			} else {
				weekLabel = weekKey
			}
		}

		tiers := data[weekKey]
		tierKeys := make([]string, 0, len(tiers))
		for k := range tiers {
			tierKeys = append(tierKeys, k)
		}
		sort.Strings(tierKeys)

		for _, tierKey := range tierKeys {
			tierName, ok := tierNames[tierKey]
			if !ok {
				tierName = strings.ToUpper(tierKey)
			}

			for _, tournament := range tiers[tierKey] {
				for _, sec := range ticktockSections {
					for _, row := range tournament.section(sec.key) {
						if len(row) < 3 {
							continue
						}
						rank, _ := row[0].(float64)
						name, _ := row[1].(string)
						country, _ := row[2].(string)
						withdrawn := len(row) > 3 && row[3] == "W"

						entries = append(entries, Entry{
							Tournament:    tournament.Name,
							Tier:          tierName,
							Week:          weekLabel,
							Section:       sec.label,
							PlayerName:    name,
							PlayerRank:    int(rank),
							PlayerCountry: country,
							Withdrawn:     withdrawn,
							Gender:        gender,
							Source:        SourceTickTock,
						})
					}
				}
			}
		}
	}

	return entries
}
