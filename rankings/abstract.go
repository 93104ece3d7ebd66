/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rankings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/tennistour-entrybot/internal"
)

const (
	atpReportUrl = "https://tennisabstract.com/reports/atpRankings.html"
	wtaReportUrl = "https://tennisabstract.com/reports/wtaRankings.html"
)

// nameCorrections fixes ranking source spellings that disagree with how the
// entry list sites spell the same player.
var nameCorrections = map[string]string{
	"Xin Yu Wang": "Xinyu Wang",
}

// fetchRankingsReport scrapes the Tennis Abstract weekly rankings report.
func (client *Client) fetchRankingsReport(ctx context.Context, gender string,
	maxRank int) ([]RankedPlayer, error) {

	url := atpReportUrl
	if gender == "F" {
		url = wtaReportUrl
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating rankings request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.httpClient7day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing rankings HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected rankings status %d: %s",
			resp.StatusCode, string(body))
	}

	return parseRankingsReport(resp.Body, gender, maxRank)
}

// parseRankingsReport extracts ranked players from the report HTML. The
// report table columns are Rank | Player | Country | Birthdate and rows
// arrive in rank order, so parsing stops at the first rank past maxRank.
func parseRankingsReport(body io.Reader, gender string,
	maxRank int) ([]RankedPlayer, error) {

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing rankings HTML: %w", err)
	}

	table := doc.Find("table#reportable").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, fmt.Errorf("no rankings table found")
	}

	var players []RankedPlayer
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true // header
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}
		rank, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			return true
		}
		if rank > maxRank {
			return false
		}

		// The report joins first and last name with a non-breaking space.
		name := strings.TrimSpace(
			strings.ReplaceAll(cells.Eq(1).Text(), " ", " "))
		if corrected, ok := nameCorrections[name]; ok {
			name = corrected
		}

		players = append(players, RankedPlayer{
			Name:    name,
			Rank:    rank,
			Gender:  gender,
			Country: strings.TrimSpace(cells.Eq(2).Text()),
		})
		return true
	})

	return players, nil
}
