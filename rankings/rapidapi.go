/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rankings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mikeb26/tennistour-entrybot/internal"
)

const (
	rankingsApiHost = "tennisapi1.p.rapidapi.com"
	atpApiUrl       = "https://tennisapi1.p.rapidapi.com/api/tennis/rankings/atp"
	wtaApiUrl       = "https://tennisapi1.p.rapidapi.com/api/tennis/rankings/wta"
)

type apiCountry struct {
	Alpha3 string `json:"alpha3"`
	Name   string `json:"name"`
}

// apiRankingsResponse represents the JSON response from the live rankings
// API endpoint.
type apiRankingsResponse struct {
	Rankings []struct {
		Ranking int    `json:"ranking"`
		Points  int    `json:"points"`
		RowName string `json:"rowName"`
		Team    struct {
			Name    string     `json:"name"`
			Country apiCountry `json:"country"`
		} `json:"team"`
		Country apiCountry `json:"country"`
	} `json:"rankings"`
}

// fetchRankingsAPI retrieves rankings from the live API. The endpoint caps
// out around 500 players per call which is why it only serves as a
// fallback. Requires the RAPIDAPI_KEY environment variable.
func (client *Client) fetchRankingsAPI(ctx context.Context, gender string,
	maxRank int) ([]RankedPlayer, error) {

	apiKey := os.Getenv("RAPIDAPI_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RAPIDAPI_KEY is not set")
	}

	url := atpApiUrl
	if gender == "F" {
		url = wtaApiUrl
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating rankings API request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("x-rapidapi-key", apiKey)
	req.Header.Set("x-rapidapi-host", rankingsApiHost)

	resp, err := client.httpClient1day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing rankings API HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected rankings API status %d: %s",
			resp.StatusCode, string(body))
	}

	var data apiRankingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding rankings API JSON: %w", err)
	}

	var players []RankedPlayer
	for _, entry := range data.Rankings {
		if entry.Ranking <= 0 || entry.Ranking > maxRank {
			continue
		}
		country := entry.Country
		if country.Alpha3 == "" && country.Name == "" {
			country = entry.Team.Country
		}
		name := entry.RowName
		if name == "" {
			name = entry.Team.Name
		}
		if corrected, ok := nameCorrections[name]; ok {
			name = corrected
		}
		players = append(players, RankedPlayer{
			Name:        name,
			Rank:        entry.Ranking,
			Gender:      gender,
			Country:     country.Alpha3,
			CountryName: country.Name,
			Points:      entry.Points,
		})
	}

	return players, nil
}
