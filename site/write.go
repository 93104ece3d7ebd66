/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package site

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/match"
	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

// utf8Bom prefixes the CSV so spreadsheet apps detect the encoding.
const utf8Bom = "﻿"

// WriteDataJS writes the dataset in the form the static site loads,
// a single assignment to window.TENNIS_DATA.
func WriteDataJS(ds *tour.Dataset, path string) error {
	buf, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("unable to write data.js (encode): %w", err)
	}

	var out bytes.Buffer
	out.WriteString("window.TENNIS_DATA=")
	out.Write(buf)
	out.WriteString(";")

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write data.js: %w", err)
	}
	return nil
}

// WriteDatasetJSON writes the dataset as plain JSON for the CLI and
// archival consumers.
func WriteDatasetJSON(ds *tour.Dataset, path string) error {
	buf, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("unable to write dataset (encode): %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("unable to write dataset: %w", err)
	}
	return nil
}

var csvHeader = []string{"Rank", "Player", "Gender", "Country",
	"Tournament", "Tier", "Section", "Week", "Source", "Withdrawn"}

// WriteCSV writes one row per matched entry, deduped on (tournament,
// section, source), with a placeholder row for players with no entries
// so every ranked player appears.
func WriteCSV(players []rankings.RankedPlayer,
	entryMap map[string][]scrape.Entry, path string) error {

	var buf bytes.Buffer
	buf.WriteString(utf8Bom)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("unable to write csv (header): %w", err)
	}

	type dedupKey struct {
		tournament string
		section    string
		source     scrape.Source
	}

	for _, p := range sortPlayersForOutput(players) {
		entries := entryMap[match.PlayerKey(p)]
		genderLabel := internal.GenderLabel(p.Gender)
		rank := strconv.Itoa(p.Rank)

		if len(entries) == 0 {
			row := []string{rank, p.Name, genderLabel, p.Country,
				"No entries found", "", "", "", "", ""}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("unable to write csv (row): %w", err)
			}
			continue
		}

		seen := make(map[dedupKey]bool)
		for _, e := range entries {
			key := dedupKey{e.Tournament, e.Section, e.Source}
			if seen[key] {
				continue
			}
			seen[key] = true

			country := p.Country
			if country == "" {
				country = e.PlayerCountry
			}
			withdrawn := ""
			if e.Withdrawn {
				withdrawn = "Yes"
			}

			row := []string{rank, p.Name, genderLabel, country,
				e.Tournament, e.Tier, e.Section, e.Week,
				e.Source.String(), withdrawn}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("unable to write csv (row): %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("unable to write csv (flush): %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write csv: %w", err)
	}
	return nil
}
