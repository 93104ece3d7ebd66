/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package site

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mikeb26/tennistour-entrybot/rankings"
	"github.com/mikeb26/tennistour-entrybot/scrape"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

func testDataset(t *testing.T) *tour.Dataset {
	t.Helper()

	players := []rankings.RankedPlayer{
		{Name: "Iga Swiatek", Rank: 1, Gender: "F", Country: "POL"},
	}
	entryMap := map[string][]scrape.Entry{
		"Iga Swiatek|F": {
			{Tournament: "Doha", Tier: "WTA 1000", Week: "Feb 16",
				Section: "Main Draw", Gender: "F",
				Source: scrape.SourceWTAOfficial},
		},
	}
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return BuildDataset(players, entryMap, nil, nil, now)
}

func TestWriteDataJS(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "data.js")

	if err := WriteDataJS(ds, path); err != nil {
		t.Fatalf("WriteDataJS() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading data.js: %v", err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, "window.TENNIS_DATA=") ||
		!strings.HasSuffix(text, ";") {
		t.Errorf("data.js not wrapped in assignment: %.40s ... %s",
			text, text[len(text)-1:])
	}

	// The CLI loads the same file back; the wrapper must round-trip.
	got, err := tour.ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, ds) {
		t.Errorf("data.js round-trip mismatch:\ngot  %+v\nwant %+v", got, ds)
	}
}

func TestWriteDatasetJSON(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "dataset.json")

	if err := WriteDatasetJSON(ds, path); err != nil {
		t.Fatalf("WriteDatasetJSON() error: %v", err)
	}

	got, err := tour.ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, ds) {
		t.Errorf("dataset round-trip mismatch:\ngot  %+v\nwant %+v", got, ds)
	}
}

func TestWriteCSV(t *testing.T) {
	players := []rankings.RankedPlayer{
		{Name: "Novak Djokovic", Rank: 4, Gender: "M", Country: "SRB"},
		{Name: "Aryna Sabalenka", Rank: 1, Gender: "F"},
	}
	entryMap := map[string][]scrape.Entry{
		"Aryna Sabalenka|F": {
			{Tournament: "Miami", Tier: "WTA 1000", Week: "Mar 17",
				Section: "Main Draw", PlayerCountry: "BLR", Withdrawn: true,
				Gender: "F", Source: scrape.SourceWTAOfficial},
			// Differs only in week label; the CSV dedupes on
			// (tournament, section, source).
			{Tournament: "Miami", Tier: "WTA 1000", Week: "Mar 18",
				Section: "Main Draw", PlayerCountry: "BLR", Withdrawn: true,
				Gender: "F", Source: scrape.SourceWTAOfficial},
		},
		"Novak Djokovic|M": nil,
	}

	path := filepath.Join(t.TempDir(), "entries.csv")
	if err := WriteCSV(players, entryMap, path); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, utf8Bom) {
		t.Error("csv missing UTF-8 BOM")
	}

	records, err := csv.NewReader(
		strings.NewReader(strings.TrimPrefix(text, utf8Bom))).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("csv has %v records; want header + 2 rows: %v",
			len(records), records)
	}
	if !reflect.DeepEqual(records[0], csvHeader) {
		t.Errorf("csv header = %v; want %v", records[0], csvHeader)
	}

	sabalenka := records[1]
	want := []string{"1", "Aryna Sabalenka", "Women", "BLR", "Miami",
		"WTA 1000", "Main Draw", "Mar 17", "WTA Official", "Yes"}
	if !reflect.DeepEqual(sabalenka, want) {
		t.Errorf("row = %v; want %v", sabalenka, want)
	}

	djokovic := records[2]
	if djokovic[1] != "Novak Djokovic" || djokovic[4] != "No entries found" {
		t.Errorf("placeholder row = %v", djokovic)
	}
}
