/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package scrape

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/tennistour-entrybot/internal"
	"github.com/mikeb26/tennistour-entrybot/tour"
)

// Incapsula bot protection on itftennis.com blocks plain HTTP clients,
// so the ITF scraper drives a real headless browser instead of the
// package's cached http.Client.
const (
	itfBaseUrl            = "https://www.itftennis.com"
	itfMensCalendarPath   = "/en/tournament-calendar/mens-world-tennis-tour-calendar/"
	itfWomensCalendarPath = "/en/tournament-calendar/womens-world-tennis-tour-calendar/"

	itfConcurrentWorkers = 5
	itfPageTimeout       = 30 * time.Second
	itfCalendarMonths    = 4

	// Discovered tournaments must start within this window.
	itfHorizon = 30 * 24 * time.Hour
)

// dismissCookiesJs clicks the cookie banner's Decline button when
// present. Subsequent runs find no button and return false.
const dismissCookiesJs = `(() => {
	for (const btn of document.querySelectorAll('button')) {
		if (btn.innerText.trim() === 'Decline') {
			btn.click();
			return true;
		}
	}
	return false;
})()`

// itfCalendarLinksJs collects tournament links from a calendar page
// once the client-side rendering has produced them, along with the
// date range text from the enclosing row or card.
const itfCalendarLinksJs = `(async () => {
	const deadline = Date.now() + 15000;
	while (document.querySelectorAll('a[href*="/en/tournament/"]').length === 0 &&
			Date.now() < deadline) {
		await new Promise(r => setTimeout(r, 250));
	}

	const seen = new Set();
	const out = [];
	for (const a of document.querySelectorAll('a[href*="/en/tournament/"]')) {
		const href = a.getAttribute('href') || '';
		if (!href || href.includes('/tournament-calendar/') || seen.has(href)) {
			continue;
		}
		const name = (a.innerText || '').trim();
		if (name.length < 2) {
			continue;
		}
		seen.add(href);

		let dates = '';
		const parent = a.closest('tr') || a.closest('[class*="card"]') ||
			(a.parentElement && a.parentElement.parentElement);
		if (parent) {
			const m = (parent.innerText || '').match(
				/(\d{1,2}\s+\w{3}\s*(?:-|to)\s*\d{1,2}\s+\w{3}(?:\s+\d{4})?)/);
			if (m) {
				dates = m[1].trim();
			}
		}
		out.push({ href: href, name: name, dates: dates });
	}
	return out;
})()`

var (
	letterRe = regexp.MustCompile(`[A-Za-z]`)

	itfDateRangeRe = regexp.MustCompile(
		`^(\d{1,2})\s+(\w{3}).*?(\d{1,2})\s+(\w{3})(?:\s+(\d{4}))?`)
	itfDayRangeRe = regexp.MustCompile(
		`^(\d{1,2})\s*(?:-|to)\s*(\d{1,2})\s+(\w{3})(?:\s+(\d{4}))?`)
)

var itfMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var itfSectionOrder = []string{"Main Draw", "Qualifying", "Alternates"}

// itfTournament is one tournament link discovered on the calendar
// pages. Field tags match the object shape itfCalendarLinksJs builds.
type itfTournament struct {
	Href  string `json:"href"`
	Name  string `json:"name"`
	Dates string `json:"dates"`
}

// ItfResult carries both halves of an ITF scrape: ranked entries that
// join the cross-tour aggregate, and the complete acceptance list per
// tournament including unranked players.
type ItfResult struct {
	Entries []Entry
	Lists   map[string]tour.ItfEntryList
}

// ScrapeITF scrapes acceptance lists for upcoming ITF World Tennis
// Tour tournaments, men's and women's. limit > 0 caps the number of
// tournaments fetched per tour. A tour that fails entirely degrades to
// a warning as long as the other produced data.
func ScrapeITF(ctx context.Context, limit int) (*ItfResult, error) {
	menEntries, menLists, menErr := scrapeItfTour(ctx, "M", limit)
	if menErr != nil {
		log.Printf("scrape: warning unable to scrape men's itf entries: %v",
			menErr)
	}
	womenEntries, womenLists, womenErr := scrapeItfTour(ctx, "F", limit)
	if womenErr != nil {
		log.Printf("scrape: warning unable to scrape women's itf entries: %v",
			womenErr)
	}
	if menErr != nil && womenErr != nil {
		return nil, fmt.Errorf("unable to scrape itf entries (men: %v) (women): %w",
			menErr, womenErr)
	}

	result := &ItfResult{
		Entries: append(menEntries, womenEntries...),
		Lists:   make(map[string]tour.ItfEntryList),
	}
	// Keys embed the gender so the two maps never collide.
	for key, list := range menLists {
		result.Lists[key] = list
	}
	for key, list := range womenLists {
		result.Lists[key] = list
	}

	return result, nil
}

func scrapeItfTour(ctx context.Context, gender string,
	limit int) ([]Entry, map[string]tour.ItfEntryList, error) {

	label := internal.GenderLabel(gender)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(log.Printf))
	defer cancelBrowser()

	// Launch up front so a missing browser install surfaces as one
	// clear error instead of one per page.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, nil, fmt.Errorf("unable to start browser: %w", err)
	}

	tournaments, err := discoverItfTournaments(browserCtx, gender, time.Now())
	if err != nil {
		return nil, nil, err
	}
	if limit > 0 && len(tournaments) > limit {
		tournaments = tournaments[:limit]
	}
	if len(tournaments) == 0 {
		log.Printf("scrape: no upcoming %v itf tournaments found", label)
		return nil, nil, nil
	}
	log.Printf("scrape: fetching %v %v itf acceptance lists", len(tournaments),
		label)

	// One tab per tournament, bounded by the worker limit. Slot i
	// belongs to tournament i so output order is stable regardless of
	// completion order.
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(itfConcurrentWorkers)
	results := make([][]Entry, len(tournaments))
	for i, t := range tournaments {
		i := i
		t := t
		g.Go(func() error {
			entries, err := fetchItfAcceptanceList(browserCtx, t, gender)
			if err != nil {
				log.Printf("scrape: warning unable to fetch %v acceptance list: %v",
					t.Name, err)
				return nil
			}
			results[i] = entries
			time.Sleep(internal.RequestDelay)
			return nil
		})
	}
	g.Wait()

	var all []Entry
	for _, entries := range results {
		all = append(all, entries...)
	}

	ranked, lists := buildItfLists(all, gender)
	return ranked, lists, nil
}

// discoverItfTournaments walks the calendar pages for the current and
// next few months and keeps tournaments starting within the horizon.
// Undated links are kept; better to fetch an extra acceptance list
// than to miss one.
func discoverItfTournaments(browserCtx context.Context, gender string,
	now time.Time) ([]itfTournament, error) {

	calPath := itfWomensCalendarPath
	if gender == "M" {
		calPath = itfMensCalendarPath
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0,
		time.UTC)
	cutoff := today.Add(itfHorizon)

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	seen := make(map[string]bool)
	var tournaments []itfTournament
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < itfCalendarMonths; offset++ {
		target := firstOfMonth.AddDate(0, offset, 0)
		pageUrl := fmt.Sprintf("%s%s?categories=All&startdate=%s",
			itfBaseUrl, calPath, target.Format("2006-01"))

		links, err := fetchItfCalendarPage(tabCtx, pageUrl)
		if err != nil {
			log.Printf("scrape: warning calendar page failed for %v: %v",
				target.Format("2006-01"), err)
			continue
		}

		for _, link := range links {
			if link.Href == "" || seen[link.Href] {
				continue
			}
			seen[link.Href] = true

			if strings.HasPrefix(link.Href, "/") {
				link.Href = itfBaseUrl + link.Href
			}

			if link.Dates != "" {
				if start, _, ok := parseItfDateRange(link.Dates, now); ok {
					if start.Before(today) || start.After(cutoff) {
						continue
					}
				}
			}

			tournaments = append(tournaments, link)
		}

		if offset < itfCalendarMonths-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return tournaments, nil
}

func fetchItfCalendarPage(tabCtx context.Context,
	pageUrl string) ([]itfTournament, error) {

	runCtx, cancel := context.WithTimeout(tabCtx, itfPageTimeout)
	defer cancel()

	var links []itfTournament
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageUrl),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(dismissCookiesJs, nil),
		chromedp.Evaluate(itfCalendarLinksJs, &links,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering %v: %w", pageUrl, err)
	}

	return links, nil
}

func fetchItfAcceptanceList(browserCtx context.Context, t itfTournament,
	gender string) ([]Entry, error) {

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	runCtx, cancel := context.WithTimeout(tabCtx, itfPageTimeout)
	defer cancel()

	pageUrl := strings.TrimRight(t.Href, "/")
	if !strings.HasSuffix(pageUrl, "/acceptance-list") {
		pageUrl += "/acceptance-list"
	}

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageUrl),
		chromedp.Sleep(time.Second),
		chromedp.Evaluate(dismissCookiesJs, nil),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering %v: %w", pageUrl, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return parseItfAcceptanceTables(doc, t, gender), nil
}

// parseItfAcceptanceTables extracts entries from the acceptance list
// tables. Tables carry columns like POSITION, PLAYER, ATP/WTA RANKING,
// and INFORMATION; the player cell holds the country code and name on
// separate lines. Sections come from the heading above each table when
// one exists, otherwise from document order.
func parseItfAcceptanceTables(doc *goquery.Document, t itfTournament,
	gender string) []Entry {

	var entries []Entry
	sectionIdx := 0

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		var headerTexts []string
		rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headerTexts = append(headerTexts,
				strings.ToUpper(strings.TrimSpace(cell.Text())))
		})

		playerCol := -1
		for i, h := range headerTexts {
			if h == "PLAYER" {
				playerCol = i
				break
			}
		}
		if playerCol == -1 {
			return
		}

		rankCol := -1
		infoCol := -1
		for i, h := range headerTexts {
			if (strings.Contains(h, "ATP") || strings.Contains(h, "WTA")) &&
				strings.Contains(h, "RANKING") {
				rankCol = i
			} else if h == "INFORMATION" {
				infoCol = i
			}
		}

		section := itfTableSection(table)
		if section == "" {
			if sectionIdx < len(itfSectionOrder) {
				section = itfSectionOrder[sectionIdx]
			} else {
				section = "Alternates"
			}
		}
		sectionIdx++

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() <= playerCol {
				return
			}

			playerText := strings.TrimSpace(cells.Eq(playerCol).Text())
			if playerText == "" {
				return
			}

			withdrawn := false
			if infoCol >= 0 && cells.Length() > infoCol {
				info := strings.TrimSpace(cells.Eq(infoCol).Text())
				withdrawn = strings.HasPrefix(info, "W ")
			}

			// The player cell renders as "ESP\nCarlos Alcaraz"; a
			// single line means the country code is absent.
			var parts []string
			for _, part := range strings.Split(playerText, "\n") {
				if part = strings.TrimSpace(part); part != "" {
					parts = append(parts, part)
				}
			}
			country := ""
			name := ""
			if len(parts) >= 2 {
				country = parts[0]
				name = parts[1]
			} else if len(parts) == 1 {
				name = parts[0]
			}

			if !letterRe.MatchString(name) || IsPlaceholderEntrant(name) {
				return
			}

			rank := 0
			method := ""
			if rankCol >= 0 && cells.Length() > rankCol {
				rank, method = ParseEntryRank(
					strings.TrimSpace(cells.Eq(rankCol).Text()))
			}

			entries = append(entries, Entry{
				Tournament:    t.Name,
				Tier:          "ITF",
				Week:          t.Dates,
				Section:       section,
				PlayerName:    name,
				PlayerRank:    rank,
				PlayerCountry: country,
				Withdrawn:     withdrawn,
				Gender:        gender,
				Source:        SourceITF,
				EntryMethod:   method,
			})
		})
	})

	return entries
}

// itfTableSection finds the section heading preceding a table, looking
// back at most 5 siblings.
func itfTableSection(table *goquery.Selection) string {
	prev := table.Prev()
	for i := 0; i < 5 && prev.Length() > 0; i++ {
		txt := strings.ToUpper(strings.TrimSpace(prev.Text()))
		if strings.Contains(txt, "MAIN DRAW") {
			return "Main Draw"
		} else if strings.Contains(txt, "QUALIFYING") {
			return "Qualifying"
		} else if strings.Contains(txt, "ALTERNATE") {
			return "Alternates"
		}
		prev = prev.Prev()
	}
	return ""
}

// buildItfLists splits scraped entries into the ranked subset for the
// cross-tour aggregate and complete per-tournament lists keyed by the
// serialized tournament key.
func buildItfLists(entries []Entry,
	gender string) ([]Entry, map[string]tour.ItfEntryList) {

	var ranked []Entry
	for _, e := range entries {
		if e.PlayerRank > 0 {
			ranked = append(ranked, e)
		}
	}

	label := internal.GenderLabel(gender)
	lists := make(map[string]tour.ItfEntryList)
	for _, e := range entries {
		week := tour.NormalizeWeek(e.Week)
		key := tour.NewItfKey(e.Tournament, "ITF", label, week).String()

		list, ok := lists[key]
		if !ok {
			list = tour.ItfEntryList{
				Name:   e.Tournament,
				Tier:   "ITF",
				Gender: label,
				Week:   week,
				Dates:  e.Week,
			}
		}
		list.Players = append(list.Players, tour.ListPlayer{
			Name:        e.PlayerName,
			Rank:        e.PlayerRank,
			Country:     e.PlayerCountry,
			Section:     e.Section,
			Withdrawn:   e.Withdrawn,
			EntryMethod: e.EntryMethod,
		})
		lists[key] = list
	}

	for key, list := range lists {
		list.Players = tour.DedupeListPlayers(list.Players)
		tour.SortListPlayersByRank(list.Players)
		lists[key] = list
	}

	return ranked, lists
}

func itfMonth(abbr string) time.Month {
	if m, ok := itfMonths[strings.ToLower(abbr)]; ok {
		return m
	}
	return time.January
}

// parseItfDateRange parses the date strings shown on calendar rows:
// "16 Feb - 22 Feb 2026", "16 Feb to 22 Feb", or "16 - 22 Feb". Years
// default to now's. Day numbers are validated against their month; an
// invalid first form falls through to the second.
func parseItfDateRange(dates string, now time.Time) (time.Time, time.Time, bool) {
	dates = strings.TrimSpace(dates)
	if dates == "" {
		return time.Time{}, time.Time{}, false
	}

	if m := itfDateRangeRe.FindStringSubmatch(dates); m != nil {
		year := now.Year()
		if m[5] != "" {
			year, _ = strconv.Atoi(m[5])
		}
		startDay, _ := strconv.Atoi(m[1])
		endDay, _ := strconv.Atoi(m[3])
		start := time.Date(year, itfMonth(m[2]), startDay, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, itfMonth(m[4]), endDay, 0, 0, 0, 0, time.UTC)
		if start.Day() == startDay && end.Day() == endDay {
			return start, end, true
		}
	}

	if m := itfDayRangeRe.FindStringSubmatch(dates); m != nil {
		year := now.Year()
		if m[4] != "" {
			year, _ = strconv.Atoi(m[4])
		}
		month := itfMonth(m[3])
		startDay, _ := strconv.Atoi(m[1])
		endDay, _ := strconv.Atoi(m[2])
		start := time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, month, endDay, 0, 0, 0, 0, time.UTC)
		if start.Day() == startDay && end.Day() == endDay {
			return start, end, true
		}
	}

	return time.Time{}, time.Time{}, false
}
