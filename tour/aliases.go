/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"regexp"
	"strings"

	"github.com/mikeb26/tennistour-entrybot/internal"
)

// tournamentAliases maps official / sponsor tournament names to
// canonical city-based names. Keys are lowercase and accent-stripped.
// Add new aliases as tournaments change sponsors.
var tournamentAliases = map[string]string{
	// Grand Slams
	"australian open":              "Australian Open",
	"roland garros":                "Roland Garros",
	"wimbledon":                    "Wimbledon",
	"the championships, wimbledon": "Wimbledon",
	"us open":                      "US Open",

	// ATP Tour (250 / 500 / 1000)
	"united cup":                             "United Cup",
	"brisbane international presented by anz": "Brisbane",
	"brisbane international":                  "Brisbane",
	"bank of china hong kong tennis open":     "Hong Kong",
	"adelaide international":                  "Adelaide",
	"asb classic":                             "Auckland",
	"open occitanie":                          "Montpellier",
	"dallas open":                             "Dallas",
	"nexo dallas open":                        "Dallas",
	"abn amro open":                           "Rotterdam",
	"ieb+ argentina open":                     "Buenos Aires",
	"argentina open":                          "Buenos Aires",
	"qatar exxonmobil open":                   "Doha",
	"qatar open":                              "Doha",
	"rio open presented by claro":             "Rio de Janeiro",
	"rio open":                                "Rio de Janeiro",
	"brasil open":                             "Rio de Janeiro",
	"delray beach open":                       "Delray Beach",
	"abierto mexicano telcel presentado por hsbc": "Acapulco",
	"abierto mexicano de tenis":                   "Acapulco",
	"mexican open":                                "Acapulco",
	"dubai duty free tennis championships":        "Dubai",
	"bci seguros chileopen":                       "Santiago",
	"bnp paribas open":                            "Indian Wells",
	"miami open presented by itau":                "Miami",
	"miami open":                                  "Miami",
	"tiriac open presented by unicredit bank":     "Bucharest",
	"tiriac open":                                 "Bucharest",
	"fayez sarofim & co. u.s. men's clay court championship": "Houston",
	"grand prix hassan ii":         "Marrakech",
	"rolex monte-carlo masters":    "Monte Carlo",
	"monte-carlo masters":          "Monte Carlo",
	"barcelona open banc sabadell": "Barcelona",
	"barcelona open":               "Barcelona",
	"bmw open by bitpanda":         "Munich",
	"bmw open":                     "Munich",
	"mutua madrid open":            "Madrid",
	"internazionali bnl d'italia":  "Rome",
	"internazionali d'italia":      "Rome",
	"bitpanda hamburg open":        "Hamburg",
	"gonet geneva open":            "Geneva",
	"boss open":                    "Stuttgart",
	"libema open":                  "'s-Hertogenbosch",
	"terra wortmann open":          "Halle",
	"halle open":                   "Halle",
	"hsbc championships":           "London",
	"cinch championships":          "London",
	"the hsbc championships":       "London",
	"mallorca championships presented by ecotrans group": "Mallorca",
	"mallorca championships":                             "Mallorca",
	"lexus eastbourne open":                              "Eastbourne",
	"nordea open":                                        "Bastad",
	"efg swiss open gstaad":                              "Gstaad",
	"plava laguna croatia open":                          "Umag",
	"generali open":                                      "Kitzbuhel",
	"millennium estoril open":                            "Estoril",
	"mubadala citi dc open":                              "Washington",
	"mubadala dc open":                                   "Washington",
	"mifel tennis open by telcel oppo":                   "Los Cabos",
	"national bank open presented by rogers":             "Montreal",
	"national bank open":                                 "Montreal",
	"canadian open":                                      "Montreal",
	"cincinnati open":                                    "Cincinnati",
	"western & southern open":                            "Cincinnati",
	"winston-salem open":                                 "Winston-Salem",
	"chengdu open":                                       "Chengdu",
	"lynk & co hangzhou open":                            "Hangzhou",
	"laver cup":                                          "Laver Cup",
	"kinoshita group japan open tennis championships":    "Tokyo",
	"kinoshita group japan open":                         "Tokyo",
	"china open":                                         "Beijing",
	"rolex shanghai masters":                             "Shanghai",
	"shanghai masters":                                   "Shanghai",
	"almaty open":                                        "Almaty",
	"bnp paribas fortis european open":                   "Brussels",
	"grand prix auvergne-rhone-alpes":                    "Lyon",
	"swiss indoors basel":                                "Basel",
	"erste bank open":                                    "Vienna",
	"rolex paris masters":                                "Paris",
	"bnp paribas nordic open":                            "Stockholm",
	"nitto atp finals":                                   "ATP Finals",
	"next gen atp finals":                                "Next Gen Finals",

	// WTA Tour (250 / 500 / 1000)
	"qatar totalenergies open":      "Doha",
	"qatar totalenergies open 2026": "Doha",
	"mubadala abu dhabi open presented by abu dhabi sports council": "Abu Dhabi",
	"mubadala abu dhabi open":                   "Abu Dhabi",
	"ostrava open":                              "Ostrava",
	"transylvania open powered by kaufland":     "Cluj-Napoca",
	"transylvania open":                         "Cluj-Napoca",
	"merida open":                               "Merida",
	"atx open":                                  "Austin",
	"credit one charleston open":                "Charleston",
	"copa colsanitas":                           "Bogota",
	"upper austria ladies linz":                 "Linz",
	"porsche tennis grand prix":                 "Stuttgart",
	"open capfinances rouen metropole":          "Rouen",
	"internationaux de strasbourg":              "Strasbourg",
	"grand prix de son altesse royale la princesse lalla meryem": "Rabat",
	"vanda pharmaceuticals berlin tennis open":                   "Berlin",
	"lexus nottingham open":                                      "Nottingham",
	"bad homburg open powered by solarwatt":                      "Bad Homburg",
	"bad homburg open":                                           "Bad Homburg",
	"unicredit iasi open":                                        "Iasi",
	"livesport prague open 2026":                                 "Prague",
	"livesport prague open":                                      "Prague",
	"msc hamburg ladies open":                                    "Hamburg",
	"tennis in the land powered by rocket":                       "Cleveland",
	"tennis in the land":                                         "Cleveland",
	"abierto gnp seguros":                                        "Monterrey",
	"guadalajara open presented by santander":                    "Guadalajara",
	"guadalajara open":                                           "Guadalajara",
	"sp open":                                                    "Sao Paulo",
	"singapore tennis open":                                      "Singapore",
	"korea open":                                                 "Seoul",
	"wuhan open":                                                 "Wuhan",
	"ningbo open":                                                "Ningbo",
	"toray pan pacific open tennis":                              "Tokyo",
	"toray pan pacific open":                                     "Tokyo",
	"guangzhou open":                                             "Guangzhou",
	"chennai open":                                               "Chennai",
	"jiangxi open":                                               "Jiujiang",
	"prudential hong kong tennis open":                           "Hong Kong",
	"wta finals riyadh":                                          "WTA Finals",
	"wta finals":                                                 "WTA Finals",
	"hobart international":                                       "Hobart",

	// ATP Challenger
	"bengaluru open":                  "Bengaluru",
	"workday canberra international":  "Canberra",
	"bnc tennis open":                 "Noumea",
	"bangkok open 1":                  "Bangkok",
	"bangkok open 2":                  "Bangkok 2",
	"lexus nottingham challenger":     "Nottingham",
	"aat challenger edicion tca":      "Buenos Aires CH",
	"lexus glasgow challenger":        "Glasgow",
	"indoor oeiras open 1":            "Oeiras",
	"oeiras indoor 2":                 "Oeiras 2",
	"oeiras open 3":                   "Oeiras 3",
	"itajai open":                     "Itajai",
	"soma bay open":                   "Soma Bay",
	"novaworld phan thiet challenger 1": "Phan Thiet",
	"novaworld phan thiet challenger 2": "Phan Thiet 2",
	"bahrain open tennis challenger":    "Bahrain",
	"open quimper bretagne occidentale": "Quimper",
	"better buzz coffee san diego open": "San Diego",
	"dove men+care concepcion":          "Concepcion",
	"quini 6 rosario challenger presentado por el gobierno de santa fe": "Rosario",
	"brisbane tennis international #1": "Brisbane",
	"brisbane tennis international #2": "Brisbane 2",
	"brisbane tennis international":    "Brisbane",
	"cleveland open":                   "Cleveland",
	"tenerife challenger 1":            "Tenerife",
	"tenerife challenger 2":            "Tenerife 2",
	"tenerife challenger":              "Tenerife",
	"koblenz tennis open":              "Koblenz",
	"start romagna cup -1° trofeo citta di cesenatico": "Cesenatico",
	"terega open pau pyrenees":                         "Pau",
	"steve carter baton rouge challenger":              "Baton Rouge",
	"baton rouge challenger":                           "Baton Rouge",
	"new delhi challenger":                             "New Delhi",
	"iloilo challenger":                                "Iloilo",
	"genting highlands challenger":                     "Genting Highlands",
	"munich ultra paraguay open":                       "Asuncion",
	"morelia open":                                     "Morelia",
	"napoli tennis cup":                                "Naples",
	"iii challenger montemar ene construccion":         "Montemar",
	"yokkaichi challenger":                             "Yokkaichi",
	"split open":                                       "Split",
	"open menorca":                                     "Menorca",
	"banorte tennis open":                              "San Luis Potosi",
	"sao leo open de tenis":                            "Sao Leopoldo",
	"open citta della disfida - barletta":              "Barletta",
	"koyushokucho miyazaki challenger":                 "Miyazaki",
	"mexico city open":                                 "Mexico City",
	"atkinsons monza open":                             "Monza",
	"campeonato internacional de tenis":                "Campinas",
	"elizabeth moore sarasota open":                    "Sarasota",
	"wuning 1":                                         "Wuning",
	"wuning 2":                                         "Wuning 2",
	"busan open":                                       "Busan",
	"tallahassee tennis challenger":                    "Tallahassee",
	"yucatan open":                                     "Merida CH",
	"savannah challenger":                              "Savannah",
	"shymkent 1":                                       "Shymkent",
	"shymkent 2":                                       "Shymkent 2",
	"cote d'ivoire open 1":                             "Abidjan",
	"cote d'ivoire open 2":                             "Abidjan 2",
	"danube upper austria open":                        "Mauthausen",
	"salzburg open":                                    "Salzburg",
	"challenger aix-en-provence":                       "Aix-en-Provence",
	"uams health little rock open":                     "Little Rock",
	"internazionali di tennis - citta'di vicenza":      "Vicenza",
	"centurion 1":                                      "Centurion",
	"centurion 2":                                      "Centurion 2",
	"centurion 3":                                      "Centurion 3",
	"internazionali di tennis citta di perugia":        "Perugia",
	"lexus birmingham open":                            "Birmingham",
	"neckarcup 2.0":                                    "Heilbronn",
	"unicredit czech open":                             "Prostejov",
	"texas spine and joint men's championship":         "Tyler",
	"bratislava open":                                  "Bratislava",
	"lexus ilkley open":                                "Ilkley",
	"open sopra steria":                                "Lyon CH",
	"enea poznan open":                                 "Poznan",
	"intaro open":                                      "Targu Mures",
	"aspria tennis cup trofeo bcs":                     "Milan",
	"ion tiriac challenger":                            "Brasov",
	"internationaux de tennis de troyes":               "Troyes",
	"hall of fame open":                                "Newport",
	"brawo open":                                       "Braunschweig",
	"citta' di trieste":                                "Trieste",
	"lincoln challenger":                               "Lincoln",
	"open ciudad de pozoblanco":                        "Pozoblanco",
	"cranbrook tennis classic":                         "Bloomfield Hills",
	"open castilla y leon villa de el espinar":         "Segovia",
	"internazionali di tennis san marino open":         "San Marino",
	"svijany open":                                     "Liberec",
	"cary tennis classic":                              "Cary",
	"royan atlantique open":                            "Royan",
	// Truncated scraper names (scrapers sometimes cut off long names)
	"quini 6 rosario challenger presentado por el gobierno de": "Rosario",
	"start romagna cup -1° trofeo citta di":                    "Cesenatico",
	"start romagna cup":                                        "Cesenatico",
	"brasilia":                                                 "Brasilia",
	"new dehli":                                                "New Delhi",
	"maha open":                                                "Pune",
	"challenger citta di lugano":                               "Lugano",
	"open saint-brieuc armor agglomeration":                    "St. Brieuc",
	"st brieuc":                                                "St. Brieuc",
	"costa calida region de murcia":                            "Murcia",
	"kosice":                                                   "Kosice",
	"vancouver":                                                "Vancouver",
	"durham, nc":                                               "Durham",
	"durham nc":                                                "Durham",

	// WTA 125
	"oeiras 1 jamor indoor":          "Oeiras",
	"oeiras 2 jamor indoor":          "Oeiras 2",
	"oeiras jamor ladies open":       "Oeiras 3",
	"oeiras open ceto":               "Oeiras 4",
	"open arena les sables d'olonne": "Les Sables d'Olonne",
	"les sables d'olonne":            "Les Sables d'Olonne",
	"dow tennis classic":             "Midland",
	"megasaray hotels open":          "Antalya",
	"austin 125":                     "Austin 125",
	"dubrovnik open":                 "Dubrovnik",
	"catalonia open solgirones":      "La Bisbal d'Emporda",
	"l'open 35 de saint malo":        "Saint Malo",
	"istanbul open":                  "Istanbul",
	"parma ladies open presented by iren": "Parma",
	"parma ladies open":                   "Parma",
	"trophee clarins":                     "Paris 125",
	"open delle puglie trofeo":            "Foggia",
	"makarska open":                       "Makarska",
	"l&t mumbai open":                     "Mumbai",
}

var (
	tourPrefixRe = regexp.MustCompile(`^(?:ATP|WTA)\s+`)
	chSuffixRe   = regexp.MustCompile(`(?i)^(.+?)\s*\(CH\s*\d+\)$`)
)

// particles stay lowercase when title-casing an ALL-CAPS name, except
// in leading position.
var particles = map[string]bool{
	"DE": true, "DI": true, "DA": true, "DO": true,
	"DEL": true, "LA": true, "LE": true,
}

func aliasKey(name string) string {
	return strings.TrimSpace(strings.ToLower(internal.StripAccents(name)))
}

func capitalizeWord(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	return strings.ToUpper(string(r[:1])) + strings.ToLower(string(r[1:]))
}

// CanonicalTournamentName normalizes a tournament name so entries from
// different sources merge. The sources disagree on form: sponsor names
// ("ABN AMRO Open"), ALL-CAPS city names ("ATP DOHA"), and Challenger
// names with a level suffix ("Baton Rouge (CH 50)").
//
// Strategy:
//  1. Check alias table for exact match (sponsor -> city)
//  2. Strip ATP/WTA prefix and title-case ALL-CAPS names
//  3. Drop "(CH ##)" suffixes so Challenger names merge with sources
//     that omit the level, then re-check the alias table
func CanonicalTournamentName(name string) string {
	if name == "" {
		return name
	}

	if alias, ok := tournamentAliases[aliasKey(name)]; ok {
		return alias
	}

	stripped := tourPrefixRe.ReplaceAllString(strings.TrimSpace(name), "")

	// Title-case ALL-CAPS names (short acronyms excepted)
	if stripped == strings.ToUpper(stripped) && len([]rune(stripped)) > 3 {
		words := strings.Fields(stripped)
		for i, w := range words {
			if i > 0 && particles[strings.ToUpper(w)] {
				words[i] = strings.ToLower(w)
			} else {
				words[i] = capitalizeWord(w)
			}
		}
		stripped = strings.Join(words, " ")
	}

	if m := chSuffixRe.FindStringSubmatch(stripped); m != nil {
		stripped = strings.TrimSpace(m[1])
	}

	if alias, ok := tournamentAliases[aliasKey(stripped)]; ok {
		return alias
	}

	return internal.StripAccents(stripped)
}
