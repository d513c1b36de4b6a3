package directory

import (
	"sort"
	"strings"

	"github.com/seanofahey/mcp-noaa-tides/internal/models"
)

// tidePredictionsProduct is the exact product name the metadata API uses
// for stations that publish predictions. Matched case-sensitively.
const tidePredictionsProduct = "Tide Predictions"

// minWholeWordLen gates whole-word matching so short tokens like "by"
// cannot spuriously equal a word of a station name. Substring matching
// is not gated.
const minWholeWordLen = 3

// Search filters allStations against a free-text query and returns the
// matches annotated with derived capability flags, exact-name matches
// first, then exact-state matches, otherwise in snapshot order.
//
// The query is split on commas; each piece is trimmed and lower-cased
// independently. A station matches when any token is a substring of its
// lower-cased name or state, or equals one of the whitespace-separated
// words of the name (tokens of three or more characters only).
//
// Search is pure: it performs no I/O, never fails, and does not mutate
// its inputs. An empty query produces the single empty token, which is a
// substring of everything and therefore matches every station.
func Search(query string, allStations []models.Station) models.SearchResult {
	tokens := tokenize(query)

	// Empty, not nil: zero matches must marshal as "stations": [].
	matched := make([]models.AnnotatedStation, 0)
	for _, station := range allStations {
		if matchesAny(station, tokens) {
			matched = append(matched, annotate(station))
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ki := sortKey(matched[i].Station, tokens)
		kj := sortKey(matched[j].Station, tokens)
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})

	return models.SearchResult{
		Stations: matched,
		Count:    len(matched),
	}
}

func tokenize(query string) []string {
	parts := strings.Split(query, ",")
	tokens := make([]string, len(parts))
	for i, part := range parts {
		tokens[i] = strings.ToLower(strings.TrimSpace(part))
	}
	return tokens
}

// matchesAny reports whether at least one token matches the station.
// Evaluation stops at the first satisfying token.
func matchesAny(station models.Station, tokens []string) bool {
	nameLC := strings.ToLower(station.Name)
	stateLC := strings.ToLower(station.State)
	nameWords := strings.Fields(nameLC)

	for _, token := range tokens {
		if strings.Contains(nameLC, token) || strings.Contains(stateLC, token) {
			return true
		}
		if len(token) >= minWholeWordLen {
			for _, word := range nameWords {
				if token == word {
					return true
				}
			}
		}
	}
	return false
}

func annotate(station models.Station) models.AnnotatedStation {
	return models.AnnotatedStation{
		Station: station,
		AvailableProducts: models.AvailableProducts{
			TidePredictions: hasProduct(station, tidePredictionsProduct),
			WaterLevels:     station.Observed,
			Currents:        station.Type == "currents",
			IsActive:        station.Observed,
		},
	}
}

func hasProduct(station models.Station, name string) bool {
	if station.Products == nil {
		return false
	}
	for _, p := range station.Products.Products {
		if p.Name == name {
			return true
		}
	}
	return false
}

// sortKey returns the two-level ascending sort key: exact-name matches
// rank before everything else, exact-state matches break the remaining
// ties. Equal keys keep their filtered order.
func sortKey(station models.Station, tokens []string) [2]int {
	key := [2]int{1, 1}
	nameLC := strings.ToLower(station.Name)
	stateLC := strings.ToLower(station.State)
	for _, token := range tokens {
		if token == nameLC {
			key[0] = 0
		}
		if token == stateLC {
			key[1] = 0
		}
	}
	return key
}
