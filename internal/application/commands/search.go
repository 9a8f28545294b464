package commands

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"planner/internal/domain"
	"planner/internal/ports"
)

// Match tiers, best first. Initials matches score below substrings.
const (
	scoreExactName = 300
	scoreExactID   = 250
	scorePrefix    = 200
	scoreWordStart = 150
	scoreSubstring = 100
	scoreInitials  = 50
)

// SearchResult wraps an object definition with a relevance score
type SearchResult struct {
	Object *domain.ObjectDefinition
	Score  int
}

// SearchCommand ranks the published catalogue against a free-text query
type SearchCommand struct {
	objects ports.ObjectsProvider
	Query   string
}

func NewSearchCommand(objects ports.ObjectsProvider, query string) *SearchCommand {
	return &SearchCommand{objects: objects, Query: strings.TrimSpace(query)}
}

// Execute returns matching objects, best first. Queries shorter than two
// characters return nothing.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len([]rune(c.Query)) < 2 {
		return nil, nil
	}

	published, err := c.objects.GetObjectsByName("", domain.UnpublishedCategoryID)
	if err != nil {
		return nil, err
	}
	return RankObjects(published, c.Query), nil
}

// MatchScore rates how well an object name matches query, 0 meaning no match.
// Comparison is case-insensitive.
func MatchScore(name, query string) int {
	name, query = strings.ToLower(name), strings.ToLower(query)
	if query == "" {
		return 0
	}

	switch {
	case name == query:
		return scoreExactName
	case strings.HasPrefix(name, query):
		return scorePrefix
	}

	words := strings.FieldsFunc(name, isSeparator)
	for _, w := range words {
		if strings.HasPrefix(w, query) {
			return scoreWordStart
		}
	}
	if strings.Contains(name, query) {
		return scoreSubstring
	}
	return initialsScore(words, []rune(query))
}

// initialsScore matches the query as a subsequence of the name, rewarding
// characters that start a word ("dt" for "Dining table").
func initialsScore(words []string, query []rune) int {
	score, qi := 0, 0
	for _, w := range words {
		for i, r := range []rune(w) {
			if qi == len(query) {
				break
			}
			if r != query[qi] {
				continue
			}
			if i == 0 {
				score += 10
			} else {
				score++
			}
			qi++
		}
	}
	if qi < len(query) {
		return 0
	}
	return min(score, scoreInitials-1)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '-' || r == '/'
}

// RankObjects scores objects by name and by id and orders them best first,
// breaking ties by name then id
func RankObjects(objects []*domain.ObjectDefinition, query string) []SearchResult {
	ranked := make([]SearchResult, 0, len(objects))
	for _, obj := range objects {
		score := MatchScore(obj.Name, query)
		if strconv.Itoa(obj.ID) == strings.TrimSpace(query) {
			score = max(score, scoreExactID)
		}
		if score > 0 {
			ranked = append(ranked, SearchResult{Object: obj, Score: score})
		}
	}

	slices.SortStableFunc(ranked, func(a, b SearchResult) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if c := strings.Compare(a.Object.Name, b.Object.Name); c != 0 {
			return c
		}
		return a.Object.ID - b.Object.ID
	})
	return ranked
}
