package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/embedding/count"
)

// TermCount is an ingredient token with the number of recipes using it.
type TermCount struct {
	Term    string `json:"term"`
	Recipes int    `json:"recipes"`
}

// FrequencySummarizer ranks ingredient tokens by how many recipes mention them
// (stopwords and measurement words filtered).
type FrequencySummarizer struct {
	stopwords map[string]struct{}
}

// NewFrequencySummarizer creates a frequency-based corpus summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{stopwords: defaultStopwords()}
}

// TopTerms returns up to n tokens ordered by recipe frequency, then alphabetically.
func (s *FrequencySummarizer) TopTerms(corpus []domain.NormalizedRecipe, n int) []TermCount {
	freq := map[string]int{}
	for _, r := range corpus {
		seen := map[string]struct{}{}
		for _, tok := range count.Tokenize(r.IngredientsText, 2) {
			if _, ok := s.stopwords[tok]; ok {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			freq[tok]++
		}
	}
	terms := make([]TermCount, 0, len(freq))
	for t, c := range freq {
		terms = append(terms, TermCount{Term: t, Recipes: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Recipes != terms[j].Recipes {
			return terms[i].Recipes > terms[j].Recipes
		}
		return terms[i].Term < terms[j].Term
	})
	if n > 0 && n < len(terms) {
		terms = terms[:n]
	}
	return terms
}

// Summarize returns a one-line overview naming the most common ingredients.
func (s *FrequencySummarizer) Summarize(corpus []domain.NormalizedRecipe, maxTerms int) (string, error) {
	if maxTerms <= 0 {
		maxTerms = 5
	}
	noun := "recipes"
	if len(corpus) == 1 {
		noun = "recipe"
	}
	top := s.TopTerms(corpus, maxTerms)
	if len(top) == 0 {
		return fmt.Sprintf("%d %s indexed.", len(corpus), noun), nil
	}
	names := make([]string, len(top))
	for i, tc := range top {
		names[i] = tc.Term
	}
	return fmt.Sprintf("%d %s indexed. Common ingredients: %s.", len(corpus), noun, strings.Join(names, ", ")), nil
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "for", "to", "of", "in", "on", "at", "by", "with", "as", "into", "from", "about", "such",
		"cup", "cups", "tbsp", "tsp", "tablespoon", "tablespoons", "teaspoon", "teaspoons", "oz", "ounce", "ounces", "lb", "lbs",
		"pound", "pounds", "pinch", "g", "kg", "ml", "chopped", "diced", "minced", "sliced", "fresh", "large", "small", "medium",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
