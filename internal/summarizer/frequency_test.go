package summarizer

import (
	"strings"
	"testing"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

func corpus(texts ...string) []domain.NormalizedRecipe {
	out := make([]domain.NormalizedRecipe, len(texts))
	for i, t := range texts {
		out[i] = domain.NormalizedRecipe{ID: i, IngredientsText: t}
	}
	return out
}

func TestTopTerms(t *testing.T) {
	s := NewFrequencySummarizer()
	c := corpus(
		"2 cups chopped tomato, garlic, garlic",
		"tomato, basil",
		"fresh basil, tomato",
	)
	got := s.TopTerms(c, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Term != "tomato" || got[0].Recipes != 3 {
		t.Errorf("first = %+v, want tomato/3", got[0])
	}
	if got[1].Term != "basil" || got[1].Recipes != 2 {
		t.Errorf("second = %+v, want basil/2", got[1])
	}
	for _, tc := range s.TopTerms(c, 0) {
		if tc.Term == "cups" || tc.Term == "chopped" || tc.Term == "fresh" {
			t.Errorf("stopword %q was counted", tc.Term)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize(corpus("tomato, basil", "tomato"), 1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !strings.HasPrefix(got, "2 recipes indexed.") || !strings.Contains(got, "tomato") {
		t.Errorf("Summarize() = %q", got)
	}

	got, _ = s.Summarize(corpus(""), 3)
	if got != "1 recipe indexed." {
		t.Errorf("Summarize(empty text) = %q", got)
	}
}
