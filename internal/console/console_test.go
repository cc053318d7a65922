package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

func TestReadIngredients(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowercases", "  Tomato, BASIL \n", "tomato, basil"},
		{"no trailing newline", "Egg", "egg"},
		{"blank line", "\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ReadIngredients(strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("ReadIngredients() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if !strings.HasSuffix(out.String(), Prompt) {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestReadIngredients_EOF(t *testing.T) {
	var out bytes.Buffer
	if _, err := ReadIngredients(strings.NewReader(""), &out); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}
}

func sampleResults() domain.Results {
	return domain.Results{
		{Recipe: domain.NormalizedRecipe{Name: "pasta", IngredientsText: "tomato, basil, olive oil"}, Index: 0, Score: 0.7071067811865475},
		{Recipe: domain.NormalizedRecipe{Name: "salad", IngredientsText: "lettuce, tomato, cucumber"}, Index: 1, Score: 0.4082482904638631},
	}
}

func TestPrintResults(t *testing.T) {
	var out bytes.Buffer
	PrintResults(&out, sampleResults())
	want := "\nFound 2 recipe(s) with similar ingredients:\n" +
		"\nRecipe 1: pasta\nIngredients: tomato, basil, olive oil\nSimilarity Score: 0.71\n" +
		"\nRecipe 2: salad\nIngredients: lettuce, tomato, cucumber\nSimilarity Score: 0.41\n"
	if out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestPrintResults_NotFound(t *testing.T) {
	for name, res := range map[string]domain.Results{
		"empty":    nil,
		"all zero": {{Recipe: domain.NormalizedRecipe{Name: "pasta"}, Score: 0}},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			PrintResults(&out, res)
			if out.String() != "\nNo recipes found with the given ingredients.\n" {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	if err := PrintJSON(&out, sampleResults()); err != nil {
		t.Fatalf("PrintJSON() error = %v", err)
	}
	var got []domain.MatchView
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(got) != 2 || got[0].RecipeName != "pasta" || got[0].Similarity != 0.71 {
		t.Errorf("decoded = %+v", got)
	}

	out.Reset()
	if err := PrintJSON(&out, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("empty output = %q, want []", out.String())
	}
}
