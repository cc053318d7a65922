package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/embedding/count"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/ingredients"
)

func sampleCorpus() []domain.Recipe {
	return []domain.Recipe{
		{ID: 0, Name: "pasta", Ingredients: domain.TextIngredients("tomato, basil, olive oil")},
		{ID: 1, Name: "salad", Ingredients: domain.TextIngredients("lettuce, tomato, cucumber")},
	}
}

func mustBuild(t *testing.T, recipes []domain.Recipe, opts Options) *Engine {
	t.Helper()
	e, err := Build(recipes, opts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return e
}

func TestQuery_SharedTokensRankHigher(t *testing.T) {
	e := mustBuild(t, sampleCorpus(), Options{})
	res, err := e.Query(context.Background(), "tomato, basil")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("len = %d, want 2", len(res))
	}
	if res[0].Recipe.Name != "pasta" || res[1].Recipe.Name != "salad" {
		t.Fatalf("order = %s, %s; want pasta, salad", res[0].Recipe.Name, res[1].Recipe.Name)
	}
	if !(res[0].Score > res[1].Score) {
		t.Errorf("pasta score %v not greater than salad score %v", res[0].Score, res[1].Score)
	}
	// pasta: 2 / sqrt(2*4); salad: 1 / sqrt(2*3)
	if math.Abs(res[0].Score-2/math.Sqrt(8)) > 1e-12 {
		t.Errorf("pasta score = %v", res[0].Score)
	}
	if math.Abs(res[1].Score-1/math.Sqrt(6)) > 1e-12 {
		t.Errorf("salad score = %v", res[1].Score)
	}
}

func TestQuery_UnknownTokenScoresZero(t *testing.T) {
	e := mustBuild(t, sampleCorpus(), Options{})
	res, err := e.Query(context.Background(), "chocolate")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("len = %d, want 2", len(res))
	}
	for _, m := range res {
		if m.Score != 0.0 {
			t.Errorf("%s score = %v, want exactly 0", m.Recipe.Name, m.Score)
		}
	}
	if res.Found() {
		t.Error("Found() = true for an all-zero result set")
	}
	if e.Stats().Vocabulary != 6 {
		t.Errorf("vocabulary grew to %d after unknown-token query", e.Stats().Vocabulary)
	}
}

func TestQuery_EmptyQuery(t *testing.T) {
	e := mustBuild(t, sampleCorpus(), Options{})
	for _, q := range []string{"", "   ", ", ,"} {
		res, err := e.Query(context.Background(), q)
		if err != nil {
			t.Fatalf("Query(%q) error = %v", q, err)
		}
		for _, m := range res {
			if m.Score != 0 {
				t.Errorf("Query(%q) %s score = %v, want 0", q, m.Recipe.Name, m.Score)
			}
		}
	}
}

func TestQuery_SelfSimilarity(t *testing.T) {
	recipes := []domain.Recipe{
		{ID: 0, Name: "soup", Ingredients: domain.ListIngredients([]string{"Onion", "carrot", "celery", "onion"})},
		{ID: 1, Name: "stew", Ingredients: domain.TextIngredients("beef, onion, carrot, potato")},
		{ID: 2, Name: "mirepoix", Ingredients: domain.TextIngredients("onion, onion, celery, carrot")},
		{ID: 3, Name: "bread", Ingredients: domain.TextIngredients("flour, water, salt, yeast")},
	}
	e := mustBuild(t, recipes, Options{})
	for _, r := range recipes {
		n, _ := ingredients.Normalize(r)
		res, err := e.Query(context.Background(), n.IngredientsText)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		var self *domain.Match
		for i := range res {
			if res[i].Recipe.ID == r.ID {
				self = &res[i]
			}
		}
		if self == nil {
			t.Fatalf("%s missing from its own results", r.Name)
		}
		if self.Score != 1.0 {
			t.Errorf("%s self score = %v, want 1.0", r.Name, self.Score)
		}
		if res[0].Score != 1.0 {
			t.Errorf("%s: top score = %v, want 1.0", r.Name, res[0].Score)
		}
	}

	// soup and mirepoix share a bag of words; the tie keeps corpus order.
	res, _ := e.Query(context.Background(), "onion, celery, carrot, onion")
	if res[0].Recipe.Name != "soup" || res[1].Recipe.Name != "mirepoix" {
		t.Errorf("tie order = %s, %s; want soup, mirepoix", res[0].Recipe.Name, res[1].Recipe.Name)
	}
}

func TestQuery_Deterministic(t *testing.T) {
	e := mustBuild(t, sampleCorpus(), Options{})
	first, _ := e.Query(context.Background(), "tomato, cucumber")
	for i := 0; i < 20; i++ {
		again, _ := e.Query(context.Background(), "tomato, cucumber")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestQuery_TopKBound(t *testing.T) {
	var recipes []domain.Recipe
	for i := 0; i < 12; i++ {
		recipes = append(recipes, domain.Recipe{ID: i, Name: fmt.Sprintf("r%d", i), Ingredients: domain.TextIngredients("salt, pepper")})
	}
	e := mustBuild(t, recipes, Options{})
	res, _ := e.Query(context.Background(), "salt")
	if len(res) != DefaultTopK {
		t.Errorf("len = %d, want %d", len(res), DefaultTopK)
	}
	for i, m := range res {
		if m.Index != i {
			t.Errorf("tie order position %d holds index %d", i, m.Index)
		}
	}

	small := mustBuild(t, recipes[:3], Options{TopK: 10})
	res, _ = small.Query(context.Background(), "salt")
	if len(res) != 3 {
		t.Errorf("len = %d, want corpus size 3", len(res))
	}
}

func TestQuery_CancelledContext(t *testing.T) {
	e := mustBuild(t, sampleCorpus(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Query(ctx, "tomato"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := Build(nil, Options{}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyCorpus", err)
	}
	blank := []domain.Recipe{{Name: "nothing", Ingredients: domain.TextIngredients("  ")}}
	if _, err := Build(blank, Options{}); !errors.Is(err, count.ErrEmptyVocabulary) {
		t.Errorf("Build(blank) error = %v, want ErrEmptyVocabulary", err)
	}
	bad := append(sampleCorpus(), domain.Recipe{ID: 2, Name: "broken"})
	var me *ingredients.MalformedError
	if _, err := Build(bad, Options{}); !errors.As(err, &me) || me.Name != "broken" {
		t.Errorf("Build(malformed) error = %v, want MalformedError naming \"broken\"", err)
	}
}

func TestBuild_IndependentEngines(t *testing.T) {
	a := mustBuild(t, sampleCorpus(), Options{})
	b := mustBuild(t, []domain.Recipe{{Name: "cake", Ingredients: domain.TextIngredients("flour, sugar, egg")}}, Options{})
	if a.Stats().Vocabulary == b.Stats().Vocabulary {
		t.Fatalf("expected different vocabularies")
	}
	res, _ := a.Query(context.Background(), "flour")
	if res.Found() {
		t.Error("engine a matched a token only engine b knows")
	}
	if got := b.Stats(); got.Recipes != 1 || got.NonZero != 3 {
		t.Errorf("b.Stats() = %+v", got)
	}
}
