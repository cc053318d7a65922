package service

import (
	"context"
	"fmt"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/embedding"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/embedding/count"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/ingredients"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/vectorstore"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/vectorstore/memory"
)

// ErrEmptyCorpus is returned by Build when the dataset holds no recipes.
var ErrEmptyCorpus = count.ErrEmptyCorpus

// DefaultTopK is the number of results returned per query.
const DefaultTopK = 5

// Options configure index construction and ranking.
type Options struct {
	TopK            int
	MinTokenLength  int
	VocabularyOrder string
}

// Stats describes a built index.
type Stats struct {
	Recipes    int `json:"recipes"`
	Vocabulary int `json:"vocabulary"`
	NonZero    int `json:"non_zero_cells"`
}

// Engine is the immutable matching context: the fitted vocabulary, the
// term-count matrix and the normalized recipes. It is safe for concurrent
// queries.
type Engine struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	recipes  []domain.NormalizedRecipe
	topK     int
	stats    Stats
}

// Build normalizes the corpus, fits the vocabulary and indexes every recipe.
// An empty corpus, a corpus without tokens, or a malformed record is an error.
func Build(recipes []domain.Recipe, opts Options) (*Engine, error) {
	if len(recipes) == 0 {
		return nil, ErrEmptyCorpus
	}
	normalized, err := ingredients.NormalizeAll(recipes)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(normalized))
	for i, r := range normalized {
		texts[i] = r.IngredientsText
	}
	emb, err := count.Fit(texts, count.Options{
		MinTokenLength: opts.MinTokenLength,
		Order:          count.Order(opts.VocabularyOrder),
	})
	if err != nil {
		return nil, fmt.Errorf("building vocabulary: %w", err)
	}
	store, err := memory.NewStorage(emb.Dimension(), normalized, emb.Matrix())
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{
		embedder: emb,
		store:    store,
		recipes:  normalized,
		topK:     topK,
		stats:    Stats{Recipes: len(normalized), Vocabulary: emb.Dimension(), NonZero: emb.NNZ()},
	}, nil
}

// Query encodes text over the fixed vocabulary and returns the top-K recipes
// by cosine similarity. Unknown tokens are ignored; a query with no known
// tokens scores every recipe 0.
func (e *Engine) Query(ctx context.Context, text string) (domain.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vec := e.embedder.Embed(text)
	res, err := e.store.Search(vec, e.topK)
	if err != nil {
		return nil, err
	}
	return domain.Results(res), nil
}

// Stats returns index size information.
func (e *Engine) Stats() Stats { return e.stats }

// TopK returns the configured result count.
func (e *Engine) TopK() int { return e.topK }

// Recipes returns the normalized corpus in index order. Callers must not modify it.
func (e *Engine) Recipes() []domain.NormalizedRecipe { return e.recipes }
