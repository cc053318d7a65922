package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/dataset"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/logging"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/metrics"
)

// Finder is the RecipeService used by every front end. When the dataset
// could not be loaded it stays live and answers every query with an empty
// result set.
type Finder struct {
	engine  *Engine
	loadErr error
}

var _ domain.RecipeService = (*Finder)(nil)

// NewFinder serves queries from a built engine.
func NewFinder(engine *Engine) *Finder {
	metrics.RecordIndex(engine.Stats().Recipes, engine.Stats().Vocabulary)
	return &Finder{engine: engine}
}

// Unavailable returns a degraded Finder that remembers why loading failed.
func Unavailable(loadErr error) *Finder {
	metrics.RecordUnavailable()
	return &Finder{loadErr: loadErr}
}

// Open loads the corpus and builds the engine. A dataset that cannot be read
// yields a degraded Finder and no error; it is logged once here. Empty or
// malformed corpora are returned as errors since no index can be built.
func Open(ctx context.Context, loader domain.Loader, opts Options) (*Finder, error) {
	log := logging.WithComponent("finder")
	start := time.Now()
	recipes, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrMalformedIngredients) {
			return nil, err
		}
		log.Error().Err(err).Msg("unable to load dataset; serving without recipes")
		return Unavailable(err), nil
	}
	engine, err := Build(recipes, opts)
	if err != nil {
		return nil, err
	}
	st := engine.Stats()
	log.Info().
		Int("recipes", st.Recipes).
		Int("vocabulary", st.Vocabulary).
		Int("non_zero", st.NonZero).
		Dur("took", time.Since(start)).
		Msg("recipe index built")
	return NewFinder(engine), nil
}

// Available reports whether a dataset is loaded.
func (f *Finder) Available() bool { return f.engine != nil }

// LoadError returns the reason the Finder is degraded, if any.
func (f *Finder) LoadError() error { return f.loadErr }

// Engine returns the underlying engine, or nil when degraded.
func (f *Finder) Engine() *Engine { return f.engine }

// Search trims and lowercases the ingredient list and ranks recipes against it.
func (f *Finder) Search(ctx context.Context, ingredients string) (domain.Results, error) {
	start := time.Now()
	if f.engine == nil {
		metrics.RecordQuery("unavailable", time.Since(start))
		return nil, nil
	}
	q := strings.ToLower(strings.TrimSpace(ingredients))
	res, err := f.engine.Query(ctx, q)
	if err != nil {
		metrics.RecordQuery("error", time.Since(start))
		return nil, err
	}
	outcome := "not_found"
	if res.Found() {
		outcome = "found"
	}
	metrics.RecordQuery(outcome, time.Since(start))
	logging.Ctx(ctx).Debug().
		Str("component", "finder").
		Str("query", q).
		Int("results", len(res)).
		Str("outcome", outcome).
		Msg("ingredient query")
	return res, nil
}
