package domain

import "context"

// Loader supplies the ordered recipe corpus.
type Loader interface {
	Load(ctx context.Context) ([]Recipe, error)
}

// Chunker splits an ingredients text into individual ingredient phrases.
type Chunker interface {
	Chunk(text string) []string
}

// Summarizer produces a short overview of the indexed corpus.
type Summarizer interface {
	Summarize(corpus []NormalizedRecipe, maxTerms int) (string, error)
}

// RecipeService defines the operations exposed by the application core to
// the console, TUI and HTTP front ends.
type RecipeService interface {
	Available() bool
	Search(ctx context.Context, ingredients string) (Results, error)
}
