package embedding

import "github.com/ashtonrjacobs/Recipe-Finder/internal/domain"

// Embedder maps free text onto a fixed column space fitted from the corpus.
// Implementations are read-only once constructed.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) domain.SparseVector
}
