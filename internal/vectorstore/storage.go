package vectorstore

import "github.com/ashtonrjacobs/Recipe-Finder/internal/domain"

// Storage holds the indexed recipe rows and ranks them against a query vector.
type Storage interface {
	Len() int
	Dimension() int
	Search(vector domain.SparseVector, topK int) ([]domain.Match, error)
}
