package memory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

// DefaultTopK is used when Search is called with a non-positive topK.
const DefaultTopK = 5

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Storage is an in-memory, read-only recipe index ranked by brute-force
// cosine similarity. It is safe for concurrent use once constructed.
type Storage struct {
	dimension int
	vectors   []domain.SparseVector
	recipes   []domain.NormalizedRecipe
}

// NewStorage pairs each recipe with its term-count row. Rows must be
// positionally aligned with recipes.
func NewStorage(dimension int, recipes []domain.NormalizedRecipe, vectors []domain.SparseVector) (*Storage, error) {
	if dimension <= 0 {
		return nil, errors.New("invalid dimension")
	}
	if len(recipes) != len(vectors) {
		return nil, errors.New("recipes and vectors length mismatch")
	}
	for i, v := range vectors {
		if err := checkBounds(v, dimension); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return &Storage{dimension: dimension, vectors: vectors, recipes: recipes}, nil
}

func (s *Storage) Len() int { return len(s.vectors) }

func (s *Storage) Dimension() int { return s.dimension }

// Scores returns the cosine similarity of vector against every row, in
// corpus order.
func (s *Storage) Scores(vector domain.SparseVector) ([]float64, error) {
	if err := checkBounds(vector, s.dimension); err != nil {
		return nil, err
	}
	scores := make([]float64, len(s.vectors))
	if vector.IsZero() {
		return scores, nil
	}
	for i := range s.vectors {
		scores[i] = domain.Cosine(vector, s.vectors[i])
	}
	return scores, nil
}

// Search returns the topK rows by descending score. Equal scores keep
// ascending corpus order.
func (s *Storage) Search(vector domain.SparseVector, topK int) ([]domain.Match, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	scores, err := s.Scores(vector)
	if err != nil {
		return nil, err
	}
	idxs := argsortDesc(scores)
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.Match, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.Match{Recipe: s.recipes[j], Index: j, Score: scores[j]})
	}
	return results, nil
}

func checkBounds(v domain.SparseVector, dimension int) error {
	if len(v.Indices) != len(v.Values) {
		return ErrDimensionMismatch
	}
	if n := len(v.Indices); n > 0 && (v.Indices[0] < 0 || v.Indices[n-1] >= dimension) {
		return ErrDimensionMismatch
	}
	return nil
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	// stable: ties stay in ascending index order
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}
