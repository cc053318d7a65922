package domain

import "math"

// SparseVector holds the non-zero cells of a count vector. Indices are
// strictly ascending column positions; Values are aligned with them.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero cells.
func (v SparseVector) IsZero() bool { return len(v.Indices) == 0 }

// NNZ returns the number of stored cells.
func (v SparseVector) NNZ() int { return len(v.Indices) }

// Dot is the inner product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// SquaredNorm is the squared Euclidean length.
func (v SparseVector) SquaredNorm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero length.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.SquaredNorm(), b.SquaredNorm()
	if na == 0 || nb == 0 {
		return 0
	}
	// sqrt of the product keeps identical count vectors at exactly 1.
	return a.Dot(b) / math.Sqrt(na*nb)
}

// RoundScore rounds a similarity score to two decimal places.
func RoundScore(s float64) float64 {
	return math.Round(s*100) / 100
}
