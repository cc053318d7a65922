// Package count implements a bag-of-words term-count vectorizer.
//
// Fit builds a closed vocabulary from the corpus and the term-count matrix
// (one row per document). Embed encodes arbitrary text over the same columns;
// tokens outside the vocabulary are dropped without error and never extend it.
package count

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

var (
	ErrEmptyCorpus     = errors.New("empty corpus: no documents to build a vocabulary from")
	ErrEmptyVocabulary = errors.New("no tokens found in corpus")
)

// Order selects how vocabulary columns are assigned.
type Order string

const (
	// OrderSorted assigns columns in lexical order of the terms.
	OrderSorted Order = "sorted"
	// OrderFirstSeen assigns columns in order of first occurrence.
	OrderFirstSeen Order = "first_seen"
)

// Options tune tokenization and column assignment.
type Options struct {
	// MinTokenLength drops tokens shorter than this many runes. Values below 1 mean 1.
	MinTokenLength int
	Order          Order
}

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Tokenize lowercases text and splits it on every non-alphanumeric rune.
func Tokenize(text string, minLen int) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if minLen <= 1 {
		return raw
	}
	out := raw[:0]
	for _, t := range raw {
		if utf8.RuneCountInString(t) >= minLen {
			out = append(out, t)
		}
	}
	return out
}

// Embedder is a fitted count vectorizer together with its term-count matrix.
type Embedder struct {
	vocabulary map[string]int
	terms      []string
	rows       []domain.SparseVector
	minLen     int
}

// Fit builds the vocabulary and term-count matrix from corpus. Row i of the
// matrix corresponds to corpus[i].
func Fit(corpus []string, opts Options) (*Embedder, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	minLen := opts.MinTokenLength
	if minLen < 1 {
		minLen = 1
	}

	tokenized := make([][]string, len(corpus))
	var terms []string
	seen := make(map[string]struct{})
	for i, text := range corpus {
		tokenized[i] = Tokenize(text, minLen)
		for _, tok := range tokenized[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			terms = append(terms, tok)
		}
	}
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}

	switch opts.Order {
	case OrderSorted, "":
		sort.Strings(terms)
	case OrderFirstSeen:
	default:
		return nil, fmt.Errorf("unknown vocabulary order %q", opts.Order)
	}

	e := &Embedder{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		rows:       make([]domain.SparseVector, len(corpus)),
		minLen:     minLen,
	}
	for i, term := range terms {
		e.vocabulary[term] = i
	}
	for i, tokens := range tokenized {
		e.rows[i] = e.encode(tokens)
	}
	return e, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "count" }

// Dimension returns the number of vocabulary columns.
func (e *Embedder) Dimension() int { return len(e.terms) }

// Embed encodes text over the fitted vocabulary. Unknown tokens contribute
// nothing; empty or whitespace-only text yields the zero vector.
func (e *Embedder) Embed(text string) domain.SparseVector {
	return e.encode(Tokenize(text, e.minLen))
}

// Matrix returns the term-count matrix rows. Callers must not modify them.
func (e *Embedder) Matrix() []domain.SparseVector { return e.rows }

// Lookup returns the column of a token.
func (e *Embedder) Lookup(token string) (int, bool) {
	idx, ok := e.vocabulary[token]
	return idx, ok
}

// Terms returns a copy of the vocabulary in column order.
func (e *Embedder) Terms() []string {
	out := make([]string, len(e.terms))
	copy(out, e.terms)
	return out
}

// NNZ returns the number of non-zero cells in the matrix.
func (e *Embedder) NNZ() int {
	n := 0
	for _, r := range e.rows {
		n += r.NNZ()
	}
	return n
}

func (e *Embedder) encode(tokens []string) domain.SparseVector {
	tf := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return domain.SparseVector{}
	}
	idxs := make([]int, 0, len(tf))
	for idx := range tf {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	vals := make([]float64, len(idxs))
	for k, idx := range idxs {
		vals[k] = tf[idx]
	}
	return domain.SparseVector{Indices: idxs, Values: vals}
}
