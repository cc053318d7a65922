// Package ingredients flattens a recipe's ingredients field into the single
// comma-joined text that the vocabulary index tokenizes.
package ingredients

import (
	"fmt"
	"strings"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

// Separator joins list ingredients into one text.
const Separator = ", "

// MalformedError reports a record whose ingredients field is neither a
// string nor a list of strings.
type MalformedError struct {
	Index int
	Name  string
	Kind  domain.IngredientsKind
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("recipe %d (%q): malformed ingredients field (%s)", e.Index, e.Name, e.Kind)
}

// Normalize converts one record. Lists are joined with ", " in their
// original order; text passes through untouched. Case is preserved.
func Normalize(r domain.Recipe) (domain.NormalizedRecipe, error) {
	out := domain.NormalizedRecipe{ID: r.ID, Name: r.Name}
	switch r.Ingredients.Kind() {
	case domain.IngredientsText:
		out.IngredientsText, _ = r.Ingredients.Text()
	case domain.IngredientsList:
		items, _ := r.Ingredients.List()
		out.IngredientsText = strings.Join(items, Separator)
	default:
		return domain.NormalizedRecipe{}, &MalformedError{Index: r.ID, Name: r.Name, Kind: r.Ingredients.Kind()}
	}
	return out, nil
}

// NormalizeAll normalizes every record in order and stops at the first
// malformed one.
func NormalizeAll(recipes []domain.Recipe) ([]domain.NormalizedRecipe, error) {
	out := make([]domain.NormalizedRecipe, 0, len(recipes))
	for _, r := range recipes {
		n, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
