package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

// loadJSON reads a top-level array of objects. The ingredients value may be
// a string or an array of strings.
func loadJSON(ctx context.Context, src Source) ([]domain.Recipe, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetNotFound, err)
	}
	return decodeJSON(ctx, data, src)
}

func decodeJSON(ctx context.Context, data []byte, src Source) ([]domain.Recipe, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	recipes := make([]domain.Recipe, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rawName, ok := row[src.NameColumn]
		if !ok {
			return nil, fmt.Errorf("record %d: %w: %q", i, ErrMissingColumn, src.NameColumn)
		}
		var name string
		if err := json.Unmarshal(rawName, &name); err != nil {
			return nil, &RecordError{Index: i, Err: fmt.Errorf("name is not a string: %w", err)}
		}
		rawIng, ok := row[src.IngredientsColumn]
		if !ok {
			return nil, fmt.Errorf("record %d: %w: %q", i, ErrMissingColumn, src.IngredientsColumn)
		}
		ing, err := decodeIngredients(rawIng)
		if err != nil {
			return nil, &RecordError{Index: i, Name: name, Err: err}
		}
		recipes = append(recipes, domain.Recipe{ID: i, Name: name, Ingredients: ing})
	}
	return recipes, nil
}

func decodeIngredients(raw json.RawMessage) (domain.Ingredients, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil && string(raw) != "null" {
		return domain.TextIngredients(text), nil
	}
	var elems []*string
	if err := json.Unmarshal(raw, &elems); err != nil || string(raw) == "null" {
		return domain.Ingredients{}, ErrMalformedIngredients
	}
	items := make([]string, len(elems))
	for i, e := range elems {
		if e == nil {
			return domain.Ingredients{}, ErrMalformedIngredients
		}
		items[i] = *e
	}
	return domain.ListIngredients(items), nil
}
