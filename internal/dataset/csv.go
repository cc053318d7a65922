package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

func loadCSV(ctx context.Context, src Source) ([]domain.Recipe, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetNotFound, err)
	}
	defer f.Close()
	return readCSV(ctx, f, src)
}

func readCSV(ctx context.Context, r io.Reader, src Source) ([]domain.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file has no header", ErrMissingColumn)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	nameIdx, ingIdx := -1, -1
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch col {
		case src.NameColumn:
			nameIdx = i
		case src.IngredientsColumn:
			ingIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, src.NameColumn)
	}
	if ingIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, src.IngredientsColumn)
	}

	var recipes []domain.Recipe
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(recipes), err)
		}
		if nameIdx >= len(row) || ingIdx >= len(row) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w: row has %d fields", line, ErrMissingColumn, len(row))
		}
		recipes = append(recipes, domain.Recipe{
			ID:          len(recipes),
			Name:        row[nameIdx],
			Ingredients: parseCell(row[ingIdx]),
		})
	}
	return recipes, nil
}
