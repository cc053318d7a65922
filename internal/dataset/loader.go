// Package dataset loads the recipe corpus from a CSV, JSON or SQLite file.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

// Errors returned by loaders.
var (
	ErrDatasetNotFound      = errors.New("unable to load dataset")
	ErrMissingColumn        = errors.New("missing required column")
	ErrUnsupportedFormat    = errors.New("unsupported dataset format")
	ErrMalformedIngredients = errors.New("ingredients must be a string or a list of strings")
)

// Supported formats.
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Source describes where the corpus lives and which columns hold the data.
type Source struct {
	Path              string
	Format            string // empty: inferred from the file extension
	NameColumn        string
	IngredientsColumn string
	Table             string // sqlite only
}

// RecordError names the record that failed to load.
type RecordError struct {
	Index int
	Name  string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%q): %v", e.Index, e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// FileLoader implements domain.Loader for a single Source.
type FileLoader struct {
	src Source
}

func NewFileLoader(src Source) *FileLoader { return &FileLoader{src: src} }

// Load reads every record in file order.
func (l *FileLoader) Load(ctx context.Context) ([]domain.Recipe, error) {
	return Load(ctx, l.src)
}

// Load reads the corpus described by src.
func Load(ctx context.Context, src Source) ([]domain.Recipe, error) {
	if _, err := os.Stat(src.Path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetNotFound, src.Path, err)
	}
	format, err := ResolveFormat(src)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return loadCSV(ctx, src)
	case FormatJSON:
		return loadJSON(ctx, src)
	case FormatSQLite:
		return loadSQLite(ctx, src)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ResolveFormat returns src.Format or infers it from the path extension.
func ResolveFormat(src Source) (string, error) {
	if src.Format != "" {
		switch f := strings.ToLower(src.Format); f {
		case FormatCSV, FormatJSON, FormatSQLite:
			return f, nil
		default:
			return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, src.Format)
		}
	}
	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: cannot infer from %q", ErrUnsupportedFormat, src.Path)
}

// parseCell turns a tabular cell into ingredients. A cell holding a JSON
// array of strings becomes a list; anything else is kept as text.
func parseCell(cell string) domain.Ingredients {
	trimmed := strings.TrimSpace(cell)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return domain.ListIngredients(items)
		}
	}
	return domain.TextIngredients(cell)
}
