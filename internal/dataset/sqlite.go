package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

// loadSQLite reads src.Table in rowid order. The file must already exist;
// it is opened read-only.
func loadSQLite(ctx context.Context, src Source) ([]domain.Recipe, error) {
	dsn, err := sqliteDSN(src.Path, "ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetNotFound, err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrDatasetNotFound, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	table := src.Table
	if table == "" {
		table = "recipes"
	}
	if err := checkColumns(ctx, db, table, src.NameColumn, src.IngredientsColumn); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY rowid",
		quoteIdent(src.NameColumn), quoteIdent(src.IngredientsColumn), quoteIdent(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var name, ing sql.NullString
		if err := rows.Scan(&name, &ing); err != nil {
			return nil, fmt.Errorf("scanning record %d: %w", len(recipes), err)
		}
		if !ing.Valid {
			return nil, &RecordError{Index: len(recipes), Name: name.String, Err: ErrMalformedIngredients}
		}
		recipes = append(recipes, domain.Recipe{
			ID:          len(recipes),
			Name:        name.String,
			Ingredients: parseCell(ing.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return recipes, nil
}

// sqliteDSN builds a file: URI for the absolute path with the path escaped,
// so '?' and '#' in file names are not taken for the query or fragment.
func sqliteDSN(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=" + mode}
	return u.String(), nil
}

// checkColumns verifies that table exists and has every named column. SQLite
// reads an unknown double-quoted identifier as a string literal, so a bad
// column name would otherwise load as constant text.
func checkColumns(ctx context.Context, db *sql.DB, table string, columns ...string) error {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return fmt.Errorf("reading schema of %s: %w", table, err)
	}
	defer rows.Close()

	have := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("reading schema of %s: %w", table, err)
		}
		have[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading schema of %s: %w", table, err)
	}
	if len(have) == 0 {
		return fmt.Errorf("%w: no such table %q", ErrMissingColumn, table)
	}
	for _, c := range columns {
		if !have[strings.ToLower(c)] {
			return fmt.Errorf("%w: %q in table %q", ErrMissingColumn, c, table)
		}
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
