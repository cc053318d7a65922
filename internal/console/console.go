// Package console implements the line-oriented front end: one prompt, one
// ranked answer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
)

const (
	Welcome = "Welcome to the Ingredient-Based Recipe App!"
	Prompt  = "Enter ingredients (comma-separated): "
)

// ErrNoInput is returned when the input stream closes before a line is entered.
var ErrNoInput = errors.New("no ingredients entered")

// ReadIngredients greets the user, prompts once and returns the entered line
// lowercased and trimmed.
func ReadIngredients(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, Welcome)
	fmt.Fprint(w, Prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// PrintResults writes the ranked recipes, or the not-found message when no
// recipe shares a token with the query.
func PrintResults(w io.Writer, res domain.Results) {
	if !res.Found() {
		fmt.Fprintln(w, "\nNo recipes found with the given ingredients.")
		return
	}
	fmt.Fprintf(w, "\nFound %d recipe(s) with similar ingredients:\n", len(res))
	for i, m := range res {
		fmt.Fprintf(w, "\nRecipe %d: %s\n", i+1, m.Recipe.Name)
		fmt.Fprintf(w, "Ingredients: %s\n", m.Recipe.IngredientsText)
		fmt.Fprintf(w, "Similarity Score: %.2f\n", m.Score)
	}
}

// PrintJSON writes the result set as an indented JSON array. A not-found
// result set is written as [].
func PrintJSON(w io.Writer, res domain.Results) error {
	views := []domain.MatchView{}
	if res.Found() {
		views = res.Views()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}
