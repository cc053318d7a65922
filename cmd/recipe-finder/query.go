package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/console"
)

var (
	queryIngredients string
	queryJSON        bool
)

func init() {
	queryCmd.Flags().StringVarP(&queryIngredients, "ingredients", "i", "", "Comma-separated ingredients (skips the prompt)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Prompt for ingredients and print the best matching recipes",
	Long: `Prompt for a comma-separated ingredient list and print the top recipes
with their similarity scores.

Examples:
  recipe-finder query
  recipe-finder query --ingredients "tomato, basil, garlic"
  recipe-finder query -i "egg, flour" --json`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, _ []string) error {
	finder, err := openFinder(cmd.Context(), appCfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	ingredients := queryIngredients
	if !cmd.Flags().Changed("ingredients") {
		ingredients, err = console.ReadIngredients(cmd.InOrStdin(), out)
		if errors.Is(err, console.ErrNoInput) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	res, err := finder.Search(cmd.Context(), ingredients)
	if err != nil {
		return err
	}
	if queryJSON {
		return console.PrintJSON(out, res)
	}
	console.PrintResults(out, res)
	return nil
}
