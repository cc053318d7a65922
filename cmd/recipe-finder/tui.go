package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/chunker"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/service"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/summarizer"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/tui"
)

const summaryTerms = 6

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search recipes interactively in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		finder, err := openFinder(cmd.Context(), appCfg)
		if err != nil {
			return err
		}
		summary := corpusSummary(finder, summarizer.NewFrequencySummarizer())
		m := tui.New(cmd.Context(), finder, chunker.NewIngredientChunker(), summary)
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

// corpusSummary is the TUI header line: an overview of the loaded corpus or
// the reason nothing was loaded.
func corpusSummary(finder *service.Finder, sum domain.Summarizer) string {
	engine := finder.Engine()
	if engine == nil {
		return "No recipes loaded: " + finder.LoadError().Error()
	}
	summary, err := sum.Summarize(engine.Recipes(), summaryTerms)
	if err != nil {
		return ""
	}
	return summary
}
