package main

import (
	"context"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/config"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/dataset"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/service"
)

// openFinder loads the configured dataset and builds the index. A dataset that
// cannot be read yields a degraded finder; a corpus that cannot be indexed is
// a configuration error.
func openFinder(ctx context.Context, cfg *config.AppConfig) (*service.Finder, error) {
	loader := dataset.NewFileLoader(dataset.Source{
		Path:              cfg.Dataset.Path,
		Format:            cfg.Dataset.Format,
		NameColumn:        cfg.Dataset.NameColumn,
		IngredientsColumn: cfg.Dataset.IngredientsColumn,
		Table:             cfg.Dataset.Table,
	})
	finder, err := service.Open(ctx, loader, service.Options{
		TopK:            cfg.Search.TopK,
		MinTokenLength:  cfg.Index.MinTokenLength,
		VocabularyOrder: cfg.Index.VocabularyOrder,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return finder, nil
}
