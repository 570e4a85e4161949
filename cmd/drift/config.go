package main

import (
	"github.com/drift-explorer/drift/internal/config"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// newExplorerConfig builds the initial sort/filter pipeline from the loaded
// configuration's general section.
func newExplorerConfig(cfg *config.Config) sortfilter.Pipeline {
	return sortfilter.NewPipeline(cfg.General.InitialFilters, cfg.General.InitialSorters)
}
