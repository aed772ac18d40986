package pipeline

import (
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout lays out a dataset and exports the serializable layout
// document. It performs no caching; see [Runner.ComputeLayout].
func GenerateLayout(ds *Dataset, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	res := layout.Compute(ds.Graph, opts.LayoutOptions()...)
	return graph.FromResult(ds.Graph, res, ds.Hash), nil
}
