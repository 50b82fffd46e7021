package pipeline

import (
	"github.com/matzehuels/alpsviz/pkg/profile"
	"github.com/matzehuels/alpsviz/pkg/render/diagram"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout applies the tag filter to p and generates its DOT source.
// Filtering never removes anything from the diagram; the subset is only
// highlighted.
func GenerateLayout(p *profile.Profile, opts Options) (string, *profile.Tagged, error) {
	tagged := profile.Filter(p, opts.AndTags, opts.OrTags)
	dopts, err := opts.DiagramOptions(tagged)
	if err != nil {
		return "", nil, err
	}
	return diagram.ToDOT(p, dopts), tagged, nil
}
