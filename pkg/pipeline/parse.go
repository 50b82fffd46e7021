package pipeline

import (
	"context"
	"time"

	pkgio "github.com/matzehuels/alpsviz/pkg/io"
	"github.com/matzehuels/alpsviz/pkg/observability"
	"github.com/matzehuels/alpsviz/pkg/profile"
	"github.com/matzehuels/alpsviz/pkg/resolve"
)

// Parse resolves the profile at opts.Input and builds it.
// It returns the built profile and the files that were read, root first.
func Parse(ctx context.Context, opts Options) (*profile.Profile, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnResolveStart(ctx, opts.Input)
	start := time.Now()
	res, err := resolve.New(resolve.LoaderFunc(pkgio.Load)).Resolve(opts.Input)
	if err != nil {
		hooks.OnResolveComplete(ctx, opts.Input, 0, time.Since(start), err)
		return nil, nil, err
	}
	hooks.OnResolveComplete(ctx, opts.Input, len(res.Files), time.Since(start), nil)

	if opts.Logger != nil {
		opts.Logger.Debug("resolved references",
			"files", len(res.Files),
			"descriptors", len(res.Descriptors))
	}

	start = time.Now()
	p, err := profile.Build(res.Document, res.Descriptors)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, nil, err
	}
	hooks.OnBuildComplete(ctx, p.Table.Len(), p.Links.Len(), time.Since(start), nil)

	return p, res.Files, nil
}
