package pipeline

import (
	"context"
	"strings"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/doclet"
	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/observability"
	"github.com/matzehuels/umldoc/pkg/render/nodelink"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Overview formats.
const (
	OverviewDOT = "dot"
	OverviewSVG = "svg"
	OverviewPNG = "png"
	OverviewPDF = "pdf"
)

// OverviewFormats lists the accepted overview formats.
var OverviewFormats = []string{OverviewSVG, OverviewPNG, OverviewPDF, OverviewDOT}

// OverviewOptions configures a type hierarchy overview.
type OverviewOptions struct {
	Format    string // svg (default), png, pdf or dot
	Detailed  bool
	Qualified bool
	Scale     float64 // png only, default 2
	Refresh   bool    // skip the cache lookup
}

// Overview renders every type of m and the edges between them as a single
// Graphviz graph. Rendered images are cached by model hash; it reports
// whether the result came from the cache.
func (r *Runner) Overview(ctx context.Context, m *model.Model, opts OverviewOptions) ([]byte, bool, error) {
	format := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(opts.Format), "."))
	if format == "" {
		format = OverviewSVG
	}
	switch format {
	case OverviewDOT, OverviewSVG, OverviewPNG, OverviewPDF:
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unknown overview format %q (must be svg, png, pdf or dot)", opts.Format)
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}

	diagrams, err := doclet.Build(r.Config, m, doclet.Options{ClassDiagrams: true})
	if err != nil {
		return nil, false, err
	}
	roots := make([]uml.Part, 0, len(diagrams))
	for _, d := range diagrams {
		roots = append(roots, d)
	}
	dot := nodelink.ToDOT(roots, nodelink.Options{Detailed: opts.Detailed, Qualified: opts.Qualified})
	if format == OverviewDOT {
		return []byte(dot), false, nil
	}

	key := ""
	if hash, err := m.Hash(); err == nil {
		key = r.Keyer.OverviewKey(hash, cache.OverviewKeyOpts{
			Format:    format,
			Detailed:  opts.Detailed,
			Qualified: opts.Qualified,
		})
	}
	hooks := observability.Cache()
	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, observability.KeyOverview)
			r.Logger.Debug("overview cache hit", "format", format)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, observability.KeyOverview)
	}

	var data []byte
	switch format {
	case OverviewPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
	case OverviewPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, data, cache.TTLOverview); err != nil {
			r.Logger.Debug("overview cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, observability.KeyOverview, len(data))
		}
	}
	return data, false, nil
}
