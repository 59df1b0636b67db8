package pipeline

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/doclet"
	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/observability"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Runner executes pipeline runs against one immutable configuration.
// Both CLI and API use it; a Runner may serve concurrent runs.
type Runner struct {
	Config uml.Configuration
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner rendering with cfg.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(cfg uml.Configuration, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = cfg.Logger()
	}
	return &Runner{Config: cfg, Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → build → render. Diagrams that fail to render are
// listed in Result.Failed and do not abort the run; a canceled context
// does.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()
	logger := r.logger(opts)
	result := &Result{RunID: uuid.NewString()}
	logger = logger.With("run", result.RunID[:8])

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, len(opts.Inputs))
	loadStart := time.Now()
	m, err := load(ctx, logger, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, result.Stats.LoadTime, err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, m.TypeCount(), result.Stats.LoadTime, nil)
	result.Model = m
	result.Stats.Packages = len(m.Packages)
	result.Stats.Types = m.TypeCount()
	if hash, err := m.Hash(); err == nil {
		result.ModelHash = hash
	}

	logger.Info("loaded model",
		"packages", result.Stats.Packages,
		"types", result.Stats.Types,
		"duration", result.Stats.LoadTime)

	buildStart := time.Now()
	diagrams, err := doclet.Build(r.Config, m, opts.Diagrams)
	if err != nil {
		return nil, err
	}
	result.Diagrams = diagrams
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Diagrams = len(diagrams)

	hooks.OnRenderStart(ctx, len(diagrams))
	renderStart := time.Now()
	failed, err := r.RenderAll(ctx, diagrams, opts.Workers)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, len(diagrams), len(failed), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Failed = failed
	result.Stats.Failed = len(failed)

	logger.Info("rendered diagrams",
		"diagrams", result.Stats.Diagrams,
		"failed", result.Stats.Failed,
		"workers", opts.Workers,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderAll renders diagrams with at most workers in flight and returns the
// sorted paths of the ones that failed. Only cancellation is an error.
func (r *Runner) RenderAll(ctx context.Context, diagrams []*uml.Diagram, workers int) ([]string, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	hooks := observability.Pipeline()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	var failed []string
	for _, d := range diagrams {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			ok := d.Render(gctx)
			hooks.OnDiagramRendered(gctx, d.Path(), ok, time.Since(start))
			if !ok {
				mu.Lock()
				failed = append(failed, d.Path())
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "render canceled")
	}
	slices.Sort(failed)
	return failed, nil
}

// load returns opts.Model after validating it, or loads opts.Inputs.
func load(ctx context.Context, logger *log.Logger, opts Options) (*model.Model, error) {
	if opts.Model == nil {
		return LoadModel(ctx, logger, opts.Inputs...)
	}
	if err := opts.Model.Validate(); err != nil {
		return nil, err
	}
	return opts.Model, nil
}

// Build converts m into diagrams with the runner's configuration.
func (r *Runner) Build(m *model.Model, opts doclet.Options) ([]*uml.Diagram, error) {
	return doclet.Build(r.Config, m, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
