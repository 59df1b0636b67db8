// Package pipeline runs the load → build → render flow shared by the CLI
// and the HTTP API.
//
// # Stages
//
//  1. Load: read model files (.json, .toml, .yaml) and extract Java sources
//     into one merged, validated [model.Model]
//  2. Build: turn the model into class and package diagrams
//  3. Render: write every diagram and its image artifacts, several at once
//
// # Usage
//
//	runner := pipeline.NewRunner(settings, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Inputs:  []string{"src/main/java"},
//	    Workers: 4,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.Diagrams, "diagrams")
//
// An overview of the whole type hierarchy is rendered separately with
// [Runner.Overview].
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/doclet"
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// DefaultWorkers is the number of diagrams rendered in parallel when
// Options.Workers is zero.
const DefaultWorkers = 4

// Options configures one pipeline run.
type Options struct {
	// Inputs are model files, Java source files or directories of either.
	Inputs []string
	// Model is used instead of Inputs when set.
	Model *model.Model
	// Diagrams selects the diagram kinds. The zero value builds both.
	Diagrams doclet.Options
	// Workers bounds parallel rendering.
	Workers int

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Diagrams == (doclet.Options{}) {
		o.Diagrams = doclet.DefaultOptions
	}
}

// Result describes a finished run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string
	// Model is the merged input model.
	Model *model.Model
	// ModelHash is the content hash of Model.
	ModelHash string
	// Diagrams lists every built diagram.
	Diagrams []*uml.Diagram
	// Failed lists the .puml paths of diagrams that did not render.
	Failed []string

	Stats Stats
}

// OK reports whether every diagram rendered.
func (r *Result) OK() bool { return len(r.Failed) == 0 }

// Stats contains run statistics.
type Stats struct {
	Packages   int
	Types      int
	Diagrams   int
	Failed     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}
