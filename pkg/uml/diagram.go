package uml

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
)

// DiagramKind tells which unit a diagram documents.
type DiagramKind int

const (
	// ClassDiagram documents one type.
	ClassDiagram DiagramKind = iota
	// PackageDiagram documents the types of one package.
	PackageDiagram
)

// String returns "class" or "package".
func (k DiagramKind) String() string {
	if k == PackageDiagram {
		return "package"
	}
	return "class"
}

// packageFileName is the base name of package diagrams.
const packageFileName = "package"

// Diagram is the root part of one rendered unit. It owns its children and
// decides the .puml file it renders to.
type Diagram struct {
	cfg      Configuration
	kind     DiagramKind
	pkg      string
	name     string
	children []Part
}

// NewClassDiagram returns the diagram of the type simpleName in package pkg.
// It renders to <dest>/<pkg dirs>/<simpleName>.puml.
func NewClassDiagram(cfg Configuration, pkg, simpleName string) *Diagram {
	return newDiagram(cfg, ClassDiagram, pkg, simpleName)
}

// NewPackageDiagram returns the diagram of package pkg. It renders to
// <dest>/<pkg dirs>/package.puml.
func NewPackageDiagram(cfg Configuration, pkg string) *Diagram {
	return newDiagram(cfg, PackageDiagram, pkg, packageFileName)
}

func newDiagram(cfg Configuration, kind DiagramKind, pkg, name string) *Diagram {
	if cfg == nil {
		panic("uml: diagram without configuration")
	}
	return &Diagram{cfg: cfg, kind: kind, pkg: pkg, name: name}
}

// Kind returns whether d is a class or a package diagram.
func (d *Diagram) Kind() DiagramKind { return d.kind }

// Package returns the package the diagram belongs to.
func (d *Diagram) Package() string { return d.pkg }

// Name returns the base name of the diagram file.
func (d *Diagram) Name() string { return d.name }

// Configuration returns the configuration shared by all parts of d.
func (d *Diagram) Configuration() Configuration { return d.cfg }

// Add appends children in render order. Nil parts are ignored.
func (d *Diagram) Add(parts ...Part) *Diagram {
	for _, p := range parts {
		if p != nil {
			d.children = append(d.children, p)
		}
	}
	return d
}

// Children implements Part.
func (d *Diagram) Children() []Part { return d.children }

// WriteUML implements Part.
func (d *Diagram) WriteUML(w *indent.Writer) *indent.Writer {
	w.Append("@startuml").Newline().Newline()
	writeChildren(w, d.children)
	w.Newline().Append("@enduml").Newline()
	return w
}

// Path returns the .puml file the diagram renders to.
func (d *Diagram) Path() string {
	dir := filepath.FromSlash(strings.ReplaceAll(d.pkg, ".", "/"))
	return filepath.Join(d.cfg.DestinationDirectory(), dir, d.name+".puml")
}

// Render writes the diagram to [Diagram.Path] and generates the configured
// image artifacts next to it.
//
// Every failure, including a panic while writing, is logged with the target
// file and reported as false. Render never fails sibling diagrams.
func (d *Diagram) Render(ctx context.Context) (ok bool) {
	path := d.Path()
	logger := d.cfg.Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("couldn't render diagram", "file", path, "panic", r)
			ok = false
		}
	}()

	if err := d.render(ctx, path); err != nil {
		logger.Error("couldn't render diagram", "file", path, "err", errors.UserMessage(err))
		return false
	}
	return true
}

func (d *Diagram) render(ctx context.Context, path string) error {
	dir, err := ensureParentDir(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}

	logger := d.cfg.Logger()
	logger.Info("generating file", "file", path)

	iw := plantuml.NewImageWriter(f, plantuml.Options{
		Dir:       dir,
		BaseName:  baseName(path),
		Formats:   d.cfg.ImageFormats(),
		Converter: d.cfg.Converter(),
		Logger:    logger,
	})
	// Finish is idempotent; the deferred call only matters on early exits.
	defer func() { _ = iw.Finish() }()

	w := indent.Wrap(iw, d.cfg.Indentation())
	d.WriteUML(w)
	if err := w.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return iw.CloseContext(ctx)
}

// ensureParentDir creates the directory of file and returns it.
func ensureParentDir(file string) (string, error) {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, errors.Wrap(errors.ErrCodeInvalidConfig, err, "can't create directory %q", dir)
	}
	return dir, nil
}

// baseName strips the extension from the file name, keeping names that
// start with a dot intact.
func baseName(file string) string {
	name := filepath.Base(file)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
