// Package javasrc extracts a [model.Model] from Java source files.
//
// Sources are parsed with tree-sitter, so no JDK is required and files with
// syntax errors still yield whatever declarations parse. Names are resolved
// without a classpath: explicit imports, enclosing and same-package types
// declared in the extracted sources, and the well-known java.lang types are
// qualified; anything else keeps its simple name.
//
// Visibility follows the Java defaults: members of interfaces and
// annotations are public, everything else without a modifier is package
// private.
package javasrc

import (
	"context"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/model"
)

// Extractor turns Java sources into a model. It is not safe for concurrent
// use; create one per goroutine.
type Extractor struct {
	logger *log.Logger
	parser *sitter.Parser
}

// New returns an extractor. Close releases the parser.
func New(logger *log.Logger) (*Extractor, error) {
	if logger == nil {
		logger = log.Default()
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		p.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load java grammar")
	}
	return &Extractor{logger: logger, parser: p}, nil
}

// Close releases the parser.
func (e *Extractor) Close() {
	if e.parser != nil {
		e.parser.Close()
		e.parser = nil
	}
}

// Source is one Java compilation unit.
type Source struct {
	Path string
	Code []byte
}

// Extract parses every .java file under paths, which may name files or
// directories, and returns the combined model.
func (e *Extractor) Extract(ctx context.Context, paths ...string) (*model.Model, error) {
	files, err := CollectFiles(paths...)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(files))
	for _, path := range files {
		code, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
		}
		sources = append(sources, Source{Path: path, Code: code})
	}
	return e.ExtractSources(ctx, sources...)
}

// ExtractSources parses the given compilation units and returns the
// combined model. Packages are sorted by name; types keep source order.
func (e *Extractor) ExtractSources(ctx context.Context, sources ...Source) (*model.Model, error) {
	units := make([]*unit, 0, len(sources))
	defer func() {
		for _, u := range units {
			u.close()
		}
	}()

	known := make(map[string]bool)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		u, err := e.parse(src)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
		u.declare(known)
	}

	pkgs := make(map[string]*model.Package)
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		types := u.extract(known)
		pkg, ok := pkgs[u.pkg]
		if !ok {
			pkg = &model.Package{Name: u.pkg}
			pkgs[u.pkg] = pkg
		}
		pkg.Types = append(pkg.Types, types...)
		e.logger.Debug("extracted java source", "file", u.path, "package", u.pkg, "types", len(types))
	}

	m := &model.Model{}
	for _, name := range slices.Sorted(maps.Keys(pkgs)) {
		m.Packages = append(m.Packages, *pkgs[name])
	}
	return m, nil
}

func (e *Extractor) parse(src Source) (*unit, error) {
	tree := e.parser.Parse(src.Code, nil)
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "couldn't parse %s", src.Path)
	}
	root := tree.RootNode()
	if root.HasError() {
		e.logger.Warn("java source has syntax errors, extracting what parses", "file", src.Path)
	}
	u := &unit{path: src.Path, src: src.Code, tree: tree, root: root, imports: make(map[string]string)}
	u.readHeader()
	return u, nil
}

// CollectFiles expands directories into the .java files below them, sorted
// by path. Hidden directories are skipped.
func CollectFiles(paths ...string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "stat %s", root)
			}
			return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", root)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), ".java") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "walk %s", root)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
