// Package doclet turns a type model into UML diagrams.
//
// [Build] produces one class diagram per declared type, nested types
// included, and one package diagram per package. Every type reference goes
// through [typename.Resolve]; edges are derived from the model:
//
//   - superclass: extends
//   - interfaces: implements, or extends when the type is an interface
//   - fields whose type is declared in the model: association, with
//     cardinality "*" for arrays and collections
//   - other model types used in method signatures: dependency
//
// The diagrams share the configuration they were built with and are
// rendered with [uml.Diagram.Render].
package doclet

import (
	"strings"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/typename"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Options selects which diagrams Build produces.
type Options struct {
	ClassDiagrams   bool
	PackageDiagrams bool
}

// DefaultOptions builds both diagram kinds.
var DefaultOptions = Options{ClassDiagrams: true, PackageDiagrams: true}

// ParseDiagramKinds converts names such as "class" and "package" into
// Options. An empty list selects every kind.
func ParseDiagramKinds(names []string) (Options, error) {
	if len(names) == 0 {
		return DefaultOptions, nil
	}
	var opts Options
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "class", "classes":
			opts.ClassDiagrams = true
		case "package", "packages":
			opts.PackageDiagrams = true
		default:
			return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown diagram kind %q (must be class or package)", name)
		}
	}
	return opts, nil
}

// Build converts m into diagrams using cfg. Class diagrams come before the
// package diagram of each package; packages keep model order.
func Build(cfg uml.Configuration, m *model.Model, opts Options) ([]*uml.Diagram, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidModel, "no model")
	}
	b := &builder{cfg: cfg, known: make(map[string]bool)}
	m.Visit(func(_ *model.Package, _ *model.Type, qualified string) {
		b.known[qualified] = true
	})

	var diagrams []*uml.Diagram
	for i := range m.Packages {
		pkg := &m.Packages[i]
		entries := flatten(pkg)

		if opts.ClassDiagrams {
			for _, e := range entries {
				d := uml.NewClassDiagram(cfg, pkg.Name, e.diagramName(pkg.Name))
				typ, err := b.buildType(d, e)
				if err != nil {
					return nil, err
				}
				d.Add(typ)
				for _, ref := range b.relations(d, e) {
					d.Add(ref)
				}
				diagrams = append(diagrams, d)
			}
		}

		if opts.PackageDiagrams && len(entries) > 0 {
			d := uml.NewPackageDiagram(cfg, pkg.Name)
			section := uml.NewPackage(d, packageTitle(pkg.Name))
			var edges []uml.Part
			for _, e := range entries {
				typ, err := b.buildType(d, e)
				if err != nil {
					return nil, err
				}
				section.Add(typ)
				for _, ref := range b.relations(d, e) {
					edges = append(edges, ref)
				}
			}
			d.Add(section)
			d.Add(edges...)
			diagrams = append(diagrams, d)
		}
	}
	return diagrams, nil
}

func packageTitle(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

// =============================================================================
// Types
// =============================================================================

// entry is a type of a package together with its qualified name.
type entry struct {
	t         *model.Type
	qualified string
}

// diagramName returns the file base name: the qualified name without the
// package, so nested types become "Outer.Inner".
func (e entry) diagramName(pkg string) string {
	if pkg != "" && strings.HasPrefix(e.qualified, pkg+".") {
		return e.qualified[len(pkg)+1:]
	}
	return e.t.Name
}

func flatten(pkg *model.Package) []entry {
	var out []entry
	var walk func(t *model.Type, outer string)
	walk = func(t *model.Type, outer string) {
		qualified := t.QualifiedName
		if qualified == "" {
			qualified = model.Qualify(outer, t.Name)
		}
		out = append(out, entry{t: t, qualified: qualified})
		for i := range t.Nested {
			walk(&t.Nested[i], qualified)
		}
	}
	for i := range pkg.Types {
		walk(&pkg.Types[i], pkg.Name)
	}
	return out
}

type builder struct {
	cfg   uml.Configuration
	known map[string]bool
}

func (b *builder) buildType(d *uml.Diagram, e entry) (*uml.Type, error) {
	t := e.t
	kind, err := uml.ParseTypeKind(t.Kind)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "type %s", e.qualified)
	}
	if kind == uml.Class && t.Abstract {
		kind = uml.AbstractClass
	}

	params := make([]typename.TypeName, 0, len(t.TypeParams))
	for _, p := range t.TypeParams {
		params = append(params, typename.Resolve(p))
	}
	typ := uml.NewType(d, kind, typename.New(t.Name, e.qualified, params...), t.Deprecated)

	for _, f := range t.Fields {
		vis, err := visibility(f.Visibility)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "field %s.%s", e.qualified, f.Name)
		}
		typ.AddField(vis, f.Static, f.Name, typename.Resolve(f.Type))
	}
	for _, c := range t.Constructors {
		vis, err := visibility(c.Visibility)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "constructor of %s", e.qualified)
		}
		typ.AddConstructor(vis, umlParams(c.Params))
	}
	for _, m := range t.Methods {
		vis, err := visibility(m.Visibility)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "method %s.%s", e.qualified, m.Name)
		}
		ret := typename.New("void", "void")
		if m.Return != nil {
			ret = typename.Resolve(m.Return)
		}
		typ.AddMethod(vis, m.Abstract, m.Static, m.Name, umlParams(m.Params), ret)
	}
	return typ, nil
}

// visibility parses a model visibility. Hand-written models may leave it
// empty, which means public.
func visibility(s string) (uml.Visibility, error) {
	if strings.TrimSpace(s) == "" {
		return uml.Public, nil
	}
	return uml.ParseVisibility(s)
}

func umlParams(ps []model.Param) []uml.Param {
	out := make([]uml.Param, 0, len(ps))
	for _, p := range ps {
		out = append(out, uml.Param{Name: p.Name, Type: typename.Resolve(p.Type)})
	}
	return out
}
