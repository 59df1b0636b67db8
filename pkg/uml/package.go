package uml

import (
	"github.com/matzehuels/umldoc/pkg/indent"
)

// Package groups the types of one package inside a package diagram.
type Package struct {
	diagram  *Diagram
	name     string
	children []Part
}

// NewPackage returns an empty package section owned by d.
func NewPackage(d *Diagram, name string) *Package {
	return &Package{diagram: d, name: name}
}

// Name returns the qualified package name.
func (p *Package) Name() string { return p.name }

// Add appends children in render order. Nil parts are ignored.
func (p *Package) Add(parts ...Part) *Package {
	for _, part := range parts {
		if part != nil {
			p.children = append(p.children, part)
		}
	}
	return p
}

// Children implements Part.
func (p *Package) Children() []Part { return p.children }

// WriteUML implements Part.
func (p *Package) WriteUML(w *indent.Writer) *indent.Writer {
	w.Append("package").Whitespace().Append(p.name).Whitespace().Append("{").Newline()
	writeChildren(w, p.children)
	return w.Append("}").Newline()
}
