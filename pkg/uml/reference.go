package uml

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// RelationKind is the kind of edge between two types.
type RelationKind int

const (
	// Extends: From is a subclass (or subinterface) of To.
	Extends RelationKind = iota
	// Implements: From implements interface To.
	Implements
	// Association: From holds a reference to To, typically through a field.
	Association
	// Dependency: From uses To, typically in a method signature.
	Dependency
)

// String returns the relation name.
func (k RelationKind) String() string {
	switch k {
	case Extends:
		return "extends"
	case Implements:
		return "implements"
	case Association:
		return "association"
	case Dependency:
		return "dependency"
	}
	return fmt.Sprintf("relation(%d)", int(k))
}

// Reference is an edge between two types.
type Reference struct {
	diagram     *Diagram
	kind        RelationKind
	from, to    typename.TypeName
	cardinality string
	label       string
}

// NewReference returns an edge from from to to owned by d.
func NewReference(d *Diagram, kind RelationKind, from, to typename.TypeName) *Reference {
	return &Reference{diagram: d, kind: kind, from: from, to: to}
}

// NewAssociation returns an association edge with an optional cardinality
// such as "*" and an optional label, typically the field name.
func NewAssociation(d *Diagram, from, to typename.TypeName, cardinality, label string) *Reference {
	r := NewReference(d, Association, from, to)
	r.cardinality = cardinality
	r.label = label
	return r
}

// Kind returns the relation kind.
func (r *Reference) Kind() RelationKind { return r.kind }

// From returns the source type.
func (r *Reference) From() typename.TypeName { return r.from }

// To returns the target type.
func (r *Reference) To() typename.TypeName { return r.to }

// Cardinality returns the association cardinality, if any.
func (r *Reference) Cardinality() string { return r.cardinality }

// Label returns the association label, if any.
func (r *Reference) Label() string { return r.label }

// Children implements Part.
func (r *Reference) Children() []Part { return nil }

// Suppressed reports whether either end is excluded by the configuration.
func (r *Reference) Suppressed() bool {
	cfg := r.diagram.Configuration()
	return cfg.Excluded(r.from.Qualified()) || cfg.Excluded(r.to.Qualified())
}

// WriteUML implements Part. Suppressed edges write nothing.
func (r *Reference) WriteUML(w *indent.Writer) *indent.Writer {
	if r.Suppressed() {
		return w
	}
	from, to := r.from.Qualified(), r.to.Qualified()
	switch r.kind {
	case Extends:
		w.Append(to + " <|-- " + from)
	case Implements:
		w.Append(to + " <|.. " + from)
	case Association:
		w.Append(from + " -->")
		if r.cardinality != "" {
			w.Append(" " + strconv.Quote(r.cardinality))
		}
		w.Append(" " + to)
		if r.label != "" {
			w.Append(": " + r.label)
		}
	default:
		w.Append(from + " ..> " + to)
	}
	return w.Newline()
}
