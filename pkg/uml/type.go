package uml

import (
	"fmt"
	"strings"

	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// TypeKind classifies a type.
type TypeKind int

const (
	Class TypeKind = iota
	AbstractClass
	Interface
	Enum
	Annotation
)

var typeKindNames = []string{
	Class:         "class",
	AbstractClass: "abstract class",
	Interface:     "interface",
	Enum:          "enum",
	Annotation:    "annotation",
}

// String returns the diagram keyword of k.
func (k TypeKind) String() string {
	if k >= 0 && int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return fmt.Sprintf("typekind(%d)", int(k))
}

// ParseTypeKind converts a model kind such as "interface" or "abstract_class"
// into a TypeKind. Records render as classes.
func ParseTypeKind(s string) (TypeKind, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "", "record":
		return Class, nil
	case "@interface":
		return Annotation, nil
	}
	for k, name := range typeKindNames {
		if name == norm {
			return TypeKind(k), nil
		}
	}
	return Class, fmt.Errorf("unknown type kind %q", s)
}

// Type is a class, interface, enum or annotation with its members.
type Type struct {
	diagram    *Diagram
	kind       TypeKind
	name       typename.TypeName
	deprecated bool
	members    []Part
}

// NewType returns an empty type owned by d. The type parameters of name are
// rendered with their bounds.
func NewType(d *Diagram, kind TypeKind, name typename.TypeName, deprecated bool) *Type {
	return &Type{diagram: d, kind: kind, name: name, deprecated: deprecated}
}

// Kind returns the classification of t.
func (t *Type) Kind() TypeKind { return t.kind }

// Name returns the type name including its type parameters.
func (t *Type) Name() typename.TypeName { return t.name }

// IsDeprecated reports whether t carries the deprecated stereotype.
func (t *Type) IsDeprecated() bool { return t.deprecated }

// Diagram returns the owning diagram.
func (t *Type) Diagram() *Diagram { return t.diagram }

// Add appends members in render order. Nil parts are ignored.
func (t *Type) Add(parts ...Part) *Type {
	for _, p := range parts {
		if p != nil {
			t.members = append(t.members, p)
		}
	}
	return t
}

// AddField creates a field owned by t's diagram and appends it.
func (t *Type) AddField(vis Visibility, static bool, name string, typ typename.TypeName) *Field {
	f := NewField(t.diagram, vis, static, name, typ)
	t.Add(f)
	return f
}

// AddMethod creates a method owned by t's diagram and appends it.
func (t *Type) AddMethod(vis Visibility, abstract, static bool, name string, params []Param, ret typename.TypeName) *Method {
	m := NewMethod(t.diagram, vis, abstract, static, name, params, ret)
	t.Add(m)
	return m
}

// AddConstructor creates a constructor named after t and appends it.
func (t *Type) AddConstructor(vis Visibility, params []Param) *Method {
	m := NewConstructor(t.diagram, vis, t.name.Simple(), params)
	t.Add(m)
	return m
}

// Children implements Part.
func (t *Type) Children() []Part { return t.members }

// WriteUML implements Part.
//
//	abstract class com.example.Shape<T extends Number> <<deprecated>> {
//	  +area(): double
//	}
func (t *Type) WriteUML(w *indent.Writer) *indent.Writer {
	w.Append(t.kind.String()).Whitespace().Append(t.name.UML(typename.Qualified))
	if t.deprecated {
		w.Whitespace().Append("<<deprecated>>")
	}
	w.Whitespace().Append("{").Newline()
	writeChildren(w, t.members)
	return w.Append("}").Newline()
}
