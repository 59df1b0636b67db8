// Package typename provides the canonical display form of type references.
//
// A [TypeName] is an immutable value carrying the simple and qualified name of
// a type together with its generic arguments. Two variants exist on top of
// the plain declared form:
//
//   - array types, built with [Array], whose names are the component names
//     suffixed with "[]"
//   - type variables and wildcards, built with [ExtendsBound] or
//     [SuperBound], which carry an optional upper or lower bound
//
// Type names are produced from raw host references with [Resolve] and are
// rendered into diagram text with [TypeName.UML].
//
// # Display Modes
//
// [Display] selects how much of a name is shown:
//
//	Simple             List<String>
//	Qualified          java.util.List<String>
//	QualifiedGenerics  java.util.List<java.lang.String>
//
// [None] hides the type altogether.
package typename

import (
	"fmt"
	"strings"
)

// ObjectType is the qualified name of the implicit root type. A variable
// bounded by it never shows the bound.
const ObjectType = "java.lang.Object"

// BoundKind tells whether a type variable is constrained from above or below.
type BoundKind int

const (
	// NoBound marks plain names and unbounded variables.
	NoBound BoundKind = iota
	// Extends is an upper bound: "T extends Number".
	Extends
	// Super is a lower bound: "? super Integer".
	Super
)

// String returns the keyword used when rendering the bound.
func (k BoundKind) String() string {
	switch k {
	case Extends:
		return "extends"
	case Super:
		return "super"
	default:
		return "none"
	}
}

// Display controls how a type name is rendered.
type Display int

const (
	// None renders nothing.
	None Display = iota
	// Simple renders simple names.
	Simple
	// Qualified renders the qualified name of the outer type only.
	Qualified
	// QualifiedGenerics renders qualified names for generic arguments too.
	QualifiedGenerics
)

var displayNames = map[Display]string{
	None:              "none",
	Simple:            "simple",
	Qualified:         "qualified",
	QualifiedGenerics: "qualified-generics",
}

// String returns the configuration name of the display mode.
func (d Display) String() string {
	if name, ok := displayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("display(%d)", int(d))
}

// ParseDisplay converts a configuration value into a Display.
// Matching ignores case and accepts "_" in place of "-".
func ParseDisplay(s string) (Display, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for d, name := range displayNames {
		if name == norm {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown type display %q (must be none, simple, qualified or qualified-generics)", s)
}

// TypeName is the resolved representation of a type reference.
// The zero value is not meaningful; use [New], [Array], [ExtendsBound] or
// [SuperBound].
type TypeName struct {
	simple    string
	qualified string
	generics  []TypeName

	component *TypeName // set for arrays

	variable bool
	kind     BoundKind
	bound    *TypeName
}

// New returns a declared type name. An empty qualified name falls back to
// simple; when both are empty the name becomes "?".
func New(simple, qualified string, generics ...TypeName) TypeName {
	if simple == "" {
		simple = qualified
	}
	if qualified == "" {
		qualified = simple
	}
	if qualified == "" {
		simple, qualified = "?", "?"
	}
	return TypeName{simple: simple, qualified: qualified, generics: cloneNames(generics)}
}

// Array wraps component into an array type name.
func Array(component TypeName) TypeName {
	c := component
	return TypeName{
		simple:    component.simple + "[]",
		qualified: component.qualified + "[]",
		component: &c,
	}
}

// ExtendsBound returns the variable name with an upper bound.
func ExtendsBound(name string, bound TypeName) TypeName {
	return variable(name, Extends, bound)
}

// SuperBound returns the variable name with a lower bound.
func SuperBound(name string, bound TypeName) TypeName {
	return variable(name, Super, bound)
}

// Variable returns an unbounded type variable.
func Variable(name string) TypeName {
	tn := New(name, name)
	tn.variable = true
	return tn
}

func variable(name string, kind BoundKind, bound TypeName) TypeName {
	tn := New(name, name)
	tn.variable = true
	tn.kind = kind
	b := bound
	tn.bound = &b
	return tn
}

func cloneNames(names []TypeName) []TypeName {
	if len(names) == 0 {
		return nil
	}
	return append([]TypeName(nil), names...)
}

// Simple returns the simple name, e.g. "List" or "String[]".
func (t TypeName) Simple() string { return t.simple }

// Qualified returns the qualified name. It is never empty for values built
// by this package.
func (t TypeName) Qualified() string { return t.qualified }

// Generics returns a copy of the generic arguments in declaration order.
func (t TypeName) Generics() []TypeName { return cloneNames(t.generics) }

// IsArray reports whether t is an array type.
func (t TypeName) IsArray() bool { return t.component != nil }

// Component returns the component type of an array.
func (t TypeName) Component() (TypeName, bool) {
	if t.component == nil {
		return TypeName{}, false
	}
	return *t.component, true
}

// IsVariable reports whether t is a type variable or wildcard.
func (t TypeName) IsVariable() bool { return t.variable }

// BoundKind returns the kind of bound of a variable.
func (t TypeName) BoundKind() BoundKind { return t.kind }

// Bound returns the bound of a variable, if any.
func (t TypeName) Bound() (TypeName, bool) {
	if t.bound == nil {
		return TypeName{}, false
	}
	return *t.bound, true
}

// Equal reports whether t and o render identically in every display mode.
func (t TypeName) Equal(o TypeName) bool {
	return t.UML(QualifiedGenerics) == o.UML(QualifiedGenerics)
}

// UML renders the type name in diagram syntax.
func (t TypeName) UML(display Display) string {
	if display == None {
		return ""
	}
	var sb strings.Builder
	t.writeUML(&sb, display)
	return sb.String()
}

func (t TypeName) writeUML(sb *strings.Builder, display Display) {
	if t.component != nil {
		t.component.writeUML(sb, display)
		sb.WriteString("[]")
		return
	}

	if display == Qualified || display == QualifiedGenerics {
		sb.WriteString(t.qualified)
	} else {
		sb.WriteString(t.simple)
	}

	if len(t.generics) > 0 {
		argDisplay := Simple
		if display == QualifiedGenerics {
			argDisplay = QualifiedGenerics
		}
		sb.WriteByte('<')
		for i, g := range t.generics {
			if i > 0 {
				sb.WriteString(", ")
			}
			g.writeUML(sb, argDisplay)
		}
		sb.WriteByte('>')
	}

	if t.variable && t.bound != nil && t.kind != NoBound {
		sb.WriteByte(' ')
		sb.WriteString(t.kind.String())
		sb.WriteByte(' ')
		t.bound.writeUML(sb, display)
	}
}

// String returns the qualified rendering including qualified generics.
func (t TypeName) String() string {
	return t.UML(QualifiedGenerics)
}
