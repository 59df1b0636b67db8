package typename

import (
	"fmt"
	"strings"
)

// Kind classifies a raw type reference as reported by the host model.
type Kind int

// Reference kinds. The primitive and no-type kinds resolve to their
// lower-cased name.
const (
	KindOther Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindInt
	KindLong
	KindChar
	KindFloat
	KindDouble
	KindVoid
	KindNone
	KindNull
	KindArray
	KindDeclared
	KindError
	KindTypeVar
	KindWildcard
	KindPackage
	KindExecutable
	KindUnion
	KindIntersection
	KindModule
)

var kindNames = []string{
	KindOther:        "other",
	KindBoolean:      "boolean",
	KindByte:         "byte",
	KindShort:        "short",
	KindInt:          "int",
	KindLong:         "long",
	KindChar:         "char",
	KindFloat:        "float",
	KindDouble:       "double",
	KindVoid:         "void",
	KindNone:         "none",
	KindNull:         "null",
	KindArray:        "array",
	KindDeclared:     "declared",
	KindError:        "error",
	KindTypeVar:      "typevar",
	KindWildcard:     "wildcard",
	KindPackage:      "package",
	KindExecutable:   "executable",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindModule:       "module",
}

// String returns the lower-cased kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "other"
}

// ParseKind converts a kind name back into a Kind. Unknown names map to
// KindOther, which resolves through the textual fallback.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "class", "interface", "enum", "record", "annotation":
		return KindDeclared
	case "type_variable", "variable":
		return KindTypeVar
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k)
		}
	}
	return KindOther
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// IsPrimitive reports whether k is one of the eight primitive kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindDouble
}

// isNoType reports whether k denotes the absence of a type.
func (k Kind) isNoType() bool {
	switch k {
	case KindVoid, KindNone, KindPackage, KindModule:
		return true
	}
	return false
}

// carriesNoInformation reports whether a bound of this kind says nothing
// about the variable it constrains.
func (k Kind) carriesNoInformation() bool {
	switch k {
	case KindVoid, KindNone, KindNull, KindError, KindOther:
		return true
	}
	return false
}

// Ref is a raw type reference from the host type model. Only the fields
// relevant to Kind are consulted.
type Ref struct {
	Kind Kind `json:"kind" toml:"kind" yaml:"kind"`

	// Name is the simple name of a declared type or the name of a variable.
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	// QualifiedName is empty when the referenced element has no qualified form.
	QualifiedName string `json:"qualified_name,omitempty" toml:"qualified_name,omitempty" yaml:"qualified_name,omitempty"`
	// Args are the type arguments of a declared type.
	Args []*Ref `json:"args,omitempty" toml:"args,omitempty" yaml:"args,omitempty"`

	// Component is the element type of an array.
	Component *Ref `json:"component,omitempty" toml:"component,omitempty" yaml:"component,omitempty"`

	// Upper and Lower are the bounds of a type variable.
	Upper *Ref `json:"upper,omitempty" toml:"upper,omitempty" yaml:"upper,omitempty"`
	Lower *Ref `json:"lower,omitempty" toml:"lower,omitempty" yaml:"lower,omitempty"`

	// Extends and Super are the explicit bounds of a wildcard.
	Extends *Ref `json:"extends,omitempty" toml:"extends,omitempty" yaml:"extends,omitempty"`
	Super   *Ref `json:"super,omitempty" toml:"super,omitempty" yaml:"super,omitempty"`

	// Bounds are the members of an intersection or the alternatives of a union.
	Bounds []*Ref `json:"bounds,omitempty" toml:"bounds,omitempty" yaml:"bounds,omitempty"`

	// Text is the raw source form. When empty, String derives one.
	Text string `json:"text,omitempty" toml:"text,omitempty" yaml:"text,omitempty"`
}

// Primitive returns a reference to a primitive or no-type kind.
func Primitive(k Kind) *Ref { return &Ref{Kind: k} }

// Declared returns a reference to a declared class or interface type.
func Declared(name, qualified string, args ...*Ref) *Ref {
	return &Ref{Kind: KindDeclared, Name: name, QualifiedName: qualified, Args: args}
}

// ArrayOf returns a reference to an array of component.
func ArrayOf(component *Ref) *Ref {
	return &Ref{Kind: KindArray, Component: component}
}

// TypeVar returns a reference to a type variable with optional bounds.
func TypeVar(name string, upper, lower *Ref) *Ref {
	return &Ref{Kind: KindTypeVar, Name: name, Upper: upper, Lower: lower}
}

// Wildcard returns a wildcard reference with optional explicit bounds.
func Wildcard(extends, super *Ref) *Ref {
	return &Ref{Kind: KindWildcard, Extends: extends, Super: super}
}

// String returns the textual form of the reference.
func (r *Ref) String() string {
	if r == nil {
		return "none"
	}
	if r.Text != "" {
		return r.Text
	}
	switch r.Kind {
	case KindDeclared, KindError:
		name := r.QualifiedName
		if name == "" {
			name = r.Name
		}
		if len(r.Args) == 0 {
			return name
		}
		return name + "<" + joinRefs(r.Args, ",") + ">"
	case KindArray:
		return r.Component.String() + "[]"
	case KindTypeVar:
		return r.Name
	case KindWildcard:
		switch {
		case r.Extends != nil:
			return "? extends " + r.Extends.String()
		case r.Super != nil:
			return "? super " + r.Super.String()
		}
		return "?"
	case KindIntersection:
		return joinRefs(r.Bounds, "&")
	case KindUnion:
		return joinRefs(r.Bounds, "|")
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Kind.String()
}

func joinRefs(refs []*Ref, sep string) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.String()
	}
	return strings.Join(parts, sep)
}

// GoString helps when a reference shows up in test failures.
func (r *Ref) GoString() string {
	return fmt.Sprintf("typename.Ref{%s %q}", r.Kind, r.String())
}
