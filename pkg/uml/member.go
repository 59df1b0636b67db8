package uml

import (
	"strings"

	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// member holds what fields and methods share. The diagram pointer is only
// used to reach the configuration.
type member struct {
	diagram    *Diagram
	visibility Visibility
	abstract   bool
	static     bool
	name       string
	typ        typename.TypeName
}

// Visibility returns the access level of the member.
func (m *member) Visibility() Visibility { return m.visibility }

// Name returns the member name.
func (m *member) Name() string { return m.name }

// Type returns the field type or the method return type.
func (m *member) Type() typename.TypeName { return m.typ }

// IsStatic reports whether the member is static.
func (m *member) IsStatic() bool { return m.static }

// IsAbstract reports whether the member is abstract.
func (m *member) IsAbstract() bool { return m.abstract }

// Children implements Part. Members are leaves.
func (m *member) Children() []Part { return nil }

func (m *member) config() Configuration { return m.diagram.Configuration() }

// writeModifiers writes the {abstract} and {static} decorations.
func (m *member) writeModifiers(w *indent.Writer) {
	if m.abstract {
		w.Append("{abstract}").Whitespace()
	}
	if m.static {
		w.Append("{static}").Whitespace()
	}
}

// =============================================================================
// Field
// =============================================================================

// Field is a field of a type.
type Field struct {
	member
}

// NewField returns a field of type typ owned by d.
func NewField(d *Diagram, vis Visibility, static bool, name string, typ typename.TypeName) *Field {
	return &Field{member{diagram: d, visibility: vis, static: static, name: name, typ: typ}}
}

// WriteUML implements Part. Fields the configuration hides write nothing.
func (f *Field) WriteUML(w *indent.Writer) *indent.Writer {
	cfg := f.config().Fields()
	if !cfg.Include(f.visibility) {
		return w
	}
	f.writeModifiers(w)
	w.Append(f.visibility.Sigil() + f.name)
	if t := f.typ.UML(cfg.TypeDisplay()); t != "" {
		w.Append(": " + t)
	}
	return w.Newline()
}

// =============================================================================
// Method
// =============================================================================

// Param is a method parameter.
type Param struct {
	Name string
	Type typename.TypeName
}

// Method is a method or constructor of a type.
type Method struct {
	member
	params      []Param
	constructor bool
}

// NewMethod returns a method with return type ret owned by d.
func NewMethod(d *Diagram, vis Visibility, abstract, static bool, name string, params []Param, ret typename.TypeName) *Method {
	return &Method{
		member: member{diagram: d, visibility: vis, abstract: abstract, static: static, name: name, typ: ret},
		params: append([]Param(nil), params...),
	}
}

// NewConstructor returns a constructor of the type named name. Constructors
// render without return type.
func NewConstructor(d *Diagram, vis Visibility, name string, params []Param) *Method {
	m := NewMethod(d, vis, false, false, name, params, typename.TypeName{})
	m.constructor = true
	return m
}

// Params returns a copy of the parameters.
func (m *Method) Params() []Param { return append([]Param(nil), m.params...) }

// IsConstructor reports whether m is a constructor.
func (m *Method) IsConstructor() bool { return m.constructor }

// WriteUML implements Part. Methods the configuration hides write nothing.
func (m *Method) WriteUML(w *indent.Writer) *indent.Writer {
	cfg := m.config().Methods()
	if !cfg.Include(m.visibility) {
		return w
	}
	m.writeModifiers(w)
	w.Append(m.visibility.Sigil() + m.name + "(" + m.paramList(cfg) + ")")
	if !m.constructor && m.typ.Qualified() != "void" {
		if t := m.typ.UML(cfg.ReturnType()); t != "" {
			w.Append(": " + t)
		}
	}
	return w.Newline()
}

func (m *Method) paramList(cfg MethodConfig) string {
	pieces := make([]string, 0, len(m.params))
	for _, p := range m.params {
		if s := formatParam(p, cfg.ParamNames(), cfg.ParamTypes()); s != "" {
			pieces = append(pieces, s)
		}
	}
	return strings.Join(pieces, ", ")
}

func formatParam(p Param, names ParamNames, display typename.Display) string {
	typ := p.Type.UML(display)
	switch names {
	case ParamNamesBeforeType:
		return joinNonEmpty(p.Name, ": ", typ)
	case ParamNamesAfterType:
		return joinNonEmpty(typ, " ", p.Name)
	default:
		return typ
	}
}

func joinNonEmpty(a, sep, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + sep + b
}
