package javasrc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// javaLang lists the java.lang types that are visible without an import.
var javaLang = map[string]bool{
	"Boolean": true, "Byte": true, "Character": true, "Class": true, "Comparable": true,
	"Deprecated": true, "Double": true, "Enum": true, "Error": true, "Exception": true,
	"Float": true, "Integer": true, "Iterable": true, "Long": true, "Number": true,
	"Object": true, "Override": true, "Record": true, "Runnable": true, "RuntimeException": true,
	"Short": true, "String": true, "StringBuilder": true, "Thread": true, "Throwable": true,
	"Void": true, "AutoCloseable": true, "CharSequence": true, "Cloneable": true,
	"FunctionalInterface": true, "SuppressWarnings": true, "Math": true, "System": true,
}

// scope resolves simple names at one point of a compilation unit.
type scope struct {
	u        *unit
	known    map[string]bool
	outer    []string // enclosing types, innermost last
	typeVars map[string]bool
}

// enter returns a child scope. A non-empty qualified name adds an enclosing
// type; type variables declared later are local to the child.
func (s *scope) enter(qualified string) *scope {
	child := &scope{u: s.u, known: s.known, outer: s.outer, typeVars: make(map[string]bool, len(s.typeVars))}
	for name := range s.typeVars {
		child.typeVars[name] = true
	}
	if qualified != "" {
		child.outer = append(append([]string(nil), s.outer...), qualified)
	}
	return child
}

// typeParams declares the type parameters of n in s and returns them as
// type variable references carrying their bounds.
func (s *scope) typeParams(n *sitter.Node) []*typename.Ref {
	if n == nil {
		return nil
	}
	var params []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if p := n.NamedChild(i); p.Kind() == "type_parameter" {
			params = append(params, p)
			if id := firstNamed(p, "type_identifier", "identifier"); id != nil {
				s.typeVars[s.u.text(id)] = true
			}
		}
	}

	out := make([]*typename.Ref, 0, len(params))
	for _, p := range params {
		name := s.u.text(firstNamed(p, "type_identifier", "identifier"))
		var upper *typename.Ref
		if bound := firstNamed(p, "type_bound"); bound != nil {
			var bounds []*typename.Ref
			for i := uint(0); i < bound.NamedChildCount(); i++ {
				if b := bound.NamedChild(i); isType(b.Kind()) {
					bounds = append(bounds, s.ref(b))
				}
			}
			switch len(bounds) {
			case 0:
			case 1:
				upper = bounds[0]
			default:
				upper = &typename.Ref{Kind: typename.KindIntersection, Bounds: bounds}
			}
		}
		out = append(out, typename.TypeVar(name, upper, nil))
	}
	return out
}

// typeList converts the types of the first type_list below n.
func (s *scope) typeList(n *sitter.Node) []*typename.Ref {
	list := firstNamed(n, "type_list")
	if list == nil {
		return nil
	}
	var out []*typename.Ref
	for i := uint(0); i < list.NamedChildCount(); i++ {
		if t := list.NamedChild(i); isType(t.Kind()) {
			out = append(out, s.ref(t))
		}
	}
	return out
}

func isType(kind string) bool {
	switch kind {
	case "integral_type", "floating_point_type", "boolean_type", "void_type",
		"type_identifier", "scoped_type_identifier", "generic_type", "array_type",
		"annotated_type", "wildcard":
		return true
	}
	return false
}

// ref converts a type node into a raw reference.
func (s *scope) ref(n *sitter.Node) *typename.Ref {
	if n == nil {
		return nil
	}
	text := s.u.text(n)
	switch n.Kind() {
	case "integral_type", "floating_point_type", "boolean_type":
		return typename.Primitive(typename.ParseKind(text))
	case "void_type":
		return typename.Primitive(typename.KindVoid)
	case "type_identifier":
		if s.typeVars[text] {
			return typename.TypeVar(text, nil, nil)
		}
		return typename.Declared(text, s.qualify(text))
	case "scoped_type_identifier":
		name := stripAnnotations(text)
		return typename.Declared(name[strings.LastIndexByte(name, '.')+1:], s.qualify(name))
	case "generic_type":
		base := s.ref(firstNamed(n, "type_identifier", "scoped_type_identifier"))
		if base == nil || base.Kind != typename.KindDeclared {
			break
		}
		if args := firstNamed(n, "type_arguments"); args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				if a := args.NamedChild(i); isType(a.Kind()) {
					base.Args = append(base.Args, s.ref(a))
				}
			}
		}
		return base
	case "array_type":
		return s.withDimensions(s.ref(n.ChildByFieldName("element")), n.ChildByFieldName("dimensions"))
	case "annotated_type":
		return s.ref(lastNamedType(n))
	case "wildcard":
		return s.wildcard(n)
	}
	return &typename.Ref{Kind: typename.KindOther, Text: text}
}

func (s *scope) wildcard(n *sitter.Node) *typename.Ref {
	lower := false
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Kind() == "super" {
			lower = true
		}
	}
	bound := lastNamedType(n)
	switch {
	case bound == nil:
		return typename.Wildcard(nil, nil)
	case lower:
		return typename.Wildcard(nil, s.ref(bound))
	default:
		return typename.Wildcard(s.ref(bound), nil)
	}
}

// withDimensions wraps ref once per "[]" in dims.
func (s *scope) withDimensions(ref *typename.Ref, dims *sitter.Node) *typename.Ref {
	if ref == nil || dims == nil {
		return ref
	}
	for range strings.Count(s.u.text(dims), "[") {
		ref = typename.ArrayOf(ref)
	}
	return ref
}

// qualify resolves a simple or partially qualified name. A simple name that
// matches nothing belongs to the current package, unless wildcard imports
// make its origin ambiguous.
func (s *scope) qualify(name string) string {
	head, rest, dotted := strings.Cut(name, ".")
	if dotted {
		if q := s.qualifySimple(head); q != head {
			return q + "." + rest
		}
		return name
	}
	if q := s.qualifySimple(name); q != name || len(s.u.wildcards) > 0 {
		return q
	}
	return model.Qualify(s.u.pkg, name)
}

func (s *scope) qualifySimple(name string) string {
	if q, ok := s.u.imports[name]; ok {
		return q
	}
	for i := len(s.outer) - 1; i >= 0; i-- {
		if q := s.outer[i] + "." + name; s.known[q] {
			return q
		}
	}
	if q := model.Qualify(s.u.pkg, name); s.known[q] {
		return q
	}
	for _, pkg := range s.u.wildcards {
		if q := pkg + "." + name; s.known[q] {
			return q
		}
	}
	if javaLang[name] {
		return "java.lang." + name
	}
	return name
}

// stripAnnotations removes type annotations such as "@NonNull " from a
// scoped name.
func stripAnnotations(name string) string {
	if !strings.Contains(name, "@") {
		return strings.Join(strings.Fields(name), "")
	}
	var segs []string
	for _, seg := range strings.Split(name, ".") {
		fields := strings.Fields(seg)
		if len(fields) > 0 {
			segs = append(segs, fields[len(fields)-1])
		}
	}
	return strings.Join(segs, ".")
}
