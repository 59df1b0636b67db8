package javasrc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// unit is one parsed compilation unit.
type unit struct {
	path string
	src  []byte
	tree *sitter.Tree
	root *sitter.Node

	pkg       string
	imports   map[string]string // simple name -> qualified name
	wildcards []string          // packages imported with .*
}

func (u *unit) close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

func (u *unit) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(u.src)
}

// readHeader reads the package and import declarations.
func (u *unit) readHeader() {
	for i := uint(0); i < u.root.NamedChildCount(); i++ {
		child := u.root.NamedChild(i)
		switch child.Kind() {
		case "package_declaration":
			if name := firstNamed(child, "scoped_identifier", "identifier"); name != nil {
				u.pkg = u.text(name)
			}
		case "import_declaration":
			u.readImport(child)
		}
	}
}

func (u *unit) readImport(n *sitter.Node) {
	var path string
	static, wildcard := false, false
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "static":
			static = true
		case "asterisk":
			wildcard = true
		case "scoped_identifier", "identifier":
			path = u.text(child)
		}
	}
	switch {
	case path == "" || static:
	case wildcard:
		u.wildcards = append(u.wildcards, path)
	default:
		u.imports[path[strings.LastIndexByte(path, '.')+1:]] = path
	}
}

// declare records the qualified names of every type declared in u.
func (u *unit) declare(known map[string]bool) {
	var walk func(n *sitter.Node, outer string)
	walk = func(n *sitter.Node, outer string) {
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if !isTypeDeclaration(child.Kind()) {
				continue
			}
			qualified := model.Qualify(outer, u.text(child.ChildByFieldName("name")))
			known[qualified] = true
			if body := child.ChildByFieldName("body"); body != nil {
				walk(body, qualified)
				if decls := firstNamed(body, "enum_body_declarations"); decls != nil {
					walk(decls, qualified)
				}
			}
		}
	}
	walk(u.root, u.pkg)
}

func isTypeDeclaration(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration",
		"annotation_type_declaration", "record_declaration":
		return true
	}
	return false
}

// extract converts the top-level type declarations of u.
func (u *unit) extract(known map[string]bool) []model.Type {
	s := &scope{u: u, known: known}
	var types []model.Type
	for i := uint(0); i < u.root.NamedChildCount(); i++ {
		child := u.root.NamedChild(i)
		if isTypeDeclaration(child.Kind()) {
			types = append(types, s.typeDecl(child, u.pkg, false))
		}
	}
	return types
}

// =============================================================================
// Declarations
// =============================================================================

type modifiers struct {
	visibility string
	static     bool
	abstract   bool
	isDefault  bool
	deprecated bool
}

func (u *unit) modifiers(decl *sitter.Node, inInterface bool) modifiers {
	var m modifiers
	if mods := firstNamed(decl, "modifiers"); mods != nil {
		for i := uint(0); i < mods.ChildCount(); i++ {
			child := mods.Child(i)
			switch child.Kind() {
			case "marker_annotation", "annotation":
				name := u.text(child.ChildByFieldName("name"))
				if name == "Deprecated" || name == "java.lang.Deprecated" {
					m.deprecated = true
				}
				continue
			}
			switch u.text(child) {
			case "public", "protected", "private":
				m.visibility = u.text(child)
			case "static":
				m.static = true
			case "abstract":
				m.abstract = true
			case "default":
				m.isDefault = true
			}
		}
	}
	if m.visibility == "" {
		if inInterface {
			m.visibility = "public"
		} else {
			m.visibility = "package"
		}
	}
	return m
}

func (s *scope) typeDecl(n *sitter.Node, outer string, inInterface bool) model.Type {
	u := s.u
	name := u.text(n.ChildByFieldName("name"))
	qualified := model.Qualify(outer, name)
	mods := u.modifiers(n, inInterface)

	t := model.Type{
		Name:       name,
		Visibility: mods.visibility,
		Static:     mods.static,
		Deprecated: mods.deprecated,
	}
	if qualified != model.Qualify(u.pkg, name) {
		t.QualifiedName = qualified
	}

	inner := s.enter(qualified)
	t.TypeParams = inner.typeParams(n.ChildByFieldName("type_parameters"))

	memberOfInterface := false
	switch n.Kind() {
	case "class_declaration":
		t.Kind = "class"
		if mods.abstract {
			t.Kind, t.Abstract = "abstract_class", true
		}
		if sc := n.ChildByFieldName("superclass"); sc != nil {
			if typ := lastNamedType(sc); typ != nil {
				t.Superclass = inner.ref(typ)
			}
		}
		t.Interfaces = inner.typeList(n.ChildByFieldName("interfaces"))
	case "interface_declaration":
		t.Kind, t.Abstract = "interface", true
		memberOfInterface = true
		t.Interfaces = inner.typeList(firstNamed(n, "extends_interfaces"))
	case "enum_declaration":
		t.Kind = "enum"
		t.Interfaces = inner.typeList(n.ChildByFieldName("interfaces"))
	case "annotation_type_declaration":
		t.Kind, t.Abstract = "annotation", true
		memberOfInterface = true
	case "record_declaration":
		t.Kind = "record"
		t.Interfaces = inner.typeList(n.ChildByFieldName("interfaces"))
		inner.recordComponents(&t, n.ChildByFieldName("parameters"))
	}

	if body := n.ChildByFieldName("body"); body != nil {
		inner.body(&t, body, qualified, memberOfInterface)
	}
	return t
}

func (s *scope) body(t *model.Type, body *sitter.Node, qualified string, inInterface bool) {
	u := s.u
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		switch kind := child.Kind(); {
		case kind == "field_declaration" || kind == "constant_declaration":
			t.Fields = append(t.Fields, s.fields(child, inInterface)...)
		case kind == "method_declaration":
			t.Methods = append(t.Methods, s.method(child, inInterface))
		case kind == "annotation_type_element_declaration":
			t.Methods = append(t.Methods, model.Method{
				Name:       u.text(child.ChildByFieldName("name")),
				Visibility: "public",
				Abstract:   true,
				Return:     s.ref(child.ChildByFieldName("type")),
			})
		case kind == "constructor_declaration":
			t.Constructors = append(t.Constructors, s.constructor(child))
		case kind == "enum_constant":
			t.Fields = append(t.Fields, model.Field{
				Name:       u.text(child.ChildByFieldName("name")),
				Visibility: "public",
				Static:     true,
				Type:       typename.Declared(t.Name, qualified),
			})
		case kind == "enum_body_declarations":
			s.body(t, child, qualified, inInterface)
		case isTypeDeclaration(kind):
			t.Nested = append(t.Nested, s.typeDecl(child, qualified, inInterface))
		}
	}
}

func (s *scope) fields(n *sitter.Node, inInterface bool) []model.Field {
	u := s.u
	mods := u.modifiers(n, inInterface)
	typ := n.ChildByFieldName("type")

	var out []model.Field
	for i := uint(0); i < n.NamedChildCount(); i++ {
		decl := n.NamedChild(i)
		if decl.Kind() != "variable_declarator" {
			continue
		}
		out = append(out, model.Field{
			Name:       u.text(decl.ChildByFieldName("name")),
			Visibility: mods.visibility,
			Static:     mods.static || inInterface,
			Type:       s.withDimensions(s.ref(typ), decl.ChildByFieldName("dimensions")),
		})
	}
	return out
}

func (s *scope) method(n *sitter.Node, inInterface bool) model.Method {
	u := s.u
	mods := u.modifiers(n, inInterface)
	inner := s.enter("")
	inner.typeParams(n.ChildByFieldName("type_parameters"))

	abstract := mods.abstract
	if inInterface && !mods.static && !mods.isDefault && n.ChildByFieldName("body") == nil {
		abstract = true
	}
	return model.Method{
		Name:       u.text(n.ChildByFieldName("name")),
		Visibility: mods.visibility,
		Abstract:   abstract,
		Static:     mods.static,
		Params:     inner.params(n.ChildByFieldName("parameters")),
		Return:     inner.withDimensions(inner.ref(n.ChildByFieldName("type")), n.ChildByFieldName("dimensions")),
	}
}

func (s *scope) constructor(n *sitter.Node) model.Method {
	u := s.u
	mods := u.modifiers(n, false)
	inner := s.enter("")
	inner.typeParams(n.ChildByFieldName("type_parameters"))
	return model.Method{
		Name:       u.text(n.ChildByFieldName("name")),
		Visibility: mods.visibility,
		Params:     inner.params(n.ChildByFieldName("parameters")),
	}
}

func (s *scope) params(n *sitter.Node) []model.Param {
	if n == nil {
		return nil
	}
	u := s.u
	var out []model.Param
	for i := uint(0); i < n.NamedChildCount(); i++ {
		p := n.NamedChild(i)
		switch p.Kind() {
		case "formal_parameter":
			out = append(out, model.Param{
				Name: u.text(p.ChildByFieldName("name")),
				Type: s.withDimensions(s.ref(p.ChildByFieldName("type")), p.ChildByFieldName("dimensions")),
			})
		case "spread_parameter":
			var name string
			if decl := firstNamed(p, "variable_declarator"); decl != nil {
				name = u.text(decl.ChildByFieldName("name"))
			}
			out = append(out, model.Param{Name: name, Type: typename.ArrayOf(s.ref(firstType(p)))})
		}
	}
	return out
}

// recordComponents adds the private fields and public accessors a record
// component implies.
func (s *scope) recordComponents(t *model.Type, n *sitter.Node) {
	for _, p := range s.params(n) {
		t.Fields = append(t.Fields, model.Field{Name: p.Name, Visibility: "private", Type: p.Type})
		t.Methods = append(t.Methods, model.Method{Name: p.Name, Visibility: "public", Return: p.Type})
	}
}

// =============================================================================
// Node helpers
// =============================================================================

// firstNamed returns the first named child of one of kinds.
func firstNamed(n *sitter.Node, kinds ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		for _, k := range kinds {
			if child.Kind() == k {
				return child
			}
		}
	}
	return nil
}

// firstType returns the first named child that is a type.
func firstType(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := n.NamedChild(i); isType(child.Kind()) {
			return child
		}
	}
	return nil
}

// lastNamedType returns the last named child that is a type.
func lastNamedType(n *sitter.Node) *sitter.Node {
	var last *sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := n.NamedChild(i); isType(child.Kind()) {
			last = child
		}
	}
	return last
}
