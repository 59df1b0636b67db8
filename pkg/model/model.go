// Package model defines the input type model rendered into diagrams.
//
// A [Model] lists packages, each holding declared types with their fields,
// methods, constructors and nested types. Type references use
// [typename.Ref], the raw form that [typename.Resolve] turns into display
// names.
//
// Models are produced by a host extractor (see package javasrc) or written
// by hand and loaded with [Load], which accepts JSON, TOML and YAML:
//
//	packages:
//	  - name: com.example
//	    types:
//	      - name: Counter
//	        kind: class
//	        visibility: public
//	        fields:
//	          - name: count
//	            visibility: public
//	            type: {kind: int}
package model

import (
	"encoding/json"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// Model is the root of an input type model.
type Model struct {
	Packages []Package `json:"packages" toml:"packages" yaml:"packages"`
}

// Package is a named group of types. The empty name is the default package.
type Package struct {
	Name  string `json:"name" toml:"name" yaml:"name"`
	Types []Type `json:"types,omitempty" toml:"types,omitempty" yaml:"types,omitempty"`
}

// Type is a declared class, interface, enum or annotation.
type Type struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	// QualifiedName defaults to the package name and the enclosing type names
	// joined with dots.
	QualifiedName string `json:"qualified_name,omitempty" toml:"qualified_name,omitempty" yaml:"qualified_name,omitempty"`
	// Kind is class, abstract_class, interface, enum, annotation or record.
	Kind       string `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`
	Visibility string `json:"visibility,omitempty" toml:"visibility,omitempty" yaml:"visibility,omitempty"`
	Abstract   bool   `json:"abstract,omitempty" toml:"abstract,omitempty" yaml:"abstract,omitempty"`
	Static     bool   `json:"static,omitempty" toml:"static,omitempty" yaml:"static,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty" toml:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	TypeParams   []*typename.Ref `json:"type_params,omitempty" toml:"type_params,omitempty" yaml:"type_params,omitempty"`
	Superclass   *typename.Ref   `json:"superclass,omitempty" toml:"superclass,omitempty" yaml:"superclass,omitempty"`
	Interfaces   []*typename.Ref `json:"interfaces,omitempty" toml:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Fields       []Field         `json:"fields,omitempty" toml:"fields,omitempty" yaml:"fields,omitempty"`
	Constructors []Method        `json:"constructors,omitempty" toml:"constructors,omitempty" yaml:"constructors,omitempty"`
	Methods      []Method        `json:"methods,omitempty" toml:"methods,omitempty" yaml:"methods,omitempty"`
	Nested       []Type          `json:"nested,omitempty" toml:"nested,omitempty" yaml:"nested,omitempty"`
}

// Field is a field of a type.
type Field struct {
	Name       string        `json:"name" toml:"name" yaml:"name"`
	Visibility string        `json:"visibility,omitempty" toml:"visibility,omitempty" yaml:"visibility,omitempty"`
	Static     bool          `json:"static,omitempty" toml:"static,omitempty" yaml:"static,omitempty"`
	Type       *typename.Ref `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
}

// Method is a method or constructor. Constructors have no Return.
type Method struct {
	Name       string        `json:"name" toml:"name" yaml:"name"`
	Visibility string        `json:"visibility,omitempty" toml:"visibility,omitempty" yaml:"visibility,omitempty"`
	Abstract   bool          `json:"abstract,omitempty" toml:"abstract,omitempty" yaml:"abstract,omitempty"`
	Static     bool          `json:"static,omitempty" toml:"static,omitempty" yaml:"static,omitempty"`
	Params     []Param       `json:"params,omitempty" toml:"params,omitempty" yaml:"params,omitempty"`
	Return     *typename.Ref `json:"return,omitempty" toml:"return,omitempty" yaml:"return,omitempty"`
}

// Param is a method parameter.
type Param struct {
	Name string        `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Type *typename.Ref `json:"type" toml:"type" yaml:"type"`
}

// Qualify joins a package or enclosing name with a simple name.
func Qualify(outer, simple string) string {
	if outer == "" {
		return simple
	}
	return outer + "." + simple
}

// Visit calls fn for every type, nested types included, with the package
// it belongs to and its qualified name. Enclosing types come first.
func (m *Model) Visit(fn func(pkg *Package, t *Type, qualified string)) {
	for i := range m.Packages {
		pkg := &m.Packages[i]
		for j := range pkg.Types {
			visitType(pkg, &pkg.Types[j], pkg.Name, fn)
		}
	}
}

func visitType(pkg *Package, t *Type, outer string, fn func(*Package, *Type, string)) {
	qualified := t.QualifiedName
	if qualified == "" {
		qualified = Qualify(outer, t.Name)
	}
	fn(pkg, t, qualified)
	for i := range t.Nested {
		visitType(pkg, &t.Nested[i], qualified, fn)
	}
}

// TypeCount returns the number of types including nested ones.
func (m *Model) TypeCount() int {
	n := 0
	m.Visit(func(*Package, *Type, string) { n++ })
	return n
}

// Hash returns a content hash of the model, used for cache keys.
func (m *Model) Hash() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// Merge combines models into one. Packages with the same name are joined in
// first-seen order; types keep their input order.
func Merge(models ...*Model) *Model {
	out := &Model{}
	index := make(map[string]int)
	for _, m := range models {
		if m == nil {
			continue
		}
		for _, pkg := range m.Packages {
			i, ok := index[pkg.Name]
			if !ok {
				i = len(out.Packages)
				index[pkg.Name] = i
				out.Packages = append(out.Packages, Package{Name: pkg.Name})
			}
			out.Packages[i].Types = append(out.Packages[i].Types, pkg.Types...)
		}
	}
	return out
}
