package doclet

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/typename"
	"github.com/matzehuels/umldoc/pkg/uml"
)

func declared(simple, qualified string, args ...*typename.Ref) *typename.Ref {
	return typename.Declared(simple, qualified, args...)
}

func shapesModel() *model.Model {
	point := declared("Point", "com.example.Point")
	return &model.Model{Packages: []model.Package{{
		Name: "com.example",
		Types: []model.Type{
			{
				Name:       "Shape",
				Kind:       "class",
				Visibility: "public",
				Abstract:   true,
				TypeParams: []*typename.Ref{typename.TypeVar("T", declared("Number", "java.lang.Number"), nil)},
				Superclass: declared("Object", typename.ObjectType),
				Interfaces: []*typename.Ref{declared("Sized", "com.example.Sized")},
				Fields: []model.Field{
					{Name: "id", Visibility: "private", Type: typename.Primitive(typename.KindInt)},
					{Name: "corners", Visibility: "public", Type: declared("List", "java.util.List", point)},
					{Name: "origin", Visibility: "protected", Type: point},
				},
				Constructors: []model.Method{
					{Name: "Shape", Visibility: "public", Params: []model.Param{{Name: "name", Type: declared("String", "java.lang.String")}}},
				},
				Methods: []model.Method{
					{Name: "area", Visibility: "public", Abstract: true, Return: typename.Primitive(typename.KindDouble)},
					{
						Name:       "scale",
						Visibility: "public",
						Params:     []model.Param{{Name: "factor", Type: typename.Primitive(typename.KindDouble)}},
						Return:     declared("Shape", "com.example.Shape", typename.TypeVar("T", nil, nil)),
					},
					{Name: "copyTo", Visibility: "public", Params: []model.Param{{Name: "target", Type: declared("Canvas", "com.example.Canvas")}}},
				},
			},
			{
				Name:       "Sized",
				Kind:       "interface",
				Visibility: "public",
				Interfaces: []*typename.Ref{declared("Comparable", "java.lang.Comparable", declared("Sized", "com.example.Sized"))},
				Methods:    []model.Method{{Name: "size", Visibility: "public", Abstract: true, Return: typename.Primitive(typename.KindLong)}},
			},
			{
				Name:   "Point",
				Kind:   "record",
				Fields: []model.Field{{Name: "x", Type: typename.Primitive(typename.KindInt)}},
			},
			{
				Name:   "Canvas",
				Kind:   "class",
				Nested: []model.Type{{Name: "Layer", Kind: "enum", Fields: []model.Field{{Name: "shapes", Type: typename.ArrayOf(declared("Shape", "com.example.Shape"))}}}},
			},
		},
	}}}
}

func testSettings(t *testing.T) *uml.Settings {
	t.Helper()
	s := *uml.DefaultSettings(log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.DebugLevel}))
	s.Destination = t.TempDir()
	return uml.NewSettings(s)
}

func text(p uml.Part) string {
	var buf bytes.Buffer
	p.WriteUML(indent.Wrap(&buf, indent.Default))
	return buf.String()
}

func byName(t *testing.T, diagrams []*uml.Diagram, name string) *uml.Diagram {
	t.Helper()
	for _, d := range diagrams {
		if d.Name() == name {
			return d
		}
	}
	t.Fatalf("no diagram named %s", name)
	return nil
}

func TestBuildDiagrams(t *testing.T) {
	diagrams, err := Build(testSettings(t), shapesModel(), DefaultOptions)
	require.NoError(t, err)

	var names []string
	for _, d := range diagrams {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"Shape", "Sized", "Point", "Canvas", "Canvas.Layer", "package"}, names)
	assert.Equal(t, uml.PackageDiagram, diagrams[len(diagrams)-1].Kind())
}

func TestBuildClassDiagram(t *testing.T) {
	diagrams, err := Build(testSettings(t), shapesModel(), DefaultOptions)
	require.NoError(t, err)

	want := "@startuml\n\n" +
		"  abstract class com.example.Shape<T extends Number> {\n" +
		"    +corners: List<Point>\n" +
		"    #origin: Point\n" +
		"    +Shape(String)\n" +
		"    {abstract} +area(): double\n" +
		"    +scale(double): Shape<T>\n" +
		"    +copyTo(Canvas)\n" +
		"  }\n" +
		"  com.example.Sized <|.. com.example.Shape\n" +
		"  com.example.Shape --> \"*\" com.example.Point: corners\n" +
		"  com.example.Shape ..> com.example.Canvas\n" +
		"\n@enduml\n"
	assert.Equal(t, want, text(byName(t, diagrams, "Shape")))
}

func TestBuildInterfaceExtends(t *testing.T) {
	diagrams, err := Build(testSettings(t), shapesModel(), DefaultOptions)
	require.NoError(t, err)

	out := text(byName(t, diagrams, "Sized"))
	assert.Contains(t, out, "  interface com.example.Sized {\n")
	assert.Contains(t, out, "    {abstract} +size(): long\n")
	assert.Contains(t, out, "  java.lang.Comparable <|-- com.example.Sized\n")
}

func TestBuildDefaultsAndNested(t *testing.T) {
	diagrams, err := Build(testSettings(t), shapesModel(), DefaultOptions)
	require.NoError(t, err)

	assert.Contains(t, text(byName(t, diagrams, "Point")), "    +x: int\n", "empty visibility renders as public")

	layer := text(byName(t, diagrams, "Canvas.Layer"))
	assert.Contains(t, layer, "  enum com.example.Canvas.Layer {\n")
	assert.Contains(t, layer, "  com.example.Canvas.Layer --> \"*\" com.example.Shape: shapes\n")
}

func TestBuildPackageDiagram(t *testing.T) {
	diagrams, err := Build(testSettings(t), shapesModel(), DefaultOptions)
	require.NoError(t, err)

	out := text(byName(t, diagrams, "package"))
	assert.Contains(t, out, "  package com.example {\n")
	assert.Contains(t, out, "    enum com.example.Canvas.Layer {\n")
	assert.Contains(t, out, "      #origin: Point\n")
	assert.Contains(t, out, "  }\n  com.example.Sized <|.. com.example.Shape\n")
	assert.NotContains(t, out, "java.lang.Object")
}

func TestBuildOptions(t *testing.T) {
	classes, err := Build(testSettings(t), shapesModel(), Options{ClassDiagrams: true})
	require.NoError(t, err)
	assert.Len(t, classes, 5)

	packages, err := Build(testSettings(t), shapesModel(), Options{PackageDiagrams: true})
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "package", packages[0].Name())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Type)
	}{
		{"kind", func(tp *model.Type) { tp.Kind = "struct" }},
		{"field visibility", func(tp *model.Type) { tp.Fields[0].Visibility = "friend" }},
		{"method visibility", func(tp *model.Type) { tp.Methods[0].Visibility = "friend" }},
		{"constructor visibility", func(tp *model.Type) { tp.Constructors[0].Visibility = "friend" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := shapesModel()
			tt.mutate(&m.Packages[0].Types[0])
			_, err := Build(testSettings(t), m, DefaultOptions)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidModel), "got %v", err)
		})
	}

	_, err := Build(testSettings(t), nil, DefaultOptions)
	assert.Error(t, err)
}

func TestParseDiagramKinds(t *testing.T) {
	opts, err := ParseDiagramKinds(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions, opts)

	opts, err = ParseDiagramKinds([]string{" Class "})
	require.NoError(t, err)
	assert.Equal(t, Options{ClassDiagrams: true}, opts)

	_, err = ParseDiagramKinds([]string{"sequence"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestBuildRender(t *testing.T) {
	cfg := testSettings(t)
	diagrams, err := Build(cfg, shapesModel(), DefaultOptions)
	require.NoError(t, err)

	for _, d := range diagrams {
		require.True(t, d.Render(context.Background()), d.Path())
	}
	for _, name := range []string{"Shape.puml", "Canvas.Layer.puml", "package.puml"} {
		_, err := os.Stat(filepath.Join(cfg.Destination, "com", "example", name))
		assert.NoError(t, err, name)
	}
}
