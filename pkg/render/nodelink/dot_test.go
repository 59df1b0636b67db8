package nodelink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/umldoc/pkg/typename"
	"github.com/matzehuels/umldoc/pkg/uml"
)

func sampleTree() []uml.Part {
	cfg := uml.DefaultSettings(nil)
	d := uml.NewPackageDiagram(cfg, "com.example")

	shape := typename.New("Shape", "com.example.Shape")
	square := typename.New("Square", "com.example.Square")
	sized := typename.New("Sized", "com.example.Sized")
	list := typename.New("List", "java.util.List")
	object := typename.New("Object", typename.ObjectType)

	sq := uml.NewType(d, uml.Class, square, false)
	sq.AddField(uml.Public, false, "side", typename.New("double", "double"))
	sq.AddField(uml.Private, false, "cache", typename.New("double", "double"))
	sq.AddMethod(uml.Public, false, false, "area", nil, typename.New("double", "double"))

	d.Add(uml.NewPackage(d, "com.example").Add(
		uml.NewType(d, uml.AbstractClass, shape, true),
		sq,
		uml.NewType(d, uml.Interface, sized, false),
	))
	d.Add(
		uml.NewReference(d, uml.Extends, square, shape),
		uml.NewReference(d, uml.Implements, square, sized),
		uml.NewReference(d, uml.Extends, shape, object),
		uml.NewAssociation(d, shape, list, "*", "corners"),
		uml.NewReference(d, uml.Dependency, square, list),
		uml.NewReference(d, uml.Dependency, square, list),
	)
	return []uml.Part{d}
}

func TestToDOTNodesAndEdges(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{})

	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `"com.example.Square" [label="Square"];`)
	assert.Contains(t, dot, `"com.example.Sized" [label="Sized", fillcolor="#eef5ff"];`)
	assert.Contains(t, dot, `"java.util.List" [label="List", style="rounded,filled,dashed", fillcolor=lightgrey, fontcolor=black];`)

	assert.Contains(t, dot, `"com.example.Square" -> "com.example.Shape" [arrowhead=empty];`)
	assert.Contains(t, dot, `"com.example.Square" -> "com.example.Sized" [arrowhead=empty, style=dashed];`)
	assert.Contains(t, dot, `"com.example.Shape" -> "java.util.List" [arrowhead=vee, label="corners"];`)
	assert.Equal(t, 1, strings.Count(dot, `"com.example.Square" -> "java.util.List"`), "duplicate edges are merged")

	assert.NotContains(t, dot, typename.ObjectType, "excluded references are dropped")
}

func TestToDOTNodeOrder(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{})
	shape := strings.Index(dot, `"com.example.Shape" [`)
	square := strings.Index(dot, `"com.example.Square" [`)
	list := strings.Index(dot, `"java.util.List" [`)
	assert.True(t, shape < square && square < list, dot)
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Detailed: true})

	assert.Contains(t, dot, `label="Square\nfields: 1\nmethods: 1"`, "hidden members are not counted")
	assert.Contains(t, dot, `label="«abstract class»\nShape\n«deprecated»\nfields: 0\nmethods: 0"`)
	assert.Contains(t, dot, `label="List"`, "undeclared types have no details")
}

func TestToDOTQualified(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Qualified: true})
	assert.Contains(t, dot, `"com.example.Square" [label="com.example.Square"];`)
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	assert.NotContains(t, dot, "->")
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200">`)
	assert.Contains(t, out, "<g/></svg>")

	plain := []byte(`<svg><g/></svg>`)
	assert.Equal(t, plain, normalizeViewBox(plain))
}
