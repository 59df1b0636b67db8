// Package uml models a PlantUML diagram as a tree of renderable parts.
//
// A [Diagram] is the root of one rendered unit. It owns its children:
// packages, types, their members and the edges between types. Every part
// implements [Part] and writes itself through an [indent.Writer]; parts with
// children write them one level deeper.
//
// Members keep a pointer back to their Diagram only to consult its
// [Configuration] (visibility filters, type display modes and excluded
// references). The Diagram never hands out ownership through that pointer.
//
// # Output
//
//	@startuml
//
//	  class com.example.Counter {
//	    +count: int
//	    +increment(int)
//	  }
//
//	@enduml
//
// Rendering is a pure function of part, configuration and writer position.
// [Diagram.Render] writes the text to its .puml file and generates the
// configured image artifacts next to it.
package uml

import (
	"github.com/matzehuels/umldoc/pkg/indent"
)

// Part is a node of the diagram tree.
type Part interface {
	// WriteUML writes the part and its children to w and returns w.
	WriteUML(w *indent.Writer) *indent.Writer
	// Children returns the owned child parts in render order.
	Children() []Part
}

// writeChildren writes every child one level deeper than w.
func writeChildren(w *indent.Writer, children []Part) *indent.Writer {
	if len(children) == 0 {
		return w
	}
	nested := w.Indent()
	for _, child := range children {
		if child != nil {
			child.WriteUML(nested)
		}
	}
	return w
}

// Walk calls fn for p and every descendant in depth-first order.
func Walk(p Part, fn func(Part)) {
	if p == nil {
		return
	}
	fn(p)
	for _, child := range p.Children() {
		Walk(child, fn)
	}
}
