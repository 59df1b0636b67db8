// Package nodelink renders a type hierarchy overview as a node-link diagram.
//
// # Overview
//
// Where PlantUML diagrams show one type or package in full, the overview
// shows every type of a run as a box and every non-suppressed reference as an
// arrow. It is built from the same [uml.Part] trees the diagrams render, so
// visibility and exclusion settings apply unchanged.
//
// # Usage
//
//	dot := nodelink.ToDOT(diagrams, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Edges
//
//   - extends: solid line, hollow arrowhead
//   - implements: dashed line, hollow arrowhead
//   - association: solid line, open arrowhead, labelled with the field
//   - dependency: dashed line, open arrowhead
//
// Types referenced but not declared in the input appear with a dashed grey
// outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
