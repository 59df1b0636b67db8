// Package render turns diagram text into artifact bytes.
//
// # Overview
//
// This package contains the pieces shared by every rendering engine:
//
//   - [BufferingWriter], a pass-through writer that remembers what it wrote
//   - Generic format conversion (SVG to PDF/PNG)
//   - PlantUML artifact generation (in [plantuml] subpackage)
//   - Type hierarchy overviews (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The PlantUML server engine
// uses them for formats the server cannot produce itself, and the overview
// renderer uses them for non-SVG outputs.
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Diagram Artifacts
//
// The [plantuml] subpackage buffers PlantUML text while it is written to the
// .puml file and, once the diagram is complete, converts the buffer into one
// file per configured image format.
//
// # Overviews
//
// The [nodelink] subpackage renders the type hierarchy of a model as a
// directed graph using Graphviz.
package render
