// Package plantuml generates image artifacts from PlantUML diagram text.
//
// # Artifact Generation
//
// An [ImageWriter] sits between the diagram renderer and the .puml file.
// Everything written passes through to the file and is buffered. After the
// diagram is written, the buffer is converted once per configured [Format]:
//
//	iw := plantuml.NewImageWriter(f, plantuml.Options{
//	    Dir:       "out/com/example",
//	    BaseName:  "Counter",
//	    Formats:   []string{"svg", "png"},
//	    Converter: engine,
//	})
//	// ... write diagram text to iw ...
//	err := iw.CloseContext(ctx) // closes the file, writes Counter.svg and Counter.png
//
// Format names match case-insensitively and may carry a leading dot; unknown
// names are dropped with a warning.
//
// # Engines
//
// A [Converter] turns text into image bytes:
//
//   - [Exec] pipes the text through the plantuml command
//   - [Server] asks a PlantUML HTTP server, using the PlantUML text encoding
//   - [Cached] wraps either with an artifact cache
package plantuml
