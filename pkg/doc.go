// Package pkg provides the libraries behind umldoc, which documents Java
// types as PlantUML class and package diagrams.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. Model input: [model] (JSON, TOML and YAML type models) and [javasrc]
//     (models extracted from Java sources with tree-sitter)
//  2. Diagram structure: [typename] (type references and their display),
//     [uml] (the part tree and its settings) and [doclet] (model to diagrams)
//  3. Output: [indent] (the indenting writer), [render/plantuml] (artifact
//     generation through the plantuml command or a PlantUML server) and
//     [render/nodelink] (Graphviz overviews)
//  4. Infrastructure: [cache], [config], [errors], [observability] and
//     [buildinfo]
//  5. Orchestration: [pipeline] (load, build, render) and [server] (HTTP API)
//
// # Architecture
//
// The typical data flow through umldoc:
//
//	.java sources / model files
//	         ↓
//	    [javasrc] / [model] (types, members, references)
//	         ↓
//	    [doclet] (one class diagram per type, one package diagram per package)
//	         ↓
//	    [uml] part tree, written through [indent]
//	         ↓
//	    .puml text + [render/plantuml] artifacts (svg, png, ...)
//
// # Quick Start
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/umldoc/pkg/pipeline"
//	    "github.com/matzehuels/umldoc/pkg/render/plantuml"
//	    "github.com/matzehuels/umldoc/pkg/uml"
//	)
//
//	conv, _ := plantuml.NewExec(plantuml.DefaultCommand, 0)
//	s := *uml.DefaultSettings(nil)
//	s.Destination = "docs/uml"
//	s.Engine = conv
//
//	runner := pipeline.NewRunner(uml.NewSettings(s), nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Inputs: []string{"src/main/java"},
//	})
package pkg
