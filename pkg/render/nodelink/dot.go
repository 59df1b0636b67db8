package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/render"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Options configures overview rendering.
type Options struct {
	// Detailed adds the type kind and member counts to node labels.
	// When false, only the simple name is shown.
	Detailed bool
	// Qualified labels nodes with qualified instead of simple names.
	Qualified bool
}

type node struct {
	id       string
	label    string
	kind     uml.TypeKind
	fields   int
	methods  int
	declared bool
	dep      bool
}

type edge struct {
	from, to string
	kind     uml.RelationKind
	label    string
}

type graph struct {
	nodes []*node
	index map[string]*node
	edges []edge
	seen  map[edge]bool
}

// ToDOT converts the types and references of roots to Graphviz DOT.
// The resulting string can be rendered using [RenderSVG], [RenderPDF] or
// [RenderPNG]. Types are emitted in walk order, undeclared reference targets
// after them in name order.
func ToDOT(roots []uml.Part, opts Options) string {
	g := collect(roots, opts)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.from, e.to, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func collect(roots []uml.Part, opts Options) *graph {
	g := &graph{index: make(map[string]*node), seen: make(map[edge]bool)}
	var refs []*uml.Reference

	for _, root := range roots {
		uml.Walk(root, func(p uml.Part) {
			switch p := p.(type) {
			case *uml.Type:
				n := g.node(p.Name().Qualified(), label(p.Name().Simple(), p.Name().Qualified(), opts))
				n.declared = true
				n.kind = p.Kind()
				n.dep = p.IsDeprecated()
				n.fields, n.methods = countMembers(p)
			case *uml.Reference:
				if !p.Suppressed() {
					refs = append(refs, p)
				}
			}
		})
	}

	var undeclared []*node
	for _, r := range refs {
		for _, tn := range []struct{ simple, qualified string }{
			{r.From().Simple(), r.From().Qualified()},
			{r.To().Simple(), r.To().Qualified()},
		} {
			if _, ok := g.index[tn.qualified]; !ok {
				n := &node{id: tn.qualified, label: label(tn.simple, tn.qualified, opts)}
				g.index[n.id] = n
				undeclared = append(undeclared, n)
			}
		}
		e := edge{from: r.From().Qualified(), to: r.To().Qualified(), kind: r.Kind(), label: r.Label()}
		if !g.seen[e] {
			g.seen[e] = true
			g.edges = append(g.edges, e)
		}
	}
	slices.SortFunc(undeclared, func(a, b *node) int { return strings.Compare(a.id, b.id) })
	g.nodes = append(g.nodes, undeclared...)
	return g
}

func (g *graph) node(id, label string) *node {
	if n, ok := g.index[id]; ok {
		return n
	}
	n := &node{id: id, label: label}
	g.index[id] = n
	g.nodes = append(g.nodes, n)
	return n
}

func label(simple, qualified string, opts Options) string {
	if opts.Qualified || simple == "" {
		return qualified
	}
	return simple
}

// countMembers counts the members the configuration renders.
func countMembers(t *uml.Type) (fields, methods int) {
	cfg := t.Diagram().Configuration()
	for _, p := range t.Children() {
		switch m := p.(type) {
		case *uml.Field:
			if cfg.Fields().Include(m.Visibility()) {
				fields++
			}
		case *uml.Method:
			if cfg.Methods().Include(m.Visibility()) {
				methods++
			}
		}
	}
	return fields, methods
}

func fmtLabel(n *node, detailed bool) string {
	if !detailed || !n.declared {
		return n.label
	}
	var sb strings.Builder
	if n.kind != uml.Class {
		fmt.Fprintf(&sb, "«%s»\n", n.kind)
	}
	sb.WriteString(n.label)
	if n.dep {
		sb.WriteString("\n«deprecated»")
	}
	fmt.Fprintf(&sb, "\nfields: %d\nmethods: %d", n.fields, n.methods)
	return sb.String()
}

func fmtAttrs(n *node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch {
	case !n.declared:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.kind == uml.Interface || n.kind == uml.Annotation:
		attrs = append(attrs, "fillcolor=\"#eef5ff\"")
	case n.kind == uml.AbstractClass:
		attrs = append(attrs, "fontname=\"Helvetica-Oblique\"")
	case n.kind == uml.Enum:
		attrs = append(attrs, "fillcolor=\"#f5fff0\"")
	}
	return attrs
}

func edgeAttrs(e edge) []string {
	switch e.kind {
	case uml.Extends:
		return []string{"arrowhead=empty"}
	case uml.Implements:
		return []string{"arrowhead=empty", "style=dashed"}
	case uml.Association:
		attrs := []string{"arrowhead=vee"}
		if e.label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.label))
		}
		return attrs
	default:
		return []string{"arrowhead=vee", "style=dashed"}
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
