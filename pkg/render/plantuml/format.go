package plantuml

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Format is an output format PlantUML can produce.
type Format int

// Supported formats, in generation order.
const (
	PNG Format = iota + 1
	SVG
	EPS
	EPSText
	ATXT
	UTXT
	XMI
	XMIStar
	XMIArgo
	SCXML
	PDF
	HTML
	VDX
	LaTeX
	LaTeXNoPreamble
	BraillePNG
)

type formatInfo struct {
	name   string // canonical name, matched case-insensitively
	suffix string // file suffix including the dot
	flag   string // -t option of the plantuml command
	server string // path segment of the PlantUML server, empty if unavailable
}

var formats = map[Format]formatInfo{
	PNG:             {"png", ".png", "png", "png"},
	SVG:             {"svg", ".svg", "svg", "svg"},
	EPS:             {"eps", ".eps", "eps", "eps"},
	EPSText:         {"eps_text", ".eps", "eps:text", "epstext"},
	ATXT:            {"atxt", ".atxt", "txt", "txt"},
	UTXT:            {"utxt", ".utxt", "utxt", ""},
	XMI:             {"xmi_standard", ".xmi", "xmi", ""},
	XMIStar:         {"xmi_star", ".xmi", "xmi:star", ""},
	XMIArgo:         {"xmi_argo", ".xmi", "xmi:argo", ""},
	SCXML:           {"scxml", ".scxml", "scxml", ""},
	PDF:             {"pdf", ".pdf", "pdf", ""},
	HTML:            {"html", ".html", "html", ""},
	VDX:             {"vdx", ".vdx", "vdx", ""},
	LaTeX:           {"latex", ".latex", "latex", ""},
	LaTeXNoPreamble: {"latex_no_preamble", ".latex", "latex:nopreamble", ""},
	BraillePNG:      {"braille_png", ".braille.png", "braille", ""},
}

// All returns every supported format in generation order.
func All() []Format {
	out := make([]Format, 0, len(formats))
	for f := PNG; f <= BraillePNG; f++ {
		out = append(out, f)
	}
	return out
}

// String returns the canonical format name, e.g. "png".
func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return "unknown"
}

// Suffix returns the file suffix of f, e.g. ".png".
func (f Format) Suffix() string { return formats[f].suffix }

// Flag returns the value of the plantuml -t option for f.
func (f Format) Flag() string { return formats[f].flag }

// ServerPath returns the PlantUML server path segment for f and whether the
// server produces f directly.
func (f Format) ServerPath() (string, bool) {
	p := formats[f].server
	return p, p != ""
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

// ParseFormat resolves a format name. Surrounding whitespace and one leading
// "." are ignored and matching is case-insensitive, so ".PNG", "png" and
// "Png" all resolve to [PNG].
func ParseFormat(name string) (Format, bool) {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, ".")
	for _, f := range All() {
		if strings.EqualFold(name, formats[f].name) {
			return f, true
		}
	}
	return 0, false
}

// ParseFormats resolves every name, warning once per unrecognized name.
// The result holds each format once, in generation order. An empty or
// all-unknown list yields no formats.
func ParseFormats(names []string, logger *log.Logger) []Format {
	var seen [BraillePNG + 1]bool
	for _, name := range names {
		f, ok := ParseFormat(name)
		if !ok {
			if logger != nil {
				logger.Warn("unrecognized image format", "format", strings.TrimSpace(name))
			}
			continue
		}
		seen[f] = true
	}

	var out []Format
	for _, f := range All() {
		if seen[f] {
			out = append(out, f)
		}
	}
	if logger != nil {
		logger.Debug("configured image formats", "formats", out)
	}
	return out
}

// NormalizeFormats resolves names to canonical format names, keeping input
// order and dropping duplicates. Unrecognized names are warned about once
// each and dropped, so a configuration normalized up front does not warn
// again for every diagram.
func NormalizeFormats(names []string, logger *log.Logger) []string {
	var out []string
	for _, name := range names {
		f, ok := ParseFormat(name)
		if !ok {
			if logger != nil {
				logger.Warn("unrecognized image format", "format", strings.TrimSpace(name))
			}
			continue
		}
		if !slices.Contains(out, f.String()) {
			out = append(out, f.String())
		}
	}
	return out
}

// Names returns the canonical names of fs.
func Names(fs []Format) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}
