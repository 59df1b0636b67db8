package uml

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
	"github.com/matzehuels/umldoc/pkg/typename"
)

// =============================================================================
// Visibility
// =============================================================================

// Visibility is the access level of a type or member.
type Visibility int

const (
	Private Visibility = iota
	PackagePrivate
	Protected
	Public
)

var visibilityNames = []string{
	Private:        "private",
	PackagePrivate: "package",
	Protected:      "protected",
	Public:         "public",
}

// String returns the configuration name of v.
func (v Visibility) String() string {
	if v >= 0 && int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return fmt.Sprintf("visibility(%d)", int(v))
}

// Sigil returns the diagram marker for v.
func (v Visibility) Sigil() string {
	switch v {
	case Private:
		return "-"
	case PackagePrivate:
		return "~"
	case Protected:
		return "#"
	default:
		return "+"
	}
}

// ParseVisibility converts a configuration value into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "package-private" || norm == "default" {
		norm = "package"
	}
	for v, name := range visibilityNames {
		if name == norm {
			return Visibility(v), nil
		}
	}
	return Public, fmt.Errorf("unknown visibility %q (must be private, package, protected or public)", s)
}

// VisibilitySet is an inclusion predicate over visibilities.
type VisibilitySet uint8

// NewVisibilitySet returns the set containing vs.
func NewVisibilitySet(vs ...Visibility) VisibilitySet {
	var s VisibilitySet
	for _, v := range vs {
		s |= 1 << uint(v)
	}
	return s
}

// ParseVisibilitySet parses every name and returns their union.
func ParseVisibilitySet(names []string) (VisibilitySet, error) {
	var s VisibilitySet
	for _, name := range names {
		v, err := ParseVisibility(name)
		if err != nil {
			return 0, err
		}
		s |= NewVisibilitySet(v)
	}
	return s, nil
}

// Include reports whether v is part of the set.
func (s VisibilitySet) Include(v Visibility) bool {
	return s&(1<<uint(v)) != 0
}

// String lists the members of s in ascending order.
func (s VisibilitySet) String() string {
	var names []string
	for v := Private; v <= Public; v++ {
		if s.Include(v) {
			names = append(names, v.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// =============================================================================
// Parameter Names
// =============================================================================

// ParamNames controls whether and where parameter names are rendered.
type ParamNames int

const (
	// ParamNamesNone renders parameter types only: "(int, String)".
	ParamNamesNone ParamNames = iota
	// ParamNamesBeforeType renders "(count: int, name: String)".
	ParamNamesBeforeType
	// ParamNamesAfterType renders "(int count, String name)".
	ParamNamesAfterType
)

var paramNamesNames = []string{
	ParamNamesNone:       "none",
	ParamNamesBeforeType: "before-type",
	ParamNamesAfterType:  "after-type",
}

// String returns the configuration name of p.
func (p ParamNames) String() string {
	if p >= 0 && int(p) < len(paramNamesNames) {
		return paramNamesNames[p]
	}
	return fmt.Sprintf("paramnames(%d)", int(p))
}

// ParseParamNames converts a configuration value into a ParamNames mode.
func ParseParamNames(s string) (ParamNames, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for p, name := range paramNamesNames {
		if name == norm {
			return ParamNames(p), nil
		}
	}
	return ParamNamesNone, fmt.Errorf("unknown parameter name mode %q (must be none, before-type or after-type)", s)
}

// =============================================================================
// Configuration
// =============================================================================

// FieldConfig decides which fields are rendered and how their type shows.
type FieldConfig interface {
	Include(Visibility) bool
	TypeDisplay() typename.Display
}

// MethodConfig decides which methods are rendered and how their signature
// shows.
type MethodConfig interface {
	Include(Visibility) bool
	ParamNames() ParamNames
	ParamTypes() typename.Display
	ReturnType() typename.Display
}

// Configuration is the read-only capability parts consult while rendering.
// Implementations must be safe for concurrent reads.
type Configuration interface {
	Logger() *log.Logger
	Indentation() indent.Indentation
	DestinationDirectory() string
	ImageFormats() []string
	// Converter produces the image artifacts. Nil writes the text only.
	Converter() plantuml.Converter
	Fields() FieldConfig
	Methods() MethodConfig
	Excluded(qualifiedName string) bool
}

// DefaultExcludedReferences are never drawn as edges.
var DefaultExcludedReferences = []string{
	typename.ObjectType,
	"java.lang.Enum",
	"java.lang.annotation.Annotation",
}

// DefaultImageFormats are generated next to every diagram.
var DefaultImageFormats = []string{"svg", "png"}

// DefaultVisibilities is the default inclusion set for fields and methods.
var DefaultVisibilities = NewVisibilitySet(Protected, Public)

// FieldSettings is the value form of FieldConfig.
type FieldSettings struct {
	Visibilities VisibilitySet
	Display      typename.Display
}

// Include implements FieldConfig.
func (f FieldSettings) Include(v Visibility) bool { return f.Visibilities.Include(v) }

// TypeDisplay implements FieldConfig.
func (f FieldSettings) TypeDisplay() typename.Display { return f.Display }

// MethodSettings is the value form of MethodConfig.
type MethodSettings struct {
	Visibilities VisibilitySet
	Names        ParamNames
	Params       typename.Display
	Return       typename.Display
}

// Include implements MethodConfig.
func (m MethodSettings) Include(v Visibility) bool { return m.Visibilities.Include(v) }

// ParamNames implements MethodConfig.
func (m MethodSettings) ParamNames() ParamNames { return m.Names }

// ParamTypes implements MethodConfig.
func (m MethodSettings) ParamTypes() typename.Display { return m.Params }

// ReturnType implements MethodConfig.
func (m MethodSettings) ReturnType() typename.Display { return m.Return }

// Settings is the immutable Configuration used by the CLI and the server.
// Build it with [NewSettings] or [DefaultSettings] and do not mutate it once
// the first diagram renders.
type Settings struct {
	Log         *log.Logger
	Indent      indent.Indentation
	Destination string
	Formats     []string
	Engine      plantuml.Converter
	Field       FieldSettings
	Method      MethodSettings
	Exclusions  []string

	excluded map[string]struct{}
}

// DefaultSettings returns the settings every option defaults to.
func DefaultSettings(logger *log.Logger) *Settings {
	return NewSettings(Settings{
		Log:         logger,
		Indent:      indent.Default,
		Destination: "",
		Formats:     slices.Clone(DefaultImageFormats),
		Field:       FieldSettings{Visibilities: DefaultVisibilities, Display: typename.Simple},
		Method: MethodSettings{
			Visibilities: DefaultVisibilities,
			Names:        ParamNamesNone,
			Params:       typename.Simple,
			Return:       typename.Simple,
		},
		Exclusions: slices.Clone(DefaultExcludedReferences),
	})
}

// NewSettings freezes s into a Configuration.
func NewSettings(s Settings) *Settings {
	if s.Log == nil {
		s.Log = log.Default()
	}
	s.Formats = slices.Clone(s.Formats)
	s.Exclusions = slices.Clone(s.Exclusions)
	s.excluded = make(map[string]struct{}, len(s.Exclusions))
	for _, name := range s.Exclusions {
		s.excluded[strings.TrimSpace(name)] = struct{}{}
	}
	return &s
}

// Logger implements Configuration.
func (s *Settings) Logger() *log.Logger { return s.Log }

// Indentation implements Configuration.
func (s *Settings) Indentation() indent.Indentation { return s.Indent }

// DestinationDirectory implements Configuration. Empty means the working
// directory.
func (s *Settings) DestinationDirectory() string { return s.Destination }

// ImageFormats implements Configuration.
func (s *Settings) ImageFormats() []string { return slices.Clone(s.Formats) }

// Converter implements Configuration.
func (s *Settings) Converter() plantuml.Converter { return s.Engine }

// Fields implements Configuration.
func (s *Settings) Fields() FieldConfig { return s.Field }

// Methods implements Configuration.
func (s *Settings) Methods() MethodConfig { return s.Method }

// Excluded implements Configuration.
func (s *Settings) Excluded(qualifiedName string) bool {
	_, ok := s.excluded[qualifiedName]
	return ok
}
