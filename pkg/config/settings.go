package config

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/doclet"
	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/indent"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
	"github.com/matzehuels/umldoc/pkg/typename"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Validate checks every enumerated value and numeric bound.
func (c *Config) Validate() error {
	if c.Indentation < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "indentation must not be negative, got %d", c.Indentation)
	}
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if c.Engine.Timeout < 0 || c.Server.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeouts must not be negative")
	}
	if c.Quiet && c.Verbose {
		return errors.New(errors.ErrCodeInvalidConfig, "quiet and verbose are mutually exclusive")
	}
	if _, err := c.DiagramOptions(); err != nil {
		return err
	}
	if _, err := c.fieldSettings(); err != nil {
		return err
	}
	_, err := c.methodSettings()
	return err
}

// DiagramOptions returns the diagram kinds to build.
func (c *Config) DiagramOptions() (doclet.Options, error) {
	return doclet.ParseDiagramKinds(c.Diagrams)
}

// Settings freezes c into the configuration diagrams render with. conv may
// be nil to write diagram text only. Unknown image formats are warned about
// here, once, and dropped.
func (c *Config) Settings(logger *log.Logger, conv plantuml.Converter) (*uml.Settings, error) {
	fields, err := c.fieldSettings()
	if err != nil {
		return nil, err
	}
	methods, err := c.methodSettings()
	if err != nil {
		return nil, err
	}

	ind := indent.Tabs()
	if c.Indentation > 0 {
		ind = indent.Spaces(c.Indentation)
	}

	return uml.NewSettings(uml.Settings{
		Log:         logger,
		Indent:      ind,
		Destination: c.Destination,
		Formats:     plantuml.NormalizeFormats(c.Formats, logger),
		Engine:      conv,
		Field:       fields,
		Method:      methods,
		Exclusions:  c.Exclude,
	}), nil
}

func (c *Config) fieldSettings() (uml.FieldSettings, error) {
	vis, err := uml.ParseVisibilitySet(c.Fields.Visibilities)
	if err != nil {
		return uml.FieldSettings{}, invalid(err, "fields.visibilities")
	}
	display, err := typename.ParseDisplay(c.Fields.TypeDisplay)
	if err != nil {
		return uml.FieldSettings{}, invalid(err, "fields.type_display")
	}
	return uml.FieldSettings{Visibilities: vis, Display: display}, nil
}

func (c *Config) methodSettings() (uml.MethodSettings, error) {
	var m uml.MethodSettings
	var err error
	if m.Visibilities, err = uml.ParseVisibilitySet(c.Methods.Visibilities); err != nil {
		return m, invalid(err, "methods.visibilities")
	}
	if m.Names, err = uml.ParseParamNames(c.Methods.ParamNames); err != nil {
		return m, invalid(err, "methods.param_names")
	}
	if m.Params, err = typename.ParseDisplay(c.Methods.ParamTypes); err != nil {
		return m, invalid(err, "methods.param_types")
	}
	if m.Return, err = typename.ParseDisplay(c.Methods.ReturnType); err != nil {
		return m, invalid(err, "methods.return_type")
	}
	return m, nil
}

func invalid(err error, key string) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
}
