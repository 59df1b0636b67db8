package model

import (
	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// Validate checks names, kinds and visibilities. Type references are not
// checked: unknown reference kinds render through the textual fallback.
func (m *Model) Validate() error {
	seen := make(map[string]bool)
	for _, pkg := range m.Packages {
		if pkg.Name != "" {
			if err := errors.ValidateQualifiedName(pkg.Name); err != nil {
				return invalid(err, "package %q", pkg.Name)
			}
		}
	}

	var first error
	m.Visit(func(_ *Package, t *Type, qualified string) {
		if first != nil {
			return
		}
		if err := validateType(t, qualified); err != nil {
			first = err
			return
		}
		if seen[qualified] {
			first = errors.New(errors.ErrCodeInvalidModel, "duplicate type %s", qualified)
			return
		}
		seen[qualified] = true
	})
	return first
}

func validateType(t *Type, qualified string) error {
	if err := errors.ValidateIdentifier(t.Name); err != nil {
		return invalid(err, "type in %s", qualified)
	}
	if err := errors.ValidateQualifiedName(qualified); err != nil {
		return invalid(err, "type %s", t.Name)
	}
	if _, err := uml.ParseTypeKind(t.Kind); err != nil {
		return invalid(err, "%s", qualified)
	}
	if err := validateVisibility(t.Visibility); err != nil {
		return invalid(err, "%s", qualified)
	}

	for _, f := range t.Fields {
		if err := errors.ValidateIdentifier(f.Name); err != nil {
			return invalid(err, "%s: field", qualified)
		}
		if err := validateVisibility(f.Visibility); err != nil {
			return invalid(err, "%s.%s", qualified, f.Name)
		}
	}
	for _, group := range [][]Method{t.Constructors, t.Methods} {
		for _, m := range group {
			if err := validateMethod(m); err != nil {
				return invalid(err, "%s", qualified)
			}
		}
	}
	return nil
}

func validateMethod(m Method) error {
	if err := errors.ValidateIdentifier(m.Name); err != nil {
		return invalid(err, "method")
	}
	if err := validateVisibility(m.Visibility); err != nil {
		return invalid(err, "%s()", m.Name)
	}
	for _, p := range m.Params {
		if p.Name == "" {
			continue
		}
		if err := errors.ValidateIdentifier(p.Name); err != nil {
			return invalid(err, "%s() parameter", m.Name)
		}
	}
	return nil
}

func validateVisibility(v string) error {
	if v == "" {
		return nil
	}
	_, err := uml.ParseVisibility(v)
	return err
}

func invalid(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidModel, err, format, args...)
}
