package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/umldoc/pkg/errors"
)

// Write encodes m in format f to w.
func Write(w io.Writer, m *Model, f Format) error {
	var err error
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
	case TOML:
		err = toml.NewEncoder(w).Encode(m)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(m); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported model format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode %s", f)
	}
	return nil
}

// Export writes m to path, inferring the format from the extension.
func Export(path string, m *Model) error {
	f, ok := FormatFromPath(path)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported model file %q (use .json, .toml, .yaml or .yml)", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := Write(file, m, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
