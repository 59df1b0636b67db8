package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/umldoc/pkg/errors"
)

// New returns a viper instance with defaults and environment overrides
// registered but no file read yet.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the configuration file at path into v. An empty path searches
// for [FileName] upward from the working directory; finding none is not an
// error. It returns the file used, if any.
func Load(v *viper.Viper, path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeIO, err, "working directory")
		}
		if path = Find(wd); path == "" {
			return "", nil
		}
	} else if _, err := os.Stat(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", path)
	}
	return path, nil
}

// Decode unmarshals v and validates the result.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile is New, Load and Decode in one step.
func LoadFile(path string) (*Config, error) {
	v := New()
	if _, err := Load(v, path); err != nil {
		return nil, err
	}
	return Decode(v)
}

// Find returns the first umldoc.toml in dir or one of its parents, or ""
// when there is none.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
