package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/javasrc"
	"github.com/matzehuels/umldoc/pkg/model"
)

// LoadModel reads every input and merges the result. Files with a model
// extension are decoded; .java files and directories are extracted.
func LoadModel(ctx context.Context, logger *log.Logger, inputs ...string) (*model.Model, error) {
	if len(inputs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no inputs")
	}
	if logger == nil {
		logger = log.Default()
	}

	var models []*model.Model
	var sources []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", in)
		}
		switch {
		case info.IsDir():
			sources = append(sources, in)
		case strings.EqualFold(filepath.Ext(in), ".java"):
			sources = append(sources, in)
		default:
			if _, ok := model.FormatFromPath(in); !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported input %s (want .java, .json, .toml, .yaml or a directory)", in)
			}
			m, err := model.Load(in)
			if err != nil {
				return nil, err
			}
			logger.Debug("loaded model", "file", in, "types", m.TypeCount())
			models = append(models, m)
		}
	}

	if len(sources) > 0 {
		ex, err := javasrc.New(logger)
		if err != nil {
			return nil, err
		}
		defer ex.Close()
		m, err := ex.Extract(ctx, sources...)
		if err != nil {
			return nil, err
		}
		logger.Debug("extracted sources", "inputs", len(sources), "types", m.TypeCount())
		models = append(models, m)
	}

	merged := model.Merge(models...)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
