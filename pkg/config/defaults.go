package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// SetDefaults registers the default of every option.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("destination", ".")
	v.SetDefault("quiet", false)
	v.SetDefault("verbose", false)
	v.SetDefault("indentation", 2)
	v.SetDefault("formats", slices.Clone(uml.DefaultImageFormats))
	v.SetDefault("diagrams", []string{"class", "package"})
	v.SetDefault("exclude", slices.Clone(uml.DefaultExcludedReferences))
	v.SetDefault("workers", 4)

	v.SetDefault("fields.visibilities", []string{"protected", "public"})
	v.SetDefault("fields.type_display", "simple")

	v.SetDefault("methods.visibilities", []string{"protected", "public"})
	v.SetDefault("methods.param_names", "none")
	v.SetDefault("methods.param_types", "simple")
	v.SetDefault("methods.return_type", "simple")

	v.SetDefault("engine.kind", plantuml.EngineExec)
	v.SetDefault("engine.command", plantuml.DefaultCommand)
	v.SetDefault("engine.server_url", plantuml.DefaultServerURL)
	v.SetDefault("engine.timeout", 60*time.Second)

	v.SetDefault("cache.backend", cache.BackendFile)
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.prefix", "umldoc")
	v.SetDefault("cache.ttl", cache.TTLArtifact)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.timeout", 2*time.Minute)
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "umldoc")
	}
	return filepath.Join(dir, "umldoc")
}
