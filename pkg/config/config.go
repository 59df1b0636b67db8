// Package config loads umldoc settings with viper.
//
// Values are layered, lowest precedence first: built-in defaults
// ([SetDefaults]), the umldoc.toml file found by searching upward from the
// working directory, UMLDOC_* environment variables (dots become
// underscores, so UMLDOC_ENGINE_KIND sets engine.kind) and finally command
// line flags bound by the CLI.
//
//	destination = "build/uml"
//	formats     = ["svg", "png"]
//
//	[fields]
//	visibilities = ["protected", "public"]
//	type_display = "simple"
//
//	[engine]
//	kind       = "server"
//	server_url = "https://www.plantuml.com/plantuml"
package config

import (
	"time"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
)

// FileName is the configuration file searched for by [Find].
const FileName = "umldoc.toml"

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "UMLDOC"

// Config is the complete umldoc configuration.
type Config struct {
	Destination string   `mapstructure:"destination"`
	Quiet       bool     `mapstructure:"quiet"`
	Verbose     bool     `mapstructure:"verbose"`
	Indentation int      `mapstructure:"indentation"` // spaces per level, 0 for tabs
	Formats     []string `mapstructure:"formats"`
	Diagrams    []string `mapstructure:"diagrams"` // class, package
	Exclude     []string `mapstructure:"exclude"`  // qualified names never drawn as edges
	Workers     int      `mapstructure:"workers"`

	Fields  FieldsConfig  `mapstructure:"fields"`
	Methods MethodsConfig `mapstructure:"methods"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Server  ServerConfig  `mapstructure:"server"`
}

// FieldsConfig selects the rendered fields.
type FieldsConfig struct {
	Visibilities []string `mapstructure:"visibilities"`
	TypeDisplay  string   `mapstructure:"type_display"`
}

// MethodsConfig selects the rendered methods and their signature layout.
type MethodsConfig struct {
	Visibilities []string `mapstructure:"visibilities"`
	ParamNames   string   `mapstructure:"param_names"` // none, before-type, after-type
	ParamTypes   string   `mapstructure:"param_types"`
	ReturnType   string   `mapstructure:"return_type"`
}

// EngineConfig configures the PlantUML rendering engine.
type EngineConfig struct {
	Kind      string        `mapstructure:"kind"` // exec, server, none
	Command   string        `mapstructure:"command"`
	ServerURL string        `mapstructure:"server_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"` // file, redis, none
	Dir      string        `mapstructure:"dir"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// EngineOptions returns the options for [plantuml.NewEngine].
func (c *Config) EngineOptions() plantuml.EngineOptions {
	return plantuml.EngineOptions{
		Kind:      c.Engine.Kind,
		Command:   c.Engine.Command,
		ServerURL: c.Engine.ServerURL,
		Timeout:   c.Engine.Timeout,
	}
}

// CacheOptions returns the options for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
		Prefix:   c.Cache.Prefix,
	}
}
