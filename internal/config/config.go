// Package config loads server settings from defaults, an optional HCL file
// and command-line flags, in that order of precedence. Config files can
// read environment variables as env.NAME.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Engine  EngineConfig
}

type APIConfig struct {
	Host      string `validate:"required"`
	Port      int    `validate:"min=1,max=65535"`
	Dev       bool
	RateLimit int `validate:"min=1,max=10000"` // Requests per second per client
}

// StorageConfig leaves persistence off when Path is empty
type StorageConfig struct {
	Path string
	WAL  bool
}

type EngineConfig struct {
	Workers     int `validate:"min=1,max=64"`
	ThinkTimeMs int `validate:"min=0,max=10000"` // Applied to computer players configured without one
	Seed        int64
}

func Default() Config {
	return Config{
		API: APIConfig{
			Host:      "localhost",
			Port:      8080,
			RateLimit: 10,
		},
		Engine: EngineConfig{
			Workers: 2,
		},
	}
}

// File layout; every attribute is optional and overrides the default
type fileConfig struct {
	API     *apiBlock     `hcl:"api,block"`
	Storage *storageBlock `hcl:"storage,block"`
	Engine  *engineBlock  `hcl:"engine,block"`
}

type apiBlock struct {
	Host      *string `hcl:"host,optional"`
	Port      *int    `hcl:"port,optional"`
	Dev       *bool   `hcl:"dev,optional"`
	RateLimit *int    `hcl:"rate_limit,optional"`
}

type storageBlock struct {
	Path *string `hcl:"path,optional"`
	WAL  *bool   `hcl:"wal,optional"`
}

type engineBlock struct {
	Workers     *int   `hcl:"workers,optional"`
	ThinkTimeMs *int   `hcl:"think_time_ms,optional"`
	Seed        *int64 `hcl:"seed,optional"`
}

// Load returns the defaults overlaid with the HCL file at path, if any
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.decode(path, src); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(filename string, src []byte) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var parsed fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	if b := parsed.API; b != nil {
		set(&c.API.Host, b.Host)
		set(&c.API.Port, b.Port)
		set(&c.API.Dev, b.Dev)
		set(&c.API.RateLimit, b.RateLimit)
	}
	if b := parsed.Storage; b != nil {
		set(&c.Storage.Path, b.Path)
		set(&c.Storage.WAL, b.WAL)
	}
	if b := parsed.Engine; b != nil {
		set(&c.Engine.Workers, b.Workers)
		set(&c.Engine.ThinkTimeMs, b.ThinkTimeMs)
		set(&c.Engine.Seed, b.Seed)
	}
	return nil
}

// evalContext exposes the process environment to config files as env.NAME
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			vars[name] = cty.StringVal(value)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Flags holds the command-line overrides registered by RegisterFlags
type Flags struct {
	ConfigPath  string
	APIHost     string
	APIPort     int
	Dev         bool
	RateLimit   int
	StoragePath string
	WAL         bool
	Workers     int
	ThinkTimeMs int
	Seed        int64
}

// RegisterFlags declares the config flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	def := Default()
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to HCL configuration file")
	fs.StringVar(&f.APIHost, "api-host", def.API.Host, "API server host")
	fs.IntVar(&f.APIPort, "api-port", def.API.Port, "API server port")
	fs.BoolVar(&f.Dev, "dev", def.API.Dev, "Development mode (relaxed rate limits, access log)")
	fs.IntVar(&f.RateLimit, "rate-limit", def.API.RateLimit, "API requests per second per client (doubled in dev mode)")
	fs.StringVar(&f.StoragePath, "storage-path", def.Storage.Path, "Path to SQLite database file (disables persistence if empty)")
	fs.BoolVar(&f.WAL, "wal", def.Storage.WAL, "Enable SQLite WAL journal mode")
	fs.IntVar(&f.Workers, "workers", def.Engine.Workers, "Computer move worker count")
	fs.IntVar(&f.ThinkTimeMs, "think-time", def.Engine.ThinkTimeMs, "Default computer think time in milliseconds")
	fs.Int64Var(&f.Seed, "seed", def.Engine.Seed, "Random seed for computer moves (0 = time based)")
	return f
}

// Resolve loads the file named by -config and applies the flags that were
// set explicitly on fs. fs must already be parsed.
func Resolve(fs *flag.FlagSet, f *Flags) (Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "api-host":
			cfg.API.Host = f.APIHost
		case "api-port":
			cfg.API.Port = f.APIPort
		case "dev":
			cfg.API.Dev = f.Dev
		case "rate-limit":
			cfg.API.RateLimit = f.RateLimit
		case "storage-path":
			cfg.Storage.Path = f.StoragePath
		case "wal":
			cfg.Storage.WAL = f.WAL
		case "workers":
			cfg.Engine.Workers = f.Workers
		case "think-time":
			cfg.Engine.ThinkTimeMs = f.ThinkTimeMs
		case "seed":
			cfg.Engine.Seed = f.Seed
		}
	})

	return cfg, cfg.Validate()
}
