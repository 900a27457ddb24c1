package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bifconv/internal/api"
	"github.com/matzehuels/bifconv/pkg/errors"
	"github.com/matzehuels/bifconv/pkg/pipeline"
)

// Config holds flag defaults read from the config file.
//
//	[convert]
//	layout = "tensor"     # or "matrix"
//	indent = ""           # "" = single line
//
//	[render]
//	format = "dot"        # or "svg"
//	detailed = false
//
//	[serve]
//	addr = "127.0.0.1:8080"
//	max_body_bytes = 10485760
//	allowed_origins = []
//
// Command-line flags take precedence over the file.
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Render  RenderConfig  `toml:"render"`
	Serve   ServeConfig   `toml:"serve"`
}

type ConvertConfig struct {
	Layout string `toml:"layout"`
	Indent string `toml:"indent"`
}

type RenderConfig struct {
	Format   string `toml:"format"`
	Detailed bool   `toml:"detailed"`
}

type ServeConfig struct {
	Addr           string   `toml:"addr"`
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Convert: ConvertConfig{Layout: string(pipeline.DefaultLayout)},
		Render:  RenderConfig{Format: string(pipeline.DefaultFormat)},
		Serve: ServeConfig{
			Addr:         api.DefaultAddr,
			MaxBodyBytes: api.DefaultMaxBodyBytes,
		},
	}
}

// LoadConfig reads the config file at path on top of [DefaultConfig].
// An empty path selects the default location, which may be absent; an
// explicit path must exist. Unknown keys and invalid values fail with
// INVALID_INPUT.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks every value against the choices the commands accept.
func (c Config) Validate() error {
	if err := pipeline.ValidateLayout(c.Convert.Layout); err != nil {
		return err
	}
	if err := errors.ValidateIndent(c.Convert.Indent); err != nil {
		return err
	}
	if err := pipeline.ValidateFormat(c.Render.Format); err != nil {
		return err
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "serve.addr cannot be empty")
	}
	if c.Serve.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "serve.max_body_bytes must be positive")
	}
	return nil
}

// configPath returns the config file location using the XDG standard
// (~/.config/bifconv/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
