// Package config loads runtime settings from an optional YAML file, an
// optional .env file and RESUMEGEN_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/imaging"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RESUMEGEN_"

// ErrInvalid is returned for settings that fail validation.
var ErrInvalid = errors.New("config: invalid")

// Config is the full runtime configuration.
type Config struct {
	Addr       string         `yaml:"addr"`
	LogMode    string         `yaml:"log_mode"`
	Store      store.Settings `yaml:"store"`
	StorageKey string         `yaml:"storage_key"`
	AsyncSave  bool           `yaml:"async_save"`
	// Template seeds first-run records.
	Template string `yaml:"template"`
	// TemplatesDir overlays the bundled HTML templates.
	TemplatesDir string          `yaml:"templates_dir"`
	Export       export.Config   `yaml:"export"`
	Image        imaging.Options `yaml:"image"`
	Chrome       Chrome          `yaml:"chrome"`
}

// Chrome configures the headless browser used for PDF export.
type Chrome struct {
	ExecPath string        `yaml:"exec_path"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns a configuration usable with no file and no environment.
func Default() Config {
	return Config{
		Addr:       ":8080",
		LogMode:    "dev",
		Store:      store.Settings{Driver: store.DriverMemory, BoltPath: "resumegen.db"},
		StorageKey: persistence.DefaultKey,
		Template:   string(record.TemplateDefault),
		Export:     export.DefaultConfig(),
		Chrome:     Chrome{Timeout: 60 * time.Second},
	}
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	file    string
	envFile string
	lookup  func(string) (string, bool)
}

// WithFile reads YAML settings from path. A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithEnvFile reads dotenv settings from path. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = path
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(l *loader) {
		if fn != nil {
			l.lookup = fn
		}
	}
}

// Load builds a Config from defaults, the YAML file, the dotenv file and the
// process environment.
func Load(opts ...Option) (Config, error) {
	l := &loader{envFile: ".env", lookup: os.LookupEnv}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	cfg := Default()
	if l.file != "" {
		raw, err := os.ReadFile(l.file)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", l.file, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", l.file, err)
		}
	}

	dotenv := map[string]string{}
	if l.envFile != "" {
		values, err := godotenv.Read(l.envFile)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", l.envFile, err)
		}
	}

	env := func(key string) (string, bool) {
		if v, ok := l.lookup(EnvPrefix + key); ok {
			return strings.TrimSpace(v), true
		}
		v, ok := dotenv[EnvPrefix+key]
		return strings.TrimSpace(v), ok
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}

	cfg.Export = cfg.Export.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(env func(string) (string, bool)) error {
	strs := map[string]*string{
		"ADDR":             &c.Addr,
		"LOG_MODE":         &c.LogMode,
		"STORE":            &c.Store.Driver,
		"BOLT_PATH":        &c.Store.BoltPath,
		"REDIS_ADDR":       &c.Store.RedisAddr,
		"REDIS_PASSWORD":   &c.Store.RedisPassword,
		"REDIS_PREFIX":     &c.Store.RedisPrefix,
		"POSTGRES_DSN":     &c.Store.Postgres,
		"STORAGE_KEY":      &c.StorageKey,
		"TEMPLATE":         &c.Template,
		"TEMPLATES_DIR":    &c.TemplatesDir,
		"CHROME_PATH":      &c.Chrome.ExecPath,
		"EXPORT_FILE_NAME": &c.Export.FileName,
	}
	for key, dst := range strs {
		if v, ok := env(key); ok {
			*dst = v
		}
	}

	if v, ok := env("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sREDIS_DB: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Store.RedisDB = n
	}
	if v, ok := env("ASYNC_SAVE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sASYNC_SAVE: %v", ErrInvalid, EnvPrefix, err)
		}
		c.AsyncSave = b
	}
	if v, ok := env("EXPORT_LANDSCAPE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sEXPORT_LANDSCAPE: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Export.Landscape = b
	}
	if v, ok := env("EXPORT_PAGE_SIZE"); ok {
		c.Export.PageSize = export.PageSize(v)
	}
	for key, dst := range map[string]*int{
		"IMAGE_MAX_BYTES":     &c.Image.MaxBytes,
		"IMAGE_MAX_PIXELS":    &c.Image.MaxPixels,
		"IMAGE_MAX_DIMENSION": &c.Image.MaxDimension,
		"IMAGE_JPEG_QUALITY":  &c.Image.JPEGQuality,
	} {
		if v, ok := env(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, key, err)
			}
			*dst = n
		}
	}
	for key, dst := range map[string]*float64{
		"EXPORT_MARGINS_MM": &c.Export.MarginsMM,
		"EXPORT_SCALE":      &c.Export.Scale,
	} {
		if v, ok := env(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, key, err)
			}
			*dst = f
		}
	}
	if v, ok := env("EXPORT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sEXPORT_TIMEOUT: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Chrome.Timeout = d
	}
	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if _, ok := record.ParseTemplate(c.Template); !ok {
		return fmt.Errorf("%w: template %q", ErrInvalid, c.Template)
	}
	switch strings.ToLower(c.Store.Driver) {
	case "", store.DriverMemory, store.DriverBolt, store.DriverRedis, store.DriverPostgres:
	default:
		return fmt.Errorf("%w: store driver %q", ErrInvalid, c.Store.Driver)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("%w: storage key is empty", ErrInvalid)
	}
	if c.TemplatesDir != "" {
		if info, err := os.Stat(c.TemplatesDir); err != nil || !info.IsDir() {
			return fmt.Errorf("%w: templates dir %q is not a directory", ErrInvalid, c.TemplatesDir)
		}
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
