package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/compost/internal/errors"
	"github.com/vango-dev/compost/pkg/bind"
)

const (
	// JSONFileName is the name of the JSON configuration file.
	JSONFileName = "compost.json"

	// YAMLFileName is the name of the YAML configuration file.
	YAMLFileName = "compost.yaml"

	// DefaultAddr is the default bridge listen address.
	DefaultAddr = "localhost:3000"

	// DefaultWSPath is the default websocket endpoint.
	DefaultWSPath = "/ws"

	// DefaultBufferSize is the default websocket read and write buffer size.
	DefaultBufferSize = 4096

	// DefaultReadLimit is the default maximum size of one client frame.
	DefaultReadLimit = 64 * 1024

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "compost"
)

// fileNames are searched in order by Load.
var fileNames = []string{JSONFileName, YAMLFileName, "compost.yml"}

// Config is the contents of compost.json or compost.yaml.
type Config struct {
	// Prefix is the marker attribute prefix (default: "on-").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Catalog adjusts the default event catalog.
	Catalog CatalogConfig `json:"catalog,omitempty" yaml:"catalog,omitempty"`

	// Server contains bridge server settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// CatalogConfig lists event kinds added to and removed from the default
// catalog. Removals apply after additions.
type CatalogConfig struct {
	With    []string `json:"with,omitempty" yaml:"with,omitempty"`
	Without []string `json:"without,omitempty" yaml:"without,omitempty"`
}

// ServerConfig contains bridge server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// WSPath is the websocket endpoint path.
	WSPath string `json:"wsPath,omitempty" yaml:"wsPath,omitempty"`

	// ReadBufferSize is the websocket read buffer size in bytes.
	ReadBufferSize int `json:"readBufferSize,omitempty" yaml:"readBufferSize,omitempty"`

	// WriteBufferSize is the websocket write buffer size in bytes.
	WriteBufferSize int `json:"writeBufferSize,omitempty" yaml:"writeBufferSize,omitempty"`

	// ReadLimit is the maximum size in bytes of one client frame.
	ReadLimit int64 `json:"readLimit,omitempty" yaml:"readLimit,omitempty"`

	// Forward lists the kinds of host events sent back to the browser.
	Forward []string `json:"forward,omitempty" yaml:"forward,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Prefix: bind.DefaultPrefix,
		Server: ServerConfig{
			Addr:            DefaultAddr,
			WSPath:          DefaultWSPath,
			ReadBufferSize:  DefaultBufferSize,
			WriteBufferSize: DefaultBufferSize,
			ReadLimit:       DefaultReadLimit,
		},
		Log:     LogConfig{Level: DefaultLogLevel},
		Metrics: MetricsConfig{Namespace: DefaultNamespace},
	}
}

// Load reads configuration from dir, trying compost.json, compost.yaml and
// compost.yml in that order. A directory without any of them yields the
// defaults.
func Load(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from path. The format follows the file
// extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("C100").WithDetail(path).Wrap(err)
	}

	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, errors.New("C101").
			WithDetailf("unsupported extension %q", ext)
	}
	if err != nil {
		return nil, errors.New("C101").
			WithDetail("Failed to parse " + filepath.Base(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C101").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C100").WithDetail(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Prefix == "" {
		c.Prefix = bind.DefaultPrefix
	}

	// Server
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.WSPath == "" {
		c.Server.WSPath = DefaultWSPath
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = DefaultBufferSize
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = DefaultBufferSize
	}
	if c.Server.ReadLimit == 0 {
		c.Server.ReadLimit = DefaultReadLimit
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, " \t\n\"'=<>/") {
		return errors.New("C102").WithDetailf("prefix %q", c.Prefix)
	}

	if err := validateKinds("catalog.with", c.Catalog.With); err != nil {
		return err
	}
	if err := validateKinds("catalog.without", c.Catalog.Without); err != nil {
		return err
	}
	if err := validateKinds("server.forward", c.Server.Forward); err != nil {
		return err
	}

	switch {
	case c.Server.Addr == "":
		return errors.New("C104").WithDetail("server.addr is empty")
	case !strings.HasPrefix(c.Server.WSPath, "/"):
		return errors.New("C104").WithDetailf("server.wsPath %q must start with /", c.Server.WSPath)
	case c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0:
		return errors.New("C104").WithDetail("buffer sizes must not be negative")
	case c.Server.ReadLimit < 0:
		return errors.New("C104").WithDetail("server.readLimit must not be negative")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

func validateKinds(field string, kinds []string) error {
	seen := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		switch {
		case k == "":
			return errors.New("C103").WithDetail(field + " contains an empty kind")
		case k != strings.ToLower(k) || strings.ContainsAny(k, " \t\n"):
			return errors.New("C103").WithDetailf("%s: %q", field, k)
		case seen[k]:
			return errors.New("C103").WithDetailf("%s: %q listed twice", field, k)
		}
		seen[k] = true
	}
	return nil
}

// EffectiveCatalog returns the default catalog adjusted by Catalog.With and
// Catalog.Without.
func (c *Config) EffectiveCatalog() bind.Catalog {
	return bind.DefaultCatalog().With(c.Catalog.With...).Without(c.Catalog.Without...)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, errors.New("C105").WithDetailf("%q", c.Log.Level)
	}
	return level, nil
}

// Exists reports whether dir contains a config file.
func Exists(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
