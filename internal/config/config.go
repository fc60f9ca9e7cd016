package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "/etc/pipcaptain/pipcaptain.conf"
const envOverride = "PIPCAPTAIN_CONFIG"

type Config struct {
	Env    EnvConfig    `toml:"env"`
	State  StateConfig  `toml:"state"`
	GitHub GitHubConfig `toml:"github"`
	Index  IndexConfig  `toml:"index"`
}

type EnvConfig struct {
	Root     string `toml:"root"`
	CacheDir string `toml:"cache_dir"`
}

type StateConfig struct {
	Driver string `toml:"driver"` // "sqlite" or "mysql"
	DSN    string `toml:"dsn"`
}

type GitHubConfig struct {
	Token        string `toml:"token"`
	Owner        string `toml:"owner"`
	WheelPattern string `toml:"wheel_pattern"`
	WheelDir     string `toml:"wheel_dir"`
}

type IndexConfig struct {
	URL string `toml:"url"`
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	if p := os.Getenv(envOverride); p != "" {
		return p
	}
	return defaultConfigPath
}

// Load reads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads configuration from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Apply defaults
	if cfg.State.Driver == "" {
		cfg.State.Driver = "sqlite"
	}
	if cfg.State.DSN == "" {
		cfg.State.DSN = "/var/lib/pipcaptain/state.db"
	}
	if cfg.GitHub.WheelPattern == "" {
		cfg.GitHub.WheelPattern = "{{.Name}}-{{.Version}}-py3-none-any.whl"
	}
	if cfg.GitHub.WheelDir == "" {
		cfg.GitHub.WheelDir = "/var/lib/pipcaptain/wheels"
	}
	if cfg.Index.URL == "" {
		cfg.Index.URL = "https://pypi.org/simple/"
	}

	// Validate required fields
	if cfg.Env.Root == "" {
		return nil, fmt.Errorf("config: env.root is required")
	}
	if cfg.State.Driver != "sqlite" && cfg.State.Driver != "mysql" {
		return nil, fmt.Errorf("config: state.driver must be \"sqlite\" or \"mysql\", got %q", cfg.State.Driver)
	}

	return &cfg, nil
}

// TemplateConfig returns a TOML template with placeholder values for first-time setup.
func TemplateConfig() string {
	return `[env]
root      = "/opt/pipcaptain/venvs/default"
cache_dir = ""

[state]
driver = "sqlite"
dsn    = "/var/lib/pipcaptain/state.db"

[github]
token         = ""
owner         = ""
wheel_pattern = "{{.Name}}-{{.Version}}-py3-none-any.whl"
wheel_dir     = "/var/lib/pipcaptain/wheels"

[index]
url = "https://pypi.org/simple/"
`
}
