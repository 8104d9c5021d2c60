package config

import (
	"os"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// App holds the path to the application configuration file, a TOML document
// listing the universities and majors the service advises on.
type App struct {
	path string
}

// Flags returns CLI flags for the application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "app-config",
			Usage:       "Path to TOML file listing universities and majors",
			Required:    true,
			Sources:     cli.EnvVars("COURSEPATH_APP_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads and validates the configuration file and builds the
// university registry from it.
func (a *App) Configure() (*model.UniversityRegistry, error) {
	cfg, err := LoadAppConfiguration(a.path)
	if err != nil {
		return nil, err
	}
	return cfg.Registry(), nil
}

// AppConfig is the parsed application configuration
type AppConfig struct {
	Universities []UniversityConfig `toml:"university"`
}

// UniversityConfig is one university entry
type UniversityConfig struct {
	ID     string        `toml:"id"`
	Name   string        `toml:"name"`
	Majors []MajorConfig `toml:"major"`
}

// MajorConfig is one major entry under a university
type MajorConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the MajorConfig is valid
func (m *MajorConfig) Validate() error {
	if m.ID == "" {
		return goerr.New("major id is required")
	}
	if m.Name == "" {
		return goerr.New("major name is required", goerr.V("id", m.ID))
	}
	return nil
}

// Validate checks if the UniversityConfig is valid
func (u *UniversityConfig) Validate() error {
	if u.ID == "" {
		return goerr.New("university id is required")
	}
	if u.Name == "" {
		return goerr.New("university name is required", goerr.V("id", u.ID))
	}
	if len(u.Majors) == 0 {
		return goerr.New("university needs at least one major", goerr.V("id", u.ID))
	}

	majorIDs := make(map[string]bool)
	for _, m := range u.Majors {
		if err := m.Validate(); err != nil {
			return goerr.Wrap(err, "invalid major", goerr.V("university", u.ID))
		}
		if majorIDs[m.ID] {
			return goerr.New("duplicate major ID",
				goerr.V("university", u.ID),
				goerr.V("id", m.ID),
			)
		}
		majorIDs[m.ID] = true
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if len(a.Universities) == 0 {
		return goerr.New("at least one university is required")
	}

	universityIDs := make(map[string]bool)
	for _, u := range a.Universities {
		if err := u.Validate(); err != nil {
			return goerr.Wrap(err, "invalid university")
		}
		if universityIDs[u.ID] {
			return goerr.New("duplicate university ID", goerr.V("id", u.ID))
		}
		universityIDs[u.ID] = true
	}
	return nil
}

// Registry converts the configuration into the domain university registry
func (a *AppConfig) Registry() *model.UniversityRegistry {
	registry := model.NewUniversityRegistry()
	for _, u := range a.Universities {
		majors := make([]model.Major, len(u.Majors))
		for i, m := range u.Majors {
			majors[i] = model.Major{ID: m.ID, Name: m.Name}
		}
		registry.Register(&model.University{
			ID:     u.ID,
			Name:   u.Name,
			Majors: majors,
		})
	}
	return registry
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
