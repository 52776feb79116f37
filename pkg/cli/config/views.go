package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Views holds the optional view configuration file path
type Views struct {
	ConfigPath string
}

// Flags returns CLI flags for Views configuration
func (v *Views) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "views-config",
			Usage:       "Path to a YAML view configuration (leaderboard size, window, stage labels)",
			Category:    "Views",
			Sources:     cli.EnvVars("SAFEVOICE_VIEWS_CONFIG"),
			Destination: &v.ConfigPath,
		},
	}
}

// Configure loads the view configuration, falling back to the defaults when
// no file was provided
func (v *Views) Configure() (*model.ViewsConfig, error) {
	if v.ConfigPath == "" {
		return model.DefaultViewsConfig(), nil
	}
	return LoadViewsFromFile(v.ConfigPath)
}

// LoadViewsFromFile loads the view configuration from a YAML file
func LoadViewsFromFile(path string) (*model.ViewsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "view configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read view configuration file",
			goerr.V("path", path))
	}

	var config model.ViewsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML view configuration",
			goerr.V("path", path))
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid view configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
