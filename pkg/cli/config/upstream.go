package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"
	"github.com/safevoice-lab/safevoice/pkg/service/upstream"
	"github.com/urfave/cli/v3"
)

// Upstream holds the incident API configuration
type Upstream struct {
	BaseURL string
}

// Flags returns CLI flags for Upstream configuration
func (u *Upstream) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upstream-url",
			Usage:       "Base URL of the incident API (GET {base}/api/incidents)",
			Category:    "Upstream",
			Sources:     cli.EnvVars("SAFEVOICE_UPSTREAM_URL"),
			Destination: &u.BaseURL,
		},
	}
}

// Validate validates the upstream configuration
func (u *Upstream) Validate() error {
	if u.BaseURL == "" {
		return goerr.New("upstream URL is required. Please provide SAFEVOICE_UPSTREAM_URL")
	}
	return nil
}

// Configure creates the incident source client
func (u *Upstream) Configure() (interfaces.Source, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return upstream.New(u.BaseURL), nil
}

// LogValue returns structured log value
func (u Upstream) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", u.BaseURL),
	)
}
