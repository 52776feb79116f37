package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/cli/config"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var (
		upstreamCfg config.Upstream
		output      string
		search      string
		severity    string
		category    string
		location    string
		from        string
		to          string
	)

	flags := joinFlags(
		upstreamCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file path (defaults to safevoice-incidents-{date}.csv in the working directory, '-' for stdout)",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "search",
				Usage:       "Free-text search across all incident fields",
				Category:    "Filter",
				Destination: &search,
			},
			&cli.StringFlag{
				Name:        "severity",
				Usage:       "Severity filter (Low, Medium, High)",
				Category:    "Filter",
				Destination: &severity,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "Category filter",
				Category:    "Filter",
				Destination: &category,
			},
			&cli.StringFlag{
				Name:        "location",
				Usage:       "Location filter (exact match)",
				Category:    "Filter",
				Destination: &location,
			},
			&cli.StringFlag{
				Name:        "from",
				Usage:       "Start date (YYYY-MM-DD, inclusive)",
				Category:    "Filter",
				Destination: &from,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "End date (YYYY-MM-DD, inclusive)",
				Category:    "Filter",
				Destination: &to,
			},
		},
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Fetch incidents once and write them as CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := upstreamCfg.Validate(); err != nil {
				return err
			}

			criteria, err := buildCriteria(search, severity, category, location, from, to)
			if err != nil {
				return err
			}

			source, err := upstreamCfg.Configure()
			if err != nil {
				return err
			}

			incidents, err := source.FetchIncidents(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch incidents")
			}

			filtered := model.Filter(model.SortRecentFirst(incidents), criteria)
			body := model.RenderCSV(filtered)

			if output == "" {
				output = model.CSVFilename(time.Now())
			}
			if output == "-" {
				if _, err := os.Stdout.WriteString(body + "\n"); err != nil {
					return goerr.Wrap(err, "failed to write CSV to stdout")
				}
				return nil
			}

			if err := os.WriteFile(output, []byte(body), 0644); err != nil {
				return goerr.Wrap(err, "failed to write CSV file",
					goerr.V("path", output))
			}

			logger.Info("Exported incidents",
				slog.String("path", output),
				slog.Int("total", len(incidents)),
				slog.Int("exported", len(filtered)),
			)
			return nil
		},
	}
}

func buildCriteria(search, severity, category, location, from, to string) (model.Criteria, error) {
	criteria := model.NewCriteria()
	if search != "" {
		criteria = criteria.WithSearch(search)
	}
	if severity != "" {
		criteria = criteria.WithSeverity(severity)
	}
	if category != "" {
		criteria = criteria.WithCategory(category)
	}
	if location != "" {
		criteria = criteria.WithLocation(location)
	}

	var fromDay, toDay time.Time
	if from != "" {
		day, err := model.ParseDay(from)
		if err != nil {
			return criteria, goerr.Wrap(err, "invalid from date", goerr.V("from", from))
		}
		fromDay = day
	}
	if to != "" {
		day, err := model.ParseDay(to)
		if err != nil {
			return criteria, goerr.Wrap(err, "invalid to date", goerr.V("to", to))
		}
		toDay = day
	}
	if !fromDay.IsZero() || !toDay.IsZero() {
		criteria = criteria.WithDateRange(fromDay, toDay)
	}

	return criteria, nil
}
