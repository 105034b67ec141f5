package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry holds CLI flags for error reporting
type Sentry struct {
	DSN         string `masq:"secret"`
	Environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN; errors are reported when set",
			Sources:     cli.EnvVars("CBRECOMMEND_SENTRY_DSN"),
			Destination: &s.DSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "development",
			Sources:     cli.EnvVars("CBRECOMMEND_SENTRY_ENV"),
			Destination: &s.Environment,
		},
	}
}

// Enabled reports whether a DSN is configured
func (s *Sentry) Enabled() bool {
	return s.DSN != ""
}

// Configure initializes the Sentry client. Without a DSN it is a no-op. The
// returned function flushes buffered events.
func (s *Sentry) Configure(release string) (func(), error) {
	if !s.Enabled() {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.DSN,
		Environment: s.Environment,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(sentryFlushTimeout)
	}, nil
}
