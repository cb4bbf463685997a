/*
Package config loads service configuration from the environment.

PURPOSE:
  One flat entry point for everything the server and CLI need that is
  deployment-specific: listen address, timeouts, database path, logging.
  Policy thresholds are NOT configured here; they live in JSON policy
  documents parsed by the factory package, so a policy change is a data
  change rather than a redeploy.

ENVIRONMENT VARIABLES:
  All variables are prefixed BREAKCHECK_. Every value has a default, so
  a bare `breakcheck serve` works out of the box.
*/
package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"30"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		Path string `env:"PATH" envDefault:"./data/breakcheck.db"`
	} `envPrefix:"DATABASE_"`
	Policy struct {
		// File holds a JSON policy document. Empty means the built-in
		// California single-break policy.
		File string `env:"FILE"`
	} `envPrefix:"POLICY_"`
	Log struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"json"`
	} `envPrefix:"LOG_"`
}

// Load parses the configuration from BREAKCHECK_-prefixed environment
// variables.
func Load() (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: "BREAKCHECK_"}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) {
			// Return only the first error to keep startup logs readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}
