// Package config loads ironforged's process configuration from
// environment variables, using the same struct-tag-driven approach as
// the rest of the corpus: github.com/caarlos0/env parses env vars
// straight into typed fields, with defaults and required markers
// declared alongside the field instead of in separate flag wiring.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the supervisor process's full environment-derived
// configuration.
type Config struct {
	// DataDir is the root directory under which every application's
	// working directory and the bbolt database file are created.
	DataDir string `env:"IRONFORGED_DATA_DIR" envDefault:"./data"`

	// LogLevel and LogJSON are parsed from the environment, but the
	// ironforged command configures logging from its --log-level and
	// --log-json flags and does not read these fields.
	LogLevel string `env:"IRONFORGED_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"IRONFORGED_LOG_JSON" envDefault:"false"`

	// GRPCAddress is the listen address for the gRPC transport.
	GRPCAddress string `env:"IRONFORGED_GRPC_ADDRESS" envDefault:":7777"`
	// MetricsAddress is the listen address for the Prometheus exposition
	// endpoint.
	MetricsAddress string `env:"IRONFORGED_METRICS_ADDRESS" envDefault:":9090"`

	// TLSCertFile and TLSKeyFile, if both set, enable TLS on the gRPC
	// listener.
	TLSCertFile string `env:"IRONFORGED_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"IRONFORGED_TLS_KEY_FILE"`

	// BusCapacity is the per-subscriber asynchronous-handler buffer
	// capacity, overriding the specification's default of 16 (§9 notes
	// configurability as a compatible extension).
	BusCapacity int `env:"IRONFORGED_BUS_CAPACITY" envDefault:"16"`

	// PaperMCAPIBaseURL is the base URL of the PaperMC build metadata
	// API, in the form minecraft.NewPaperClient takes. The serve command
	// does not read it.
	PaperMCAPIBaseURL string `env:"IRONFORGED_PAPERMC_API_BASE_URL" envDefault:"https://api.papermc.io"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// MustLoad parses Config from the process environment and panics on
// failure. Intended for use at process startup only.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
