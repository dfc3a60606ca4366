package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/zhanhb/gateway-report/internal/gateway"
)

// Config holds the defaults of the command line options.
type Config struct {
	Input    InputConfig
	Database DatabaseConfig
	Report   ReportConfig
	LogLevel string `env:"GWREPORT_LOG_LEVEL" envDefault:"info"`
}

// InputConfig controls how gateway sections are interpreted.
type InputConfig struct {
	AddressBook    string `env:"GWREPORT_ADDRESS_BOOK"`
	FlagStrategy   string `env:"GWREPORT_FLAG_STRATEGY" envDefault:"group-overrides-mode"`
	Dedup          string `env:"GWREPORT_DEDUP" envDefault:"keep-first"`
	AllowedOptions string `env:"GWREPORT_ALLOWED_OPTIONS"`
}

// DatabaseConfig points at an address book kept in SQL.
type DatabaseConfig struct {
	Driver string `env:"GWREPORT_DB_DRIVER" envDefault:"sqlite3"`
	DSN    string `env:"GWREPORT_DB_DSN"`
}

// ReportConfig controls the rendered output.
type ReportConfig struct {
	Output      string `env:"GWREPORT_OUTPUT" envDefault:"-"`
	Format      string `env:"GWREPORT_FORMAT" envDefault:"csv"`
	DropUnknown bool   `env:"GWREPORT_DROP_UNKNOWN" envDefault:"false"`
	EmptyPolicy string `env:"GWREPORT_EMPTY_POLICY" envDefault:"ignore"`
}

var (
	Formats       = []string{"csv", "xlsx"}
	Drivers       = []string{"sqlite3", "postgres"}
	EmptyPolicies = []string{"ignore", "skip", "error"}
)

// Load reads an optional .env file from the working directory, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// GetAllowedOptions returns the allowed option names as a slice.
func (c *InputConfig) GetAllowedOptions() []string {
	if c.AllowedOptions == "" {
		return nil
	}
	var options []string
	for _, option := range strings.Split(c.AllowedOptions, ",") {
		if option = strings.TrimSpace(option); option != "" {
			options = append(options, option)
		}
	}
	return options
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := gateway.ParseFlagStrategy(c.Input.FlagStrategy); err != nil {
		return fmt.Errorf("GWREPORT_FLAG_STRATEGY: %w", err)
	}
	if _, err := gateway.ParseDedupPolicy(c.Input.Dedup); err != nil {
		return fmt.Errorf("GWREPORT_DEDUP: %w", err)
	}
	if !oneOf(c.Database.Driver, Drivers) {
		return fmt.Errorf("GWREPORT_DB_DRIVER must be one of %s", strings.Join(Drivers, ", "))
	}
	if !oneOf(c.Report.Format, Formats) {
		return fmt.Errorf("GWREPORT_FORMAT must be one of %s", strings.Join(Formats, ", "))
	}
	if !oneOf(c.Report.EmptyPolicy, EmptyPolicies) {
		return fmt.Errorf("GWREPORT_EMPTY_POLICY must be one of %s", strings.Join(EmptyPolicies, ", "))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("GWREPORT_LOG_LEVEL: %w", err)
	}
	return nil
}

func oneOf(value string, values []string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
