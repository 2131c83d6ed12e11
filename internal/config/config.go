package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"MarketCycles/internal/model"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Symbol    string `yaml:"symbol"`
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
		Resample  string `yaml:"resample"` // "daily" or "weekly"
	} `yaml:"data_source"`
	Analysis struct {
		RecoveryLimit float64 `yaml:"recovery_limit"`
	} `yaml:"analysis"`
	Output struct {
		Dir       string `yaml:"dir"`
		BearCSV   string `yaml:"bear_csv"`
		BullCSV   string `yaml:"bull_csv"`
		ChartHTML string `yaml:"chart_html"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKET_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("START_DATE"); v != "" {
		cfg.DataSource.StartDate = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		cfg.DataSource.EndDate = v
	}
	if v := os.Getenv("RECOVERY_LIMIT"); v != "" {
		var limit float64
		if _, err := fmt.Sscanf(v, "%f", &limit); err == nil {
			cfg.Analysis.RecoveryLimit = limit
		}
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "^GSPC"
	}
	if cfg.DataSource.StartDate == "" {
		cfg.DataSource.StartDate = "1927-12-29"
	}
	if cfg.DataSource.EndDate == "" {
		cfg.DataSource.EndDate = "2023-12-06"
	}
	if cfg.DataSource.Resample == "" {
		cfg.DataSource.Resample = "weekly"
	}
	if cfg.Analysis.RecoveryLimit == 0 {
		cfg.Analysis.RecoveryLimit = 0.20
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Output.BearCSV == "" {
		cfg.Output.BearCSV = "bear_market.csv"
	}
	if cfg.Output.BullCSV == "" {
		cfg.Output.BullCSV = "bull_market.csv"
	}
	if cfg.Output.ChartHTML == "" {
		cfg.Output.ChartHTML = "market_cycles.html"
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 0 8 * * 1"
	}

	return cfg, nil
}

// Validate checks the configuration before anything reaches the classifier.
func (c *Config) Validate() error {
	if !(c.Analysis.RecoveryLimit > 0) {
		return fmt.Errorf("%w: analysis.recovery_limit must be positive, got %v",
			model.ErrInvalidArgument, c.Analysis.RecoveryLimit)
	}
	if c.DataSource.Resample != "daily" && c.DataSource.Resample != "weekly" {
		return fmt.Errorf("%w: data_source.resample must be daily or weekly, got %q",
			model.ErrInvalidArgument, c.DataSource.Resample)
	}
	start, end, err := c.Window()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start_date %s is not before end_date %s",
			model.ErrInvalidArgument, c.DataSource.StartDate, c.DataSource.EndDate)
	}
	return nil
}

// Window parses the configured date range.
func (c *Config) Window() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, c.DataSource.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad start_date %q",
			model.ErrInvalidArgument, c.DataSource.StartDate)
	}
	end, err = time.Parse(dateLayout, c.DataSource.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad end_date %q",
			model.ErrInvalidArgument, c.DataSource.EndDate)
	}
	return start, end, nil
}

// BearCSVPath returns the full path of the bear segments file.
func (c *Config) BearCSVPath() string { return filepath.Join(c.Output.Dir, c.Output.BearCSV) }

// BullCSVPath returns the full path of the bull segments file.
func (c *Config) BullCSVPath() string { return filepath.Join(c.Output.Dir, c.Output.BullCSV) }

// ChartPath returns the full path of the rendered chart.
func (c *Config) ChartPath() string { return filepath.Join(c.Output.Dir, c.Output.ChartHTML) }
