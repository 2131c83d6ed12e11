package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"MarketCycles/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Symbol != "^GSPC" {
		t.Errorf("default symbol = %q, want ^GSPC", cfg.DataSource.Symbol)
	}
	if cfg.DataSource.StartDate != "1927-12-29" || cfg.DataSource.EndDate != "2023-12-06" {
		t.Errorf("default window = %s..%s", cfg.DataSource.StartDate, cfg.DataSource.EndDate)
	}
	if cfg.Analysis.RecoveryLimit != 0.20 {
		t.Errorf("default recovery limit = %v, want 0.20", cfg.Analysis.RecoveryLimit)
	}
	if cfg.DataSource.Resample != "weekly" {
		t.Errorf("default resample = %q, want weekly", cfg.DataSource.Resample)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_source:
  symbol: AAPL
  start_date: "2010-01-01"
  end_date: "2020-01-01"
analysis:
  recovery_limit: 0.35
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MARKET_SYMBOL", "MSFT")
	t.Setenv("RECOVERY_LIMIT", "0.10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Symbol != "MSFT" {
		t.Errorf("env should override file symbol, got %q", cfg.DataSource.Symbol)
	}
	if cfg.Analysis.RecoveryLimit != 0.10 {
		t.Errorf("env should override file recovery limit, got %v", cfg.Analysis.RecoveryLimit)
	}
	if cfg.DataSource.StartDate != "2010-01-01" {
		t.Errorf("file start_date lost, got %q", cfg.DataSource.StartDate)
	}
}

func TestValidate_Failures(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	neg := base()
	neg.Analysis.RecoveryLimit = -0.2
	if err := neg.Validate(); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("negative limit: expected ErrInvalidArgument, got %v", err)
	}

	inverted := base()
	inverted.DataSource.StartDate = "2023-01-01"
	inverted.DataSource.EndDate = "2020-01-01"
	if err := inverted.Validate(); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("inverted window: expected ErrInvalidArgument, got %v", err)
	}

	badDate := base()
	badDate.DataSource.StartDate = "not-a-date"
	if err := badDate.Validate(); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("bad date: expected ErrInvalidArgument, got %v", err)
	}

	badResample := base()
	badResample.DataSource.Resample = "monthly"
	if err := badResample.Validate(); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("bad resample: expected ErrInvalidArgument, got %v", err)
	}
}
