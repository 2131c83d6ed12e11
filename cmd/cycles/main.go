package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"MarketCycles/internal/collector"
	"MarketCycles/internal/config"
	"MarketCycles/internal/exporter"
	"MarketCycles/internal/recorder"
	"MarketCycles/internal/scheduler"
)

var (
	flagConfig        string
	flagSymbol        string
	flagStartDate     string
	flagEndDate       string
	flagRecoveryLimit float64
	flagOutDir        string
	flagOffline       bool
	flagWatch         bool
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	rootCmd := &cobra.Command{
		Use:   "cycles",
		Short: "Detect bear and bull market periods in a price history",
		Long: `cycles fetches historical daily closes for one ticker, detects price
extrema, classifies the timeline into bear and bull market segments
using a recovery/decline threshold, and writes two CSV files plus an
HTML chart overlaying the detected regimes on the price series.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "configs/config.yaml", "path to YAML config")
	rootCmd.Flags().StringVar(&flagSymbol, "symbol", "", "ticker symbol (default ^GSPC)")
	rootCmd.Flags().StringVar(&flagStartDate, "start-date", "", "analysis window start, YYYY-MM-DD")
	rootCmd.Flags().StringVar(&flagEndDate, "end-date", "", "analysis window end, YYYY-MM-DD")
	rootCmd.Flags().Float64Var(&flagRecoveryLimit, "recovery-limit", 0, "threshold fraction confirming a trend reversal (default 0.20)")
	rootCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "directory for CSV and chart output")
	rootCmd.Flags().BoolVar(&flagOffline, "offline", false, "use deterministic synthetic data instead of the network")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep running and re-analyze on the configured cron schedule")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if v := os.Getenv("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
		flagConfig = v
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Flags override file and environment.
	if flagSymbol != "" {
		cfg.DataSource.Symbol = flagSymbol
	}
	if flagStartDate != "" {
		cfg.DataSource.StartDate = flagStartDate
	}
	if flagEndDate != "" {
		cfg.DataSource.EndDate = flagEndDate
	}
	if cmd.Flags().Changed("recovery-limit") {
		cfg.Analysis.RecoveryLimit = flagRecoveryLimit
	}
	if flagOutDir != "" {
		cfg.Output.Dir = flagOutDir
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	start, end, err := cfg.Window()
	if err != nil {
		return err
	}

	var source collector.PriceSource
	if flagOffline {
		source = &collector.MockSource{}
	} else {
		source = collector.NewYahooSource(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", source.Name())

	col := collector.NewCollector(source, cfg.DataSource.Symbol, cfg.DataSource.Resample == "weekly")
	sink := exporter.NewCSVSink(cfg.BearCSVPath(), cfg.BullCSVPath())
	chart := exporter.NewHTMLChart(cfg.ChartPath())

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, sink, chart, rec, cfg.Analysis.RecoveryLimit, start, end)

	if !flagWatch {
		return sched.RunNow()
	}

	if err := sched.Register(cfg.Schedule.AnalysisCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if err := sched.RunNow(); err != nil {
		log.Printf("[ERROR] initial analysis: %v", err)
	}

	log.Println("[INFO] watch mode running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return nil
}
