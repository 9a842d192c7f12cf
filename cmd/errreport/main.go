package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"migration-report-go/internal/config"
	"migration-report-go/internal/extractor"
	"migration-report-go/internal/logger"
	"migration-report-go/internal/pipeline"
	"migration-report-go/internal/report"
)

const stampLayout = "2006-01-02-15-04"

type flags struct {
	configFile string
	root       string
	outDir     string
	stamp      string
	include    []string
	exclude    []string
	homeMarket string
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVarP(&f.configFile, "config", "c", "", "YAML config file overlaid on the environment")
	fs.StringVarP(&f.root, "root", "r", "", "directory holding one OCMS2DX-<Market> folder per market")
	fs.StringVarP(&f.outDir, "out-dir", "o", "", "directory for the workbook and XML dumps")
	fs.StringVar(&f.stamp, "stamp", "", "timestamp tag for output names (default: now, "+stampLayout+")")
	fs.StringSliceVar(&f.include, "include", nil, "only process these markets")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "skip these markets")
	fs.StringVar(&f.homeMarket, "home-market", "", "market counted in the home columns of Totals")
}

// resolve merges environment, config file and flags, in that order.
func resolve(fs *pflag.FlagSet, f *flags) (config.Config, error) {
	cfg := config.Load()
	if f.configFile != "" {
		if err := cfg.ApplyFile(f.configFile); err != nil {
			return cfg, err
		}
	}
	if fs.Changed("root") {
		cfg.Root = f.root
	}
	if fs.Changed("out-dir") {
		cfg.OutDir = f.outDir
	}
	if fs.Changed("include") {
		cfg.IncludeMarkets = f.include
	}
	if fs.Changed("exclude") {
		cfg.ExcludeMarkets = f.exclude
	}
	if fs.Changed("home-market") {
		cfg.HomeMarket = f.homeMarket
	}
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "errreport",
		Short:         "Build the migration error workbook from per-market ConvertAssets.xml logs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolve(cmd.Flags(), &f)
			if err != nil {
				return err
			}
			stamp := f.stamp
			if stamp == "" {
				stamp = time.Now().Format(stampLayout)
			}
			return run(cmd.Context(), cfg, stamp)
		},
	}
	bindFlags(cmd.Flags(), &f)
	return cmd
}

func run(ctx context.Context, cfg config.Config, stamp string) error {
	log := logger.New().WithRun(cfg.Root)
	log.WithField("service", "migration-report-go").Info("starting report generation")

	outFile := filepath.Join(cfg.OutDir, fmt.Sprintf("ErrorReport_%s.xlsx", stamp))
	driver := pipeline.New(pipeline.Options{
		DirMarker:    cfg.DirMarker,
		MarketPrefix: cfg.MarketPrefix,
		LogFileName:  cfg.LogFileName,
		HomeMarket:   cfg.HomeMarket,
		Fixup:        extractor.FixupConfig{Market: cfg.FixupMarket, Sequence: cfg.FixupSequence},
		Filter:       cfg.MarketFilter(),
	}, log)
	writer := &report.Writer{
		OutFile:    outFile,
		DumpDir:    cfg.OutDir,
		Stamp:      stamp,
		DenyList:   cfg.DetailsDenyList,
		HomeLabel:  cfg.HomeLabel,
		OtherLabel: cfg.OtherLabel,
		Log:        log,
	}

	start := time.Now()
	if err := driver.Generate(ctx, cfg.Root, writer); err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{
		"out_file":    outFile,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("done")
	return nil
}

func main() {
	_ = godotenv.Load() // loads .env

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.New().WithError(err).Error("report generation failed")
		stop()
		os.Exit(1)
	}
}
