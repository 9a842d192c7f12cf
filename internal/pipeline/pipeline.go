// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"migration-report-go/internal/aggregator"
	"migration-report-go/internal/extractor"
	"migration-report-go/internal/logger"
	"migration-report-go/internal/normalizer"
)

// Options controls which directories are visited and how records are
// grouped.
type Options struct {
	DirMarker    string
	MarketPrefix string
	LogFileName  string
	HomeMarket   string
	Fixup        extractor.FixupConfig

	// Filter reports whether a market is processed. Nil processes all.
	Filter func(market string) bool
}

// Renderer receives the finished aggregates.
type Renderer interface {
	Render(res aggregator.Result) error
}

// Stats summarizes one run.
type Stats struct {
	Processed []string `json:"processed"`
	Skipped   []string `json:"skipped"`  // log file missing
	Filtered  []string `json:"filtered"` // excluded by Filter
	Records   int      `json:"records"`
}

// Driver walks a root directory one market at a time. A Driver must not
// be used from more than one goroutine.
type Driver struct {
	opts  Options
	log   *logger.Logger
	stats Stats
}

func New(opts Options, log *logger.Logger) *Driver {
	if log == nil {
		log = logger.New()
	}
	return &Driver{opts: opts, log: log.Component("pipeline")}
}

// Stats returns the counters of the last Run.
func (d *Driver) Stats() Stats { return d.stats }

// Run aggregates every market under root. Markets are processed in
// directory name order. A missing log file skips its market; any other
// failure aborts the run and no result is returned.
func (d *Driver) Run(ctx context.Context, root string) (aggregator.Result, error) {
	d.stats = Stats{}
	engine := aggregator.New(d.opts.HomeMarket)

	entries, err := os.ReadDir(root)
	if err != nil {
		return aggregator.Result{}, fmt.Errorf("read root: %w", err)
	}

	d.log.WithField("root", root).Info("iterating through all markets")
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return aggregator.Result{}, err
		}
		name := entry.Name()
		if !strings.Contains(name, d.opts.DirMarker) {
			continue
		}
		dir := filepath.Join(root, name)
		if !isDir(entry, dir) {
			continue
		}
		market := strings.TrimPrefix(name, d.opts.MarketPrefix)
		if d.opts.Filter != nil && !d.opts.Filter(market) {
			d.stats.Filtered = append(d.stats.Filtered, market)
			continue
		}
		if err := d.runMarket(engine, dir, market); err != nil {
			return aggregator.Result{}, err
		}
	}

	if len(d.stats.Processed) == 0 {
		d.log.WithField("root", root).Warn("no market logs found")
	}
	d.log.WithFields(map[string]interface{}{
		"processed": len(d.stats.Processed),
		"skipped":   len(d.stats.Skipped),
		"filtered":  len(d.stats.Filtered),
		"records":   d.stats.Records,
	}).Info("traversal complete")
	return engine.Snapshot(), nil
}

func (d *Driver) runMarket(engine *aggregator.Engine, dir, market string) error {
	log := d.log.WithField("market", market)
	path := filepath.Join(dir, d.opts.LogFileName)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("file", d.opts.LogFileName).Warn("log file not found, skipping market")
		d.stats.Skipped = append(d.stats.Skipped, market)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	start := time.Now()
	log.WithField("size_mb", info.Size()/1024/1024).Info("working on market")

	fixed, err := extractor.Fixup(path, market, d.opts.Fixup)
	if err != nil {
		return err
	}
	if fixed {
		log.WithField("sequence", d.opts.Fixup.Sequence).Info("replaced malformed character references")
	}

	n := 0
	for rec, err := range extractor.ExtractFile(path, market) {
		if err != nil {
			return err
		}
		engine.Ingest(rec, normalizer.Normalize(rec.Message))
		n++
	}

	d.stats.Processed = append(d.stats.Processed, market)
	d.stats.Records += n
	log.WithFields(map[string]interface{}{
		"records":     n,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("market done")
	return nil
}

// Generate runs the traversal and hands the result to r. Nothing is
// rendered when the traversal fails.
func (d *Driver) Generate(ctx context.Context, root string, r Renderer) error {
	res, err := d.Run(ctx, root)
	if err != nil {
		return err
	}
	return r.Render(res)
}

func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
