// Package config holds the settings of a report run. Values come from
// environment variables, optionally overlaid by a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"migration-report-go/internal/normalizer"
)

type Config struct {
	Root   string
	OutDir string

	// Market directories are named <MarketPrefix><Market> and only
	// directories containing DirMarker are visited.
	DirMarker    string
	MarketPrefix string
	LogFileName  string

	HomeMarket string
	HomeLabel  string
	OtherLabel string

	FixupMarket   string
	FixupSequence string

	IncludeMarkets []string
	ExcludeMarkets []string

	DetailsDenyList normalizer.DenyList
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		Root:            os.Getenv("REPORT_ROOT"),
		OutDir:          envOr("REPORT_OUT_DIR", "."),
		DirMarker:       envOr("REPORT_DIR_MARKER", "OCMS2DX"),
		MarketPrefix:    envOr("REPORT_MARKET_PREFIX", "OCMS2DX-"),
		LogFileName:     envOr("REPORT_LOG_FILE", "ConvertAssets.xml"),
		HomeMarket:      envOr("REPORT_HOME_MARKET", "english"),
		HomeLabel:       envOr("REPORT_HOME_LABEL", "Home"),
		OtherLabel:      envOr("REPORT_OTHER_LABEL", "Other"),
		FixupMarket:     envOr("REPORT_FIXUP_MARKET", "german"),
		FixupSequence:   envOr("REPORT_FIXUP_SEQUENCE", "&#xB;"),
		IncludeMarkets:  splitList(os.Getenv("REPORT_INCLUDE_MARKETS")),
		ExcludeMarkets:  splitList(os.Getenv("REPORT_EXCLUDE_MARKETS")),
		DetailsDenyList: normalizer.DefaultDetailsDenyList(),
	}
}

// fileConfig is the YAML layout. Empty fields leave the current value.
type fileConfig struct {
	Root            string               `yaml:"Root"`
	OutDir          string               `yaml:"OutDir"`
	DirMarker       string               `yaml:"DirMarker"`
	MarketPrefix    string               `yaml:"MarketPrefix"`
	LogFileName     string               `yaml:"LogFileName"`
	HomeMarket      string               `yaml:"HomeMarket"`
	HomeLabel       string               `yaml:"HomeLabel"`
	OtherLabel      string               `yaml:"OtherLabel"`
	FixupMarket     string               `yaml:"FixupMarket"`
	FixupSequence   string               `yaml:"FixupSequence"`
	IncludeMarkets  []string             `yaml:"IncludeMarkets"`
	ExcludeMarkets  []string             `yaml:"ExcludeMarkets"`
	DetailsDenyList *normalizer.DenyList `yaml:"DetailsDenyList"`
}

// ApplyFile overlays the YAML file at path onto c.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&c.Root, fc.Root)
	setIf(&c.OutDir, fc.OutDir)
	setIf(&c.DirMarker, fc.DirMarker)
	setIf(&c.MarketPrefix, fc.MarketPrefix)
	setIf(&c.LogFileName, fc.LogFileName)
	setIf(&c.HomeMarket, fc.HomeMarket)
	setIf(&c.HomeLabel, fc.HomeLabel)
	setIf(&c.OtherLabel, fc.OtherLabel)
	setIf(&c.FixupMarket, fc.FixupMarket)
	setIf(&c.FixupSequence, fc.FixupSequence)
	if len(fc.IncludeMarkets) > 0 {
		c.IncludeMarkets = fc.IncludeMarkets
	}
	if len(fc.ExcludeMarkets) > 0 {
		c.ExcludeMarkets = fc.ExcludeMarkets
	}
	if fc.DetailsDenyList != nil {
		c.DetailsDenyList = *fc.DetailsDenyList
	}
	return nil
}

// Validate checks the settings a run cannot do without.
func (c Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.New("root directory not set")
	case c.OutDir == "":
		return errors.New("output directory not set")
	case c.LogFileName == "":
		return errors.New("log file name not set")
	}
	return nil
}

// MarketFilter returns the include predicate built from the market lists,
// or nil when no filtering is configured. Names compare case-insensitively.
// An include list, when present, wins over the exclude list.
func (c Config) MarketFilter() func(market string) bool {
	include := toSet(c.IncludeMarkets)
	exclude := toSet(c.ExcludeMarkets)
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}
	return func(market string) bool {
		m := strings.ToLower(market)
		if len(include) > 0 {
			_, ok := include[m]
			return ok
		}
		_, skip := exclude[m]
		return !skip
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, m := range list {
		set[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return set
}
