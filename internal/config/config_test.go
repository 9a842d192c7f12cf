package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"migration-report-go/internal/normalizer"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"REPORT_ROOT", "REPORT_OUT_DIR", "REPORT_HOME_MARKET", "REPORT_INCLUDE_MARKETS", "REPORT_EXCLUDE_MARKETS"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "OCMS2DX", c.DirMarker)
	assert.Equal(t, "OCMS2DX-", c.MarketPrefix)
	assert.Equal(t, "ConvertAssets.xml", c.LogFileName)
	assert.Equal(t, "english", c.HomeMarket)
	assert.Equal(t, "german", c.FixupMarket)
	assert.Equal(t, "&#xB;", c.FixupSequence)
	assert.Equal(t, ".", c.OutDir)
	assert.Empty(t, c.IncludeMarkets)
	assert.Nil(t, c.MarketFilter())
	assert.Equal(t, normalizer.DefaultDetailsDenyList(), c.DetailsDenyList)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REPORT_ROOT", "/mnt/out")
	t.Setenv("REPORT_HOME_MARKET", "french")
	t.Setenv("REPORT_EXCLUDE_MARKETS", " Albanian, amharic ,,")
	c := Load()
	assert.Equal(t, "/mnt/out", c.Root)
	assert.Equal(t, "french", c.HomeMarket)
	assert.Equal(t, []string{"Albanian", "amharic"}, c.ExcludeMarkets)
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	body := `
Root: /srv/a2a
HomeMarket: English
IncludeMarkets: [English, German]
DetailsDenyList:
  Version: "2"
  Labels:
    - AltText Mismatch
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c := Load()
	c.LogFileName = "Custom.xml"
	require.NoError(t, c.ApplyFile(path))
	assert.Equal(t, "/srv/a2a", c.Root)
	assert.Equal(t, "English", c.HomeMarket)
	assert.Equal(t, "Custom.xml", c.LogFileName)
	assert.Equal(t, []string{"English", "German"}, c.IncludeMarkets)
	assert.Equal(t, normalizer.DenyList{Version: "2", Labels: []string{"AltText Mismatch"}}, c.DetailsDenyList)
}

func TestApplyFileErrors(t *testing.T) {
	c := Load()
	assert.Error(t, c.ApplyFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Root: [unterminated"), 0o644))
	assert.Error(t, c.ApplyFile(path))
}

func TestMarketFilter(t *testing.T) {
	c := Config{ExcludeMarkets: []string{"Albanian"}}
	f := c.MarketFilter()
	require.NotNil(t, f)
	assert.False(t, f("albanian"))
	assert.True(t, f("French"))

	c = Config{IncludeMarkets: []string{"english", "GERMAN"}, ExcludeMarkets: []string{"german"}}
	f = c.MarketFilter()
	assert.True(t, f("English"))
	assert.True(t, f("German"))
	assert.False(t, f("French"))
}

func TestValidate(t *testing.T) {
	c := Load()
	c.Root = ""
	assert.Error(t, c.Validate())
	c.Root = "/data"
	assert.NoError(t, c.Validate())
}
