package extractor

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"migration-report-go/internal/types"
)

const sampleLog = `<?xml version="1.0" encoding="utf-8"?>
<ConvertAssets>
  <Asset>
    <AssetId>HA001</AssetId>
    <Errors>
      <Error><Level>Error</Level><Message>Unable to resolve external rId7: line one
line two</Message></Error>
      <Error><Level>Warning</Level><Message>Expandos are used 2 time(s) in this asset.</Message></Error>
    </Errors>
  </Asset>
  <Asset>
    <AssetId>HA002</AssetId>
    <Errors/>
  </Asset>
  <Asset>
    <AssetId>HA003</AssetId>
  </Asset>
  <Asset>
    <AssetId>HA004</AssetId>
    <Errors>
      <Error><Level>Error</Level><Message>Exception: boom</Message></Error>
    </Errors>
  </Asset>
</ConvertAssets>`

func collect(t *testing.T, seq iter.Seq2[types.RawRecord, error]) ([]types.RawRecord, error) {
	t.Helper()
	var out []types.RawRecord
	for rec, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func TestExtract(t *testing.T) {
	recs, err := collect(t, Extract(strings.NewReader(sampleLog), "English"))
	require.NoError(t, err)
	assert.Equal(t, []types.RawRecord{
		{Market: "English", AssetID: "HA001", Level: "Error", Message: "Unable to resolve external rId7: line one line two"},
		{Market: "English", AssetID: "HA001", Level: "Warning", Message: "Expandos are used 2 time(s) in this asset."},
		{Market: "English", AssetID: "HA004", Level: "Error", Message: "Exception: boom"},
	}, recs)
}

func TestExtractStopsEarly(t *testing.T) {
	n := 0
	for range Extract(strings.NewReader(sampleLog), "English") {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestExtractMalformed(t *testing.T) {
	doc := `<ConvertAssets><Asset><AssetId>HA1</Wrong></Asset></ConvertAssets>`
	_, err := collect(t, Extract(strings.NewReader(doc), "French"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, "French", pe.Market)
}

func TestExtractMissingAssetID(t *testing.T) {
	doc := `<ConvertAssets><Asset><Errors/></Asset></ConvertAssets>`
	_, err := collect(t, Extract(strings.NewReader(doc), "French"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, errMissingAssetID)
}

func TestFlattenLines(t *testing.T) {
	assert.Equal(t, "a b c d", flattenLines("a\r\nb\nc\rd"))
	assert.Equal(t, "plain", flattenLines("plain"))
}

const germanLog = `<ConvertAssets><Asset><AssetId>HA9</AssetId><Errors><Error><Level>Error</Level><Message>Bad&#xB;char</Message></Error></Errors></Asset></ConvertAssets>`

func writeLog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ConvertAssets.xml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFixup(t *testing.T) {
	path := writeLog(t, germanLog)

	changed, err := Fixup(path, "German", DefaultFixup)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "&#xB;")
	assert.Contains(t, string(data), "Bad char")

	changed, err = Fixup(path, "GERMAN", DefaultFixup)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFixupOtherMarketUntouched(t *testing.T) {
	path := writeLog(t, germanLog)
	changed, err := Fixup(path, "French", DefaultFixup)
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, germanLog, string(data))
}

func TestExtractFile(t *testing.T) {
	path := writeLog(t, germanLog)
	_, err := Fixup(path, "german", DefaultFixup)
	require.NoError(t, err)
	recs, err := collect(t, ExtractFile(path, "german"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Bad char", recs[0].Message)
	assert.Equal(t, "german", recs[0].Market)
}

func TestExtractFileParseErrorCarriesPath(t *testing.T) {
	path := writeLog(t, germanLog)
	_, err := collect(t, ExtractFile(path, "French"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, path, pe.Path)
}

func TestExtractFileMissing(t *testing.T) {
	_, err := collect(t, ExtractFile(filepath.Join(t.TempDir(), "nope.xml"), "French"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
