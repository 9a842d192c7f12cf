// Package extractor reads migration error records out of a market's
// ConvertAssets.xml log.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"migration-report-go/internal/types"
)

// Element names in ConvertAssets.xml.
const (
	assetPath      = "//Asset"
	assetIDElem    = "AssetId"
	errorsElem     = "Errors"
	errorElem      = "Error"
	errorLevelElem = "Level"
	errorMsgElem   = "Message"
)

// ParseError reports a log that is not well-formed. It aborts the run.
type ParseError struct {
	Market string
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse %s log: %v", e.Market, e.Err)
	}
	return fmt.Sprintf("parse %s log %s: %v", e.Market, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errMissingAssetID = errors.New("missing AssetId element")

// Extract streams the error records of one market's log. The sequence
// stops after yielding the first error. It can only be ranged over once.
func Extract(r io.Reader, market string) iter.Seq2[types.RawRecord, error] {
	return func(yield func(types.RawRecord, error) bool) {
		p, err := xmlquery.CreateStreamParser(r, assetPath)
		if err != nil {
			yield(types.RawRecord{}, &ParseError{Market: market, Err: err})
			return
		}
		for {
			asset, err := p.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(types.RawRecord{}, &ParseError{Market: market, Err: err})
				return
			}
			idNode := asset.SelectElement(assetIDElem)
			if idNode == nil {
				yield(types.RawRecord{}, &ParseError{Market: market, Err: errMissingAssetID})
				return
			}
			assetID := idNode.InnerText()

			errs := asset.SelectElement(errorsElem)
			if errs == nil {
				continue
			}
			for _, e := range errs.SelectElements(errorElem) {
				rec := types.RawRecord{
					Market:  market,
					AssetID: assetID,
					Level:   childText(e, errorLevelElem),
					Message: flattenLines(childText(e, errorMsgElem)),
				}
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}

// ExtractFile streams the records of the log at path. The file is closed
// when iteration ends. Run Fixup first for the market that needs it.
func ExtractFile(path, market string) iter.Seq2[types.RawRecord, error] {
	return func(yield func(types.RawRecord, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(types.RawRecord{}, fmt.Errorf("open %s: %w", path, err))
			return
		}
		defer f.Close()

		for rec, err := range Extract(f, market) {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = path
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

func childText(n *xmlquery.Node, name string) string {
	if c := n.SelectElement(name); c != nil {
		return c.InnerText()
	}
	return ""
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// flattenLines turns every line break into one space.
func flattenLines(s string) string {
	return lineBreaks.Replace(s)
}
