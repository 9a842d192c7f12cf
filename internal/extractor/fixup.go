package extractor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// FixupConfig names the one market whose log carries a character
// reference the XML parser rejects, and that reference.
type FixupConfig struct {
	Market   string
	Sequence string
}

// DefaultFixup is the German log's vertical-tab reference.
var DefaultFixup = FixupConfig{Market: "german", Sequence: "&#xB;"}

// Fixup rewrites path in place, replacing every cfg.Sequence with a space,
// when market is cfg.Market (case-insensitive). It reports whether the
// file changed. Running it twice is a no-op.
func Fixup(path, market string, cfg FixupConfig) (bool, error) {
	if cfg.Market == "" || cfg.Sequence == "" || !strings.EqualFold(market, cfg.Market) {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	seq := []byte(cfg.Sequence)
	if !bytes.Contains(data, seq) {
		return false, nil
	}
	fixed := bytes.ReplaceAll(data, seq, []byte(" "))
	if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
