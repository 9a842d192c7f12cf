// Package normalizer maps free-text migration error messages to a small
// set of canonical categories.
package normalizer

import (
	"regexp"
	"strings"
)

type rule struct {
	pattern *regexp.Regexp
	label   string
}

// rules run in order against the current candidate, so a rule sees the
// output of every earlier rule. Do not reorder.
var rules = []rule{
	{regexp.MustCompile(`^Bookmark (.*?) maps to different aliases$`), LabelBookmarkAliases},
	{regexp.MustCompile(`^The TOC instruction .*? has excluded the following Headings from being included in the TOC$`), LabelTOCExclusion},
	{regexp.MustCompile(`^Token .*? inserted within a .*? construct, which is not allowed in DDUEML schema\. Replacing with token text .*? instead\.$`), LabelTokenConstruct},
	{regexp.MustCompile(`^Unable to resolve external .*?$`), LabelUnresolvedExternal},
	{regexp.MustCompile(`^Exception$`), LabelNullReference},
	{regexp.MustCompile(`^Token .*? inserted within TOC construct, which is not allowed in DDUEML schema\. Replacing with token.*?$`), LabelTokenConstruct},
	{regexp.MustCompile(`^Token .*? encountered inside a .*?, which is not allowed in DDUEML schema\. Replaced with token text .*?$`), LabelTokenConstruct},
	{regexp.MustCompile(`^Token .*? encountered inside TOC, which is not allowed in DDUEML schema\. Replacing with token.*?$`), LabelTokenConstruct},
	{regexp.MustCompile(`^Discarded.*? unsupported Content Control .*?$`), LabelContentControl},
	// unanchored: only the matched text is rewritten
	{regexp.MustCompile(`Multiple nodes found for`), LabelMultipleNodes},
	{regexp.MustCompile(`^Asset contains .*? instance\(s\) of the ExcelWorkbook Content Control\. Please see OM$`), LabelExcelWorkbook},
	{regexp.MustCompile(`^Reference to VA Asset .*? which does not have an MSN UUID\.$`), LabelVAMissingUUID},
	{regexp.MustCompile(`^Reference undefined or deleted VA Asset .*?$`), LabelVAUndefined},
	{regexp.MustCompile(`^"?Text for .*? Token .*?$`), LabelTokenTextMismatch},
	{regexp.MustCompile(`^This asset references non-searchable VA asset .*? which will cause this VA asset to be included in the migration\.$`), LabelVANonSearchable},
	{regexp.MustCompile(`^"?Document .* AltText \(.*$`), LabelAltTextMismatch},
	{regexp.MustCompile(`^\d* Token\(s\) in TOC, check TOC for missing or duplicate TOC text\.$`), LabelTokenInTOC},
	{regexp.MustCompile(`^Alert .* found nested inside .*\..*$`), LabelNestedAlert},
	{regexp.MustCompile(`^Asset contains \d* sub-TOC\(s\),.*$`), LabelSubTOCs},
	{regexp.MustCompile(`^Expandos are used \d* time\(s\) in this asset\.$`), LabelExpandos},
	{regexp.MustCompile(`^.* item encountered without a bookmark, creating new bookmark$`), LabelHeaderWithoutBookmark},
	{regexp.MustCompile(`^Reference to .* Asset.*which has known errors.$`), LabelKnownErrorsReference},
}

// Normalize returns the canonical category for a raw error message.
//
// Only the text before the first colon is categorized. Every rule is
// applied in table order to the running result, then apostrophes are
// removed.
func Normalize(message string) string {
	if message == "" {
		return ""
	}
	candidate := message
	if i := strings.IndexByte(message, ':'); i > 0 {
		candidate = message[:i]
	}
	for _, r := range rules {
		candidate = r.apply(candidate)
	}
	return strings.ReplaceAll(candidate, "'", "")
}

func (r rule) apply(candidate string) string {
	return r.pattern.ReplaceAllLiteralString(candidate, r.label)
}
