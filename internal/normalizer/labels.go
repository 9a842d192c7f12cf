package normalizer

// Canonical labels produced by the rule table. Labels referenced outside
// this package are exported so callers never match on copied literals.
const (
	LabelBookmarkAliases       = "Bookmark maps to different aliases"
	LabelTOCExclusion          = "TOC Exclusion"
	LabelTokenConstruct        = "Token inserted within a construct that is not allowed in DDUEML schema."
	LabelUnresolvedExternal    = "Unable to resolve external rId"
	LabelNullReference         = "Object reference not set to an instance of an object"
	LabelContentControl        = "Discarded unsupported Content Control"
	LabelMultipleNodes         = "Multiple nodes found for Wordml attribute"
	LabelExcelWorkbook         = "Asset contains instances of the ExcelWorkbook Content Control. Please see OM"
	LabelVAMissingUUID         = "Reference to VA Asset which does not have an MSN UUID."
	LabelVAUndefined           = "Reference undefined or deleted VA Asset"
	LabelTokenTextMismatch     = "Text for Token does not match the current content text. Removing token and injecting content text instead."
	LabelVANonSearchable       = "This asset references a non-searchable VA asset, which will cause this VA asset to be included in the migration."
	LabelAltTextMismatch       = "AltText Mismatch"
	LabelTokenInTOC            = "Token in TOC"
	LabelNestedAlert           = "Unsupported nested Alert element"
	LabelSubTOCs               = "Asset contains sub-TOCs"
	LabelExpandos              = "Asset contains expandos"
	LabelHeaderWithoutBookmark = "Header encountered without a bookmark, creating new bookmark"
	LabelKnownErrorsReference  = "Reference to asset that has known errors"
)

// DenyList is a versioned set of categories kept out of the Details sheet.
type DenyList struct {
	Version string   `yaml:"Version"`
	Labels  []string `yaml:"Labels"`
}

// DefaultDetailsDenyList lists the categories whose volume makes the
// Details sheet unusable. Overview and Totals still count them.
func DefaultDetailsDenyList() DenyList {
	return DenyList{
		Version: "1",
		Labels: []string{
			LabelAltTextMismatch,
			LabelTokenTextMismatch,
			LabelHeaderWithoutBookmark,
		},
	}
}

// Contains reports whether category is deny-listed. Matching is exact.
func (d DenyList) Contains(category string) bool {
	for _, l := range d.Labels {
		if l == category {
			return true
		}
	}
	return false
}
