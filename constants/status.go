package constants

// DocStatus is the canonical outcome for one processed document.
type DocStatus string

const (
	DocStatusOK     DocStatus = "OK"     // parsed, artifact produced
	DocStatusEmpty  DocStatus = "EMPTY"  // no items found; artifact still produced
	DocStatusFailed DocStatus = "FAILED" // text extraction failed, no artifact
)
