package constants

// Export artifact naming. The Unilog import expects these exact Hungarian
// labels, so they are not localized.
const (
	// SheetName is the worksheet every export is written to.
	SheetName = "Kitarolas"

	// HeaderItemCode and HeaderQuantity are the two column headers.
	HeaderItemCode = "Cikkszám"
	HeaderQuantity = "Mennyiség"

	// ArtifactPrefix and ArtifactExt form per-document spreadsheet names:
	// Order_picking_<order id>.xlsx
	ArtifactPrefix = "Order_picking_"
	ArtifactExt    = ".xlsx"

	// ArchiveName is the bundle produced for a batch of documents.
	ArchiveName = "Moovia_unilog_excels.zip"

	// UnknownOrderID is substituted when neither the document text nor the
	// filename yields a usable identifier.
	UnknownOrderID = "ismeretlen"
)

// ArtifactName returns the spreadsheet filename for an order identifier.
func ArtifactName(orderID string) string {
	return ArtifactPrefix + orderID + ArtifactExt
}
