package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Config controls the PDF text extractor.
type Config struct {
	// MaxPages caps how many pages are read per document. 0 = no limit.
	MaxPages int
	// Preflight runs a structural validation of the PDF before any text is
	// pulled out, so corrupt uploads fail with a clear error.
	Preflight bool
}

// PDFExtractor converts a PDF byte stream into concatenated per-page text.
type PDFExtractor struct {
	cfg    Config
	conf   *model.Configuration
	logger *slog.Logger
}

func NewPDFExtractor(cfg Config, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{cfg: cfg, conf: model.NewDefaultConfiguration(), logger: logger}
}

// Extract reads every page's text layer in page order. A page without an
// extractable text layer contributes an empty string; a document that cannot
// be opened at all is a hard failure.
func (e *PDFExtractor) Extract(ctx context.Context, doc []byte) (TextExtractionResult, error) {
	start := time.Now()

	var warnings []string
	if e.cfg.Preflight {
		pctx, err := api.ReadContext(bytes.NewReader(doc), e.conf)
		if err != nil {
			return TextExtractionResult{}, fmt.Errorf("read pdf: %w", err)
		}
		if err := api.ValidateContext(pctx); err != nil {
			// Malformed but readable PDFs still get a text pass.
			warnings = append(warnings, fmt.Sprintf("preflight: %v", err))
			e.logger.Warn("pdf preflight validation failed", "error", err)
		}
	}

	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	if e.cfg.MaxPages > 0 && numPages > e.cfg.MaxPages {
		warnings = append(warnings, fmt.Sprintf("document has %d pages, reading first %d", numPages, e.cfg.MaxPages))
		numPages = e.cfg.MaxPages
	}

	var parts []string
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			parts = append(parts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			parts = append(parts, "")
			continue
		}
		parts = append(parts, text)
	}

	res := TextExtractionResult{
		Text:     strings.Join(parts, "\n"),
		Pages:    numPages,
		Duration: time.Since(start),
		Warnings: warnings,
	}
	e.logger.Debug("extract.pdf.ok", "pages", res.Pages, "bytes", len(doc), "elapsed_ms", res.Duration.Milliseconds())
	return res, nil
}
