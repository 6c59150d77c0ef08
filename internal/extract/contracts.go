package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: PDF bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, doc []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	// Text is the concatenation of all page texts, newline separated.
	// Pages with no extractable text layer contribute an empty string.
	Text     string
	Pages    int
	Duration time.Duration
	Warnings []string
}
