package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/constants"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/export"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/extract"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/parse"
)

// Upload is one PDF handed to the pipeline: raw bytes plus the name it
// arrived under. Uploads are transient; nothing outlives the batch.
type Upload struct {
	Name string
	Data []byte
}

// DocumentResult is the outcome of processing a single upload.
type DocumentResult struct {
	ID           uuid.UUID
	SourceName   string
	OrderID      string
	Status       constants.DocStatus
	Table        parse.Table
	ArtifactName string
	XLSX         []byte
	Pages        int
	Occurrences  int // raw code occurrences before aggregation
	Err          error
}

// Processor coordinates text extraction, parsing, aggregation and export for
// one document at a time. It holds no per-document state and is safe to reuse
// across batches.
type Processor struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Parser    *parse.ItemParser
	Exporter  *export.Service
}

func NewProcessor(tx extract.TextExtractor, parser *parse.ItemParser, exporter *export.Service, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = parse.NewItemParser(parse.DefaultQuantityWindow)
	}
	if exporter == nil {
		exporter = export.NewService(logger)
	}
	return &Processor{Logger: logger, Extractor: tx, Parser: parser, Exporter: exporter}
}

// ProcessDocument runs the full per-document pipeline. A document with no
// extractable text or no matching items is not an error: it yields an empty
// table and a validly named spreadsheet. Extraction failure is the only hard
// failure, reported in both the result and the returned error.
func (p *Processor) ProcessDocument(ctx context.Context, up Upload) (DocumentResult, error) {
	res := DocumentResult{ID: uuid.New(), SourceName: up.Name}

	ext, err := p.Extractor.Extract(ctx, up.Data)
	if err != nil {
		res.Status = constants.DocStatusFailed
		res.OrderID = parse.ResolveOrderID("", up.Name)
		res.Err = err
		p.Logger.Error("processor.extract.failed", "doc_id", res.ID, "source", up.Name, "err", err)
		return res, err
	}
	res.Pages = ext.Pages
	for _, w := range ext.Warnings {
		p.Logger.Warn("processor.extract.warning", "doc_id", res.ID, "source", up.Name, "warning", w)
	}

	res.OrderID = parse.ResolveOrderID(ext.Text, up.Name)
	items := p.Parser.Parse(ext.Text)
	res.Occurrences = len(items)
	res.Table = parse.Aggregate(items)

	res.ArtifactName = constants.ArtifactName(res.OrderID)
	xlsx, err := p.Exporter.WriteTableXLSX(res.Table)
	if err != nil {
		res.Status = constants.DocStatusFailed
		res.Err = err
		p.Logger.Error("processor.export.failed", "doc_id", res.ID, "order_id", res.OrderID, "err", err)
		return res, err
	}
	res.XLSX = xlsx

	if len(res.Table.Rows) == 0 {
		res.Status = constants.DocStatusEmpty
	} else {
		res.Status = constants.DocStatusOK
	}
	p.Logger.Info("processor.document.ok",
		"doc_id", res.ID,
		"source", up.Name,
		"order_id", res.OrderID,
		"pages", res.Pages,
		"occurrences", res.Occurrences,
		"rows", len(res.Table.Rows),
	)
	return res, nil
}
