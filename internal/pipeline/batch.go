package pipeline

import (
	"context"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/export"
)

// BatchResult holds the outcome of one upload batch. Documents keeps the
// upload order; Artifacts holds one spreadsheet per successfully processed
// document (last write wins on identifier collisions); Archive is the ZIP
// bundle, nil when no artifact was produced.
type BatchResult struct {
	Documents []DocumentResult
	Artifacts *export.ArtifactSet
	Archive   []byte
}

// Succeeded counts documents that produced an artifact.
func (r BatchResult) Succeeded() int {
	n := 0
	for _, d := range r.Documents {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// ProcessBatch runs every upload through the document pipeline, sequentially
// and in order. A failing document is recorded and skipped; the rest of the
// batch still completes. The archive is only assembled when at least one
// artifact exists.
func (p *Processor) ProcessBatch(ctx context.Context, uploads []Upload) (BatchResult, error) {
	result := BatchResult{Artifacts: export.NewArtifactSet()}

	for _, up := range uploads {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		doc, err := p.ProcessDocument(ctx, up)
		result.Documents = append(result.Documents, doc)
		if err != nil {
			continue
		}
		result.Artifacts.Put(doc.ArtifactName, doc.XLSX)
	}

	if result.Artifacts.Len() > 0 {
		archive, err := export.BundleZip(result.Artifacts)
		if err != nil {
			return result, err
		}
		result.Archive = archive
	}

	p.Logger.Info("processor.batch.done",
		"uploads", len(uploads),
		"succeeded", result.Succeeded(),
		"artifacts", result.Artifacts.Len(),
	)
	return result, nil
}
