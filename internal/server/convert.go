package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/constants"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/common"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/pipeline"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZip  = "application/zip"
)

// handleConvert accepts one or more PDFs as multipart form files under the
// "files" field and responds with the single spreadsheet, or with the ZIP
// bundle when the batch produced more than one artifact.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	reqID := common.RequestIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.logger.Warn("convert.bad_request", "request_id", reqID, "err", err)
		http.Error(w, "malformed multipart upload", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		http.Error(w, `no files uploaded; use the "files" form field`, http.StatusBadRequest)
		return
	}

	uploads := make([]pipeline.Upload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("open upload %q: %v", fh.Filename, err), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("read upload %q: %v", fh.Filename, err), http.StatusBadRequest)
			return
		}
		uploads = append(uploads, pipeline.Upload{Name: fh.Filename, Data: data})
	}

	batch, err := s.proc.ProcessBatch(r.Context(), uploads)
	if err != nil {
		s.logger.Error("convert.batch_failed", "request_id", reqID, "err", err)
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	if batch.Artifacts.Len() == 0 {
		// Every document failed extraction. Empty-but-valid PDFs would still
		// have produced artifacts, so this means none of the uploads were
		// readable PDFs.
		s.logger.Warn("convert.no_artifacts", "request_id", reqID, "uploads", len(uploads))
		http.Error(w, "none of the uploaded files could be processed", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("X-Document-Count", fmt.Sprintf("%d", batch.Succeeded()))

	if batch.Artifacts.Len() == 1 {
		name := batch.Artifacts.Names()[0]
		w.Header().Set("Content-Type", mimeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = w.Write(batch.Artifacts.Get(name))
		return
	}

	w.Header().Set("Content-Type", mimeZip)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.ArchiveName))
	_, _ = w.Write(batch.Archive)
}
