package server

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/extract"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/parse"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/pipeline"
)

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, doc []byte) (extract.TextExtractionResult, error) {
	if string(doc) == "corrupt" {
		return extract.TextExtractionResult{}, errors.New("not a pdf")
	}
	return extract.TextExtractionResult{Text: string(doc), Pages: 1}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	proc := pipeline.NewProcessor(stubExtractor{}, parse.NewItemParser(parse.DefaultQuantityWindow), nil, nil)
	srv, err := New(proc, 1<<20, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestConvertSingleFileReturnsXLSX(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"one.pdf": "Order picking: A1\nV12345 = 2 pcs",
	})
	resp, err := http.Post(ts.URL+"/convert", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, mimeXLSX, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Order_picking_A1.xlsx")
	assert.Equal(t, "1", resp.Header.Get("X-Document-Count"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	blob, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)
}

func TestConvertMultipleFilesReturnsZip(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"one.pdf": "Order picking: ONE\nV11111 = 1 pcs",
		"two.pdf": "Order picking: TWO\nV22222 = 2 pcs",
	})
	resp, err := http.Post(ts.URL+"/convert", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, mimeZip, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Moovia_unilog_excels.zip")

	blob, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)

	var names []string
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	assert.ElementsMatch(t, []string{"Order_picking_ONE.xlsx", "Order_picking_TWO.xlsx"}, names)
}

func TestConvertAllCorruptIsUnprocessable(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{"bad.pdf": "corrupt"})
	resp, err := http.Post(ts.URL+"/convert", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestConvertNoFilesIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, nil)
	resp, err := http.Post(ts.URL+"/convert", contentType, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewRequiresExtractor(t *testing.T) {
	_, err := New(nil, 0, nil)
	assert.Error(t, err)

	proc := pipeline.NewProcessor(nil, nil, nil, nil)
	_, err = New(proc, 0, nil)
	assert.Error(t, err)
}
