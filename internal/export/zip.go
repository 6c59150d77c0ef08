package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// BundleZip packs every artifact into one deflate-compressed ZIP blob, one
// entry per artifact in insertion order.
func BundleZip(artifacts *ArtifactSet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range artifacts.Names() {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %q: %w", name, err)
		}
		if _, err := w.Write(artifacts.Get(name)); err != nil {
			return nil, fmt.Errorf("zip write %q: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
