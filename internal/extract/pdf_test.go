package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRejectsNonPDF(t *testing.T) {
	garbage := []byte("this is not a pdf")

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "with preflight", cfg: Config{Preflight: true}},
		{name: "without preflight", cfg: Config{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewPDFExtractor(tt.cfg, nil)
			_, err := e.Extract(context.Background(), garbage)
			assert.Error(t, err)
		})
	}
}

func TestExtractRejectsEmptyInput(t *testing.T) {
	e := NewPDFExtractor(Config{}, nil)
	_, err := e.Extract(context.Background(), nil)
	assert.Error(t, err)
}
