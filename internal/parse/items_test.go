package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemParserParse(t *testing.T) {
	tests := []struct {
		name     string
		window   int
		text     string
		expected []ItemRecord
	}{
		{
			name:   "inline quantity then look-ahead quantity",
			window: DefaultQuantityWindow,
			text:   "V12345 = 10 pcs\nV67890\n3 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 10},
				{Code: "V67890", Quantity: 3},
			},
		},
		{
			name:   "look-ahead blocked by next code",
			window: DefaultQuantityWindow,
			text:   "V12345\nV67890\n5 pcs",
			expected: []ItemRecord{
				{Code: "V67890", Quantity: 5},
			},
		},
		{
			name:   "lowercase code is normalized",
			window: DefaultQuantityWindow,
			text:   "v12345 = 1 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 1},
			},
		},
		{
			name:     "six digits is not a code",
			window:   DefaultQuantityWindow,
			text:     "V123456 = 4 pcs",
			expected: nil,
		},
		{
			name:     "quantity beyond the window is ignored",
			window:   DefaultQuantityWindow,
			text:     "V12345\n\n\n\n7 pcs",
			expected: nil,
		},
		{
			name:   "quantity on the third line is still found",
			window: DefaultQuantityWindow,
			text:   "V12345\n\n\n7 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 7},
			},
		},
		{
			name:     "window of one misses a deeper quantity",
			window:   1,
			text:     "V12345\n\n7 pcs",
			expected: nil,
		},
		{
			name:   "one inline quantity covers every code on the line",
			window: DefaultQuantityWindow,
			text:   "V11111 V22222 = 4 pcs",
			expected: []ItemRecord{
				{Code: "V11111", Quantity: 4},
				{Code: "V22222", Quantity: 4},
			},
		},
		{
			name:   "inline wins over look-ahead",
			window: DefaultQuantityWindow,
			text:   "V12345 = 2 pcs\n9 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 2},
			},
		},
		{
			name:   "duplicates are retained in occurrence order",
			window: DefaultQuantityWindow,
			text:   "V12345 = 5 pcs\nsome filler\nV12345 = 7 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 5},
				{Code: "V12345", Quantity: 7},
			},
		},
		{
			name:   "pcs is case insensitive",
			window: DefaultQuantityWindow,
			text:   "V12345 = 6 PCS",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 6},
			},
		},
		{
			name:   "windows line endings",
			window: DefaultQuantityWindow,
			text:   "V12345\r\n3 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 3},
			},
		},
		{
			name:   "bare carriage return separates lines",
			window: DefaultQuantityWindow,
			text:   "V12345\r3 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 3},
			},
		},
		{
			name:   "form feed separates lines",
			window: DefaultQuantityWindow,
			text:   "V12345\f3 pcs",
			expected: []ItemRecord{
				{Code: "V12345", Quantity: 3},
			},
		},
		{
			name:   "form feed page break still blocks on next code",
			window: DefaultQuantityWindow,
			text:   "V12345\fV67890\f5 pcs",
			expected: []ItemRecord{
				{Code: "V67890", Quantity: 5},
			},
		},
		{
			name:     "code without any quantity is dropped",
			window:   DefaultQuantityWindow,
			text:     "V12345\nnothing useful here",
			expected: nil,
		},
		{
			name:     "empty text",
			window:   DefaultQuantityWindow,
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewItemParser(tt.window).Parse(tt.text)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\rb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\fb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\vb"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
	assert.Equal(t, []string{""}, splitLines(""))
}

func TestNewItemParserDefaultsNegativeWindow(t *testing.T) {
	p := NewItemParser(-1)
	got := p.Parse("V12345\n\n\n7 pcs")
	assert.Equal(t, []ItemRecord{{Code: "V12345", Quantity: 7}}, got)
}
