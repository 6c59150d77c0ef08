package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/constants"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/parse"
)

// Service produces XLSX bytes for aggregated item tables.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteTableXLSX returns an XLSX workbook (as bytes) holding the table on the
// "Kitarolas" sheet. A zero-row table still produces a valid workbook with
// both column headers.
func (s *Service) WriteTableXLSX(table parse.Table) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = constants.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{constants.HeaderItemCode, constants.HeaderQuantity}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range table.Rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.Code)
		write(2, r.Quantity)
		row++
	}

	// Widen the columns past the header text
	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Debug("export.xlsx.ok",
		"rows", len(table.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
