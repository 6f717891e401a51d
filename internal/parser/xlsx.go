package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXParser handles Excel workbooks, sheet by sheet, one line per row.
type XLSXParser struct{}

func (p *XLSXParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read xlsx: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse xlsx: %w", err)
	}
	defer f.Close()

	var out lineWriter
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("parse xlsx: sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			out.line(joinCells(row))
		}
	}
	return out.String(), nil
}
