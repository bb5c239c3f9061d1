// Package tabular parses the spawn spreadsheet exports the builder ingests:
// delimiter-sniffed CSV/semicolon text with quoted, possibly multi-line
// cells, or the original xlsx workbook.
package tabular

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DetectDelimiter picks the column separator by comparing semicolon and
// comma counts on the header line. Ties go to comma.
func DetectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// Parse splits raw tabular text into rows of fields. The delimiter is
// sniffed from the first line. Quoted cells may contain the delimiter,
// escaped quotes (`""`) and embedded newlines; embedded newlines are
// normalized to ", " so every cell stays single-line downstream.
func Parse(raw string) [][]string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	firstLine, _, _ := strings.Cut(raw, "\n")
	delim := DetectDelimiter(firstLine)

	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)
	endCell := func() {
		row = append(row, cell.String())
		cell.Reset()
	}
	endRow := func() {
		endCell()
		rows = append(rows, row)
		row = nil
	}

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			endCell()
		case c == '\n':
			if inQuotes {
				cell.WriteString(", ")
				continue
			}
			endRow()
		default:
			cell.WriteRune(c)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}
	return rows
}

// ParseXLSX reads the first sheet of an xlsx workbook into the same row
// shape Parse produces.
func ParseXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
