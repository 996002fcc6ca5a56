package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles requirement lists exported as CSV: one requirement per
// row. Multi-column rows are joined; a header row named "требование" or
// "requirement" is skipped.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Outline, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	out := &Outline{Title: strings.TrimSuffix(filename, ".csv")}
	if len(records) == 0 {
		return out, nil
	}

	var items []string
	first := true
	for _, row := range records {
		var cells []string
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		// The header check applies to the first non-empty row, wherever it sits.
		if first {
			first = false
			if isHeaderRow(cells) {
				continue
			}
		}
		items = append(items, strings.Join(cells, " — "))
	}

	if len(items) > 0 {
		out.Sections = []*OutlineNode{{
			Title: "Функциональные требования",
			Text:  strings.Join(items, "\n"),
		}}
	}
	return out, nil
}

func isHeaderRow(cells []string) bool {
	first := strings.ToLower(cells[0])
	return strings.Contains(first, "требование") || strings.Contains(first, "requirement")
}
