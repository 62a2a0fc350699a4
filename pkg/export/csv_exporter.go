package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is ordered tabular export content. Headers fix the column order;
// rows built through Append stay aligned to it, so the CSV and PDF renderers
// emit identical tables.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// Append adds a row from labelled values, placing each value under its
// header column. Columns without a value stay blank.
func (d *Dataset) Append(values map[string]string) {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = values[header]
	}
	d.Rows = append(d.Rows, record)
}

// Money renders a whole-dollar amount the way invoices and the payments
// ledger show it.
func Money(amount int) string {
	return fmt.Sprintf("$%d", amount)
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes, one record per row in Headers order.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		if len(row) != len(data.Headers) {
			return nil, fmt.Errorf("csv row has %d fields, want %d", len(row), len(data.Headers))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
