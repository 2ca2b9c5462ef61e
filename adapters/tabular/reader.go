// Package tabular reads and writes the CSV and Excel files used by
// bulk mode. It is the ingestion boundary: cell-level quirks (missing
// values, padding, extensions) are decided here and nowhere else.
package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"ingredient-pricing/core/bulk"
	"ingredient-pricing/internal/errors"
)

// columnCount is the required input shape: name, quantity, price.
const columnCount = 3

const (
	msgBadExtension = "Only Excel (.xlsx, .xls) and CSV files are allowed"
	msgBadColumns   = "File must contain exactly 3 columns (Ingredient name, Quantity, Pricing)"
	msgUnreadable   = "Error processing file"
)

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// Allowed reports whether the filename carries an accepted extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ReadFile parses an uploaded tabular file, dispatching on the file
// extension. Disallowed extensions fail before any parsing.
func ReadFile(filename string, r io.Reader) ([]bulk.Row, *errors.Error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadExcel(r)
	case ".xls":
		return ReadLegacyExcel(r)
	default:
		return nil, errors.File(msgBadExtension, nil)
	}
}

// ReadCSV parses CSV input. The first row is treated as data, not as a
// header: column meaning is positional.
func ReadCSV(r io.Reader) ([]bulk.Row, *errors.Error) {
	reader := csv.NewReader(r)
	// Column count is validated below for a clearer message.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.File(msgUnreadable, err)
	}

	return rowsFromRecords(records)
}

// ReadExcel parses OOXML (.xlsx) input, reading the first sheet.
func ReadExcel(r io.Reader) ([]bulk.Row, *errors.Error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.File(msgUnreadable, err)
	}
	defer file.Close()

	records, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		return nil, errors.File(msgUnreadable, err)
	}

	return rowsFromRecords(records)
}

// ReadLegacyExcel parses BIFF (.xls) input, reading the first sheet.
// The BIFF reader needs a seekable stream, so the upload is buffered;
// the server caps upload size before this point.
func ReadLegacyExcel(r io.Reader) ([]bulk.Row, *errors.Error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.File(msgUnreadable, err)
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.File(msgUnreadable, err)
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, errors.File(msgUnreadable, err)
	}

	var records [][]string
	for i := 0; i <= sheet.GetNumberRows(); i++ {
		row, rowErr := sheet.GetRow(i)
		if rowErr != nil || row == nil {
			continue
		}
		cols := row.GetCols()
		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, col.GetString())
		}
		records = append(records, cells)
	}

	return rowsFromRecords(records)
}

// rowsFromRecords maps raw records to bulk rows. The widest record
// defines the column count; Excel omits trailing empty cells, so
// shorter records are padded rather than rejected.
func rowsFromRecords(records [][]string) ([]bulk.Row, *errors.Error) {
	width := 0
	for _, record := range records {
		if len(record) > width {
			width = len(record)
		}
	}
	if len(records) > 0 && width != columnCount {
		return nil, errors.File(msgBadColumns, nil)
	}

	rows := make([]bulk.Row, 0, len(records))
	for _, record := range records {
		padded := make([]string, columnCount)
		copy(padded, record)
		rows = append(rows, newRow(padded))
	}
	return rows, nil
}

// newRow applies the missing-quantity sentinel: empty, "nan" and
// "none" cells mean the quantity was not provided.
func newRow(cells []string) bulk.Row {
	quantity := strings.TrimSpace(cells[1])
	lower := strings.ToLower(quantity)
	missing := lower == "" || lower == "nan" || lower == "none"

	return bulk.Row{
		Ingredient:      strings.TrimSpace(cells[0]),
		Quantity:        quantity,
		QuantityMissing: missing,
		Price:           strings.TrimSpace(cells[2]),
	}
}
