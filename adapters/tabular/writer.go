package tabular

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"ingredient-pricing/core/output"
	"ingredient-pricing/internal/errors"
)

// sheetName is the output worksheet name for Excel exports.
const sheetName = "Pricing Results"

// WriteCSV writes the export header followed by the given result
// cells as CSV.
func WriteCSV(w io.Writer, records [][]string) *errors.Error {
	writer := csv.NewWriter(w)

	if err := writer.Write(output.Columns()); err != nil {
		return errors.Export("Failed to create CSV file", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return errors.Export("Failed to create CSV file", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Export("Failed to create CSV file", err)
	}
	return nil
}

// WriteExcel writes the export header and result cells as an .xlsx
// workbook with a single "Pricing Results" sheet.
func WriteExcel(w io.Writer, records [][]string) *errors.Error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Export("Failed to create Excel file", err)
	}

	if err := setRow(file, 1, output.Columns()); err != nil {
		return errors.Export("Failed to create Excel file", err)
	}
	for i, record := range records {
		if err := setRow(file, i+2, record); err != nil {
			return errors.Export("Failed to create Excel file", err)
		}
	}

	if err := file.Write(w); err != nil {
		return errors.Export("Failed to create Excel file", err)
	}
	return nil
}

func setRow(file *excelize.File, rowNumber int, cells []string) error {
	anchor, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		values[i] = cell
	}
	return file.SetSheetRow(sheetName, anchor, &values)
}
