// Package export writes report documents as Excel workbooks, one sheet per
// table section.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
)

const maxSheetName = 31

// Workbook lays doc out as a workbook. The caller must Close it.
func Workbook(doc report.Document) (*excelize.File, error) {
	const op = "Workbook"

	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F0F0F0"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: failed to create header style: %w", op, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: failed to create totals style: %w", op, err)
	}

	used := make(map[string]bool)
	for i, s := range doc.Sections {
		name := sheetName(doc, s, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				f.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: failed to add sheet %q: %w", op, name, err)
		}

		if err := writeSection(f, name, s, header, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: sheet %q: %w", op, name, err)
		}
	}

	return f, nil
}

// Write encodes doc as an .xlsx stream.
func Write(w io.Writer, doc report.Document) error {
	f, err := Workbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}

// Filename swaps the .pdf extension of the report filename for .xlsx.
func Filename(pdfName string) string {
	return strings.TrimSuffix(pdfName, ".pdf") + ".xlsx"
}

func sheetName(doc report.Document, s report.Section, i int, used map[string]bool) string {
	base := "Detail"
	switch {
	case s.Heading != "":
		base = s.Heading
	case len(doc.Sections) == 1:
		base = doc.Name
	case i > 0:
		base = fmt.Sprintf("Bagian %d", i+1)
	}
	base = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ").Replace(base)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	name := base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = base[:min(len(base), maxSheetName-len(suffix))] + suffix
	}
	used[name] = true
	return name
}

func writeSection(f *excelize.File, sheet string, s report.Section, header, bold int) error {
	cols := len(s.Table.Columns)
	if cols == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	row := 1
	if err := setRow(f, sheet, row, s.Table.Headers()); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", last), header); err != nil {
		return err
	}

	for _, r := range s.Rows {
		row++
		if err := setRow(f, sheet, row, r); err != nil {
			return err
		}
	}

	if s.Totals != nil {
		row++
		if err := setRow(f, sheet, row, s.Totals); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), bold); err != nil {
			return err
		}
	}

	for i, c := range s.Table.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		// Roughly two characters per millimetre of PDF column.
		if err := f.SetColWidth(sheet, name, name, c.Width/2+4); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}
