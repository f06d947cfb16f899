package stations

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet column layout shared by export, import and the template.
const sheetName = "Stations"

var sheetHeader = []string{"Name", "Address", "City", "Description", "Daily Footfall", "Lines", "Audiences", "Types"}

// BuildExport serializes stations (with joined relation names) into a workbook.
func BuildExport(list []Station) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("stations: rename sheet: %w", err)
	}
	if err := writeRow(f, 1, sheetHeader); err != nil {
		return nil, err
	}
	for i, s := range list {
		row := []string{
			s.Name,
			s.Address,
			s.City,
			s.Description,
			strconv.FormatInt(s.DailyFootfall, 10),
			joinNames(s.Lines),
			joinNames(s.Audiences),
			joinNames(s.Types),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BuildTemplate produces an empty workbook whose Lines/Audiences/Types columns
// carry dropdown validation lists referencing current master data on a hidden
// sheet.
func BuildTemplate(lines, audiences, types []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("stations: rename sheet: %w", err)
	}
	if err := writeRow(f, 1, sheetHeader); err != nil {
		return nil, err
	}

	const refSheet = "Reference"
	if _, err := f.NewSheet(refSheet); err != nil {
		return nil, fmt.Errorf("stations: reference sheet: %w", err)
	}
	refCols := []struct {
		col    string
		values []string
		sqref  string
	}{
		{"A", lines, "F2:F501"},
		{"B", audiences, "G2:G501"},
		{"C", types, "H2:H501"},
	}
	for _, rc := range refCols {
		for i, v := range rc.values {
			cell := fmt.Sprintf("%s%d", rc.col, i+1)
			if err := f.SetCellValue(refSheet, cell, v); err != nil {
				return nil, fmt.Errorf("stations: reference cell: %w", err)
			}
		}
		if len(rc.values) == 0 {
			continue
		}
		dv := excelize.NewDataValidation(true)
		dv.Sqref = rc.sqref
		dv.SetSqrefDropList(fmt.Sprintf("%s!$%s$1:$%s$%d", refSheet, rc.col, rc.col, len(rc.values)))
		if err := f.AddDataValidation(sheetName, dv); err != nil {
			return nil, fmt.Errorf("stations: data validation: %w", err)
		}
	}
	if err := f.SetSheetVisible(refSheet, false); err != nil {
		return nil, fmt.Errorf("stations: hide reference sheet: %w", err)
	}
	return f, nil
}

// ImportResult is the per-batch tally the import endpoint returns.
type ImportResult struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

// RowError records why one spreadsheet row was rejected.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportStore is the storage surface the importer needs.
type ImportStore interface {
	CreateFromImport(ctx context.Context, row *ImportRow) error
}

// ImportWorkbook reads a workbook and creates a station per data row, up to
// maxRows rows. Rows are processed independently: one row's failure is
// recorded in the tally and processing continues with the next row.
func ImportWorkbook(ctx context.Context, store ImportStore, reader io.Reader, maxRows int) (ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return ImportResult{}, fmt.Errorf("stations: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ImportResult{}, fmt.Errorf("stations: read rows: %w", err)
	}
	if len(rows) <= 1 {
		return ImportResult{}, nil
	}

	data := rows[1:] // skip header
	if maxRows > 0 && len(data) > maxRows {
		data = data[:maxRows]
	}

	result := ImportResult{}
	for i, cells := range data {
		rowNum := i + 2 // 1-based, after the header
		outcome := importOne(ctx, store, cells)
		if outcome == nil {
			result.Success++
			continue
		}
		result.Failed++
		result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: outcome.Error()})
	}
	return result, nil
}

func importOne(ctx context.Context, store ImportStore, cells []string) error {
	row, err := parseRow(cells)
	if err != nil {
		return err
	}
	return store.CreateFromImport(ctx, row)
}

func parseRow(cells []string) (*ImportRow, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	row := &ImportRow{
		Name:          cell(0),
		Address:       cell(1),
		City:          cell(2),
		Description:   cell(3),
		LineNames:     splitNames(cell(5)),
		AudienceNames: splitNames(cell(6)),
		TypeNames:     splitNames(cell(7)),
	}
	if err := row.Validate(); err != nil {
		return nil, err
	}
	if raw := cell(4); raw != "" {
		footfall, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("daily footfall %q is not a number", raw)
		}
		row.DailyFootfall = footfall
	}
	return row, nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("stations: cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("stations: set cell: %w", err)
		}
	}
	return nil
}

func joinNames(refs []NamedRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
