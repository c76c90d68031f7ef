package snapshot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"shift-calendar-bot/internal/calendar"

	"github.com/xuri/excelize/v2"
)

// RosterRow is one employee line of a roster sheet.
type RosterRow struct {
	Code   string
	Name   string
	Record calendar.Record
}

// ParseRosterXLSX reads the first sheet of a roster workbook.
func ParseRosterXLSX(filePath string) ([]RosterRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readRosterSheet(f)
}

// DecodeRosterXLSX reads a roster workbook from r.
func DecodeRosterXLSX(r io.Reader) ([]RosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readRosterSheet(f)
}

// readRosterSheet maps every row under the header row onto a record keyed
// by header text. The header must carry an employee code column and a
// month column; rows without a code are skipped.
func readRosterSheet(f *excelize.File) ([]RosterRow, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if !hasAlias(header, calendar.FieldRosterEmployeeCode) {
		return nil, fmt.Errorf("roster sheet %q has no employee code column", sheet)
	}
	if !hasAlias(header, calendar.FieldRosterMonth) {
		return nil, fmt.Errorf("roster sheet %q has no month column", sheet)
	}

	var out []RosterRow
	for _, row := range rows[1:] {
		rec := make(calendar.Record, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = cellValue(cell)
		}

		code := calendar.LookupString(rec, calendar.FieldRosterEmployeeCode)
		if code == "" {
			continue
		}
		out = append(out, RosterRow{
			Code:   code,
			Name:   calendar.LookupString(rec, calendar.FieldRosterEmployeeName),
			Record: rec,
		})
	}
	return out, nil
}

func hasAlias(header []string, field calendar.Field) bool {
	for _, alias := range calendar.Aliases(field) {
		for _, h := range header {
			if h == alias {
				return true
			}
		}
	}
	return false
}

// cellValue keeps numeric cells numeric so date serials reach the
// normalizer as numbers.
func cellValue(raw string) any {
	s := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
