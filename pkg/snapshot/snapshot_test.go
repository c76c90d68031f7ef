package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shift-calendar-bot/internal/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleSnapshot = `{
  "generated_at": "2025-10-15T06:00:00Z",
  "employees": [
    {
      "code": " E-001 ",
      "name": "Ana",
      "rosters": [{"mes": "2025-10", "1": "T2 14:00-22:00", "2": "LIBRE"}],
      "absences": [{"tipo": "Vacaciones", "fecha_inicio": 45950, "fecha_fin": 45954}],
      "medical_leaves": [],
      "events": [
        {"fecha": "01/10/2025", "hora": "14:00", "tipo": "Entrada"},
        {"fecha": "01/10/2025", "hora": "22:00", "tipo": "Salida"}
      ]
    },
    {"code": "E-002", "name": "Luis"}
  ]
}`

func TestDecodeSnapshot(t *testing.T) {
	file, err := DecodeSnapshot(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)
	require.Len(t, file.Employees, 2)

	ana, ok := file.Find("e-001")
	require.True(t, ok)
	assert.Equal(t, "E-001", ana.Code)

	snap := ana.Raw().Decode(calendar.NewMonthKey(2025, time.October), calendar.NewDate(2025, time.October, 15))
	require.Len(t, snap.Rosters, 1)
	require.Len(t, snap.Absences, 1)
	require.NotNil(t, snap.Absences[0].Start)
	assert.Equal(t, calendar.NewDate(2025, time.October, 20), *snap.Absences[0].Start)
	assert.Len(t, snap.Events, 2)

	_, ok = file.Find("E-404")
	assert.False(t, ok)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	_, err := DecodeSnapshot(strings.NewReader(`{"employees": [{"name": "sin código"}]}`))
	assert.Error(t, err)

	_, err = DecodeSnapshot(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestParseSnapshotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleSnapshot), 0o600))

	file, err := ParseSnapshotJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15T06:00:00Z", file.GeneratedAt)

	_, err = ParseSnapshotJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func writeRosterWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "cuadrante.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseRosterXLSX(t *testing.T) {
	path := writeRosterWorkbook(t, [][]any{
		{"codigo_empleado", "nombre", "mes", "1", "2", "3"},
		{"E-001", "Ana", "2025-10", "T1 08:00-15:00", "LIBRE", "T3"},
		{"", "sin código", "2025-10", "T1"},
		{1002, "Luis", 45931, "T2"},
	})

	rows, err := ParseRosterXLSX(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "E-001", rows[0].Code)
	assert.Equal(t, "Ana", rows[0].Name)
	entry, ok := calendar.RosterFromRecord(rows[0].Record)
	require.True(t, ok)
	assert.Equal(t, calendar.NewMonthKey(2025, time.October), entry.Month)
	assert.Equal(t, "T1 08:00-15:00", entry.Days[1])

	assert.Equal(t, "1002", rows[1].Code)
	entry, ok = calendar.RosterFromRecord(rows[1].Record)
	require.True(t, ok)
	assert.Equal(t, calendar.NewMonthKey(2025, time.October), entry.Month, "serial month cell")
}

func TestParseRosterXLSX_RequiresHeader(t *testing.T) {
	path := writeRosterWorkbook(t, [][]any{
		{"empleado", "1", "2"},
		{"E-001", "T1", "T1"},
	})

	_, err := ParseRosterXLSX(path)
	assert.Error(t, err)
}
