package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *Date {
	v := NewDate(y, m, d)
	return &v
}

func TestAbsenceFromRecord(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		wantStart *Date
		wantEnd   *Date
		wantDate  *Date
	}{
		{
			name:      "snake case interval",
			rec:       Record{"tipo": "Vacaciones", "fecha_inicio": "2025-08-01", "fecha_fin": "2025-08-15"},
			wantStart: datePtr(2025, time.August, 1),
			wantEnd:   datePtr(2025, time.August, 15),
		},
		{
			name:      "camel case interval",
			rec:       Record{"tipoAusencia": "Asuntos propios", "fechaInicio": "01/08/2025", "fechaFin": "02/08/2025"},
			wantStart: datePtr(2025, time.August, 1),
			wantEnd:   datePtr(2025, time.August, 2),
		},
		{
			name:      "upper case with serials",
			rec:       Record{"TIPO": "VACACIONES", "FECHA_INICIO": 45870.0, "FECHA_FIN": 45884.0},
			wantStart: datePtr(2025, time.August, 1),
			wantEnd:   datePtr(2025, time.August, 15),
		},
		{
			name:      "combined period",
			rec:       Record{"tipo": "Vacaciones", "periodo": "01/08/2025 - 15/08/2025"},
			wantStart: datePtr(2025, time.August, 1),
			wantEnd:   datePtr(2025, time.August, 15),
		},
		{
			name:      "combined period only fills missing bound",
			rec:       Record{"fecha_inicio": "2025-08-03", "periodo": "01/08/2025 - 15/08/2025"},
			wantStart: datePtr(2025, time.August, 3),
			wantEnd:   datePtr(2025, time.August, 15),
		},
		{
			name:     "single date",
			rec:      Record{"tipo": "Asuntos propios", "fecha": "2025-08-07"},
			wantDate: datePtr(2025, time.August, 7),
		},
		{
			name: "unparseable start",
			rec:  Record{"fecha_inicio": "soon", "fecha_fin": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AbsenceFromRecord(tt.rec)
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, tt.wantEnd, got.End)
			assert.Equal(t, tt.wantDate, got.Date)
		})
	}
}

func TestResolveAbsence_PrefersShortestInterval(t *testing.T) {
	long := AbsenceRecord{Type: "Vacaciones", Start: datePtr(2025, time.August, 1), End: datePtr(2025, time.August, 31)}
	short := AbsenceRecord{Type: "Asuntos propios", Reason: "Mudanza", Start: datePtr(2025, time.August, 10), End: datePtr(2025, time.August, 10)}

	got, ok := ResolveAbsence(NewDate(2025, time.August, 10), []AbsenceRecord{long, short})
	require.True(t, ok)
	assert.Equal(t, "Asuntos propios", got.Type)
	assert.Equal(t, PersonalLeave(), got.Category())

	got, ok = ResolveAbsence(NewDate(2025, time.August, 11), []AbsenceRecord{long, short})
	require.True(t, ok)
	assert.Equal(t, "Vacaciones", got.Type)
	assert.Equal(t, Vacation(), got.Category())
}

func TestResolveAbsence_MissingEndRanksLast(t *testing.T) {
	vacation := AbsenceFromRecord(Record{"tipo": "Vacaciones", "fecha_inicio": "2025-03-01", "fecha_fin": "2025-03-05"})
	tests := []struct {
		name    string
		startOn Record
	}{
		{name: "unparseable end", startOn: Record{"tipo": "Asunto propio", "fecha_inicio": "2025-03-03", "fecha_fin": "garbage"}},
		{name: "missing end", startOn: Record{"tipo": "Asunto propio", "fecha_inicio": "2025-03-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startOnly := AbsenceFromRecord(tt.startOn)
			assert.True(t, math.IsInf(startOnly.spanDays(), 1))

			got, ok := ResolveAbsence(NewDate(2025, time.March, 3), []AbsenceRecord{startOnly, vacation})
			require.True(t, ok)
			assert.Equal(t, "Vacaciones", got.Type)

			got, ok = ResolveAbsence(NewDate(2025, time.March, 3), []AbsenceRecord{startOnly})
			require.True(t, ok, "a start-only record still covers its start day")
			assert.Equal(t, "Asunto propio", got.Type)
		})
	}
}

func TestResolveAbsence_ExactDate(t *testing.T) {
	single := AbsenceRecord{Type: "Asuntos propios", Date: datePtr(2025, time.May, 2)}

	got, ok := ResolveAbsence(NewDate(2025, time.May, 2), []AbsenceRecord{single})
	require.True(t, ok)
	assert.Equal(t, single, got)

	_, ok = ResolveAbsence(NewDate(2025, time.May, 3), []AbsenceRecord{single})
	assert.False(t, ok)
}

func TestResolveAbsence_SwapsInvertedBounds(t *testing.T) {
	inverted := AbsenceRecord{Type: "Vacaciones", Start: datePtr(2025, time.July, 20), End: datePtr(2025, time.July, 10)}

	_, ok := ResolveAbsence(NewDate(2025, time.July, 15), []AbsenceRecord{inverted})
	assert.True(t, ok)
}

func TestResolveAbsence_SkipsUnusableRecords(t *testing.T) {
	broken := AbsenceFromRecord(Record{"tipo": "Vacaciones", "fecha_inicio": "??", "fecha_fin": "2025-07-31"})
	valid := AbsenceRecord{Type: "Asuntos propios", Start: datePtr(2025, time.July, 1), End: datePtr(2025, time.July, 31)}

	got, ok := ResolveAbsence(NewDate(2025, time.July, 15), []AbsenceRecord{broken, valid})
	require.True(t, ok)
	assert.Equal(t, "Asuntos propios", got.Type)

	_, ok = ResolveAbsence(NewDate(2025, time.July, 15), []AbsenceRecord{broken})
	assert.False(t, ok)
}

func TestAbsenceRecord_Label(t *testing.T) {
	assert.Equal(t, "Ausencia", AbsenceRecord{}.Label())
	assert.Equal(t, "Vacaciones", AbsenceRecord{Type: "Vacaciones"}.Label())
}
