package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaveRanges(t *testing.T) {
	today := NewDate(2025, time.October, 15)

	tests := []struct {
		name    string
		rec     Record
		want    LeaveRange
		dropped bool
	}{
		{
			name: "closed leave uses actual end",
			rec:  Record{"fecha_baja": "2025-09-01", "fecha_alta": "2025-09-10", "fecha_alta_prevista": "2025-09-30", "situacion": "Alta"},
			want: LeaveRange{Start: NewDate(2025, time.September, 1), End: NewDate(2025, time.September, 10), Situation: "Alta"},
		},
		{
			name: "future prediction is kept",
			rec:  Record{"fechaBaja": "2025-10-01", "fechaAltaPrevista": "2025-10-20"},
			want: LeaveRange{Start: NewDate(2025, time.October, 1), End: NewDate(2025, time.October, 20)},
		},
		{
			name: "prediction for today is kept",
			rec:  Record{"FECHA_BAJA": "2025-10-01", "FECHA_ALTA_PREVISTA": "2025-10-15"},
			want: LeaveRange{Start: NewDate(2025, time.October, 1), End: today},
		},
		{
			name: "expired prediction stays open until today",
			rec:  Record{"fecha_baja": "2025-10-01", "fecha_alta_prevista": "2025-10-05", "situacion": "En curso"},
			want: LeaveRange{Start: NewDate(2025, time.October, 1), End: today, Open: true, Situation: "En curso"},
		},
		{
			name: "no end at all is open",
			rec:  Record{"fecha_baja": "10/10/2025"},
			want: LeaveRange{Start: NewDate(2025, time.October, 10), End: today, Open: true},
		},
		{
			name: "unparseable actual end falls through to prediction",
			rec:  Record{"fecha_baja": "2025-10-01", "fecha_alta": "pending", "fecha_alta_prevista": "2025-11-01"},
			want: LeaveRange{Start: NewDate(2025, time.October, 1), End: NewDate(2025, time.November, 1)},
		},
		{
			name: "inverted bounds are swapped",
			rec:  Record{"fecha_baja": "2025-09-20", "fecha_alta": "2025-09-10"},
			want: LeaveRange{Start: NewDate(2025, time.September, 10), End: NewDate(2025, time.September, 20)},
		},
		{
			name:    "missing start is dropped",
			rec:     Record{"fecha_alta": "2025-09-10"},
			dropped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := BuildLeaveRanges([]MedicalLeaveRecord{MedicalLeaveFromRecord(tt.rec)}, today)
			if tt.dropped {
				assert.Empty(t, ranges)
				return
			}
			require.Len(t, ranges, 1)
			assert.Equal(t, tt.want, ranges[0])
			assert.False(t, ranges[0].End.Before(ranges[0].Start))
		})
	}
}

func TestLeaveCovering_OpenLeaveCoversThroughToday(t *testing.T) {
	today := NewDate(2025, time.October, 15)
	ranges := BuildLeaveRanges([]MedicalLeaveRecord{
		{Start: datePtr(2025, time.October, 1), PredictedEnd: datePtr(2025, time.October, 3)},
	}, today)

	for day := NewDate(2025, time.October, 1); !day.After(today); day = day.AddDays(1) {
		_, ok := LeaveCovering(day, ranges)
		assert.True(t, ok, "day %s", day)
	}

	_, ok := LeaveCovering(today.AddDays(1), ranges)
	assert.False(t, ok)
}

func TestLeaveCovering_FirstRangeWins(t *testing.T) {
	ranges := []LeaveRange{
		{Start: NewDate(2025, time.March, 1), End: NewDate(2025, time.March, 10), Situation: "first"},
		{Start: NewDate(2025, time.March, 5), End: NewDate(2025, time.March, 20), Situation: "second"},
	}

	got, ok := LeaveCovering(NewDate(2025, time.March, 7), ranges)
	require.True(t, ok)
	assert.Equal(t, "first", got.Situation)

	got, ok = LeaveCovering(NewDate(2025, time.March, 15), ranges)
	require.True(t, ok)
	assert.Equal(t, "second", got.Situation)
}

func TestCurrentLeave(t *testing.T) {
	today := NewDate(2025, time.October, 15)
	records := []MedicalLeaveRecord{
		{Start: datePtr(2025, time.January, 1), ActualEnd: datePtr(2025, time.January, 5)},
		{Start: datePtr(2025, time.October, 12), Situation: "Baja por IT"},
	}

	got, ok := CurrentLeave(records, today)
	require.True(t, ok)
	assert.Equal(t, "Baja por IT", got.Reason())
	assert.True(t, got.Open)

	_, ok = CurrentLeave(records[:1], today)
	assert.False(t, ok)
}

func TestLeaveRange_ReasonFallback(t *testing.T) {
	assert.Equal(t, "Baja médica", LeaveRange{}.Reason())
}
