package calendar

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey{Year: year, Month: month}
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) Valid() bool {
	return k.Year > 0 && k.Month >= time.January && k.Month <= time.December
}

// First returns the first day of the month.
func (k MonthKey) First() Date {
	return Date{Year: k.Year, Month: k.Month, Day: 1}
}

// Days returns the number of days in the month.
func (k MonthKey) Days() int {
	return now.With(k.First().Time(time.UTC)).EndOfMonth().Day()
}

func (k MonthKey) Compare(o MonthKey) int {
	if k.Year != o.Year {
		return cmpInt(k.Year, o.Year)
	}
	return cmpInt(int(k.Month), int(o.Month))
}

// Contains reports whether d falls in the month.
func (k MonthKey) Contains(d Date) bool {
	return d.Year == k.Year && d.Month == k.Month
}

var (
	// 2025-03, 2025-3, 2025/03
	yearMonth = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)
	// 03/2025, 3-2025
	monthYear = regexp.MustCompile(`^(\d{1,2})[-/](\d{4})$`)
)

// ParseMonthKey parses a "YYYY-MM" style month.
func ParseMonthKey(s string) (MonthKey, error) {
	k, ok := NormalizeMonth(s)
	if !ok {
		return MonthKey{}, fmt.Errorf("unrecognized month %q", s)
	}
	return k, nil
}

// NormalizeMonth converts a roster month value into a MonthKey. Besides the
// month-only forms it accepts anything Normalize understands.
func NormalizeMonth(v any) (MonthKey, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if m := yearMonth.FindStringSubmatch(s); m != nil {
			return monthFromParts(m[1], m[2])
		}
		if m := monthYear.FindStringSubmatch(s); m != nil {
			return monthFromParts(m[2], m[1])
		}
	}

	d, ok := Normalize(v)
	if !ok {
		return MonthKey{}, false
	}
	return d.MonthKey(), true
}

func monthFromParts(year, month string) (MonthKey, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return MonthKey{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return MonthKey{}, false
	}
	k := MonthKey{Year: y, Month: time.Month(m)}
	return k, k.Valid()
}

// RosterMonths returns the month of every roster entry.
func RosterMonths(entries []RosterEntry) []MonthKey {
	months := make([]MonthKey, 0, len(entries))
	for _, e := range entries {
		months = append(months, e.Month)
	}
	return months
}

// AvailableMonths returns the selectable months: December of the previous
// year followed by every month of the current year. Roster months are merged
// in but only kept when they fall inside that window.
func AvailableMonths(rosterMonths []MonthKey, today Date) []MonthKey {
	prevDecember := MonthKey{Year: today.Year - 1, Month: time.December}

	set := map[MonthKey]struct{}{prevDecember: {}}
	for m := time.January; m <= time.December; m++ {
		set[MonthKey{Year: today.Year, Month: m}] = struct{}{}
	}
	for _, k := range rosterMonths {
		if k.Valid() {
			set[k] = struct{}{}
		}
	}

	months := make([]MonthKey, 0, len(set))
	for k := range set {
		if k == prevDecember || k.Year == today.Year {
			months = append(months, k)
		}
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i] == prevDecember {
			return true
		}
		if months[j] == prevDecember {
			return false
		}
		return months[i].Compare(months[j]) < 0
	})
	return months
}

// MonthStrings formats keys as "YYYY-MM".
func MonthStrings(keys []MonthKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
