package calendar

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/xuri/excelize/v2"
)

// Date is a calendar day with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date without validating it.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns local midnight of d in loc. All interval comparisons
// work at this granularity.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// MonthKey returns the month d belongs to.
func (d Date) MonthKey() MonthKey {
	return MonthKey{Year: d.Year, Month: d.Month}
}

func (d Date) valid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return DateOf(d.Time(time.UTC)) == d
}

// daysBetween returns b - a in whole days.
func daysBetween(a, b Date) int {
	return int(b.Time(time.UTC).Sub(a.Time(time.UTC)).Hours() / 24)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// excelEpochOffset is the serial of 1970-01-01 in the 1900 date system.
const excelEpochOffset = 25569

// maxExcelSerial is 9999-12-31.
const maxExcelSerial = 2958465

var (
	// 2026-02-08, 2026-02-08T10:00:00Z
	isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	// 2026/02/08, 2026/2/8
	slashYearFirst = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})`)
	// 08-02-2026, 08/02/2026, 8/2/2026
	dayFirst = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
)

var fallbackParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		"2006-1-2",
		"2006-1-2 15:04",
		"2006-1-2 15:04:05",
		"2006.01.02",
		"02.01.2006",
		"2.1.2006",
		"20060102",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"2 January 2006",
		"Mon Jan 2 2006",
		"Mon Jan 2 2006 15:04:05",
		time.RFC1123,
		time.RFC1123Z,
		time.RFC3339,
	},
}

// Normalize converts a loosely typed date value into a Date. It accepts
// time.Time values, spreadsheet serials and the string formats found in the
// source records. ok is false when v carries no usable date; it never panics.
func Normalize(v any) (Date, bool) {
	switch val := v.(type) {
	case nil:
		return Date{}, false
	case Date:
		return val, val.valid()
	case *Date:
		if val == nil {
			return Date{}, false
		}
		return *val, val.valid()
	case time.Time:
		if val.IsZero() {
			return Date{}, false
		}
		return DateOf(val), true
	case *time.Time:
		if val == nil || val.IsZero() {
			return Date{}, false
		}
		return DateOf(*val), true
	case float64:
		return fromSerial(val)
	case float32:
		return fromSerial(float64(val))
	case int:
		return fromSerial(float64(val))
	case int64:
		return fromSerial(float64(val))
	case int32:
		return fromSerial(float64(val))
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Date{}, false
		}
		return fromSerial(f)
	case string:
		return normalizeString(val)
	case fmt.Stringer:
		return normalizeString(val.String())
	}
	return Date{}, false
}

// MustNormalize is Normalize for literals known to be valid.
func MustNormalize(v any) Date {
	d, ok := Normalize(v)
	if !ok {
		panic(fmt.Sprintf("calendar: invalid date %v", v))
	}
	return d
}

func fromSerial(serial float64) (Date, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 || serial > maxExcelSerial {
		return Date{}, false
	}
	if serial > 61 {
		if t, err := excelize.ExcelDateToTime(math.Floor(serial), false); err == nil {
			return DateOf(t.UTC()), true
		}
	}
	// Around the phantom 1900-02-29 the spreadsheet library switches to
	// Julian dates; plain epoch arithmetic is used there instead.
	days := int(math.Floor(serial - excelEpochOffset))
	return DateOf(time.Unix(0, 0).UTC().AddDate(0, 0, days)), true
}

func normalizeString(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}

	if m := isoDatePrefix.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}

	if m := slashYearFirst.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}

	if m := dayFirst.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[3], m[2], m[1])
	}

	t, err := fallbackParser.With(time.Now().UTC()).Parse(s)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

func dateFromParts(year, month, day string) (Date, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Date{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return Date{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return Date{}, false
	}

	date := Date{Year: y, Month: time.Month(m), Day: d}
	if !date.valid() {
		return Date{}, false
	}
	return date, true
}
