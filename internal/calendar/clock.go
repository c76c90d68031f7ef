package calendar

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

var (
	// 8:00, 08:00:00, 2026-02-08T08:00:00Z, 2026-02-08 08:00
	clockPattern = regexp.MustCompile(`(?:^|[T\s])(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	// 7:30, 162:05:10
	durationPattern = regexp.MustCompile(`^(\d+):(\d{2})(?::(\d{2}))?$`)
)

// ParseClock returns the time of day of v in seconds since midnight. It
// accepts "H:MM", "HH:MM:SS", timestamps and spreadsheet day fractions.
func ParseClock(v any) (int, bool) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return 0, false
		}
		return val.Hour()*3600 + val.Minute()*60 + val.Second(), true
	case float64:
		return clockFromFraction(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return clockFromFraction(f)
	case string:
		m := clockPattern.FindStringSubmatch(strings.TrimSpace(val))
		if m == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				return clockFromFraction(f)
			}
			return 0, false
		}
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		sec := 0
		if m[3] != "" {
			sec, _ = strconv.Atoi(m[3])
		}
		if h > 23 || min > 59 || sec > 59 {
			return 0, false
		}
		return h*3600 + min*60 + sec, true
	}
	return 0, false
}

func clockFromFraction(f float64) (int, bool) {
	if math.IsNaN(f) || f < 0 || f >= 1 {
		return 0, false
	}
	return int(math.Round(f*secondsPerDay)) % secondsPerDay, true
}

// FormatClock renders seconds since midnight as "HH:MM".
func FormatClock(seconds int) string {
	seconds = ((seconds % secondsPerDay) + secondsPerDay) % secondsPerDay
	return fmt.Sprintf("%02d:%02d", seconds/3600, seconds%3600/60)
}

// ParseDurationSeconds reads a precomputed duration: a number of seconds or
// an "H:MM[:SS]" string.
func ParseDurationSeconds(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || val < 0 {
			return 0, false
		}
		return int(math.Round(val)), true
	case int:
		return val, val >= 0
	case int64:
		return int(val), val >= 0
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return ParseDurationSeconds(f)
	case string:
		s := strings.TrimSpace(val)
		if m := durationPattern.FindStringSubmatch(s); m != nil {
			h, _ := strconv.Atoi(m[1])
			min, _ := strconv.Atoi(m[2])
			sec := 0
			if m[3] != "" {
				sec, _ = strconv.Atoi(m[3])
			}
			return h*3600 + min*60 + sec, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ParseDurationSeconds(f)
		}
	}
	return 0, false
}
