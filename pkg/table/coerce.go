package table

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// extraDateLayouts covers spreadsheet spellings that cast does not know.
var extraDateLayouts = []string{
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"2006-1-2",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseText coerces a raw cell to trimmed text. Empty cells, nil and NaN
// are absent.
func ParseText(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Absent()
	case string:
		return Text(strings.TrimSpace(v))
	case time.Time:
		return Text(formatDate(v.UTC()))
	case float64:
		if math.IsNaN(v) {
			return Absent()
		}
	case float32:
		if math.IsNaN(float64(v)) {
			return Absent()
		}
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return Absent()
	}
	return Text(strings.TrimSpace(s))
}

// ParseFloat coerces a raw cell to a float. Failures are absent.
func ParseFloat(raw any) Value {
	f, ok := toFloat(raw)
	if !ok {
		return Absent()
	}
	return Float(f)
}

// ParseInt coerces a raw cell to an integer, truncating fractions.
// Failures are absent.
func ParseInt(raw any) Value {
	f, ok := toFloat(raw)
	if !ok {
		return Absent()
	}
	return Int(int64(f))
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil, bool, time.Time:
		return 0, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		raw = s
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate coerces a raw cell to a date. Numbers are read as spreadsheet
// serial dates. Failures are absent, never errors.
func ParseDate(raw any) Value {
	switch v := raw.(type) {
	case nil, bool:
		return Absent()
	case time.Time:
		return Date(v)
	case string:
		return parseDateString(strings.TrimSpace(v))
	}

	f, ok := toFloat(raw)
	if !ok || f <= 0 {
		return Absent()
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return Absent()
	}
	return Date(t)
}

func parseDateString(s string) Value {
	if s == "" {
		return Absent()
	}
	if t, err := cast.ToTimeInDefaultLocationE(s, time.UTC); err == nil {
		return Date(t)
	}
	for _, layout := range extraDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Date(t)
		}
	}
	return Absent()
}
