package table

import (
	"encoding/json"
	"strconv"
	"time"
)

// ValueKind is the type tag of a normalized cell.
type ValueKind uint8

const (
	// KindAbsent marks a missing or unparsable cell.
	KindAbsent ValueKind = iota
	// KindText is a trimmed, non-empty string.
	KindText
	// KindInt is an integer.
	KindInt
	// KindFloat is a floating point number.
	KindFloat
	// KindDate is a date (UTC).
	KindDate
	// KindBool is a derived boolean flag.
	KindBool
)

// Value is a typed cell of a normalized table. The zero Value is absent.
type Value struct {
	kind ValueKind
	text string
	i    int64
	f    float64
	t    time.Time
	b    bool
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Text returns a text value; empty strings are absent.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Date returns a date value; the zero time is absent.
func Date(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{kind: KindDate, t: t.UTC()}
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the type tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// TextValue returns the text, or "" for non-text values.
func (v Value) TextValue() string {
	if v.kind != KindText {
		return ""
	}
	return v.text
}

// IntValue returns the integer and whether the value is an int.
func (v Value) IntValue() (int64, bool) { return v.i, v.kind == KindInt }

// FloatValue returns the float and whether the value is a float.
func (v Value) FloatValue() (float64, bool) { return v.f, v.kind == KindFloat }

// Time returns the date and whether the value is a date.
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == KindDate }

// BoolValue returns the flag and whether the value is a bool.
func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindDate:
		return v.t.Equal(o.t)
	case KindBool:
		return v.b == o.b
	}
	return true
}

// String renders the value for display; absent renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDate:
		return formatDate(v.t)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Any returns the Go value (nil, string, int64, float64, time.Time, bool).
func (v Value) Any() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindDate:
		return v.t
	case KindBool:
		return v.b
	}
	return nil
}

// MarshalJSON encodes absent as null and dates as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindDate:
		return json.Marshal(formatDate(v.t))
	}
	return json.Marshal(v.Any())
}

// MarshalYAML encodes the value like MarshalJSON.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == KindDate {
		return formatDate(v.t), nil
	}
	return v.Any(), nil
}

// formatDate prints midnight values as plain dates.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
