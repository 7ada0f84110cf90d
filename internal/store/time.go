package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time is a time.Time that decodes the timestamp formats the server
// actually emits: RFC3339 with or without an offset, ISO strings with
// fractional seconds and no zone, and unix seconds or milliseconds as a
// number or string.
type Time struct {
	time.Time
}

// ParseTime parses one wire timestamp string.
func ParseTime(s string) (time.Time, error) {
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ts > 1e12 {
			return time.UnixMilli(ts), nil
		}
		return time.Unix(ts, 0), nil
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// UnmarshalJSON accepts strings, null, and bare unix numbers.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := ParseTime(str)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ts > 1e12 {
			t.Time = time.UnixMilli(ts)
		} else {
			t.Time = time.Unix(ts, 0)
		}
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		sec := int64(f)
		t.Time = time.Unix(sec, int64((f-float64(sec))*1e9))
		return nil
	}

	return fmt.Errorf("unsupported timestamp %s", s)
}

// MarshalJSON renders RFC3339, with null for the zero value.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}
