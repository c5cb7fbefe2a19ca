package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is the sortable text layout every record timestamp is stored with.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a local date-time persisted as "YYYY-MM-DD HH:MM:SS" text so that
// lexical order equals chronological order on every driver.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

// FormatTimestamp renders t the way it is stored, for use in range queries.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

func (Timestamp) GormDataType() string {
	return "string"
}

func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(TimestampLayout), nil
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case time.Time:
		t.Time = v.Local()
		return nil
	default:
		return fmt.Errorf("timestamp: unsupported type %T", src)
	}
}

func (t *Timestamp) parse(s string) error {
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp: invalid JSON %s", s)
	}
	return t.parse(s[1 : len(s)-1])
}
