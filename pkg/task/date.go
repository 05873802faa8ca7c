package task

import (
	"encoding/json"
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Date is a day-granular timestamp. Two Dates are the same day when their
// local year, month, and day match; the clock portion is ignored.
type Date struct {
	time.Time
}

// NewDate truncates t to its local calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate reads a "2006-01-02" value in the local time zone.
func ParseDate(v string) (Date, error) {
	t, err := time.ParseInLocation(layoutISO, v, time.Local)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// SameDay reports whether d and then fall on the same calendar day.
func (d Date) SameDay(then time.Time) bool {
	return d.Local().Day() == then.Local().Day() &&
		d.Local().Month() == then.Local().Month() &&
		d.Local().Year() == then.Local().Year()
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return NewDate(d.AddDate(0, 0, 1))
}

func (d *Date) MarshalJSON() ([]byte, error) {
	if d == nil || d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", d.Format(layoutISO))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

func (d Date) String() string {
	return d.Format(layoutISO)
}
