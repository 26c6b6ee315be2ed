package model

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a whole-day calendar date with no time-of-day component. It
// marshals as "YYYY-MM-DD" in JSON and as a UTC-midnight datetime in BSON so
// Mongo range queries compare it natively.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" literal into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return Date{Time: t}, nil
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other. Negative when
// other precedes d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time) / (24 * time.Hour))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.NewDateTimeFromTime(d.Time))
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var dt primitive.DateTime
	if err := bson.UnmarshalValue(t, data, &dt); err != nil {
		return fmt.Errorf("failed to decode date: %w", err)
	}
	*d = DateOf(dt.Time())
	return nil
}
