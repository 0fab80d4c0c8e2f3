package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Fallback zone for date strings that carry no offset of their own.
// Set once from config at startup, before any calendar is decoded.
var location = time.UTC

func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		// Not a full instant, try date with time but without timezone
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			// Last resort, plain calendar date
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}

// DateTime is an ISO-8601 instant, e.g. a slot start or end time.
type DateTime struct {
	Date time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	// Strip the surrounding quotes
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format(time.RFC3339))
}

// Date is a calendar date without a time component, e.g. "2026-04-25".
type Date struct {
	Date time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	// Strip the surrounding quotes
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02"))
}

// Key returns the normalized YYYY-MM-DD form used for calendar lookups.
func (t Date) Key() string {
	return t.Date.Format("2006-01-02")
}
