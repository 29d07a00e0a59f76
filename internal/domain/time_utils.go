package domain

import "time"

const (
	MonthlyLayout      = "2006-01"
	OnlyDateTimeLayout = "2006-01-02 15:04:05"
	OnlyDate           = "2006-01-02"
	DatetimeZoneLayout = "2006-01-02 15:04:05.000 -0700"
)

// LoadLocation resolves an IANA zone name, falling back to UTC
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

// BeginningOfDay returns 00:00:00 of the given date in location.
func BeginningOfDay(date time.Time, location *time.Location) time.Time {
	date = date.In(location)
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, location)
}

// EndOfDay returns the end of the day (23:59:59) of the given date.
func EndOfDay(date time.Time, location *time.Location) time.Time {
	date = date.In(location)
	y, m, d := date.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, location)
}

// BeginningOfMonth beginning of month
func BeginningOfMonth(date time.Time, location *time.Location) time.Time {
	date = date.In(location)
	y, m, _ := date.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, location)
}

// EndOfMonth end of month
func EndOfMonth(date time.Time, location *time.Location) time.Time {
	date = BeginningOfMonth(date, location)
	return date.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// BeginningOfYear beginning of year
func BeginningOfYear(date time.Time, location *time.Location) time.Time {
	date = date.In(location)
	y, _, _ := date.Date()
	return time.Date(y, time.January, 1, 0, 0, 0, 0, location)
}

// EndOfYear end of year
func EndOfYear(date time.Time, location *time.Location) time.Time {
	date = BeginningOfYear(date, location)
	return date.AddDate(1, 0, 0).Add(-time.Nanosecond)
}
