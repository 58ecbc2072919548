package appointment

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pro-master/backend/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, ErrInvalidDateOrTime
	}
	return datatypes.Date(d), nil
}

// ParseClock reads HH:MM or HH:MM:SS into a time of day.
func ParseClock(s string) (datatypes.Time, error) {
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, ErrInvalidDateOrTime
}

func ValidateInterval(start, end datatypes.Time) error {
	if start >= end {
		return ErrInvalidInterval
	}
	return nil
}

// WithinSchedule reports whether at falls in [start, end) of s.
func WithinSchedule(s *models.Schedule, at datatypes.Time) bool {
	return at >= s.StartTime && at < s.EndTime
}

// At places a time of day on the schedule's date in loc.
func At(date datatypes.Date, at datatypes.Time, loc *time.Location) time.Time {
	y, m, d := time.Time(date).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(at))
}
