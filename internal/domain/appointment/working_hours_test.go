package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/pro-master/backend/internal/models"
)

func TestParseClock(t *testing.T) {
	tm, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(9, 30, 0, 0), tm)

	tm, err = ParseClock("18:00:15")
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(18, 0, 15, 0), tm)

	_, err = ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidDateOrTime)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Time(d))

	_, err = ParseDate("01/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDateOrTime)
}

func TestWithinSchedule(t *testing.T) {
	s := &models.Schedule{
		StartTime: datatypes.NewTime(9, 0, 0, 0),
		EndTime:   datatypes.NewTime(12, 0, 0, 0),
	}

	assert.True(t, WithinSchedule(s, datatypes.NewTime(9, 0, 0, 0)))
	assert.True(t, WithinSchedule(s, datatypes.NewTime(11, 59, 0, 0)))
	assert.False(t, WithinSchedule(s, datatypes.NewTime(12, 0, 0, 0)))
	assert.False(t, WithinSchedule(s, datatypes.NewTime(8, 59, 0, 0)))
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(datatypes.NewTime(9, 0, 0, 0), datatypes.NewTime(10, 0, 0, 0)))
	assert.ErrorIs(t, ValidateInterval(datatypes.NewTime(10, 0, 0, 0), datatypes.NewTime(10, 0, 0, 0)), ErrInvalidInterval)
}

func TestAt(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	d := datatypes.Date(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	got := At(d, datatypes.NewTime(14, 15, 0, 0), loc)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 15, 0, 0, loc), got)
}
