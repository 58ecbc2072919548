package schedule

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/appointment"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/infra/repository"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/testing/fixtures"
	"github.com/pro-master/backend/internal/testing/testdb"
)

func TestCreateSchedule(t *testing.T) {
	db := testdb.New(t)
	owner := fixtures.Master(t, db)
	profile := fixtures.ServiceProfile(t, db, owner)
	uc := NewSchedules(repository.NewAppointmentGormRepository(db), nil)
	ctx := context.Background()
	actor := access.FromUser(owner, nil)

	s, err := uc.Create(ctx, Input{Actor: actor, ServiceProfileID: profile.ID, Date: "2030-01-15", Start: "09:00", End: "13:00"})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, s.ServiceProfileID)

	_, err = uc.Create(ctx, Input{Actor: actor, ServiceProfileID: profile.ID, Date: "2030-01-15", Start: "09:00", End: "13:00"})
	assert.ErrorIs(t, err, domain.ErrScheduleExists)

	// a different interval on the same day is fine
	_, err = uc.Create(ctx, Input{Actor: actor, ServiceProfileID: profile.ID, Date: "2030-01-15", Start: "14:00", End: "18:00"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, Input{Actor: actor, ServiceProfileID: profile.ID, Date: "2030-01-16", Start: "13:00", End: "09:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = uc.Create(ctx, Input{Actor: actor, ServiceProfileID: 404, Date: "2030-01-16", Start: "09:00", End: "10:00"})
	assert.ErrorIs(t, err, serviceprofile.ErrNotFound)

	list, err := uc.List(ctx, profile.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestScheduleRequiresProfileOwnership(t *testing.T) {
	db := testdb.New(t)
	profile := fixtures.ServiceProfile(t, db, fixtures.Master(t, db))
	uc := NewSchedules(repository.NewAppointmentGormRepository(db), nil)
	ctx := context.Background()

	stranger := access.FromUser(fixtures.Master(t, db), nil)
	_, err := uc.Create(ctx, Input{Actor: stranger, ServiceProfileID: profile.ID, Date: "2030-01-15", Start: "09:00", End: "10:00"})
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	client, cp := fixtures.Client(t, db)
	_, err = uc.Create(ctx, Input{Actor: access.FromUser(client, cp), ServiceProfileID: profile.ID, Date: "2030-01-15", Start: "09:00", End: "10:00"})
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	staff := access.FromUser(fixtures.Staff(t, db), nil)
	s, err := uc.Create(ctx, Input{Actor: staff, ServiceProfileID: profile.ID, Date: "2030-01-15", Start: "09:00", End: "10:00"})
	require.NoError(t, err)

	end := "11:00"
	_, err = uc.Update(ctx, UpdateInput{Actor: stranger, Method: http.MethodPatch, ServiceProfileID: profile.ID, ScheduleID: s.ID, End: &end})
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	updated, err := uc.Update(ctx, UpdateInput{Actor: staff, Method: http.MethodPatch, ServiceProfileID: profile.ID, ScheduleID: s.ID, End: &end})
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(11, 0, 0, 0), updated.EndTime)

	require.NoError(t, uc.Delete(ctx, staff, profile.ID, s.ID))
	_, err = uc.Get(ctx, profile.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestUpdateKeepsExistingBookings(t *testing.T) {
	db := testdb.New(t)
	owner := fixtures.Master(t, db)
	profile := fixtures.ServiceProfile(t, db, owner)
	day := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	s := fixtures.Schedule(t, db, profile, day, 9, 12)
	_, cp := fixtures.Client(t, db)
	require.NoError(t, db.Create(&models.Appointment{
		ScheduleID:      s.ID,
		ClientProfileID: cp.ID,
		AppointmentTime: datatypes.NewTime(11, 0, 0, 0),
		AppointmentAt:   day.Add(11 * time.Hour),
	}).Error)

	uc := NewSchedules(repository.NewAppointmentGormRepository(db), nil)
	ctx := context.Background()
	actor := access.FromUser(owner, nil)
	patch := func(date, start, end *string) error {
		_, err := uc.Update(ctx, UpdateInput{
			Actor: actor, Method: http.MethodPatch,
			ServiceProfileID: profile.ID, ScheduleID: s.ID,
			Date: date, Start: start, End: end,
		})
		return err
	}
	str := func(v string) *string { return &v }

	assert.ErrorIs(t, patch(nil, nil, str("10:00")), domain.ErrBookingsOutside)
	assert.ErrorIs(t, patch(nil, str("11:30"), nil), domain.ErrBookingsOutside)
	// 11:00 is the exclusive end, so the booking would fall out
	assert.ErrorIs(t, patch(nil, nil, str("11:00")), domain.ErrBookingsOutside)
	assert.ErrorIs(t, patch(str("2030-01-16"), nil, nil), domain.ErrBookingsOutside)

	var stored models.Schedule
	require.NoError(t, db.First(&stored, s.ID).Error)
	assert.Equal(t, datatypes.NewTime(12, 0, 0, 0), stored.EndTime)

	// widening, or shrinking around the booking, is fine
	require.NoError(t, patch(nil, str("08:00"), str("11:30")))
	require.NoError(t, db.First(&stored, s.ID).Error)
	assert.Equal(t, datatypes.NewTime(11, 30, 0, 0), stored.EndTime)
}
