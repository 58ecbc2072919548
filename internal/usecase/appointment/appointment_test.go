package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/appointment"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/infra/repository"
	"github.com/pro-master/backend/internal/testing/fixtures"
	"github.com/pro-master/backend/internal/testing/testdb"
)

func TestCreateAppointment(t *testing.T) {
	db := testdb.New(t)
	master := fixtures.Master(t, db)
	profile := fixtures.ServiceProfile(t, db, master)
	other := fixtures.ServiceProfile(t, db, fixtures.Master(t, db))
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	sched := fixtures.Schedule(t, db, profile, day, 9, 12)

	u1, cp1 := fixtures.Client(t, db)
	u2, cp2 := fixtures.Client(t, db)
	c1 := access.FromUser(u1, cp1)
	c2 := access.FromUser(u2, cp2)

	uc := NewAppointments(repository.NewAppointmentGormRepository(db), nil, "UTC")
	uc.now = func() time.Time { return time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	in := CreateAppointmentInput{Actor: c1, ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "10:00"}
	ap, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, cp1.ID, ap.ClientProfileID)
	assert.Equal(t, time.Date(2030, 5, 10, 10, 0, 0, 0, time.UTC), ap.AppointmentAt)

	// slot taken by someone else
	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: c2, ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrAppointmentConflict)

	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: c2, ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "12:00"})
	assert.ErrorIs(t, err, domain.ErrOutsideSchedule)

	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: c2, ServiceProfileID: other.ID, ScheduleID: sched.ID, Time: "10:30"})
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: c2, ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "noon"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateOrTime)

	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: access.FromUser(master, nil), ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "11:00"})
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	noProfile := access.FromUser(fixtures.User(t, db, false, ""), nil)
	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: noProfile, ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "11:00"})
	assert.ErrorIs(t, err, domain.ErrClientProfileNeeded)

	uc.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: c2, ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "11:00"})
	assert.ErrorIs(t, err, domain.ErrInPast)
}

func TestClientCannotBeInTwoPlacesAtOnce(t *testing.T) {
	db := testdb.New(t)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	p1 := fixtures.ServiceProfile(t, db, fixtures.Master(t, db))
	p2 := fixtures.ServiceProfile(t, db, fixtures.Master(t, db))
	s1 := fixtures.Schedule(t, db, p1, day, 9, 12)
	s2 := fixtures.Schedule(t, db, p2, day, 9, 12)
	u, cp := fixtures.Client(t, db)
	c := access.FromUser(u, cp)

	uc := NewAppointments(repository.NewAppointmentGormRepository(db), nil, "UTC")
	uc.now = func() time.Time { return day.AddDate(0, 0, -1) }
	ctx := context.Background()

	_, err := uc.Create(ctx, CreateAppointmentInput{Actor: c, ServiceProfileID: p1.ID, ScheduleID: s1.ID, Time: "09:30"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, CreateAppointmentInput{Actor: c, ServiceProfileID: p2.ID, ScheduleID: s2.ID, Time: "09:30"})
	assert.ErrorIs(t, err, domain.ErrAppointmentConflict)
}

func TestDeleteAppointment(t *testing.T) {
	db := testdb.New(t)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)
	profile := fixtures.ServiceProfile(t, db, fixtures.Master(t, db))
	sched := fixtures.Schedule(t, db, profile, day, 9, 12)
	u1, cp1 := fixtures.Client(t, db)
	u2, cp2 := fixtures.Client(t, db)

	uc := NewAppointments(repository.NewAppointmentGormRepository(db), nil, "UTC")
	uc.now = func() time.Time { return day.AddDate(0, 0, -1) }
	ctx := context.Background()

	ap, err := uc.Create(ctx, CreateAppointmentInput{Actor: access.FromUser(u1, cp1), ServiceProfileID: profile.ID, ScheduleID: sched.ID, Time: "09:00"})
	require.NoError(t, err)

	err = uc.Delete(ctx, access.FromUser(u2, cp2), profile.ID, sched.ID, ap.ID)
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, access.FromUser(u1, cp1), profile.ID, sched.ID, ap.ID))
	_, err = uc.Get(ctx, profile.ID, sched.ID, ap.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}
