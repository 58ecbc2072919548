package appointment

import "github.com/pro-master/backend/internal/httperr"

var (
	ErrScheduleNotFound    = httperr.Missing("schedule_not_found", "Schedule not found.")
	ErrScheduleExists      = httperr.Invalid("schedule_exists", "This schedule already exists for the service profile.")
	ErrInvalidInterval     = httperr.Invalid("invalid_interval", "Start must be before end.")
	ErrInvalidDateOrTime   = httperr.Invalid("invalid_date_or_time", "Use YYYY-MM-DD for dates and HH:MM for times.")
	ErrOutsideSchedule     = httperr.Invalid("outside_schedule", "Appointment time is outside the schedule interval.")
	ErrInPast              = httperr.Invalid("appointment_in_past", "Appointment time has already passed.")
	ErrAppointmentConflict = httperr.Invalid("appointment_conflict", "This time is already taken.")
	ErrAppointmentNotFound = httperr.Missing("appointment_not_found", "Appointment not found.")
	ErrBookingsOutside     = httperr.Invalid("schedule_has_appointments_outside", "The schedule has appointments that the new date or interval would leave out.")
	ErrClientProfileNeeded = httperr.Invalid("client_profile_required", "Create a client profile before booking.")
)
