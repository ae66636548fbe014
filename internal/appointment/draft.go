package appointment

import (
	"time"
)

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// BookingWindowDays is how far ahead an appointment may be booked.
const BookingWindowDays = 30

// Draft is the transient, unsaved form input for a pending booking.
type Draft struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"appointmentDate"`
	Time     string `json:"appointmentTime"`
	Symptoms string `json:"symptoms"`
}

// ValidationError reports a locally rejected draft field. No network call
// is made for a draft that fails validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidateDraft checks a draft against the booking rules: doctor, date and
// time are required, the date must fall within [today, today+30d], and the
// time must be one of the fixed slots.
func ValidateDraft(d Draft, now time.Time) error {
	if d.DoctorID == "" {
		return &ValidationError{Field: "doctorId", Reason: "a doctor must be selected"}
	}
	if d.Date == "" {
		return &ValidationError{Field: "appointmentDate", Reason: "a date must be selected"}
	}
	if d.Time == "" {
		return &ValidationError{Field: "appointmentTime", Reason: "a time must be selected"}
	}

	date, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return &ValidationError{Field: "appointmentDate", Reason: "invalid date format, expected YYYY-MM-DD"}
	}

	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return &ValidationError{Field: "appointmentDate", Reason: "date must not be in the past"}
	}
	if date.After(today.AddDate(0, 0, BookingWindowDays)) {
		return &ValidationError{Field: "appointmentDate", Reason: "date must be within the next 30 days"}
	}

	if !ValidSlot(d.Time) {
		return &ValidationError{Field: "appointmentTime", Reason: "time must be one of the half-hour slots between 09:00 and 18:00"}
	}
	return nil
}
