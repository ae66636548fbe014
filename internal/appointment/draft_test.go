package appointment

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDraft(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(DateLayout)
	}

	valid := Draft{DoctorID: "1", Date: day(0), Time: "09:00"}

	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{"valid today", valid, ""},
		{"valid with symptoms", Draft{DoctorID: "2", Date: day(7), Time: "12:30", Symptoms: "headache"}, ""},
		{"valid window edge", Draft{DoctorID: "1", Date: day(30), Time: "18:00"}, ""},
		{"missing doctor", Draft{Date: day(0), Time: "09:00"}, "doctorId"},
		{"missing date", Draft{DoctorID: "1", Time: "09:00"}, "appointmentDate"},
		{"missing time", Draft{DoctorID: "1", Date: day(0)}, "appointmentTime"},
		{"malformed date", Draft{DoctorID: "1", Date: "28-08-2026", Time: "09:00"}, "appointmentDate"},
		{"date in the past", Draft{DoctorID: "1", Date: day(-1), Time: "09:00"}, "appointmentDate"},
		{"date beyond window", Draft{DoctorID: "1", Date: day(31), Time: "09:00"}, "appointmentDate"},
		{"off-grid time", Draft{DoctorID: "1", Date: day(0), Time: "09:15"}, "appointmentTime"},
		{"time after hours", Draft{DoctorID: "1", Date: day(0), Time: "19:00"}, "appointmentTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(tt.draft, now)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("got %v, want a ValidationError", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", validationErr.Field, tt.wantField)
			}
		})
	}
}
