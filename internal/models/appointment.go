package models

// AppointmentStatus represents the status of a booking.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is the read-only booking projection owned by the backend.
type Appointment struct {
	ID                   int64             `json:"id"`
	DoctorName           string            `json:"doctorName"`
	DoctorSpecialization string            `json:"doctorSpecialization"`
	AppointmentDate      string            `json:"appointmentDate"`
	AppointmentTime      string            `json:"appointmentTime"`
	Status               AppointmentStatus `json:"status"`
}

// AppointmentRequest is the wire shape for creating a booking. DoctorID
// stays a string because it originates from form input.
type AppointmentRequest struct {
	DoctorID        string            `json:"doctorId"`
	AppointmentDate string            `json:"appointmentDate"`
	AppointmentTime string            `json:"appointmentTime"`
	Symptoms        string            `json:"symptoms,omitempty"`
	Status          AppointmentStatus `json:"status"`
}
