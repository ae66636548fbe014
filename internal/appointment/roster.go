package appointment

import "hospital-portal/internal/models"

// defaultDoctors is the built-in roster used when the backend roster
// cannot be loaded. Booking stays usable against these entries.
var defaultDoctors = []models.Doctor{
	{ID: 1, Name: "Dr. Ivanov", Specialization: "Therapist", Experience: "15 years"},
	{ID: 2, Name: "Dr. Petrova", Specialization: "Surgeon", Experience: "12 years"},
	{ID: 3, Name: "Dr. Sidorova", Specialization: "Dentist", Experience: "10 years"},
	{ID: 4, Name: "Dr. Kozlov", Specialization: "Cardiologist", Experience: "18 years"},
	{ID: 5, Name: "Dr. Nikolaev", Specialization: "Neurologist", Experience: "14 years"},
}

// FallbackRoster returns a copy of the built-in doctor roster.
func FallbackRoster() []models.Doctor {
	roster := make([]models.Doctor, len(defaultDoctors))
	copy(roster, defaultDoctors)
	return roster
}
