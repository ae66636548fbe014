package models

// Doctor is an entry of the bookable roster.
type Doctor struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience,omitempty"`
	Phone          string `json:"phone,omitempty"`
}
