package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription maps to the prescription table.
type Prescription struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patientId"`
	Medication string    `db:"medication" json:"medication"`
	Dose       string    `db:"dose" json:"dose"`
	Frequency  string    `db:"frequency" json:"frequency,omitempty"`
	Route      string    `db:"route" json:"route,omitempty"`
	Duration   string    `db:"duration" json:"duration,omitempty"`
	Prescriber string    `db:"prescriber" json:"prescriber"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
