package surgery

import (
	"time"

	"github.com/google/uuid"
)

// Case maps to the surgery_case table.
type Case struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	Procedure   string    `db:"procedure_name" json:"procedure"`
	Surgeon     string    `db:"surgeon" json:"surgeon"`
	Theatre     string    `db:"theatre" json:"theatre,omitempty"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduledAt"`
	Status      string    `db:"status" json:"status"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
