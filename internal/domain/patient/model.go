package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Gender     string     `db:"gender" json:"gender,omitempty"`
	BirthDate  *time.Time `db:"birth_date" json:"birthDate,omitempty"`
	Phone      string     `db:"phone" json:"phone,omitempty"`
	Address    string     `db:"address" json:"address,omitempty"`
	BloodGroup string     `db:"blood_group" json:"bloodGroup,omitempty"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}
