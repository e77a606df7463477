package billing

import (
	"time"

	"github.com/google/uuid"
)

// BillItem is a single line on a bill, stored as jsonb.
type BillItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Bill maps to the bill table. Totals are stored as submitted; no
// server-side recomputation happens here.
type Bill struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patientId"`
	Items     []BillItem `db:"items" json:"items"`
	Total     float64    `db:"total" json:"total"`
	Status    string     `db:"status" json:"status"`
	IssuedAt  *time.Time `db:"issued_at" json:"issuedAt,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
