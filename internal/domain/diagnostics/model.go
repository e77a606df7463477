package diagnostics

import (
	"time"

	"github.com/google/uuid"
)

// LabOrder maps to the lab_order table.
type LabOrder struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patientId"`
	TestName    string     `db:"test_name" json:"testName"`
	Specimen    string     `db:"specimen" json:"specimen,omitempty"`
	Status      string     `db:"status" json:"status"`
	ResultValue string     `db:"result_value" json:"resultValue,omitempty"`
	ResultUnit  string     `db:"result_unit" json:"resultUnit,omitempty"`
	ResultFlag  string     `db:"result_flag" json:"resultFlag,omitempty"`
	OrderedAt   time.Time  `db:"ordered_at" json:"orderedAt"`
	ResultedAt  *time.Time `db:"resulted_at" json:"resultedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// ImagingStudy maps to the imaging_study table.
type ImagingStudy struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	Modality  string    `db:"modality" json:"modality"`
	BodySite  string    `db:"body_site" json:"bodySite,omitempty"`
	Status    string    `db:"status" json:"status"`
	Report    string    `db:"report" json:"report,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
