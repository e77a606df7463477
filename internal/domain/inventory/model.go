package inventory

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BedStatus is the lifecycle state of a bed.
type BedStatus string

const (
	StatusAvailable   BedStatus = "available"
	StatusOccupied    BedStatus = "occupied"
	StatusCritical    BedStatus = "critical"
	StatusMaintenance BedStatus = "maintenance"
	StatusReserved    BedStatus = "reserved"
)

// Valid reports whether s is one of the five known statuses.
func (s BedStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCritical, StatusMaintenance, StatusReserved:
		return true
	}
	return false
}

// InUse reports whether the bed holds a patient for transition purposes.
// Both occupied and critical beds refuse new assignments and deletion.
func (s BedStatus) InUse() bool {
	return s == StatusOccupied || s == StatusCritical
}

// MaxPrefixLen bounds the ward prefix used to derive bed ids.
const MaxPrefixLen = 5

// Ward is an administrative grouping of beds sharing a prefix, type and
// daily rate. TotalBeds tracks the count of bed records referencing the ward
// and is reconciled on every bed add/remove.
type Ward struct {
	ID         string    `db:"id" json:"wardId"`
	Name       string    `db:"name" json:"name"`
	Prefix     string    `db:"prefix" json:"prefix"`
	Type       string    `db:"type" json:"type,omitempty"`
	RatePerDay float64   `db:"rate_per_day" json:"ratePerDay"`
	TotalBeds  int       `db:"total_beds" json:"totalBeds"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Occupant is the admission snapshot attached to a bed, not a live join to
// the patient record.
type Occupant struct {
	Name      string    `json:"name"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	AdmitDate time.Time `json:"admitDate"`
	Doctor    string    `json:"doctor,omitempty"`
	PatientID string    `json:"patientId,omitempty"`
}

// Bed is an individually addressable unit of inpatient capacity. Its id is
// derived from the owning ward's prefix and the bed's sequence number, and is
// re-derived (never re-sequenced) when the prefix changes.
type Bed struct {
	ID        string    `db:"id" json:"bedId"`
	WardID    string    `db:"ward_id" json:"wardId"`
	Number    int       `db:"number" json:"number"`
	Status    BedStatus `db:"status" json:"status"`
	Occupant  *Occupant `db:"occupant" json:"patient,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// WardWithBeds is the composed ward view returned by reads and create.
type WardWithBeds struct {
	Ward
	Beds []*Bed `json:"beds"`
}

// BedStats aggregates bed counts by status.
type BedStats struct {
	Total       int `json:"total"`
	Occupied    int `json:"occupied"`
	Available   int `json:"available"`
	Critical    int `json:"critical"`
	Maintenance int `json:"maintenance"`
	Reserved    int `json:"reserved"`
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWardIDChar = regexp.MustCompile(`[^a-z0-9-]`)
)

// WardIDFromName derives a ward's identity from its display name: lowercase,
// whitespace runs collapsed to single hyphens, and any character outside
// [a-z0-9-] stripped.
func WardIDFromName(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = whitespaceRun.ReplaceAllString(id, "-")
	return nonWardIDChar.ReplaceAllString(id, "")
}

// BedID formats a bed identifier from the ward prefix and the bed's sequence
// number, zero-padded to two digits.
func BedID(prefix string, number int) string {
	return fmt.Sprintf("%s-%02d", strings.ToUpper(prefix), number)
}
