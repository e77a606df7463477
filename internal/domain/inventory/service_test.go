package inventory

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

// -- Mock Repositories --

type mockWardRepo struct {
	wards map[string]*Ward
}

func newMockWardRepo() *mockWardRepo {
	return &mockWardRepo{wards: make(map[string]*Ward)}
}

func (m *mockWardRepo) Create(_ context.Context, w *Ward) error {
	cp := *w
	m.wards[w.ID] = &cp
	return nil
}

func (m *mockWardRepo) GetByID(_ context.Context, id string) (*Ward, error) {
	w, ok := m.wards[id]
	if !ok {
		return nil, apperr.NotFound("ward not found")
	}
	cp := *w
	return &cp, nil
}

func (m *mockWardRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.wards[id]
	return ok, nil
}

func (m *mockWardRepo) Update(_ context.Context, w *Ward) error {
	if _, ok := m.wards[w.ID]; !ok {
		return apperr.NotFound("ward not found")
	}
	cp := *w
	m.wards[w.ID] = &cp
	return nil
}

func (m *mockWardRepo) Delete(_ context.Context, id string) error {
	delete(m.wards, id)
	return nil
}

func (m *mockWardRepo) List(_ context.Context) ([]*Ward, error) {
	var wards []*Ward
	for _, w := range m.wards {
		cp := *w
		wards = append(wards, &cp)
	}
	sort.Slice(wards, func(i, j int) bool { return wards[i].Name < wards[j].Name })
	return wards, nil
}

type mockBedRepo struct {
	beds map[string]*Bed
}

func newMockBedRepo() *mockBedRepo {
	return &mockBedRepo{beds: make(map[string]*Bed)}
}

func (m *mockBedRepo) Create(_ context.Context, b *Bed) error {
	cp := *b
	m.beds[b.ID] = &cp
	return nil
}

func (m *mockBedRepo) GetByID(_ context.Context, id string) (*Bed, error) {
	b, ok := m.beds[id]
	if !ok {
		return nil, apperr.NotFound("bed not found")
	}
	cp := *b
	return &cp, nil
}

func (m *mockBedRepo) Update(_ context.Context, b *Bed) error {
	if _, ok := m.beds[b.ID]; !ok {
		return apperr.NotFound("bed not found")
	}
	cp := *b
	m.beds[b.ID] = &cp
	return nil
}

func (m *mockBedRepo) Rename(_ context.Context, oldID, newID string) error {
	b, ok := m.beds[oldID]
	if !ok {
		return apperr.NotFound("bed not found")
	}
	delete(m.beds, oldID)
	b.ID = newID
	m.beds[newID] = b
	return nil
}

func (m *mockBedRepo) Delete(_ context.Context, id string) error {
	delete(m.beds, id)
	return nil
}

func (m *mockBedRepo) DeleteByWard(_ context.Context, wardID string) error {
	for id, b := range m.beds {
		if b.WardID == wardID {
			delete(m.beds, id)
		}
	}
	return nil
}

func (m *mockBedRepo) ListByWard(_ context.Context, wardID string) ([]*Bed, error) {
	var beds []*Bed
	for _, b := range m.beds {
		if b.WardID == wardID {
			cp := *b
			beds = append(beds, &cp)
		}
	}
	sort.Slice(beds, func(i, j int) bool { return beds[i].Number < beds[j].Number })
	return beds, nil
}

func (m *mockBedRepo) CountByWard(_ context.Context, wardID string) (int, error) {
	count := 0
	for _, b := range m.beds {
		if b.WardID == wardID {
			count++
		}
	}
	return count, nil
}

func (m *mockBedRepo) StatusCounts(_ context.Context) (map[BedStatus]int, error) {
	counts := make(map[BedStatus]int)
	for _, b := range m.beds {
		counts[b.Status]++
	}
	return counts, nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []realtime.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event realtime.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) lastType() string {
	if len(p.events) == 0 {
		return ""
	}
	return p.events[len(p.events)-1].Type
}

func newTestService() (*Service, *mockWardRepo, *mockBedRepo, *recordingPublisher) {
	wards := newMockWardRepo()
	beds := newMockBedRepo()
	pub := &recordingPublisher{}
	svc := NewService(wards, beds, nil, pub, nil, zerolog.Nop())
	return svc, wards, beds, pub
}

// -- Ward Lifecycle --

func TestCreateWardProvisionsBeds(t *testing.T) {
	svc, _, _, pub := newTestService()
	ctx := context.Background()

	view, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU Ward", Prefix: "icu", Type: "intensive", RatePerDay: 500, NumBeds: 3})
	if err != nil {
		t.Fatalf("CreateWard() error: %v", err)
	}
	if view.ID != "icu-ward" {
		t.Errorf("ward id = %q, want icu-ward", view.ID)
	}
	if view.TotalBeds != 3 {
		t.Errorf("totalBeds = %d, want 3", view.TotalBeds)
	}
	wantIDs := []string{"ICU-01", "ICU-02", "ICU-03"}
	if len(view.Beds) != 3 {
		t.Fatalf("len(beds) = %d, want 3", len(view.Beds))
	}
	for i, b := range view.Beds {
		if b.ID != wantIDs[i] {
			t.Errorf("beds[%d].ID = %q, want %q", i, b.ID, wantIDs[i])
		}
		if b.Number != i+1 {
			t.Errorf("beds[%d].Number = %d, want %d", i, b.Number, i+1)
		}
		if b.Status != StatusAvailable {
			t.Errorf("beds[%d].Status = %q, want available", i, b.Status)
		}
	}
	if pub.lastType() != "wardCreated" {
		t.Errorf("last event = %q, want wardCreated", pub.lastType())
	}
}

func TestCreateWardDuplicate(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU Ward", Prefix: "icu"}); err != nil {
		t.Fatalf("first CreateWard() error: %v", err)
	}
	_, err := svc.CreateWard(ctx, CreateWardInput{Name: "icu   ward", Prefix: "icu2"})
	if !apperr.IsConflict(err) {
		t.Errorf("duplicate CreateWard() = %v, want conflict", err)
	}
}

func TestCreateWardValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateWardInput
	}{
		{"missing name", CreateWardInput{Prefix: "icu"}},
		{"missing prefix", CreateWardInput{Name: "ICU"}},
		{"prefix too long", CreateWardInput{Name: "ICU", Prefix: "toolong"}},
		{"negative beds", CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateWard(ctx, tt.in); !apperr.IsValidation(err) {
				t.Errorf("CreateWard() = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateWardPrefixChangeRenumbersBedIDs(t *testing.T) {
	svc, _, beds, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "General Ward", Prefix: "gen", NumBeds: 3}); err != nil {
		t.Fatal(err)
	}

	newPrefix := "gw"
	view, err := svc.UpdateWard(ctx, "general-ward", UpdateWardInput{Prefix: &newPrefix})
	if err != nil {
		t.Fatalf("UpdateWard() error: %v", err)
	}
	if view.Prefix != "GW" {
		t.Errorf("prefix = %q, want GW", view.Prefix)
	}

	wantIDs := []string{"GW-01", "GW-02", "GW-03"}
	for i, b := range view.Beds {
		if b.ID != wantIDs[i] {
			t.Errorf("beds[%d].ID = %q, want %q", i, b.ID, wantIDs[i])
		}
		if b.Number != i+1 {
			t.Errorf("sequence number changed: beds[%d].Number = %d", i, b.Number)
		}
	}
	if _, err := beds.GetByID(ctx, "GEN-01"); !apperr.IsNotFound(err) {
		t.Error("old bed id GEN-01 should be gone")
	}
}

func TestUpdateWardMergePatch(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "Maternity", Prefix: "mat", RatePerDay: 200, NumBeds: 1}); err != nil {
		t.Fatal(err)
	}

	rate := 250.0
	view, err := svc.UpdateWard(ctx, "maternity", UpdateWardInput{RatePerDay: &rate})
	if err != nil {
		t.Fatalf("UpdateWard() error: %v", err)
	}
	if view.RatePerDay != 250 {
		t.Errorf("ratePerDay = %v, want 250", view.RatePerDay)
	}
	// Omitted fields keep their prior values.
	if view.Name != "Maternity" || view.Prefix != "MAT" || view.TotalBeds != 1 {
		t.Errorf("merge-patch overwrote omitted fields: %+v", view.Ward)
	}
}

func TestUpdateWardAddBeds(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "General", Prefix: "gen", NumBeds: 2}); err != nil {
		t.Fatal(err)
	}

	add := 3
	view, err := svc.UpdateWard(ctx, "general", UpdateWardInput{AddBeds: &add})
	if err != nil {
		t.Fatalf("UpdateWard() error: %v", err)
	}
	if view.TotalBeds != 5 {
		t.Errorf("totalBeds = %d, want 5", view.TotalBeds)
	}
	if len(view.Beds) != 5 {
		t.Fatalf("len(beds) = %d, want 5", len(view.Beds))
	}
	if view.Beds[4].ID != "GEN-05" || view.Beds[4].Number != 5 {
		t.Errorf("new bed = %+v, want GEN-05 #5", view.Beds[4])
	}
}

func TestUpdateWardNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.UpdateWard(context.Background(), "nope", UpdateWardInput{}); !apperr.IsNotFound(err) {
		t.Errorf("UpdateWard() = %v, want not found", err)
	}
}

func TestDeleteWardCascades(t *testing.T) {
	svc, wards, beds, pub := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 2}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteWard(ctx, "icu"); err != nil {
		t.Fatalf("DeleteWard() error: %v", err)
	}
	if len(wards.wards) != 0 {
		t.Error("ward not deleted")
	}
	if len(beds.beds) != 0 {
		t.Error("beds not cascade-deleted")
	}
	if pub.lastType() != "wardDeleted" {
		t.Errorf("last event = %q, want wardDeleted", pub.lastType())
	}
}

// -- Bed Lifecycle --

func TestAddBedsSequencesAfterExisting(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "General", Prefix: "gen", NumBeds: 4}); err != nil {
		t.Fatal(err)
	}

	added, err := svc.AddBeds(ctx, "general", 2, "")
	if err != nil {
		t.Fatalf("AddBeds() error: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("len(added) = %d, want 2", len(added))
	}
	if added[0].ID != "GEN-05" || added[1].ID != "GEN-06" {
		t.Errorf("added ids = %s, %s; want GEN-05, GEN-06", added[0].ID, added[1].ID)
	}

	ward, err := svc.GetWard(ctx, "general")
	if err != nil {
		t.Fatal(err)
	}
	if ward.TotalBeds != 6 {
		t.Errorf("totalBeds = %d, want 6", ward.TotalBeds)
	}
}

func TestAddBedsDefaultsToOne(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "General", Prefix: "gen", NumBeds: 1}); err != nil {
		t.Fatal(err)
	}
	added, err := svc.AddBeds(ctx, "general", 0, StatusReserved)
	if err != nil {
		t.Fatalf("AddBeds() error: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("len(added) = %d, want 1", len(added))
	}
	if added[0].Status != StatusReserved {
		t.Errorf("status = %q, want reserved", added[0].Status)
	}
}

func TestAddBedsWardNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.AddBeds(context.Background(), "nope", 1, ""); !apperr.IsNotFound(err) {
		t.Errorf("AddBeds() = %v, want not found", err)
	}
}

func TestDeleteBedOccupiedFails(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada"}); err != nil {
		t.Fatal(err)
	}

	err := svc.DeleteBed(ctx, "icu", "ICU-01")
	if !apperr.IsConflict(err) {
		t.Fatalf("DeleteBed() = %v, want conflict", err)
	}

	// Bed and bookkeeping untouched.
	ward, _ := svc.GetWard(ctx, "icu")
	if ward.TotalBeds != 2 {
		t.Errorf("totalBeds = %d, want 2", ward.TotalBeds)
	}
	bed, err := svc.GetWard(ctx, "icu")
	if err != nil || len(bed.Beds) != 2 {
		t.Errorf("bed was deleted despite conflict")
	}
}

func TestDeleteBedDecrementsTotal(t *testing.T) {
	svc, _, _, pub := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 3}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteBed(ctx, "icu", "ICU-03"); err != nil {
		t.Fatalf("DeleteBed() error: %v", err)
	}
	ward, _ := svc.GetWard(ctx, "icu")
	if ward.TotalBeds != 2 {
		t.Errorf("totalBeds = %d, want 2", ward.TotalBeds)
	}
	if pub.lastType() != "bedDeleted" {
		t.Errorf("last event = %q, want bedDeleted", pub.lastType())
	}
}

func TestDeleteBedTotalFlooredAtZero(t *testing.T) {
	svc, wards, beds, _ := newTestService()
	ctx := context.Background()

	wards.wards["icu"] = &Ward{ID: "icu", Name: "ICU", Prefix: "ICU", TotalBeds: 0}
	beds.beds["ICU-01"] = &Bed{ID: "ICU-01", WardID: "icu", Number: 1, Status: StatusAvailable}

	if err := svc.DeleteBed(ctx, "icu", "ICU-01"); err != nil {
		t.Fatalf("DeleteBed() error: %v", err)
	}
	if wards.wards["icu"].TotalBeds != 0 {
		t.Errorf("totalBeds = %d, want 0 (floored)", wards.wards["icu"].TotalBeds)
	}
}

func TestUpdateBedRawOverride(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 1}); err != nil {
		t.Fatal(err)
	}

	// Side states are reachable only through this path.
	critical := StatusCritical
	bed, err := svc.UpdateBed(ctx, "ICU-01", BedPatch{Status: &critical})
	if err != nil {
		t.Fatalf("UpdateBed() error: %v", err)
	}
	if bed.Status != StatusCritical {
		t.Errorf("status = %q, want critical", bed.Status)
	}
	if bed.UpdatedAt.IsZero() {
		t.Error("timestamp not refreshed")
	}

	// Occupant merge-patch keeps unset fields.
	name := "Grace"
	diagnosis := "sepsis"
	if _, err := svc.UpdateBed(ctx, "ICU-01", BedPatch{Patient: &OccupantPatch{Name: &name, Diagnosis: &diagnosis}}); err != nil {
		t.Fatal(err)
	}
	doctor := "Dr. Wu"
	bed, err = svc.UpdateBed(ctx, "ICU-01", BedPatch{Patient: &OccupantPatch{Doctor: &doctor}})
	if err != nil {
		t.Fatal(err)
	}
	if bed.Occupant.Name != "Grace" || bed.Occupant.Diagnosis != "sepsis" || bed.Occupant.Doctor != "Dr. Wu" {
		t.Errorf("occupant merge-patch lost fields: %+v", bed.Occupant)
	}
}

func TestUpdateBedInvalidStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 1}); err != nil {
		t.Fatal(err)
	}
	bad := BedStatus("broken")
	if _, err := svc.UpdateBed(ctx, "ICU-01", BedPatch{Status: &bad}); !apperr.IsValidation(err) {
		t.Errorf("UpdateBed() = %v, want validation error", err)
	}
}

// -- Occupancy Transitions --

func TestAssignDischargeCycle(t *testing.T) {
	svc, _, _, pub := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 1}); err != nil {
		t.Fatal(err)
	}

	bed, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada Lovelace", Diagnosis: "fever", Doctor: "Dr. Wu", PatientID: "p-1"})
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if bed.Status != StatusOccupied {
		t.Errorf("status = %q, want occupied", bed.Status)
	}
	if bed.Occupant == nil || bed.Occupant.Name != "Ada Lovelace" {
		t.Fatalf("occupant = %+v", bed.Occupant)
	}
	if bed.Occupant.AdmitDate.IsZero() {
		t.Error("admitDate not set")
	}
	if pub.lastType() != "patientAssigned" {
		t.Errorf("last event = %q, want patientAssigned", pub.lastType())
	}

	bed, name, err := svc.Discharge(ctx, "icu", "ICU-01")
	if err != nil {
		t.Fatalf("Discharge() error: %v", err)
	}
	if name != "Ada Lovelace" {
		t.Errorf("captured name = %q, want Ada Lovelace", name)
	}
	if bed.Status != StatusAvailable || bed.Occupant != nil {
		t.Errorf("bed after discharge = %+v", bed)
	}
	if pub.lastType() != "patientDischarged" {
		t.Errorf("last event = %q, want patientDischarged", pub.lastType())
	}
}

func TestAssignOccupiedOrCriticalRefused(t *testing.T) {
	svc, _, beds, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Grace"}); !apperr.IsConflict(err) {
		t.Errorf("Assign to occupied = %v, want conflict", err)
	}

	beds.beds["ICU-02"].Status = StatusCritical
	if _, err := svc.Assign(ctx, "icu", "ICU-02", AssignInput{PatientName: "Grace"}); !apperr.IsConflict(err) {
		t.Errorf("Assign to critical = %v, want conflict", err)
	}
}

func TestAssignNeverSetsCritical(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 1}); err != nil {
		t.Fatal(err)
	}
	bed, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada"})
	if err != nil {
		t.Fatal(err)
	}
	if bed.Status != StatusOccupied {
		t.Errorf("Assign set status %q; only occupied is reachable via this path", bed.Status)
	}
}

func TestDischargeEmptyBedUsesSentinel(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 1}); err != nil {
		t.Fatal(err)
	}
	_, name, err := svc.Discharge(ctx, "icu", "ICU-01")
	if err != nil {
		t.Fatalf("Discharge() error: %v", err)
	}
	if name != "Unknown" {
		t.Errorf("captured name = %q, want Unknown", name)
	}
}

func TestTransferMovesOccupantAndStatus(t *testing.T) {
	svc, _, beds, pub := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada", PatientID: "p-1"}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Transfer(ctx, "ICU-01", "ICU-02")
	if err != nil {
		t.Fatalf("Transfer() error: %v", err)
	}
	if result.PatientName != "Ada" {
		t.Errorf("patientName = %q, want Ada", result.PatientName)
	}
	if result.ToBed.Status != StatusOccupied || result.ToBed.Occupant == nil || result.ToBed.Occupant.PatientID != "p-1" {
		t.Errorf("destination = %+v", result.ToBed)
	}
	if result.FromBed.Status != StatusAvailable || result.FromBed.Occupant != nil {
		t.Errorf("source = %+v", result.FromBed)
	}
	if pub.lastType() != "patientTransferred" {
		t.Errorf("last event = %q, want patientTransferred", pub.lastType())
	}

	// Round trip restores the original occupancy on the first bed.
	if _, err := svc.Transfer(ctx, "ICU-02", "ICU-01"); err != nil {
		t.Fatalf("return Transfer() error: %v", err)
	}
	b1, _ := beds.GetByID(ctx, "ICU-01")
	b2, _ := beds.GetByID(ctx, "ICU-02")
	if b1.Status != StatusOccupied || b1.Occupant == nil || b1.Occupant.Name != "Ada" {
		t.Errorf("round trip did not restore ICU-01: %+v", b1)
	}
	if b2.Status != StatusAvailable || b2.Occupant != nil {
		t.Errorf("round trip left ICU-02 dirty: %+v", b2)
	}
}

func TestTransferInheritsCriticalStatus(t *testing.T) {
	svc, _, beds, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada"}); err != nil {
		t.Fatal(err)
	}
	// Clinician escalation via the raw override path.
	critical := StatusCritical
	if _, err := svc.UpdateBed(ctx, "ICU-01", BedPatch{Status: &critical}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Transfer(ctx, "ICU-01", "ICU-02")
	if err != nil {
		t.Fatalf("Transfer() error: %v", err)
	}
	if result.ToBed.Status != StatusCritical {
		t.Errorf("destination status = %q; critical travels with the patient", result.ToBed.Status)
	}
	b1, _ := beds.GetByID(ctx, "ICU-01")
	if b1.Status != StatusAvailable {
		t.Errorf("source status = %q, want available", b1.Status)
	}
}

func TestTransferErrors(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-02", AssignInput{PatientName: "Grace"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Transfer(ctx, "ICU-09", "ICU-03"); !apperr.IsNotFound(err) {
		t.Errorf("missing source = %v, want not found", err)
	}
	if _, err := svc.Transfer(ctx, "ICU-01", "ICU-09"); !apperr.IsNotFound(err) {
		t.Errorf("missing destination = %v, want not found", err)
	}
	if _, err := svc.Transfer(ctx, "ICU-03", "ICU-01"); !apperr.IsConflict(err) {
		t.Errorf("empty source = %v, want conflict", err)
	}
	if _, err := svc.Transfer(ctx, "ICU-01", "ICU-02"); !apperr.IsConflict(err) {
		t.Errorf("occupied destination = %v, want conflict", err)
	}
}

// -- Stats --

func TestStatsCountsByStatus(t *testing.T) {
	svc, _, beds, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU", Prefix: "icu", NumBeds: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Assign(ctx, "icu", "ICU-01", AssignInput{PatientName: "Ada"}); err != nil {
		t.Fatal(err)
	}
	beds.beds["ICU-02"].Status = StatusCritical
	beds.beds["ICU-03"].Status = StatusMaintenance
	beds.beds["ICU-04"].Status = StatusReserved

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	want := BedStats{Total: 5, Occupied: 1, Available: 1, Critical: 1, Maintenance: 1, Reserved: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

// -- End-to-end scenario --

func TestWardScenario(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	view, err := svc.CreateWard(ctx, CreateWardInput{Name: "ICU Ward", Prefix: "icu", NumBeds: 3})
	if err != nil {
		t.Fatalf("CreateWard() error: %v", err)
	}
	if view.ID != "icu-ward" {
		t.Fatalf("ward id = %q", view.ID)
	}
	for i, want := range []string{"ICU-01", "ICU-02", "ICU-03"} {
		if view.Beds[i].ID != want || view.Beds[i].Status != StatusAvailable {
			t.Fatalf("beds[%d] = %+v", i, view.Beds[i])
		}
	}

	bed, err := svc.Assign(ctx, "icu-ward", "ICU-01", AssignInput{PatientName: "Ada"})
	if err != nil || bed.Status != StatusOccupied {
		t.Fatalf("Assign: bed=%+v err=%v", bed, err)
	}

	if err := svc.DeleteBed(ctx, "icu-ward", "ICU-01"); !apperr.IsConflict(err) {
		t.Fatalf("DeleteBed on occupied = %v, want conflict", err)
	}

	bed, _, err = svc.Discharge(ctx, "icu-ward", "ICU-01")
	if err != nil || bed.Status != StatusAvailable || bed.Occupant != nil {
		t.Fatalf("Discharge: bed=%+v err=%v", bed, err)
	}

	if err := svc.DeleteBed(ctx, "icu-ward", "ICU-01"); err != nil {
		t.Fatalf("DeleteBed after discharge: %v", err)
	}
	ward, _ := svc.GetWard(ctx, "icu-ward")
	if ward.TotalBeds != 2 {
		t.Fatalf("totalBeds = %d, want 2", ward.TotalBeds)
	}
}
