package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/pkg/apperr"
)

type mockRepo struct {
	bills map[uuid.UUID]*Bill
}

func newMockRepo() *mockRepo {
	return &mockRepo{bills: make(map[uuid.UUID]*Bill)}
}

func (m *mockRepo) Create(_ context.Context, b *Bill) error {
	b.ID = uuid.New()
	cp := *b
	m.bills[b.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, apperr.NotFound("bill not found")
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, b *Bill) error {
	if _, ok := m.bills[b.ID]; !ok {
		return apperr.NotFound("bill not found")
	}
	cp := *b
	m.bills[b.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.bills[id]; !ok {
		return apperr.NotFound("bill not found")
	}
	delete(m.bills, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Bill, int, error) {
	return m.filter(func(*Bill) bool { return true })
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	return m.filter(func(b *Bill) bool { return b.PatientID == patientID })
}

func (m *mockRepo) filter(keep func(*Bill) bool) ([]*Bill, int, error) {
	var items []*Bill
	for _, b := range m.bills {
		if keep(b) {
			cp := *b
			items = append(items, &cp)
		}
	}
	return items, len(items), nil
}

func newTestService() *Service {
	return NewService(newMockRepo(), nil, zerolog.Nop())
}

func testItems() []BillItem {
	return []BillItem{
		{Description: "bed charges", Quantity: 3, UnitPrice: 500, Amount: 1500},
		{Description: "lab work", Quantity: 1, UnitPrice: 120, Amount: 120},
	}
}

func TestCreateBill(t *testing.T) {
	svc := newTestService()
	b := &Bill{PatientID: uuid.New(), Items: testItems(), Total: 1620}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if b.Status != "draft" {
		t.Errorf("status = %q, want draft default", b.Status)
	}
	// Stored as submitted, not recomputed.
	if b.Total != 1620 {
		t.Errorf("total = %v, want 1620", b.Total)
	}
}

func TestCreateBillValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, &Bill{Items: testItems()}); !apperr.IsValidation(err) {
		t.Errorf("missing patient = %v, want validation error", err)
	}
	if err := svc.Create(ctx, &Bill{PatientID: uuid.New()}); !apperr.IsValidation(err) {
		t.Errorf("no items = %v, want validation error", err)
	}
	if err := svc.Create(ctx, &Bill{PatientID: uuid.New(), Items: testItems(), Total: -5}); !apperr.IsValidation(err) {
		t.Errorf("negative total = %v, want validation error", err)
	}
}

func TestIssueBillStampsTime(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	b := &Bill{PatientID: uuid.New(), Items: testItems(), Total: 1620}
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	b.Status = "issued"
	if err := svc.Update(ctx, b); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, _ := svc.Get(ctx, b.ID)
	if got.Status != "issued" {
		t.Errorf("status = %q, want issued", got.Status)
	}
	if got.IssuedAt == nil {
		t.Error("issuedAt not stamped")
	}
}

func TestListByPatient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	patientID := uuid.New()
	if err := svc.Create(ctx, &Bill{PatientID: patientID, Items: testItems(), Total: 100}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(ctx, &Bill{PatientID: uuid.New(), Items: testItems(), Total: 200}); err != nil {
		t.Fatal(err)
	}

	items, total, err := svc.ListByPatient(ctx, patientID, 10, 0)
	if err != nil {
		t.Fatalf("ListByPatient() error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("got %d items (total %d), want 1", len(items), total)
	}
}

func TestDeleteBillNotFound(t *testing.T) {
	svc := newTestService()
	if err := svc.Delete(context.Background(), uuid.New()); !apperr.IsNotFound(err) {
		t.Errorf("Delete() = %v, want not found", err)
	}
}
