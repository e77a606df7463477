package surgery

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, sc *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	Update(ctx context.Context, sc *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Case, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error)
}
