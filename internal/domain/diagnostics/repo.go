package diagnostics

import (
	"context"

	"github.com/google/uuid"
)

type LabOrderRepository interface {
	Create(ctx context.Context, o *LabOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabOrder, error)
	Update(ctx context.Context, o *LabOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*LabOrder, int, error)
}

type ImagingStudyRepository interface {
	Create(ctx context.Context, st *ImagingStudy) error
	GetByID(ctx context.Context, id uuid.UUID) (*ImagingStudy, error)
	Update(ctx context.Context, st *ImagingStudy) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*ImagingStudy, int, error)
}
