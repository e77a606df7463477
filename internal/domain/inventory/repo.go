package inventory

import "context"

// WardRepository is the ward entity store.
type WardRepository interface {
	Create(ctx context.Context, w *Ward) error
	GetByID(ctx context.Context, id string) (*Ward, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, w *Ward) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Ward, error)
}

// BedRepository is the bed entity store. Implementations return
// apperr.NotFound when a bed id does not resolve.
type BedRepository interface {
	Create(ctx context.Context, b *Bed) error
	GetByID(ctx context.Context, id string) (*Bed, error)
	Update(ctx context.Context, b *Bed) error
	// Rename changes a bed's identity in place, preserving everything else.
	// Used when the owning ward's prefix changes.
	Rename(ctx context.Context, oldID, newID string) error
	Delete(ctx context.Context, id string) error
	DeleteByWard(ctx context.Context, wardID string) error
	ListByWard(ctx context.Context, wardID string) ([]*Bed, error)
	CountByWard(ctx context.Context, wardID string) (int, error)
	StatusCounts(ctx context.Context) (map[BedStatus]int, error)
}
