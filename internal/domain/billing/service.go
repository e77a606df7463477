package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

var validStatuses = map[string]bool{
	"draft": true, "issued": true, "paid": true, "void": true,
}

type Service struct {
	repo      Repository
	publisher realtime.Publisher
	logger    zerolog.Logger
}

func NewService(repo Repository, publisher realtime.Publisher, logger zerolog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

func (s *Service) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, realtime.NewEvent(eventType, "bills", data)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func (s *Service) Create(ctx context.Context, b *Bill) error {
	if b.PatientID == uuid.Nil {
		return apperr.Validation("patientId is required")
	}
	if len(b.Items) == 0 {
		return apperr.Validation("at least one line item is required")
	}
	if b.Total < 0 {
		return apperr.Validation("total must not be negative")
	}
	if b.Status == "" {
		b.Status = "draft"
	}
	if !validStatuses[b.Status] {
		return apperr.Validation("invalid status: %s", b.Status)
	}
	if b.Status == "issued" && b.IssuedAt == nil {
		now := time.Now()
		b.IssuedAt = &now
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return err
	}
	s.publish(ctx, "billCreated", b)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, b *Bill) error {
	if b.Status != "" && !validStatuses[b.Status] {
		return apperr.Validation("invalid status: %s", b.Status)
	}
	if b.Total < 0 {
		return apperr.Validation("total must not be negative")
	}
	if b.Status == "issued" && b.IssuedAt == nil {
		now := time.Now()
		b.IssuedAt = &now
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return err
	}
	s.publish(ctx, "billUpdated", b)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "billDeleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
