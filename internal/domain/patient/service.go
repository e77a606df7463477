package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

var validStatuses = map[string]bool{
	"active": true, "admitted": true, "discharged": true, "deceased": true,
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
	if err := s.publisher.Publish(ctx, realtime.NewEvent(eventType, "patients", data)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperr.Validation("name is required")
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if !validStatuses[p.Status] {
		return apperr.Validation("invalid status: %s", p.Status)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.publish(ctx, "patientCreated", p)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperr.Validation("name is required")
	}
	if p.Status != "" && !validStatuses[p.Status] {
		return apperr.Validation("invalid status: %s", p.Status)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.publish(ctx, "patientUpdated", p)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "patientDeleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}
