package prescription

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

var validStatuses = map[string]bool{
	"active": true, "completed": true, "stopped": true, "on-hold": true,
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
	if err := s.publisher.Publish(ctx, realtime.NewEvent(eventType, "prescriptions", data)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func (s *Service) Create(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return apperr.Validation("patientId is required")
	}
	if p.Medication == "" {
		return apperr.Validation("medication is required")
	}
	if p.Dose == "" {
		return apperr.Validation("dose is required")
	}
	if p.Prescriber == "" {
		return apperr.Validation("prescriber is required")
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
	s.publish(ctx, "prescriptionCreated", p)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Prescription) error {
	if p.Status != "" && !validStatuses[p.Status] {
		return apperr.Validation("invalid status: %s", p.Status)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.publish(ctx, "prescriptionUpdated", p)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "prescriptionDeleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
