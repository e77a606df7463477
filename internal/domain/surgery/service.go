package surgery

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

var validStatuses = map[string]bool{
	"scheduled": true, "in-progress": true, "completed": true,
	"cancelled": true, "postponed": true,
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
	if err := s.publisher.Publish(ctx, realtime.NewEvent(eventType, "surgeries", data)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func (s *Service) Create(ctx context.Context, sc *Case) error {
	if sc.PatientID == uuid.Nil {
		return apperr.Validation("patientId is required")
	}
	if sc.Procedure == "" {
		return apperr.Validation("procedure is required")
	}
	if sc.Surgeon == "" {
		return apperr.Validation("surgeon is required")
	}
	if sc.ScheduledAt.IsZero() {
		return apperr.Validation("scheduledAt is required")
	}
	if sc.Status == "" {
		sc.Status = "scheduled"
	}
	if !validStatuses[sc.Status] {
		return apperr.Validation("invalid status: %s", sc.Status)
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return err
	}
	s.publish(ctx, "surgeryCreated", sc)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, sc *Case) error {
	if sc.Status != "" && !validStatuses[sc.Status] {
		return apperr.Validation("invalid status: %s", sc.Status)
	}
	if err := s.repo.Update(ctx, sc); err != nil {
		return err
	}
	s.publish(ctx, "surgeryUpdated", sc)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "surgeryDeleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Case, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
