package diagnostics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

var validLabStatuses = map[string]bool{
	"ordered": true, "collected": true, "in-progress": true,
	"resulted": true, "cancelled": true,
}

var validImagingStatuses = map[string]bool{
	"ordered": true, "scheduled": true, "completed": true, "cancelled": true,
}

type Service struct {
	labOrders LabOrderRepository
	imaging   ImagingStudyRepository
	publisher realtime.Publisher
	logger    zerolog.Logger
}

func NewService(labOrders LabOrderRepository, imaging ImagingStudyRepository, publisher realtime.Publisher, logger zerolog.Logger) *Service {
	return &Service{labOrders: labOrders, imaging: imaging, publisher: publisher, logger: logger}
}

func (s *Service) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, realtime.NewEvent(eventType, "diagnostics", data)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

// -- Lab Orders --

func (s *Service) CreateLabOrder(ctx context.Context, o *LabOrder) error {
	if o.PatientID == uuid.Nil {
		return apperr.Validation("patientId is required")
	}
	if o.TestName == "" {
		return apperr.Validation("testName is required")
	}
	if o.Status == "" {
		o.Status = "ordered"
	}
	if !validLabStatuses[o.Status] {
		return apperr.Validation("invalid status: %s", o.Status)
	}
	if o.OrderedAt.IsZero() {
		o.OrderedAt = time.Now()
	}
	if err := s.labOrders.Create(ctx, o); err != nil {
		return err
	}
	s.publish(ctx, "labOrderCreated", o)
	return nil
}

func (s *Service) GetLabOrder(ctx context.Context, id uuid.UUID) (*LabOrder, error) {
	return s.labOrders.GetByID(ctx, id)
}

func (s *Service) UpdateLabOrder(ctx context.Context, o *LabOrder) error {
	if o.Status != "" && !validLabStatuses[o.Status] {
		return apperr.Validation("invalid status: %s", o.Status)
	}
	// Attaching a result value moves the order to resulted and stamps it.
	if o.ResultValue != "" && o.ResultedAt == nil {
		now := time.Now()
		o.ResultedAt = &now
		o.Status = "resulted"
	}
	if err := s.labOrders.Update(ctx, o); err != nil {
		return err
	}
	s.publish(ctx, "labOrderUpdated", o)
	return nil
}

func (s *Service) DeleteLabOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.labOrders.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "labOrderDeleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) ListLabOrders(ctx context.Context, limit, offset int) ([]*LabOrder, int, error) {
	return s.labOrders.List(ctx, limit, offset)
}

// -- Imaging Studies --

func (s *Service) CreateImagingStudy(ctx context.Context, st *ImagingStudy) error {
	if st.PatientID == uuid.Nil {
		return apperr.Validation("patientId is required")
	}
	if st.Modality == "" {
		return apperr.Validation("modality is required")
	}
	if st.Status == "" {
		st.Status = "ordered"
	}
	if !validImagingStatuses[st.Status] {
		return apperr.Validation("invalid status: %s", st.Status)
	}
	if err := s.imaging.Create(ctx, st); err != nil {
		return err
	}
	s.publish(ctx, "imagingStudyCreated", st)
	return nil
}

func (s *Service) GetImagingStudy(ctx context.Context, id uuid.UUID) (*ImagingStudy, error) {
	return s.imaging.GetByID(ctx, id)
}

func (s *Service) UpdateImagingStudy(ctx context.Context, st *ImagingStudy) error {
	if st.Status != "" && !validImagingStatuses[st.Status] {
		return apperr.Validation("invalid status: %s", st.Status)
	}
	if st.Report != "" && st.Status != "cancelled" {
		st.Status = "completed"
	}
	if err := s.imaging.Update(ctx, st); err != nil {
		return err
	}
	s.publish(ctx, "imagingStudyUpdated", st)
	return nil
}

func (s *Service) DeleteImagingStudy(ctx context.Context, id uuid.UUID) error {
	if err := s.imaging.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "imagingStudyDeleted", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) ListImagingStudies(ctx context.Context, limit, offset int) ([]*ImagingStudy, int, error) {
	return s.imaging.List(ctx, limit, offset)
}
