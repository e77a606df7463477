package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/cache"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/realtime"
	"github.com/hms/hms/pkg/apperr"
)

// Service orchestrates bed numbering, status transitions, occupancy
// assignment and capacity bookkeeping across the ward and bed stores.
// Events are published through the injected Publisher after each successful
// mutation; publish failures never affect the response.
type Service struct {
	wards     WardRepository
	beds      BedRepository
	pool      *pgxpool.Pool // nil disables transactional scopes (unit tests)
	publisher realtime.Publisher
	stats     *cache.StatsCache
	logger    zerolog.Logger
}

func NewService(wards WardRepository, beds BedRepository, pool *pgxpool.Pool, publisher realtime.Publisher, stats *cache.StatsCache, logger zerolog.Logger) *Service {
	return &Service{wards: wards, beds: beds, pool: pool, publisher: publisher, stats: stats, logger: logger}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}

func (s *Service) publish(ctx context.Context, eventType, topic string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, realtime.NewEvent(eventType, topic, data)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func (s *Service) invalidateStats(ctx context.Context) {
	if err := s.stats.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

// -- Ward Lifecycle --

// CreateWardInput carries the ward creation request.
type CreateWardInput struct {
	Name       string  `json:"name"`
	Prefix     string  `json:"prefix"`
	Type       string  `json:"type"`
	RatePerDay float64 `json:"ratePerDay"`
	NumBeds    int     `json:"numBeds"`
}

// CreateWard derives the ward id from the name, persists the ward and
// provisions NumBeds available beds numbered 01..N.
func (s *Service) CreateWard(ctx context.Context, in CreateWardInput) (*WardWithBeds, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if in.Prefix == "" {
		return nil, apperr.Validation("prefix is required")
	}
	if len(in.Prefix) > MaxPrefixLen {
		return nil, apperr.Validation("prefix must be at most %d characters", MaxPrefixLen)
	}
	if in.NumBeds < 0 {
		return nil, apperr.Validation("numBeds must not be negative")
	}

	id := WardIDFromName(in.Name)
	if id == "" {
		return nil, apperr.Validation("name %q yields an empty ward id", in.Name)
	}

	exists, err := s.wards.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("ward %q already exists", id)
	}

	ward := &Ward{
		ID:         id,
		Name:       in.Name,
		Prefix:     strings.ToUpper(in.Prefix),
		Type:       in.Type,
		RatePerDay: in.RatePerDay,
		TotalBeds:  in.NumBeds,
	}

	beds := make([]*Bed, 0, in.NumBeds)
	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.wards.Create(ctx, ward); err != nil {
			return err
		}
		for n := 1; n <= in.NumBeds; n++ {
			bed := &Bed{
				ID:     BedID(ward.Prefix, n),
				WardID: ward.ID,
				Number: n,
				Status: StatusAvailable,
			}
			if err := s.beds.Create(ctx, bed); err != nil {
				return err
			}
			beds = append(beds, bed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := &WardWithBeds{Ward: *ward, Beds: beds}
	s.publish(ctx, "wardCreated", "wards", view)
	s.invalidateStats(ctx)
	return view, nil
}

// UpdateWardInput is a merge-patch: only non-nil fields overwrite.
type UpdateWardInput struct {
	Name       *string  `json:"name"`
	Prefix     *string  `json:"prefix"`
	RatePerDay *float64 `json:"ratePerDay"`
	AddBeds    *int     `json:"addBeds"`
}

// UpdateWard applies a partial update. A prefix change re-derives every
// existing bed id from the bed's sequence number; AddBeds appends beds
// starting after the current count and reconciles TotalBeds.
func (s *Service) UpdateWard(ctx context.Context, id string, in UpdateWardInput) (*WardWithBeds, error) {
	ward, err := s.wards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		ward.Name = *in.Name
	}
	if in.RatePerDay != nil {
		ward.RatePerDay = *in.RatePerDay
	}

	newPrefix := ward.Prefix
	if in.Prefix != nil {
		if *in.Prefix == "" {
			return nil, apperr.Validation("prefix must not be empty")
		}
		if len(*in.Prefix) > MaxPrefixLen {
			return nil, apperr.Validation("prefix must be at most %d characters", MaxPrefixLen)
		}
		newPrefix = strings.ToUpper(*in.Prefix)
	}

	addBeds := 0
	if in.AddBeds != nil {
		if *in.AddBeds < 0 {
			return nil, apperr.Validation("addBeds must not be negative")
		}
		addBeds = *in.AddBeds
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if newPrefix != ward.Prefix {
			beds, err := s.beds.ListByWard(ctx, ward.ID)
			if err != nil {
				return err
			}
			for _, b := range beds {
				if err := s.beds.Rename(ctx, b.ID, BedID(newPrefix, b.Number)); err != nil {
					return err
				}
			}
			ward.Prefix = newPrefix
		}

		if addBeds > 0 {
			count, err := s.beds.CountByWard(ctx, ward.ID)
			if err != nil {
				return err
			}
			for n := count + 1; n <= count+addBeds; n++ {
				bed := &Bed{
					ID:     BedID(ward.Prefix, n),
					WardID: ward.ID,
					Number: n,
					Status: StatusAvailable,
				}
				if err := s.beds.Create(ctx, bed); err != nil {
					return err
				}
			}
			ward.TotalBeds = count + addBeds
		}

		ward.UpdatedAt = time.Now().UTC()
		return s.wards.Update(ctx, ward)
	})
	if err != nil {
		return nil, err
	}

	beds, err := s.beds.ListByWard(ctx, ward.ID)
	if err != nil {
		return nil, err
	}

	view := &WardWithBeds{Ward: *ward, Beds: beds}
	s.publish(ctx, "wardUpdated", "wards", view)
	if addBeds > 0 {
		s.invalidateStats(ctx)
	}
	return view, nil
}

// DeleteWard cascades: all beds referencing the ward are deleted first.
func (s *Service) DeleteWard(ctx context.Context, id string) error {
	ward, err := s.wards.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.beds.DeleteByWard(ctx, ward.ID); err != nil {
			return err
		}
		return s.wards.Delete(ctx, ward.ID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, "wardDeleted", "wards", map[string]string{"wardId": ward.ID})
	s.invalidateStats(ctx)
	return nil
}

// GetWard returns the composed ward+beds view.
func (s *Service) GetWard(ctx context.Context, id string) (*WardWithBeds, error) {
	ward, err := s.wards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	beds, err := s.beds.ListByWard(ctx, ward.ID)
	if err != nil {
		return nil, err
	}
	return &WardWithBeds{Ward: *ward, Beds: beds}, nil
}

// ListWards returns every ward with its nested bed list.
func (s *Service) ListWards(ctx context.Context) ([]*WardWithBeds, error) {
	wards, err := s.wards.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*WardWithBeds, 0, len(wards))
	for _, w := range wards {
		beds, err := s.beds.ListByWard(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, &WardWithBeds{Ward: *w, Beds: beds})
	}
	return views, nil
}

// -- Bed Lifecycle --

// AddBeds appends numBeds beds to the ward, numbering them after the current
// count, and reconciles TotalBeds.
func (s *Service) AddBeds(ctx context.Context, wardID string, numBeds int, status BedStatus) ([]*Bed, error) {
	ward, err := s.wards.GetByID(ctx, wardID)
	if err != nil {
		return nil, err
	}
	if numBeds < 0 {
		return nil, apperr.Validation("numBeds must not be negative")
	}
	if numBeds == 0 {
		numBeds = 1
	}
	if status == "" {
		status = StatusAvailable
	}
	if !status.Valid() {
		return nil, apperr.Validation("unknown bed status %q", status)
	}

	var beds []*Bed
	err = s.inTx(ctx, func(ctx context.Context) error {
		count, err := s.beds.CountByWard(ctx, ward.ID)
		if err != nil {
			return err
		}
		beds = make([]*Bed, 0, numBeds)
		for n := count + 1; n <= count+numBeds; n++ {
			bed := &Bed{
				ID:     BedID(ward.Prefix, n),
				WardID: ward.ID,
				Number: n,
				Status: status,
			}
			if err := s.beds.Create(ctx, bed); err != nil {
				return err
			}
			beds = append(beds, bed)
		}
		ward.TotalBeds = count + numBeds
		return s.wards.Update(ctx, ward)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "bedsAdded", "beds", map[string]interface{}{
		"wardId":    ward.ID,
		"beds":      beds,
		"totalBeds": ward.TotalBeds,
	})
	s.invalidateStats(ctx)
	return beds, nil
}

// DeleteBed removes a bed unless it is in use, and decrements the owning
// ward's TotalBeds, floored at zero.
func (s *Service) DeleteBed(ctx context.Context, wardID, bedID string) error {
	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return err
	}
	if bed.Status.InUse() {
		return apperr.Conflict("bed %s is %s and cannot be deleted", bed.ID, bed.Status)
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.beds.Delete(ctx, bed.ID); err != nil {
			return err
		}
		ward, err := s.wards.GetByID(ctx, bed.WardID)
		if err != nil {
			// The owning ward is gone; nothing left to reconcile.
			if apperr.IsNotFound(err) {
				return nil
			}
			return err
		}
		if ward.TotalBeds > 0 {
			ward.TotalBeds--
		}
		return s.wards.Update(ctx, ward)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, "bedDeleted", "beds", map[string]string{"wardId": wardID, "bedId": bed.ID})
	s.invalidateStats(ctx)
	return nil
}

// OccupantPatch is a merge-patch over the embedded occupant record.
type OccupantPatch struct {
	Name      *string    `json:"name"`
	Diagnosis *string    `json:"diagnosis"`
	AdmitDate *time.Time `json:"admitDate"`
	Doctor    *string    `json:"doctor"`
	PatientID *string    `json:"patientId"`
}

// BedPatch is the raw field-level override: only provided fields overwrite,
// and no occupancy-transition validation is applied.
type BedPatch struct {
	Status  *BedStatus     `json:"status"`
	Patient *OccupantPatch `json:"patient"`
}

// UpdateBed merge-patches status and/or occupant fields, bypassing
// Assign/Discharge validation. This is the only path that sets the side
// states (critical, maintenance, reserved).
func (s *Service) UpdateBed(ctx context.Context, bedID string, patch BedPatch) (*Bed, error) {
	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperr.Validation("unknown bed status %q", *patch.Status)
		}
		bed.Status = *patch.Status
	}

	if patch.Patient != nil {
		occ := bed.Occupant
		if occ == nil {
			occ = &Occupant{AdmitDate: time.Now().UTC()}
		}
		p := patch.Patient
		if p.Name != nil {
			occ.Name = *p.Name
		}
		if p.Diagnosis != nil {
			occ.Diagnosis = *p.Diagnosis
		}
		if p.AdmitDate != nil {
			occ.AdmitDate = *p.AdmitDate
		}
		if p.Doctor != nil {
			occ.Doctor = *p.Doctor
		}
		if p.PatientID != nil {
			occ.PatientID = *p.PatientID
		}
		bed.Occupant = occ
	}

	bed.UpdatedAt = time.Now().UTC()
	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, err
	}

	s.publish(ctx, "bedUpdated", "beds", bed)
	s.invalidateStats(ctx)
	return bed, nil
}

// -- Occupancy Transitions --

// AssignInput carries the admission details for a bed assignment.
type AssignInput struct {
	PatientName string `json:"patientName"`
	Diagnosis   string `json:"diagnosis"`
	Doctor      string `json:"doctor"`
	PatientID   string `json:"patientId"`
}

// Assign admits a patient to a bed. The bed transitions to occupied; beds
// already occupied or critical refuse the assignment. The ward id is request
// context only and is echoed in the event, not validated against the bed.
func (s *Service) Assign(ctx context.Context, wardID, bedID string, in AssignInput) (*Bed, error) {
	if strings.TrimSpace(in.PatientName) == "" {
		return nil, apperr.Validation("patientName is required")
	}

	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status.InUse() {
		return nil, apperr.Conflict("bed %s is already %s", bed.ID, bed.Status)
	}

	bed.Status = StatusOccupied
	bed.Occupant = &Occupant{
		Name:      in.PatientName,
		Diagnosis: in.Diagnosis,
		AdmitDate: time.Now().UTC(),
		Doctor:    in.Doctor,
		PatientID: in.PatientID,
	}
	bed.UpdatedAt = time.Now().UTC()

	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, err
	}

	s.publish(ctx, "patientAssigned", "beds", map[string]interface{}{
		"wardId": wardID,
		"bed":    bed,
	})
	s.invalidateStats(ctx)
	return bed, nil
}

// Discharge releases a bed back to available, capturing the occupant's name
// before clearing it ("Unknown" when the bed had no occupant record).
func (s *Service) Discharge(ctx context.Context, wardID, bedID string) (*Bed, string, error) {
	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, "", err
	}

	patientName := "Unknown"
	if bed.Occupant != nil && bed.Occupant.Name != "" {
		patientName = bed.Occupant.Name
	}

	bed.Status = StatusAvailable
	bed.Occupant = nil
	bed.UpdatedAt = time.Now().UTC()

	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, "", err
	}

	s.publish(ctx, "patientDischarged", "beds", map[string]interface{}{
		"wardId":      wardID,
		"bed":         bed,
		"patientName": patientName,
	})
	s.invalidateStats(ctx)
	return bed, patientName, nil
}

// TransferResult is the outcome of moving an occupant between beds.
type TransferResult struct {
	FromBed     *Bed   `json:"fromBed"`
	ToBed       *Bed   `json:"toBed"`
	PatientName string `json:"patientName"`
}

// Transfer moves the source bed's occupant and current status to the
// destination and resets the source to available. The destination inherits
// the source status verbatim, so a critical patient stays critical after the
// move. Both writes commit in one transaction.
func (s *Service) Transfer(ctx context.Context, fromBedID, toBedID string) (*TransferResult, error) {
	var result *TransferResult
	err := s.inTx(ctx, func(ctx context.Context) error {
		from, err := s.beds.GetByID(ctx, fromBedID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NotFound("source bed %s not found", fromBedID)
			}
			return err
		}
		to, err := s.beds.GetByID(ctx, toBedID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NotFound("destination bed %s not found", toBedID)
			}
			return err
		}

		if from.Occupant == nil {
			return apperr.Conflict("source bed %s has no occupant", from.ID)
		}
		if to.Status.InUse() {
			return apperr.Conflict("destination bed %s is already %s", to.ID, to.Status)
		}

		now := time.Now().UTC()
		to.Occupant = from.Occupant
		to.Status = from.Status
		to.UpdatedAt = now
		from.Occupant = nil
		from.Status = StatusAvailable
		from.UpdatedAt = now

		if err := s.beds.Update(ctx, to); err != nil {
			return err
		}
		if err := s.beds.Update(ctx, from); err != nil {
			return err
		}

		result = &TransferResult{FromBed: from, ToBed: to, PatientName: to.Occupant.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "patientTransferred", "beds", result)
	s.invalidateStats(ctx)
	return result, nil
}

// -- Stats --

// Stats counts beds by status plus a grand total. The aggregate is served
// from the cache when warm.
func (s *Service) Stats(ctx context.Context) (*BedStats, error) {
	var cached BedStats
	if err := s.stats.Get(ctx, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn().Err(err).Msg("stats cache read failed")
	}

	counts, err := s.beds.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &BedStats{
		Occupied:    counts[StatusOccupied],
		Available:   counts[StatusAvailable],
		Critical:    counts[StatusCritical],
		Maintenance: counts[StatusMaintenance],
		Reserved:    counts[StatusReserved],
	}
	stats.Total = stats.Occupied + stats.Available + stats.Critical + stats.Maintenance + stats.Reserved

	if err := s.stats.Set(ctx, stats); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}
