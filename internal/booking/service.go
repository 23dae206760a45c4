package booking

import (
	"context"
	"fmt"
	"time"

	"medibook/internal/config"
	"medibook/internal/domain"
	"medibook/internal/events"
	"medibook/internal/metrics"
	"medibook/internal/models"
	"medibook/internal/repository"

	"github.com/rs/zerolog"
)

// Service enforces the booking lifecycle: creation, legal status
// transitions, and the change signal dependent screens reload on.
type Service struct {
	bookings domain.Bookings
	eventBus domain.EventPublisher
	exporter domain.Exporter
	limiter  *createLimiter
	logger   *zerolog.Logger
}

func NewService(bookings domain.Bookings, eventBus domain.EventPublisher, exporter domain.Exporter, limits config.LimitsConfig, logger *zerolog.Logger) *Service {
	return &Service{
		bookings: bookings,
		eventBus: eventBus,
		exporter: exporter,
		limiter:  newCreateLimiter(limits),
		logger:   logger,
	}
}

// CreateRequest carries the snapshot fields for a new booking. All fields
// are required.
type CreateRequest struct {
	PatientName   string
	PatientAge    int
	PatientGender string
	DoctorID      int64
	DoctorName    string
	HospitalID    int64
	HospitalName  string
	Date          string
	Time          string
	Symptoms      string
}

func (r CreateRequest) validate() error {
	switch {
	case r.PatientName == "":
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	case r.PatientAge <= 0:
		return fmt.Errorf("%w: patient age is required", ErrValidation)
	case r.PatientGender == "":
		return fmt.Errorf("%w: patient gender is required", ErrValidation)
	case r.DoctorID == 0 || r.DoctorName == "":
		return fmt.Errorf("%w: doctor is required", ErrValidation)
	case r.HospitalID == 0 || r.HospitalName == "":
		return fmt.Errorf("%w: hospital is required", ErrValidation)
	case r.Date == "" || r.Time == "":
		return fmt.Errorf("%w: appointment slot is required", ErrValidation)
	case r.Symptoms == "":
		return fmt.Errorf("%w: symptoms are required", ErrValidation)
	}
	return nil
}

// Create validates the request, allocates the next ID and appends the new
// Pending booking to the stored collection. Validation happens before any
// store access.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	if err := req.validate(); err != nil {
		metrics.IncTransitionError("validation")
		return nil, err
	}

	if !s.limiter.allow(req.PatientName) {
		metrics.IncTransitionError("rate_limited")
		return nil, ErrRateLimited
	}

	all, err := s.bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:            repository.NextID(all),
		PatientName:   req.PatientName,
		PatientAge:    req.PatientAge,
		PatientGender: req.PatientGender,
		DoctorID:      req.DoctorID,
		DoctorName:    req.DoctorName,
		HospitalID:    req.HospitalID,
		HospitalName:  req.HospitalName,
		Date:          req.Date,
		Time:          req.Time,
		Symptoms:      req.Symptoms,
		Status:        models.StatusPending,
		BookedAt:      time.Now(),
	}

	if err := s.bookings.SaveAll(ctx, append(all, booking)); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().Int64("booking_id", booking.ID).Int64("hospital_id", booking.HospitalID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, "patient")

	return &booking, nil
}

// ApplyTransition moves one booking to the target status if the transition
// is legal, re-persists the full collection, and signals dependent screens.
// On any failure the stored collection is left unchanged.
func (s *Service) ApplyTransition(ctx context.Context, bookingID int64, target models.Status) error {
	return s.applyTransition(ctx, bookingID, target, "")
}

func (s *Service) applyTransition(ctx context.Context, bookingID int64, target models.Status, changedBy string) error {
	if !target.Valid() {
		metrics.IncTransitionError("unknown_status")
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	all, err := s.bookings.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, b := range all {
		if b.ID == bookingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics.IncTransitionError("not_found")
		return fmt.Errorf("%w: id %d", ErrNotFound, bookingID)
	}

	current := all[idx].Status
	if !models.CanTransition(current, target) {
		metrics.IncTransitionError("illegal_transition")
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	all[idx].Status = target
	if err := s.bookings.SaveAll(ctx, all); err != nil {
		return err
	}

	metrics.IncTransition(string(target))
	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("from", string(current)).
		Str("to", string(target)).
		Msg("booking status changed")
	s.publishEvent(events.EventBookingStatusChanged, all[idx], changedBy)

	return nil
}

// Accept is the hospital-side approval of a pending request.
func (s *Service) Accept(ctx context.Context, bookingID int64) error {
	return s.applyTransition(ctx, bookingID, models.StatusAccepted, "hospital")
}

// Reject is the hospital-side refusal of a pending request.
func (s *Service) Reject(ctx context.Context, bookingID int64) error {
	return s.applyTransition(ctx, bookingID, models.StatusRejected, "hospital")
}

// Complete marks an accepted appointment as held.
func (s *Service) Complete(ctx context.Context, bookingID int64) error {
	return s.applyTransition(ctx, bookingID, models.StatusCompleted, "hospital")
}

// Cancel is the patient-side withdrawal of a pending or accepted booking.
func (s *Service) Cancel(ctx context.Context, bookingID int64) error {
	return s.applyTransition(ctx, bookingID, models.StatusCancelled, "patient")
}

// ClearCancelled purges Cancelled records on explicit user request and
// signals a reload when anything was removed.
func (s *Service) ClearCancelled(ctx context.Context) (int, error) {
	removed, err := s.bookings.ClearCancelled(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.publishEvent(events.EventBookingsPurged, models.Booking{}, "patient")
	}
	return removed, nil
}

// RequestExport enqueues an async spreadsheet export of the hospital's
// bookings. Returns immediately; the worker writes the file.
func (s *Service) RequestExport(hospitalID int64, hospitalName string) error {
	if s.exporter == nil {
		return fmt.Errorf("export is not configured")
	}
	return s.exporter.Enqueue(models.ExportJob{
		HospitalID:   hospitalID,
		HospitalName: hospitalName,
		RequestedAt:  time.Now(),
	})
}

func (s *Service) publishEvent(eventType string, booking models.Booking, changedBy string) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		PatientName: booking.PatientName,
		HospitalID:  booking.HospitalID,
		Status:      booking.Status,
		ChangedBy:   changedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
