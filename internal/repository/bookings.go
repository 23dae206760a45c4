package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"medibook/internal/domain"
	"medibook/internal/models"
	"medibook/internal/store"

	"github.com/rs/zerolog"
)

// BookingRepository is the only component that reads or writes the bookings
// key. The stored value is always the complete collection across all
// patients and hospitals; role views are produced by filtering.
type BookingRepository struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewBookingRepository(st domain.Store, logger *zerolog.Logger) *BookingRepository {
	return &BookingRepository{store: st, logger: logger}
}

// GetAll returns the stored collection. An unwritten key is a normal first
// run state and yields an empty collection.
func (r *BookingRepository) GetAll(ctx context.Context) ([]models.Booking, error) {
	raw, err := r.store.Read(ctx, store.KeyBookings)
	if errors.Is(err, store.ErrKeyNotFound) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	var bookings []models.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// GetForHospital returns the hospital's bookings, most recent first. An
// unknown hospital yields an empty slice, never an error.
func (r *BookingRepository) GetForHospital(ctx context.Context, hospitalID int64) ([]models.Booking, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if b.HospitalID == hospitalID {
			filtered = append(filtered, b)
		}
	}
	sortByRecency(filtered)
	return filtered, nil
}

// GetForPatient returns the patient's bookings, most recent first. Matching
// is a case-insensitive exact match on the name snapshot; two patients with
// the same name share a view. A stable patient ID would fix that, but the
// stored records carry none.
func (r *BookingRepository) GetForPatient(ctx context.Context, patientName string) ([]models.Booking, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if strings.EqualFold(b.PatientName, patientName) {
			filtered = append(filtered, b)
		}
	}
	sortByRecency(filtered)
	return filtered, nil
}

// SaveAll replaces the entire stored collection in one atomic write.
func (r *BookingRepository) SaveAll(ctx context.Context, bookings []models.Booking) error {
	if bookings == nil {
		bookings = []models.Booking{}
	}

	raw, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("failed to marshal bookings: %w", err)
	}

	if err := r.store.Write(ctx, store.KeyBookings, raw); err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}

// ClearCancelled removes every Cancelled record and reports how many were
// purged. All other records are written back untouched.
func (r *BookingRepository) ClearCancelled(ctx context.Context) (int, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if b.Status != models.StatusCancelled {
			kept = append(kept, b)
		}
	}

	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := r.SaveAll(ctx, kept); err != nil {
		return 0, err
	}

	r.logger.Info().Int("removed", removed).Msg("cancelled bookings purged")
	return removed, nil
}

// NextID allocates the next booking ID: max of existing IDs plus one, or 1
// for an empty collection.
func NextID(bookings []models.Booking) int64 {
	var max int64
	for _, b := range bookings {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}

func sortByRecency(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookedAt.After(bookings[j].BookedAt)
	})
}
