package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"medibook/internal/metrics"
	"medibook/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

// BookingSource is the slice of the repository the exporter needs.
type BookingSource interface {
	GetForHospital(ctx context.Context, hospitalID int64) ([]models.Booking, error)
}

// ReportExporter renders a hospital's bookings into an .xlsx file in the
// exports directory. Jobs are taken from a buffered queue so the screen
// that requested the download is never blocked.
type ReportExporter struct {
	source      BookingSource
	dir         string
	queue       chan models.ExportJob
	retryPolicy RetryPolicy
	logger      *zerolog.Logger
}

// NewReportExporter builds an exporter with sane defaults.
func NewReportExporter(source BookingSource, dir string, retry RetryPolicy, logger *zerolog.Logger) *ReportExporter {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 30 * time.Second
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if dir == "" {
		dir = "exports"
	}

	return &ReportExporter{
		source:      source,
		dir:         dir,
		queue:       make(chan models.ExportJob, 64),
		retryPolicy: retry,
		logger:      logger,
	}
}

// Enqueue schedules an export without blocking. A full queue is reported to
// the caller instead of waiting.
func (e *ReportExporter) Enqueue(job models.ExportJob) error {
	if job.HospitalID == 0 {
		return errors.New("hospital id is required")
	}
	if job.RequestedAt.IsZero() {
		job.RequestedAt = time.Now()
	}

	select {
	case e.queue <- job:
		return nil
	default:
		return errors.New("export queue is full")
	}
}

// Start consumes export jobs until the context is cancelled.
func (e *ReportExporter) Start(ctx context.Context) {
	e.logger.Info().Str("dir", e.dir).Msg("report exporter started")

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-e.queue:
			e.process(ctx, job)
		}
	}
}

func (e *ReportExporter) process(ctx context.Context, job models.ExportJob) {
	var lastErr error
	for attempt := 1; attempt <= e.retryPolicy.MaxRetries; attempt++ {
		path, err := e.Export(ctx, job)
		if err == nil {
			e.logger.Info().Int64("hospital_id", job.HospitalID).Str("path", path).Msg("report exported")
			return
		}
		lastErr = err

		e.logger.Warn().Err(err).Int("attempt", attempt).Int64("hospital_id", job.HospitalID).Msg("report export failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(e.retryPolicy.NextDelay(attempt)):
		}
	}

	metrics.IncExportFailure()
	e.logger.Error().Err(lastErr).Int64("hospital_id", job.HospitalID).Msg("report export gave up after retries")
}

// Export renders the report synchronously and returns the written path.
func (e *ReportExporter) Export(ctx context.Context, job models.ExportJob) (string, error) {
	bookings, err := e.source.GetForHospital(ctx, job.HospitalID)
	if err != nil {
		return "", fmt.Errorf("failed to load bookings for export: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"ID", "Patient", "Age", "Gender", "Doctor", "Date", "Time", "Status", "Booked At", "Symptoms"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.PatientName,
			b.PatientAge,
			b.PatientGender,
			b.DoctorName,
			b.Date,
			b.Time,
			string(b.Status),
			b.BookedAt.Format(time.RFC3339),
			b.Symptoms,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return "", fmt.Errorf("failed to write booking row: %w", err)
			}
		}
	}

	name := fmt.Sprintf("bookings_%d_%s.xlsx", job.HospitalID, job.RequestedAt.Format("20060102_150405"))
	path := filepath.Join(e.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}
