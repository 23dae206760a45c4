package domain

import (
	"context"

	"medibook/internal/models"
)

// Store is durable key-value storage for serialized JSON blobs. A missing
// key is a normal state (first run) and is reported as store.ErrKeyNotFound.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Bookings is the typed surface the lifecycle service needs over the
// persisted booking collection.
type Bookings interface {
	GetAll(ctx context.Context) ([]models.Booking, error)
	SaveAll(ctx context.Context, bookings []models.Booking) error
	ClearCancelled(ctx context.Context) (int, error)
}

// EventPublisher delivers in-process notifications, used for the reload
// signal after a completed mutation.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Exporter accepts report jobs without blocking the caller.
type Exporter interface {
	Enqueue(job models.ExportJob) error
}
