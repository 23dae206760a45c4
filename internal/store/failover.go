package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"medibook/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverStore reads and writes through a primary store and degrades to a
// fallback (typically in-memory) when the primary fails, probing the primary
// again after a cooldown. A missing key is a normal answer, never a failure.
type FailoverStore struct {
	primary   domain.Store
	fallback  domain.Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

const recoverAfter = time.Minute

func NewFailoverStore(primary, fallback domain.Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary store failed, using fallback store")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}

func (s *FailoverStore) shouldProbe() bool {
	last := time.Unix(0, s.lastCheck.Load())
	return time.Since(last) > recoverAfter
}

func (s *FailoverStore) Read(ctx context.Context, key string) ([]byte, error) {
	if !s.isDown.Load() {
		value, err := s.primary.Read(ctx, key)
		if err == nil || errors.Is(err, ErrKeyNotFound) {
			return value, err
		}
		s.markDown(err)
	}

	if s.isDown.Load() && s.shouldProbe() {
		value, err := s.primary.Read(ctx, key)
		if err == nil || errors.Is(err, ErrKeyNotFound) {
			s.isDown.Store(false)
			return value, err
		}
		s.lastCheck.Store(time.Now().UnixNano())
	}

	return s.fallback.Read(ctx, key)
}

func (s *FailoverStore) Write(ctx context.Context, key string, value []byte) error {
	if !s.isDown.Load() {
		err := s.primary.Write(ctx, key, value)
		if err == nil {
			return nil
		}
		s.markDown(err)
	}

	return s.fallback.Write(ctx, key, value)
}

func (s *FailoverStore) Delete(ctx context.Context, key string) error {
	if !s.isDown.Load() {
		err := s.primary.Delete(ctx, key)
		if err == nil {
			return nil
		}
		s.markDown(err)
	}

	return s.fallback.Delete(ctx, key)
}
