package reaper

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	entitySlot    = "slot"
	entityBooking = "booking"
)

// Result результат одного прохода очистки
type Result struct {
	Cutoff          time.Time
	BookingsDeleted int64
	SlotsDeleted    int64
}

// Reaper периодически удаляет слоты и бронирования, дата которых старше retention
type Reaper struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	retention    time.Duration
	interval     time.Duration
}

// New создает reaper. metrics может быть nil
func New(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
	retention time.Duration,
	interval time.Duration,
) *Reaper {
	return &Reaper{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		retention:    retention,
		interval:     interval,
	}
}

// WithTimeProvider подменяет источник времени
func (r *Reaper) WithTimeProvider(tp TimeProvider) *Reaper {
	r.timeProvider = tp
	return r
}

// Run выполняет очистку сразу и затем каждые interval до отмены ctx
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("Reaper started: interval=%s, retention=%s", r.interval, r.retention)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("Reaper: pass failed: %v", err)
		}

		select {
		case <-ctx.Done():
			r.logger.Info("Reaper stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce удаляет бронирования с expires_at + retention <= now и слоты с date + retention <= now.
// Слоты удаляются после бронирований; оставшиеся бронирования слотов удаляет каскад
func (r *Reaper) RunOnce(ctx context.Context) (*Result, error) {
	cutoff := r.timeProvider.Now().UTC().Add(-r.retention)
	result := &Result{Cutoff: cutoff}

	bookings, err := r.bookingRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return result, fmt.Errorf("delete expired bookings: %w", err)
	}
	result.BookingsDeleted = bookings
	r.record(entityBooking, bookings)

	slots, err := r.slotRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return result, fmt.Errorf("delete expired slots: %w", err)
	}
	result.SlotsDeleted = slots
	r.record(entitySlot, slots)

	if bookings > 0 || slots > 0 {
		r.logger.Info("Reaper: purged %d bookings and %d slots older than %s",
			bookings, slots, cutoff.Format(time.RFC3339))
	}

	return result, nil
}

func (r *Reaper) record(entity string, count int64) {
	if r.metrics != nil {
		r.metrics.RecordPurged(entity, count)
	}
}
