package book_slot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
	"github.com/m04kA/SMC-ArenaSlots/pkg/logger"
	"github.com/m04kA/SMC-ArenaSlots/pkg/metrics"
)

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestUseCase(store *memStore) (*UseCase, *metricsStub) {
	m := &metricsStub{}
	return NewUseCase(store, store, store, m, logger.Discard(), domain.DefaultMaxBookings), m
}

func TestExecute_FullSlotRejected(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(day, "09AM-10AM", 5)
	store.addBookings(slot, 5)
	uc, m := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{UserID: uuid.New(), Date: day, TimeFrame: "09AM-10AM"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Equal(t, 5, store.count(slot.ID))
	assert.Equal(t, 1, m.outcomes[metrics.OutcomeSlotFull])
}

func TestExecute_LazySlotCreation(t *testing.T) {
	store := newMemStore()
	uc, m := newTestUseCase(store)
	userID := uuid.New()

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    userID,
		Date:      time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC),
		TimeFrame: "09AM-10AM",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.slotCount())
	assert.Equal(t, domain.SlotID(day, "09AM-10AM"), resp.SlotID)
	assert.Equal(t, domain.DefaultMaxBookings, resp.MaxBookings)
	assert.Equal(t, 1, resp.Booked)
	assert.Equal(t, 4, resp.Remaining)
	assert.Equal(t, userID, resp.UserID)
	assert.True(t, day.Equal(resp.ExpiresAt))
	assert.Equal(t, 1, store.count(resp.SlotID))
	assert.Equal(t, 1, m.outcomes[metrics.OutcomeCreated])
}

func TestExecute_SameUserTwice(t *testing.T) {
	store := newMemStore()
	uc, m := newTestUseCase(store)
	req := &Request{UserID: uuid.New(), Date: day, TimeFrame: "09AM-10AM"}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Equal(t, 1, store.count(first.SlotID))
	assert.Equal(t, 1, m.outcomes[metrics.OutcomeAlreadyBooked])
}

func TestExecute_ConcurrentLastPlace(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(day, "10AM-11AM", 1)
	uc, _ := newTestUseCase(store)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{UserID: uuid.New(), Date: day, TimeFrame: "10AM-11AM"})
		}(i)
	}
	wg.Wait()

	succeeded, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotFull):
			full++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, full)
	assert.Equal(t, 1, store.count(slot.ID))
}

func TestExecute_ManyConcurrentRequestsNeverOverbook(t *testing.T) {
	store := newMemStore()
	uc, m := newTestUseCase(store)

	const requests = 50
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Execute(context.Background(), &Request{UserID: uuid.New(), Date: day, TimeFrame: "11AM-12PM"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.slotCount())
	assert.Equal(t, domain.DefaultMaxBookings, store.count(domain.SlotID(day, "11AM-12PM")))
	assert.Equal(t, domain.DefaultMaxBookings, m.outcomes[metrics.OutcomeCreated])
	assert.Equal(t, requests-domain.DefaultMaxBookings, m.outcomes[metrics.OutcomeSlotFull])
}

func TestExecute_ConcurrentFindOrCreateSameSlot(t *testing.T) {
	store := newMemStore()

	ids := make([]uuid.UUID, 20)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slot, err := store.FindOrCreate(context.Background(), day, "09AM-10AM", 5)
			if err == nil {
				ids[i] = slot.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, store.slotCount())
}

func TestExecute_StoreFailureRollsBack(t *testing.T) {
	store := newMemStore()
	store.countErr = errors.New("connection reset")
	uc, m := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{UserID: uuid.New(), Date: day, TimeFrame: "09AM-10AM"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, store.slotCount(), "slot created inside the failed transaction must be rolled back")
	assert.Equal(t, 1, m.outcomes[metrics.OutcomeError])
}

func TestExecute_Validation(t *testing.T) {
	uc, m := newTestUseCase(newMemStore())

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"no user", &Request{Date: day, TimeFrame: "09AM-10AM"}},
		{"no date", &Request{UserID: uuid.New(), TimeFrame: "09AM-10AM"}},
		{"blank time frame", &Request{UserID: uuid.New(), Date: day, TimeFrame: "   "}},
		{"time frame too long", &Request{UserID: uuid.New(), Date: day, TimeFrame: string(make([]byte, domain.MaxTimeFrameLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, len(tests), m.outcomes[metrics.OutcomeInvalid])
}

func TestExecute_TimeFrameLengthCountsCharacters(t *testing.T) {
	uc, _ := newTestUseCase(newMemStore())

	// 64 кириллических символа занимают 128 байт
	cyrillic := strings.Repeat("ж", domain.MaxTimeFrameLength)
	_, err := uc.Execute(context.Background(), &Request{UserID: uuid.New(), Date: day, TimeFrame: cyrillic})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{UserID: uuid.New(), Date: day, TimeFrame: cyrillic + "ж"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
