package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
)

const (
	CreditsSlotAdd    = "add"
	CreditsSlotRemove = "remove"
)

// ToggleCreditsSlot marks or unmarks a seat index as reservable with
// points only. Serialized against bookings on the same slot, since the
// marks change what a credits purchase may claim.
func (s *BookingService) ToggleCreditsSlot(ctx context.Context, slotID string, index int, action string) (*model.TimeSlot, error) {
	if slotID == "" || (action != CreditsSlotAdd && action != CreditsSlotRemove) {
		return nil, ErrInvalidArgument
	}

	unlock := s.locks.Lock(slotID)
	defer unlock()

	var updated *model.TimeSlot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := repository.NewGormSlotRepository(tx)

		slot, err := slots.GetByIDLocked(ctx, slotID)
		if err != nil {
			return err
		}
		if index < 0 || index >= slot.MaxPlayers {
			return ErrInvalidArgument
		}

		marked, err := slot.CreditsSlotIndices()
		if err != nil {
			return err
		}

		next := make([]int, 0, len(marked)+1)
		found := false
		for _, idx := range marked {
			if idx == index {
				found = true
				if action == CreditsSlotRemove {
					continue
				}
			}
			next = append(next, idx)
		}
		if action == CreditsSlotAdd && !found {
			next = append(next, index)
		}

		if err := slot.SetCreditsSlotIndices(next); err != nil {
			return err
		}
		if err := slots.Save(ctx, slot); err != nil {
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListBookable returns a club's bookable slots in [from, to): proposals,
// classified slots and confirmed classes still holding recycled seats.
func (s *BookingService) ListBookable(ctx context.Context, clubID string, from, to time.Time) ([]model.TimeSlot, error) {
	if clubID == "" || !to.After(from) {
		return nil, ErrInvalidArgument
	}
	return repository.NewGormSlotRepository(s.db).ListBookable(ctx, clubID, from, to)
}

// ListUserBookings returns a user's bookings created in [from, to], newest
// first, cancelled ones included.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string, from, to time.Time, limit int) ([]model.Booking, error) {
	if userID == "" || !to.After(from) {
		return nil, ErrInvalidArgument
	}
	return repository.NewGormBookingRepository(s.db).ListByUser(ctx, userID, from, to, limit)
}
