package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
)

type CancelRequest struct {
	BookingID string
	UserID    string
}

// Cancel releases a booking: refunds the wallet, frees the seats and, on a
// confirmed class, recycles them as points-only inventory. Refund and
// status change are one transaction — there is no path where the money
// moved but the booking still counts.
func (s *BookingService) Cancel(ctx context.Context, req CancelRequest) (*model.Booking, error) {
	if req.BookingID == "" || req.UserID == "" {
		return nil, ErrInvalidArgument
	}

	// Unlocked pre-read only to learn which slot to serialize on.
	peek, err := repository.NewGormBookingRepository(s.db).GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(peek.TimeSlotID.String())
	defer unlock()

	var booking *model.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := repository.NewGormSlotRepository(tx)
		bookings := repository.NewGormBookingRepository(tx)
		schedules := repository.NewGormScheduleRepository(tx)
		wallet := NewWalletService(tx)

		b, err := bookings.GetByIDLocked(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if b.Status == model.BookingStatusCancelled {
			return ErrAlreadyCancelled
		}
		if b.UserID.String() != req.UserID {
			return ErrNotBookingOwner
		}

		slot, err := slots.GetByIDLocked(ctx, b.TimeSlotID.String())
		if err != nil {
			return err
		}

		refs := Refs{BookingID: &b.ID, TimeSlotID: &slot.ID}
		switch {
		case b.PaidWithPoints:
			if err := wallet.RefundPoints(ctx, b.UserID, b.PointsUsed, conceptRefund(slot), refs); err != nil {
				return err
			}
		case b.AmountBlocked > 0:
			if err := wallet.UnblockCredits(ctx, b.UserID, b.AmountBlocked, conceptRefund(slot), refs); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		b.Status = model.BookingStatusCancelled
		b.CancelledAt = &now

		if slot.State == model.SlotStateConfirmed {
			remaining, err := bookings.CountActiveSeats(ctx, slot.ID.String())
			if err != nil {
				return err
			}
			remaining -= b.GroupSize

			if remaining <= 0 {
				// Last booking gone: the confirmed class dissolves. Court
				// and schedule blocks are released and the slot competes
				// again as a classified proposal.
				if err := schedules.DeleteBySlot(ctx, slot.ID.String()); err != nil {
					return err
				}
				slot.CourtID = nil
				slot.CourtNumber = nil
				slot.State = model.SlotStateClassified
				slot.HasRecycledSlots = false
				slot.AvailableRecycledSlots = 0
				slot.RecycledSlotsOnlyPoints = false
				log.Info().
					Str("time_slot_id", slot.ID.String()).
					Msg("confirmed slot reverted to proposal")
			} else {
				// Freed seats on a running class become points-only
				// inventory. Additive across cancellations.
				b.IsRecycled = true
				slot.HasRecycledSlots = true
				slot.AvailableRecycledSlots += b.GroupSize
				slot.RecycledSlotsOnlyPoints = true
			}
			if err := slots.Save(ctx, slot); err != nil {
				return err
			}
		}

		if err := bookings.Save(ctx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func conceptRefund(slot *model.TimeSlot) string {
	return "Devolución clase " + slot.StartsAt.Format("02/01/2006 15:04")
}
