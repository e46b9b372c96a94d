package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
)

// BookingService resolves booking races against class slots. Everything a
// single booking touches — slot classification, the sibling clone, wallet
// holds, the confirmation flip and its schedule blocks — happens in one
// database transaction under the slot's lock.
type BookingService struct {
	db    *gorm.DB
	locks *slotLocks
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db, locks: newSlotLocks()}
}

type BookRequest struct {
	TimeSlotID    string
	UserID        string
	GroupSize     int
	PaymentMethod model.PaymentMethod
}

func (r BookRequest) validate() error {
	if r.TimeSlotID == "" || r.UserID == "" {
		return ErrInvalidArgument
	}
	if r.GroupSize < 1 || r.GroupSize > 4 {
		return ErrInvalidArgument
	}
	if r.PaymentMethod != model.PaymentCredits && r.PaymentMethod != model.PaymentPoints {
		return ErrInvalidArgument
	}
	return nil
}

// Book claims seats on a slot. The capacity check and everything that
// follows run while the slot row is locked, so two requests racing for the
// last seat serialize and exactly one wins.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*model.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.TimeSlotID)
	defer unlock()

	var booking *model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := repository.NewGormSlotRepository(tx)
		bookings := repository.NewGormBookingRepository(tx)
		users := repository.NewGormUserRepository(tx)
		wallet := NewWalletService(tx)

		slot, err := slots.GetByIDLocked(ctx, req.TimeSlotID)
		if err != nil {
			return err
		}
		if err := checkSlotConsistency(slot); err != nil {
			return err
		}

		hasBooking, err := bookings.UserHasActive(ctx, req.TimeSlotID, req.UserID)
		if err != nil {
			return err
		}
		if hasBooking {
			return ErrDuplicateBooking
		}

		occupied, err := bookings.CountActiveSeats(ctx, req.TimeSlotID)
		if err != nil {
			return err
		}
		if occupied+req.GroupSize > slot.MaxPlayers {
			return ErrSlotFull
		}

		user, err := users.GetByIDLocked(ctx, req.UserID)
		if err != nil {
			return err
		}

		recycledPurchase := slot.State == model.SlotStateConfirmed
		if recycledPurchase {
			// A confirmed class only sells seats freed by cancellations,
			// and only for points.
			if !slot.HasRecycledSlots || slot.AvailableRecycledSlots < req.GroupSize {
				return ErrSlotFull
			}
			if req.PaymentMethod != model.PaymentPoints {
				return ErrRecycledSeatsPointsOnly
			}
		} else if err := checkCreditsSlots(slot, occupied, req); err != nil {
			return err
		}

		// First booking on an open proposal classifies it and spawns the
		// open sibling, inside this same transaction.
		if slot.State == model.SlotStateProposal && occupied == 0 {
			if err := classifyAndClone(ctx, tx, slot, user); err != nil {
				return err
			}
		}

		booking = &model.Booking{
			UserID:     user.ID,
			TimeSlotID: slot.ID,
			GroupSize:  req.GroupSize,
			Status:     model.BookingStatusPending,
		}
		if recycledPurchase {
			// The class already runs; the seat is live immediately.
			booking.Status = model.BookingStatusConfirmed
		}
		if err := bookings.Create(ctx, booking); err != nil {
			return err
		}

		refs := Refs{BookingID: &booking.ID, TimeSlotID: &slot.ID}
		switch req.PaymentMethod {
		case model.PaymentCredits:
			amount := slot.PricePerSeat() * int64(req.GroupSize)
			if err := wallet.BlockCredits(ctx, user.ID, amount, conceptBooking(slot), refs); err != nil {
				return err
			}
			booking.AmountBlocked = amount
		case model.PaymentPoints:
			amount := slot.PointsPrice * int64(req.GroupSize)
			if err := wallet.DebitPoints(ctx, user.ID, amount, conceptBooking(slot), refs); err != nil {
				return err
			}
			booking.PaidWithPoints = true
			booking.PointsUsed = amount
		}
		if err := bookings.Save(ctx, booking); err != nil {
			return err
		}

		if recycledPurchase {
			slot.AvailableRecycledSlots -= req.GroupSize
			if slot.AvailableRecycledSlots == 0 {
				slot.HasRecycledSlots = false
				slot.RecycledSlotsOnlyPoints = false
			}
			return slots.Save(ctx, slot)
		}

		if occupied+req.GroupSize == slot.MaxPlayers {
			if err := confirmSlot(ctx, tx, slot); err != nil {
				if errors.Is(err, ErrNoCourtAvailable) || errors.Is(err, ErrInstructorUnavailable) {
					// Degraded, not fatal: the booking stands, the slot
					// stays a full proposal and an operator steps in.
					log.Warn().
						Str("time_slot_id", slot.ID.String()).
						Err(err).
						Msg("full slot could not be confirmed")
					return nil
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// checkCreditsSlots rejects credit payments that would land on seat
// indices an operator marked as points-only.
func checkCreditsSlots(slot *model.TimeSlot, occupied int, req BookRequest) error {
	if req.PaymentMethod == model.PaymentPoints {
		return nil
	}
	marked, err := slot.CreditsSlotIndices()
	if err != nil {
		return fmt.Errorf("decode credits slots: %w", err)
	}
	for _, idx := range marked {
		if idx >= occupied && idx < occupied+req.GroupSize {
			return ErrRecycledSeatsPointsOnly
		}
	}
	return nil
}

// checkSlotConsistency guards against states the write paths should make
// unrepresentable. It never repairs anything.
func checkSlotConsistency(slot *model.TimeSlot) error {
	if (slot.CourtID == nil) != (slot.State != model.SlotStateConfirmed) {
		return ErrInconsistentState
	}
	if slot.CourtID == nil && slot.CourtNumber != nil {
		return ErrInconsistentState
	}
	if slot.AvailableRecycledSlots < 0 {
		return ErrInconsistentState
	}
	return nil
}

func conceptBooking(slot *model.TimeSlot) string {
	return "Reserva de clase " + slot.StartsAt.Format("02/01/2006 15:04")
}
