package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
	"github.com/padelpoint/club-core/internal/schedule"
)

// confirmSlot promotes a full slot: picks the first free court of the club
// by ascending number, cross-checks the instructor window, writes the
// 30-minute occupancy blocks and flips pending bookings to confirmed. All
// inside the caller's transaction, so a confirmed slot without schedule
// blocks (or the reverse) cannot exist.
func confirmSlot(ctx context.Context, tx *gorm.DB, slot *model.TimeSlot) error {
	slots := repository.NewGormSlotRepository(tx)
	bookings := repository.NewGormBookingRepository(tx)
	courts := repository.NewGormCourtRepository(tx)
	schedules := repository.NewGormScheduleRepository(tx)

	occ := schedule.OccupancyRange(slot.StartsAt, slot.EndsAt)

	instructorRanges, err := schedules.ListInstructorRanges(
		ctx, slot.InstructorID.String(), occ.Start, occ.End)
	if err != nil {
		return err
	}
	if busy, _ := schedule.OverlapsAny(occ, instructorRanges); busy {
		return ErrInstructorUnavailable
	}

	candidates, err := courts.ListActiveByClub(ctx, slot.ClubID.String())
	if err != nil {
		return err
	}

	var chosen *model.Court
	for i := range candidates {
		courtRanges, err := schedules.ListCourtRanges(
			ctx, candidates[i].ID.String(), occ.Start, occ.End)
		if err != nil {
			return err
		}
		if busy, _ := schedule.OverlapsAny(occ, courtRanges); busy {
			continue
		}
		chosen = &candidates[i]
		break
	}
	if chosen == nil {
		return ErrNoCourtAvailable
	}

	blocks, err := schedule.SplitToBlocks(occ, schedule.BlockMinutes*time.Minute)
	if err != nil {
		return err
	}

	courtBlocks := make([]model.CourtSchedule, 0, len(blocks))
	instructorBlocks := make([]model.InstructorSchedule, 0, len(blocks))
	for _, b := range blocks {
		courtBlocks = append(courtBlocks, model.CourtSchedule{
			CourtID:    chosen.ID,
			TimeSlotID: slot.ID,
			StartsAt:   b.Start,
			EndsAt:     b.End,
		})
		instructorBlocks = append(instructorBlocks, model.InstructorSchedule{
			InstructorID: slot.InstructorID,
			TimeSlotID:   slot.ID,
			StartsAt:     b.Start,
			EndsAt:       b.End,
		})
	}

	// Unique (resource, block start) indexes are the cross-instance
	// backstop: a concurrent confirmation onto the same court or
	// instructor window aborts here and rolls the loser back.
	if err := schedules.CreateCourtBlocks(ctx, courtBlocks); err != nil {
		return fmt.Errorf("block court: %w", err)
	}
	if err := schedules.CreateInstructorBlocks(ctx, instructorBlocks); err != nil {
		return fmt.Errorf("block instructor: %w", err)
	}

	slot.CourtID = &chosen.ID
	slot.CourtNumber = &chosen.Number
	slot.State = model.SlotStateConfirmed
	if err := slots.Save(ctx, slot); err != nil {
		return err
	}

	if err := bookings.UpdatePendingStatus(ctx, slot.ID.String(), model.BookingStatusConfirmed); err != nil {
		return err
	}

	log.Info().
		Str("time_slot_id", slot.ID.String()).
		Int("court_number", chosen.Number).
		Msg("slot confirmed")
	return nil
}
