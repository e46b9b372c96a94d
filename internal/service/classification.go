package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
	"github.com/padelpoint/club-core/internal/schedule"
)

// classifyAndClone fixes the level range and gender category of an open
// proposal from its first booker and creates the fully open sibling at the
// same instructor and time, so classifying never removes the
// open-to-anyone option. Runs once per slot: the proposal→classified state
// transition is the guard, not a row count.
func classifyAndClone(
	ctx context.Context,
	tx *gorm.DB,
	slot *model.TimeSlot,
	user *model.User,
) error {
	slots := repository.NewGormSlotRepository(tx)
	instructors := repository.NewGormInstructorRepository(tx)

	instructor, err := instructors.GetByID(ctx, slot.InstructorID.String())
	if err != nil {
		return fmt.Errorf("load instructor: %w", err)
	}
	ranges, err := instructor.Ranges()
	if err != nil {
		return fmt.Errorf("decode level ranges: %w", err)
	}

	slot.Level = schedule.ClassifyLevel(ranges, user.Level)
	gender := schedule.ClassifyGender(user.Gender)
	slot.GenderCategory = &gender
	slot.State = model.SlotStateClassified
	if err := slots.Save(ctx, slot); err != nil {
		return err
	}

	mixed := model.GenderMixed
	sibling := &model.TimeSlot{
		ClubID:           slot.ClubID,
		InstructorID:     slot.InstructorID,
		StartsAt:         slot.StartsAt,
		EndsAt:           slot.EndsAt,
		MaxPlayers:       slot.MaxPlayers,
		TotalPrice:       slot.TotalPrice,
		InstructorPrice:  slot.InstructorPrice,
		CourtRentalPrice: slot.CourtRentalPrice,
		PointsPrice:      slot.PointsPrice,
		Level:            model.LevelOpen,
		GenderCategory:   &mixed,
		State:            model.SlotStateProposal,
	}
	return slots.Create(ctx, sibling)
}
