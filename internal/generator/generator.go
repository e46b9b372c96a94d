package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/repository"
	"github.com/padelpoint/club-core/internal/schedule"
)

// Service materializes open proposal slots ahead of time: one fully open
// slot per instructor and class window, for every day in the horizon.
// Bookings never create slots — they only classify and clone what this job
// laid out.
type Service struct {
	db *gorm.DB

	horizonDays int
	classLength time.Duration
	totalPrice  int64
	pointsPrice int64
}

type Options struct {
	HorizonDays  int
	ClassMinutes int
	// Stand-in pricing until the pricing module fills these per slot.
	TotalPrice  int64
	PointsPrice int64
}

func New(db *gorm.DB, opts Options) *Service {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = 7
	}
	if opts.ClassMinutes <= 0 {
		opts.ClassMinutes = 90
	}
	return &Service{
		db:          db,
		horizonDays: opts.HorizonDays,
		classLength: time.Duration(opts.ClassMinutes) * time.Minute,
		totalPrice:  opts.TotalPrice,
		pointsPrice: opts.PointsPrice,
	}
}

// Schedule registers the daily run on the shared scheduler.
func (s *Service) Schedule(sched gocron.Scheduler, cronExpr string) error {
	_, err := sched.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := s.Run(ctx); err != nil {
				log.Error().Err(err).Msg("proposal generation failed")
			}
		}),
		gocron.WithName("proposal-generator"),
	)
	return err
}

// Run generates missing proposals for every active instructor across the
// horizon. Existing slots (including classified ones and clones) are left
// alone: presence of any slot at an instructor/start suppresses creation.
func (s *Service) Run(ctx context.Context) error {
	instructors := repository.NewGormInstructorRepository(s.db)
	slots := repository.NewGormSlotRepository(s.db)

	active, err := instructors.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list instructors: %w", err)
	}

	created := 0
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, instructor := range active {
		for day := 0; day < s.horizonDays; day++ {
			date := today.AddDate(0, 0, day)
			if !instructor.WorksOn(date.Weekday()) {
				continue
			}
			windows, err := s.workWindows(&instructor, date)
			if err != nil {
				log.Warn().
					Str("instructor_id", instructor.ID.String()).
					Err(err).
					Msg("skipping instructor with bad working window")
				break
			}
			for _, w := range windows {
				exists, err := slots.ExistsForInstructorStart(ctx, instructor.ID.String(), w.Start)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				proposal := &model.TimeSlot{
					ClubID:       instructor.ClubID,
					InstructorID: instructor.ID,
					StartsAt:     w.Start,
					EndsAt:       w.End,
					MaxPlayers:   4,
					TotalPrice:   s.totalPrice,
					PointsPrice:  s.pointsPrice,
					Level:        model.LevelOpen,
					State:        model.SlotStateProposal,
				}
				if err := slots.Create(ctx, proposal); err != nil {
					return fmt.Errorf("create proposal: %w", err)
				}
				created++
			}
		}
	}

	log.Info().Int("created", created).Msg("proposal generation finished")
	return nil
}

// workWindows splits an instructor's working hours on a date into
// class-length ranges.
func (s *Service) workWindows(instructor *model.Instructor, date time.Time) ([]schedule.TimeRange, error) {
	start, err := atTime(date, instructor.WorkStart)
	if err != nil {
		return nil, err
	}
	end, err := atTime(date, instructor.WorkEnd)
	if err != nil {
		return nil, err
	}
	window, err := schedule.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	return schedule.SplitRange(window, s.classLength, schedule.PreClassBuffer)
}

func atTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
