package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/padelpoint/club-core/internal/api"
	"github.com/padelpoint/club-core/internal/config"
	"github.com/padelpoint/club-core/internal/db"
	"github.com/padelpoint/club-core/internal/generator"
	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	setupLogger(cfg.Environment)

	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("init db")
	}

	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("sql DB")
	}
	defer sqlDB.Close()

	bookingSvc := service.NewBookingService(gormDB)
	walletSvc := service.NewWalletService(gormDB)

	router := api.NewRouter(api.NewHandlers(bookingSvc, walletSvc))
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	var sched gocron.Scheduler
	if cfg.GeneratorEnabled {
		sched, err = gocron.NewScheduler()
		if err != nil {
			log.Fatal().Err(err).Msg("init scheduler")
		}
		gen := generator.New(gormDB, generator.Options{
			HorizonDays:  cfg.GeneratorDays,
			ClassMinutes: cfg.ClassMinutes,
			TotalPrice:   cfg.ClassPrice,
			PointsPrice:  cfg.ClassPointsPrice,
		})
		if err := gen.Schedule(sched, cfg.GeneratorCron); err != nil {
			log.Fatal().Err(err).Msg("schedule generator")
		}
		sched.Start()
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("booking core listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Error().Err(err).Msg("scheduler shutdown")
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
