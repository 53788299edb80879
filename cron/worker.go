package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"studiolink/config"
	bookingRepo "studiolink/database/repository/booking"
	"studiolink/services/booking"
)

const TypeBookingSweep = "booking:sweep"

// InitBookingSweeper runs the async worker plus a scheduler that enqueues a
// sweep every 15 minutes. The sweep marks confirmed bookings whose session
// end has passed as completed; completing goes through the booking service
// so calendar holds are released over the normal event path.
func InitBookingSweeper(svc booking.BookingService, repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(svc, repo))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("*/15 * * * *", asynq.NewTask(TypeBookingSweep, nil)); err != nil {
		log.Printf("[BookingSweeper] failed to register schedule: %v", err)
	}

	go func() {
		log.Println("[BookingSweeper] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingSweeper] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingSweeper] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[BookingSweeper] scheduler stopped: %v", err)
		}
	}()
}

func handleSweepTask(svc booking.BookingService, repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ended, err := repo.FindConfirmedEndedBefore(ctx, time.Now())
		if err != nil {
			log.Printf("[BookingSweeper] failed to list ended bookings: %v", err)
			return err
		}

		for _, b := range ended {
			if _, err := svc.Complete(ctx, b.ID); err != nil {
				log.Printf("[BookingSweeper] failed to complete booking %s: %v", b.ID, err)
			}
		}
		if len(ended) > 0 {
			log.Printf("[BookingSweeper] completed %d past-dated bookings", len(ended))
		}
		return nil
	}
}
