// Package worker hosts background jobs that keep spawn point state tidy.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/qora-app/qora-server/internal/repository"
)

// Sweeper periodically deactivates spawn points that are past expiry or out
// of quantity. Check-in already flips depleted points inline; the sweeper
// catches expiries and anything that slipped through.
type Sweeper struct {
	spawnRepo repository.SpawnPointRepository
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewSweeper(spawnRepo repository.SpawnPointRepository) *Sweeper {
	return &Sweeper{
		spawnRepo: spawnRepo,
		interval:  1 * time.Minute,
	}
}

func (s *Sweeper) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			n, err := s.spawnRepo.DeactivateStale(ctx, time.Now())
			if err != nil {
				log.Printf("ERROR [worker.Sweeper] deactivate pass failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[worker.Sweeper] deactivated %d stale spawn points", n)
			}
		}),
	)
	if err != nil {
		return err
	}

	s.scheduler = sched
	sched.Start()
	return nil
}

func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			log.Printf("ERROR [worker.Sweeper] shutdown failed: %v", err)
		}
	}
}
