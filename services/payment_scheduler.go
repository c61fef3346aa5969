package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var deadlineScheduler gocron.Scheduler

// StartPaymentDeadlineScheduler runs the overdue check and the auto-revoke
// sweep once a day at 06:00, mirroring the cron the admin endpoint expects
// to be hit by.
func StartPaymentDeadlineScheduler(allocations *AllocationService) error {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return err
	}
	deadlineScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(6, 0, 0),
			),
		),
		gocron.NewTask(func() {
			log.Println("[scheduler] running payment deadline check")
			if result, err := allocations.CheckAndUpdateOverduePayments(); err != nil {
				log.Printf("[scheduler] overdue check failed: %v", err)
			} else if result.UpdatedCount > 0 {
				log.Printf("[scheduler] marked %d allocation(s) overdue", result.UpdatedCount)
			}

			sweep, err := allocations.SweepExpiredAllocations()
			if err != nil {
				log.Printf("[scheduler] sweep failed: %v", err)
				return
			}
			if sweep.RevokedCount > 0 {
				log.Printf("[scheduler] revoked %d expired allocation(s)", sweep.RevokedCount)
			}
		}),
	)
	if err != nil {
		return err
	}

	s.Start()
	log.Println("payment deadline scheduler started (06:00 daily)")
	return nil
}

func StopPaymentDeadlineScheduler() {
	if deadlineScheduler != nil {
		if err := deadlineScheduler.Shutdown(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	}
}
