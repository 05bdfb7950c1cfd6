// workers/db_probe.go
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Checker is satisfied by database.Manager.
type Checker interface {
	Check(ctx context.Context) error
}

// StartDatabaseProbe reconnects to (or pings) the database on a fixed
// interval so a service started in degraded mode recovers on its own.
func StartDatabaseProbe(ctx context.Context, db Checker, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	log := slog.With("component", "db-probe")
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := db.Check(probeCtx); err != nil {
				log.Warn("database check failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
