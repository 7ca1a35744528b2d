package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mvribas/order-freight-service/internal/logger"
)

// cronLogger routes cron's own messages through the service logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...interface{}) {
	logger.Info("scheduler: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...interface{}) {
	logger.Error("scheduler: "+msg, append(kv, "error", err.Error())...)
}

// Scheduler runs registered jobs at fixed intervals. A tick that arrives
// while the previous execution is still going is skipped, so one slow run
// never piles up behind another.
type Scheduler struct {
	c *cron.Cron
}

func New() *Scheduler {
	log := cronLogger{}
	return &Scheduler{
		c: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(log),
			cron.Recover(log),
		)),
	}
}

func (s *Scheduler) Every(interval time.Duration, name string, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("schedule interval must be positive, got %s", interval)
	}
	if _, err := s.c.AddFunc("@every "+interval.String(), job); err != nil {
		return fmt.Errorf("register %q schedule: %w", name, err)
	}
	logger.Info("job scheduled", "job", name, "interval", interval.String())
	return nil
}

func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop halts the ticker and blocks until any in-flight job returns.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
