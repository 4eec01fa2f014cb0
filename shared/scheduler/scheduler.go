package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"content-optimizer/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Agent is a unit of scheduled work, typically a data refresh across niches.
type Agent interface {
	Name() string
	Initialize() error
	// RunOnce performs one full run and returns a human-readable summary.
	RunOnce(ctx context.Context) (string, error)
}

// Scheduler runs an agent on a cron schedule and feeds outcomes to the
// monitor the health endpoint reads from.
type Scheduler struct {
	schedule string
	monitor  *monitoring.Monitor
	agent    Agent
	cron     *cron.Cron
}

func New(schedule string, monitor *monitoring.Monitor, agent Agent) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		monitor:  monitor,
		agent:    agent,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", s.agent.Name(), err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled job for %s: %v", s.agent.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.agent.Name(), s.schedule)
	s.cron.Start()

	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.agent.Name())
	s.cron.Stop()
	return ctx.Err()
}

// RunOnce executes one run immediately and records the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()
	log.Printf("Starting %s run...", s.agent.Name())

	summary, err := s.agent.RunOnce(ctx)
	duration := time.Since(start)
	if err != nil {
		s.monitor.RecordCriticalFailure(fmt.Errorf("%s failed: %w", s.agent.Name(), err), duration)
		return fmt.Errorf("%s run failed: %w", s.agent.Name(), err)
	}

	s.monitor.RecordSuccess(summary, duration)
	return nil
}
