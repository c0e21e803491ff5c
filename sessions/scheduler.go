package sessions

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a job repeatedly. The returned cancel func removes the job;
// a run that the scheduler already dispatched may still execute afterwards.
type Scheduler interface {
	Every(interval time.Duration, job func()) (cancel func())
}

// CronScheduler is a Scheduler backed by a single cron instance shared by all
// monitors of the process.
type CronScheduler struct {
	cron *cron.Cron
}

func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Every schedules job with a constant delay. cron.Every rounds the interval
// down to whole seconds, with a one second minimum.
func (c *CronScheduler) Every(interval time.Duration, job func()) func() {
	id := c.cron.Schedule(cron.Every(interval), cron.FuncJob(job))
	return func() {
		c.cron.Remove(id)
	}
}

// Start launches the cron scheduler.
func (c *CronScheduler) Start() {
	c.cron.Start()
}

// Stop halts the scheduler and waits for running jobs or ctx, whichever ends first.
func (c *CronScheduler) Stop(ctx context.Context) {
	stopCtx := c.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}
