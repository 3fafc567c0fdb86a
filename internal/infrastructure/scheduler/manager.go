// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	subscriptionUsecases "abono/internal/application/subscription/usecases"
	"abono/internal/shared/biztime"
	"abono/internal/shared/config"
	"abono/internal/shared/logger"
)

// BatchJob is a daily maintenance task; Execute processes one batch and
// returns the number of items it transitioned.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// RenewalJob is the renewal batch; unlike the plain counters it reports
// renewed and failed separately because partial success is its normal
// outcome.
type RenewalJob interface {
	Execute(ctx context.Context) (*subscriptionUsecases.RenewalReport, error)
}

// jobTimeout bounds one batch run; daily volumes finish well inside it.
const jobTimeout = 30 * time.Minute

// SchedulerManager owns the three daily billing batches. Cron expressions
// are evaluated in the business timezone, so "0 2 * * *" fires at 02:00
// Madrid time no matter where the process runs.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterBillingJobs registers the daily lifecycle batches:
// - renewal: bill every auto-renewing subscription whose date has come
// - expiration: close active non-autorenewing subscriptions past their end date
// - dunning: flag subscriptions with invoices unpaid past the grace period
func (m *SchedulerManager) RegisterBillingJobs(
	cfg *config.SchedulerConfig,
	renewalJob RenewalJob,
	expirationJob BatchJob,
	dunningJob BatchJob,
) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(cfg.RenewalCron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			m.runRenewalBatch(ctx, renewalJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "renewal"),
		gocron.WithName("subscription-renewal"),
	)
	if err != nil {
		return err
	}

	_, err = m.scheduler.NewJob(
		gocron.CronJob(cfg.ExpirationCron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			m.runCountedBatch(ctx, "expiration", expirationJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "expiration"),
		gocron.WithName("subscription-expiration"),
	)
	if err != nil {
		return err
	}

	_, err = m.scheduler.NewJob(
		gocron.CronJob(cfg.DunningCron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			m.runCountedBatch(ctx, "dunning", dunningJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "dunning"),
		gocron.WithName("subscription-dunning"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered billing jobs",
		"renewal_cron", cfg.RenewalCron,
		"expiration_cron", cfg.ExpirationCron,
		"dunning_cron", cfg.DunningCron,
		"timezone", biztime.Location().String(),
	)
	return nil
}

func (m *SchedulerManager) runRenewalBatch(ctx context.Context, job RenewalJob) {
	startTime := biztime.NowUTC()

	report, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("renewal batch failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("renewal batch finished",
		"renewed", report.Renewed,
		"failed", report.Failed,
		"duration", time.Since(startTime),
	)
}

func (m *SchedulerManager) runCountedBatch(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("batch failed",
			"error", err,
			"job", name,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("batch finished",
		"job", name,
		"processed", count,
		"duration", time.Since(startTime),
	)
}

// Start begins executing registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started")
}

// Stop gracefully shuts down the scheduler, waiting for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("failed to shut down scheduler", "error", err)
		return err
	}

	m.started = false
	m.logger.Infow("scheduler stopped")
	return nil
}
