// Package worker hosts the long-running billing worker: it wires the
// repositories and use cases, registers the three daily batches with the
// scheduler and blocks until the process is told to stop.
package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	billingUsecases "abono/internal/application/billing/usecases"
	subscriptionUsecases "abono/internal/application/subscription/usecases"
	"abono/internal/domain/billing"
	"abono/internal/infrastructure/config"
	"abono/internal/infrastructure/database"
	"abono/internal/infrastructure/persistence/seeds"
	"abono/internal/infrastructure/repository"
	"abono/internal/infrastructure/scheduler"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

var (
	autoMigrate bool
	runOnce     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the billing worker",
		Long:  `Start the billing worker: daily renewal, expiration and dunning batches driven by the scheduler.`,
		RunE:  run,
	}

	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run schema migration and plan seeding on startup")
	cmd.Flags().BoolVar(&runOnce, "run-once", false, "Execute all three batches immediately and exit")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Scheduler.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting billing worker", "timezone", cfg.Scheduler.Timezone)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := database.Migrate(); err != nil {
			return err
		}
		if err := seeds.SeedPlans(database.Get()); err != nil {
			return fmt.Errorf("failed to seed plans: %w", err)
		}
	}

	// Repositories. Subscription and user writes append audit revisions
	// through the recorder inside their own transaction.
	auditRepo := repository.NewAuditRepository(database.Get(), log)
	userRepo := repository.NewUserRepository(database.Get(), auditRepo, log)
	planRepo := repository.NewPlanRepository(database.Get(), log)
	subscriptionRepo := repository.NewSubscriptionRepository(database.Get(), auditRepo, log)
	invoiceRepo := repository.NewInvoiceRepository(database.Get(), log)

	taxCalculator := billing.NewDefaultTaxCalculator()

	issueInvoiceUC := billingUsecases.NewIssueInvoiceUseCase(
		invoiceRepo, planRepo, userRepo, taxCalculator, cfg.Billing.DefaultCountry, log,
	)
	renewUC := subscriptionUsecases.NewRenewSubscriptionUseCase(subscriptionRepo, issueInvoiceUC, log)
	processRenewalsUC := subscriptionUsecases.NewProcessRenewalsUseCase(subscriptionRepo, renewUC, log)
	expireUC := subscriptionUsecases.NewExpireSubscriptionsUseCase(subscriptionRepo, log)
	dunningUC := subscriptionUsecases.NewProcessDunningUseCase(
		invoiceRepo, subscriptionRepo, cfg.Billing.DunningGraceDays, log,
	)

	if runOnce {
		return runBatchesOnce(processRenewalsUC, expireUC, dunningUC, log)
	}

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := manager.RegisterBillingJobs(&cfg.Scheduler, processRenewalsUC, expireUC, dunningUC); err != nil {
		return fmt.Errorf("failed to register billing jobs: %w", err)
	}

	manager.Start()
	log.Infow("billing worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("received signal, shutting down", "signal", sig)
	return manager.Stop()
}

func runBatchesOnce(
	renewals *subscriptionUsecases.ProcessRenewalsUseCase,
	expirations *subscriptionUsecases.ExpireSubscriptionsUseCase,
	dunning *subscriptionUsecases.ProcessDunningUseCase,
	log logger.Interface,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	report, err := renewals.Execute(ctx)
	if err != nil {
		return fmt.Errorf("renewal batch failed: %w", err)
	}

	expired, err := expirations.Execute(ctx)
	if err != nil {
		return fmt.Errorf("expiration batch failed: %w", err)
	}

	flagged, err := dunning.Execute(ctx)
	if err != nil {
		return fmt.Errorf("dunning batch failed: %w", err)
	}

	log.Infow("single batch run finished",
		"renewed", report.Renewed,
		"renewal_failures", report.Failed,
		"expired", expired,
		"flagged_unpaid", flagged,
	)
	return nil
}
