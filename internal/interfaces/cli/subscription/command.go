// Package subscription provides the manual subscription administration
// commands: sign-up, lifecycle transitions and queries.
package subscription

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	billingUsecases "abono/internal/application/billing/usecases"
	subscriptionUsecases "abono/internal/application/subscription/usecases"
	"abono/internal/domain/billing"
	domain "abono/internal/domain/subscription"
	"abono/internal/infrastructure/config"
	"abono/internal/infrastructure/database"
	"abono/internal/infrastructure/repository"
	"abono/internal/shared/biztime"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Subscription administration",
		Long:  `Sign users up to plans and drive subscription lifecycle transitions.`,
	}

	cmd.AddCommand(
		newCreateCommand(),
		newGetCommand(),
		newListCommand(),
		newCancelCommand(),
		newActivateCommand(),
		newMarkUnpaidCommand(),
		newAutoRenewCommand(),
		newChangePlanCommand(),
	)

	return cmd
}

type env struct {
	create     *subscriptionUsecases.CreateSubscriptionUseCase
	get        *subscriptionUsecases.GetSubscriptionUseCase
	list       *subscriptionUsecases.ListUserSubscriptionsUseCase
	cancel     *subscriptionUsecases.CancelSubscriptionUseCase
	activate   *subscriptionUsecases.ActivateSubscriptionUseCase
	markUnpaid *subscriptionUsecases.MarkUnpaidUseCase
	autoRenew  *subscriptionUsecases.SetAutoRenewUseCase
	changePlan *subscriptionUsecases.ChangePlanUseCase
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Scheduler.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log := logger.NewLogger()
	auditRepo := repository.NewAuditRepository(database.Get(), log)
	userRepo := repository.NewUserRepository(database.Get(), auditRepo, log)
	planRepo := repository.NewPlanRepository(database.Get(), log)
	subscriptionRepo := repository.NewSubscriptionRepository(database.Get(), auditRepo, log)
	invoiceRepo := repository.NewInvoiceRepository(database.Get(), log)

	issuer := billingUsecases.NewIssueInvoiceUseCase(
		invoiceRepo, planRepo, userRepo, billing.NewDefaultTaxCalculator(), cfg.Billing.DefaultCountry, log,
	)
	txMgr := db.NewTransactionManager(database.Get())

	return &env{
		create:     subscriptionUsecases.NewCreateSubscriptionUseCase(subscriptionRepo, planRepo, userRepo, issuer, txMgr, log),
		get:        subscriptionUsecases.NewGetSubscriptionUseCase(subscriptionRepo),
		list:       subscriptionUsecases.NewListUserSubscriptionsUseCase(subscriptionRepo),
		cancel:     subscriptionUsecases.NewCancelSubscriptionUseCase(subscriptionRepo, log),
		activate:   subscriptionUsecases.NewActivateSubscriptionUseCase(subscriptionRepo, log),
		markUnpaid: subscriptionUsecases.NewMarkUnpaidUseCase(subscriptionRepo, log),
		autoRenew:  subscriptionUsecases.NewSetAutoRenewUseCase(subscriptionRepo, log),
		changePlan: subscriptionUsecases.NewChangePlanUseCase(subscriptionRepo, planRepo, log),
	}, nil
}

func newCreateCommand() *cobra.Command {
	var (
		userID    uint
		planID    uint
		autoRenew bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Sign a user up to a plan",
		Long:  `Create an active subscription starting today and issue its first invoice.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			sub, err := e.create.Execute(cmd.Context(), subscriptionUsecases.CreateSubscriptionCommand{
				UserID:    userID,
				PlanID:    planID,
				AutoRenew: autoRenew,
			})
			if err != nil {
				return err
			}
			printSubscriptionDetail(sub)
			return nil
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "owning user id")
	cmd.Flags().UintVar(&planID, "plan", 0, "plan id")
	cmd.Flags().BoolVar(&autoRenew, "auto-renew", true, "renew automatically every month")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("plan")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			sub, err := e.get.Execute(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSubscriptionDetail(sub)
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	var (
		userID     uint
		activeOnly bool
		expiringIn int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			ctx := cmd.Context()

			var subs []*domain.Subscription
			switch {
			case expiringIn > 0:
				subs, err = e.list.ExpiringWithin(ctx, expiringIn)
			case userID != 0 && activeOnly:
				subs, err = e.list.ActiveByUser(ctx, userID)
			case userID != 0:
				subs, err = e.list.ByUser(ctx, userID)
			default:
				subs, err = e.list.All(ctx)
			}
			if err != nil {
				return err
			}
			return printSubscriptions(subs)
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "filter by owning user id")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only ACTIVA subscriptions (with --user)")
	cmd.Flags().IntVar(&expiringIn, "expiring", 0, "active subscriptions renewing within N days")

	return cmd
}

func newCancelCommand() *cobra.Command {
	return transitionCommand("cancel", "Cancel a subscription", func(e *env) transitionFunc {
		return e.cancel.Execute
	})
}

func newActivateCommand() *cobra.Command {
	return transitionCommand("activate", "Reactivate a subscription", func(e *env) transitionFunc {
		return e.activate.Execute
	})
}

func newMarkUnpaidCommand() *cobra.Command {
	return transitionCommand("mark-unpaid", "Flag a subscription as unpaid", func(e *env) transitionFunc {
		return e.markUnpaid.Execute
	})
}

func newAutoRenewCommand() *cobra.Command {
	var enabled bool

	cmd := &cobra.Command{
		Use:   "autorenew <id>",
		Short: "Set the auto-renewal flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			sub, err := e.autoRenew.Execute(cmd.Context(), subscriptionUsecases.SetAutoRenewCommand{
				SubscriptionID: id,
				Enabled:        enabled,
			})
			if err != nil {
				return err
			}
			printSubscriptionDetail(sub)
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", true, "whether to renew automatically")

	return cmd
}

func newChangePlanCommand() *cobra.Command {
	var planID uint

	cmd := &cobra.Command{
		Use:   "change-plan <id>",
		Short: "Move a subscription to another plan",
		Long:  `Switch plans. The current invoice is untouched; the new price applies at the next renewal.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			sub, err := e.changePlan.Execute(cmd.Context(), subscriptionUsecases.ChangePlanCommand{
				SubscriptionID: id,
				NewPlanID:      planID,
			})
			if err != nil {
				return err
			}
			printSubscriptionDetail(sub)
			return nil
		},
	}

	cmd.Flags().UintVar(&planID, "plan", 0, "new plan id")
	cmd.MarkFlagRequired("plan")

	return cmd
}

type transitionFunc func(ctx context.Context, id uint) (*domain.Subscription, error)

func transitionCommand(use, short string, pick func(e *env) transitionFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			sub, err := pick(e)(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSubscriptionDetail(sub)
			return nil
		},
	}
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subscription id: %s", arg)
	}
	return uint(id), nil
}

func printSubscriptions(subs []*domain.Subscription) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tPLAN\tSTATUS\tSTART\tEND\tAUTORENEW\tNEXT RENEWAL")
	for _, sub := range subs {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\t%t\t%s\n",
			sub.ID(),
			sub.UserID(),
			sub.PlanID(),
			sub.Status(),
			sub.StartDate().Format(time.DateOnly),
			formatDate(sub.EndDate()),
			sub.AutoRenew(),
			formatDate(sub.NextRenewalDate()),
		)
	}
	return w.Flush()
}

func printSubscriptionDetail(sub *domain.Subscription) {
	fmt.Printf("subscription %d\n", sub.ID())
	fmt.Printf("  user:          %d\n", sub.UserID())
	fmt.Printf("  plan:          %d\n", sub.PlanID())
	fmt.Printf("  status:        %s\n", sub.Status())
	fmt.Printf("  start:         %s\n", sub.StartDate().Format(time.DateOnly))
	fmt.Printf("  end:           %s\n", formatDate(sub.EndDate()))
	fmt.Printf("  auto-renew:    %t\n", sub.AutoRenew())
	fmt.Printf("  next renewal:  %s\n", formatDate(sub.NextRenewalDate()))
}

func formatDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format(time.DateOnly)
}
