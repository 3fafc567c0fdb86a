// Package invoice provides the manual invoice administration commands:
// listing, inspection, settlement, voiding and repricing.
package invoice

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	billingUsecases "abono/internal/application/billing/usecases"
	"abono/internal/domain/billing"
	vo "abono/internal/domain/billing/valueobjects"
	"abono/internal/infrastructure/config"
	"abono/internal/infrastructure/database"
	"abono/internal/infrastructure/repository"
	"abono/internal/shared/biztime"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Invoice administration",
		Long:  `Inspect and administer invoices: list, settle, void and reprice.`,
	}

	cmd.AddCommand(
		newListCommand(),
		newGetCommand(),
		newPayCommand(),
		newVoidCommand(),
		newRepriceCommand(),
		newStatsCommand(),
	)

	return cmd
}

type env struct {
	invoices *billingUsecases.ListInvoicesUseCase
	markPaid *billingUsecases.MarkInvoicePaidUseCase
	void     *billingUsecases.VoidInvoiceUseCase
	reprice  *billingUsecases.RepriceInvoiceUseCase
	stats    *billingUsecases.InvoiceStatsUseCase
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
	invoiceRepo := repository.NewInvoiceRepository(database.Get(), log)
	paymentRepo := repository.NewPaymentRepository(database.Get(), log)
	taxCalculator := billing.NewDefaultTaxCalculator()
	txMgr := db.NewTransactionManager(database.Get())

	return &env{
		invoices: billingUsecases.NewListInvoicesUseCase(invoiceRepo, log),
		markPaid: billingUsecases.NewMarkInvoicePaidUseCase(invoiceRepo, paymentRepo, txMgr, log),
		void:     billingUsecases.NewVoidInvoiceUseCase(invoiceRepo, log),
		reprice:  billingUsecases.NewRepriceInvoiceUseCase(invoiceRepo, taxCalculator, log),
		stats:    billingUsecases.NewInvoiceStatsUseCase(invoiceRepo, log),
	}, nil
}

func newListCommand() *cobra.Command {
	var (
		status  string
		userID  uint
		from    string
		to      string
		minStr  string
		maxStr  string
		pending bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Long:  `List invoices, optionally filtered. Absent criteria mean no constraint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			ctx := cmd.Context()

			if pending {
				invoices, err := e.invoices.Pending(ctx)
				if err != nil {
					return err
				}
				return printInvoices(invoices)
			}

			filter := billing.InvoiceFilter{}
			hasFilter := false

			if status != "" {
				s := vo.InvoiceStatus(status)
				if !vo.ValidInvoiceStatuses[s] {
					return fmt.Errorf("invalid status: %s", status)
				}
				filter.Status = &s
				hasFilter = true
			}
			if userID != 0 {
				filter.UserID = &userID
				hasFilter = true
			}
			if from != "" {
				d, err := time.Parse(time.DateOnly, from)
				if err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
				filter.IssuedFrom = &d
				hasFilter = true
			}
			if to != "" {
				d, err := time.Parse(time.DateOnly, to)
				if err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
				filter.IssuedTo = &d
				hasFilter = true
			}
			if minStr != "" {
				v, err := decimal.NewFromString(minStr)
				if err != nil {
					return fmt.Errorf("invalid --min amount: %w", err)
				}
				filter.MinTotal = &v
				hasFilter = true
			}
			if maxStr != "" {
				v, err := decimal.NewFromString(maxStr)
				if err != nil {
					return fmt.Errorf("invalid --max amount: %w", err)
				}
				filter.MaxTotal = &v
				hasFilter = true
			}

			var invoices []*billing.Invoice
			if hasFilter {
				invoices, err = e.invoices.Filtered(ctx, filter)
			} else {
				invoices, err = e.invoices.All(ctx)
			}
			if err != nil {
				return err
			}
			return printInvoices(invoices)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (EMITIDA, PAGADA, ANULADA)")
	cmd.Flags().UintVar(&userID, "user", 0, "filter by owning user id")
	cmd.Flags().StringVar(&from, "from", "", "issued on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "issued on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&minStr, "min", "", "minimum total amount")
	cmd.Flags().StringVar(&maxStr, "max", "", "maximum total amount")
	cmd.Flags().BoolVar(&pending, "pending", false, "only EMITIDA invoices, oldest first")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one invoice",
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

			invoice, err := e.invoices.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printInvoiceDetail(invoice)
			return nil
		},
	}
}

func newPayCommand() *cobra.Command {
	var (
		method string
		last4  string
		brand  string
		email  string
		txn    string
		iban   string
		ref    string
	)

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark an invoice paid",
		Long:  `Transition an invoice to PAGADA, optionally recording the settling payment.`,
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

			command := billingUsecases.MarkInvoicePaidCommand{InvoiceID: id}
			if method != "" {
				m, err := vo.ParsePaymentMethod(method)
				if err != nil {
					return err
				}
				command.Payment = &billingUsecases.PaymentDetails{
					Method:        m,
					CardLast4:     last4,
					CardBrand:     brand,
					PayPalEmail:   email,
					TransactionID: txn,
					IBAN:          iban,
					Reference:     ref,
				}
			}

			invoice, err := e.markPaid.Execute(cmd.Context(), command)
			if err != nil {
				return err
			}
			printInvoiceDetail(invoice)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "payment method: card, paypal or bank_transfer")
	cmd.Flags().StringVar(&last4, "last4", "", "card: last four digits")
	cmd.Flags().StringVar(&brand, "brand", "", "card: brand")
	cmd.Flags().StringVar(&email, "email", "", "paypal: payer email")
	cmd.Flags().StringVar(&txn, "transaction", "", "paypal: transaction id")
	cmd.Flags().StringVar(&iban, "iban", "", "bank_transfer: IBAN")
	cmd.Flags().StringVar(&ref, "reference", "", "bank_transfer: reference")

	return cmd
}

func newVoidCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "void <id>",
		Short: "Void an invoice",
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

			invoice, err := e.void.Execute(cmd.Context(), id)
			if err != nil {
				return err
			}
			printInvoiceDetail(invoice)
			return nil
		},
	}
}

func newRepriceCommand() *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "reprice <id>",
		Short: "Reprice an invoice for a new billing country",
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

			invoice, err := e.reprice.Execute(cmd.Context(), billingUsecases.RepriceInvoiceCommand{
				InvoiceID:  id,
				NewCountry: country,
			})
			if err != nil {
				return err
			}
			printInvoiceDetail(invoice)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "new billing country (ISO 3166-1 alpha-2)")
	cmd.MarkFlagRequired("country")

	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Billing totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			stats, err := e.stats.Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("total billed:  %s\n", stats.TotalBilled.StringFixed(2))
			fmt.Printf("total tax:     %s\n", stats.TotalTax.StringFixed(2))
			fmt.Printf("paid:          %d\n", stats.PaidCount)
			fmt.Printf("pending:       %d\n", stats.PendingCount)
			fmt.Printf("void:          %d\n", stats.VoidCount)
			return nil
		},
	}
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid invoice id: %s", arg)
	}
	return uint(id), nil
}

func printInvoices(invoices []*billing.Invoice) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBSCRIPTION\tISSUED\tBASE\tTAX\tTOTAL\tCOUNTRY\tSTATUS")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID(),
			inv.SubscriptionID(),
			inv.IssueDate().Format(time.DateOnly),
			inv.BaseAmount().StringFixed(2),
			inv.TaxAmount().StringFixed(2),
			inv.TotalAmount().StringFixed(2),
			inv.TaxCountry(),
			inv.Status(),
		)
	}
	return w.Flush()
}

func printInvoiceDetail(inv *billing.Invoice) {
	fmt.Printf("invoice %d\n", inv.ID())
	fmt.Printf("  subscription: %d\n", inv.SubscriptionID())
	fmt.Printf("  issued:       %s\n", inv.IssueDate().Format(time.DateOnly))
	fmt.Printf("  base:         %s\n", inv.BaseAmount().StringFixed(2))
	fmt.Printf("  tax:          %s (%s%% %s)\n", inv.TaxAmount().StringFixed(2), inv.TaxRate().StringFixed(2), inv.TaxCountry())
	fmt.Printf("  total:        %s\n", inv.TotalAmount().StringFixed(2))
	fmt.Printf("  status:       %s\n", inv.Status())
	if p := inv.Payment(); p != nil {
		fmt.Printf("  payment:      %s, %s on %s\n", p.Describe(), p.Amount().StringFixed(2), p.PaidAt().Format(time.DateOnly))
	}
}
