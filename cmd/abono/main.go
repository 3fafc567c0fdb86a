package main

import (
	"os"

	"github.com/spf13/cobra"

	"abono/internal/interfaces/cli/audit"
	"abono/internal/interfaces/cli/invoice"
	"abono/internal/interfaces/cli/migrate"
	"abono/internal/interfaces/cli/subscription"
	"abono/internal/interfaces/cli/user"
	"abono/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abono",
		Short: "Abono - subscription billing engine",
		Long:  `Abono manages subscription lifecycles, invoice issuance with country tax, payments and the audit trail, driven by daily batch jobs.`,
	}

	rootCmd.AddCommand(
		worker.NewCommand(),
		migrate.NewCommand(),
		invoice.NewCommand(),
		audit.NewCommand(),
		subscription.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
