// Package audit provides the audit trail inspection commands: per-entity
// revision history, point-in-time snapshots and the recent-changes feed.
package audit

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	auditUsecases "abono/internal/application/audit/usecases"
	auditDomain "abono/internal/domain/audit"
	"abono/internal/infrastructure/config"
	"abono/internal/infrastructure/database"
	"abono/internal/infrastructure/repository"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit trail queries",
		Long:  `Inspect the append-only revision store: history, snapshots and recent changes.`,
	}

	cmd.AddCommand(
		newHistoryCommand(),
		newSnapshotCommand(),
		newRecentCommand(),
	)

	return cmd
}

type env struct {
	history  *auditUsecases.GetHistoryUseCase
	snapshot *auditUsecases.GetSnapshotUseCase
	recent   *auditUsecases.RecentChangesUseCase
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
	revisionRepo := repository.NewAuditRepository(database.Get(), log)

	return &env{
		history:  auditUsecases.NewGetHistoryUseCase(revisionRepo),
		snapshot: auditUsecases.NewGetSnapshotUseCase(revisionRepo),
		recent:   auditUsecases.NewRecentChangesUseCase(revisionRepo, log),
	}, nil
}

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <entity-type> <id>",
		Short: "Full revision history of one entity",
		Long:  `List every recorded revision of an entity, oldest first. Entity types: user, subscription.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseEntityID(args[1])
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			revisions, err := e.history.Execute(cmd.Context(), auditDomain.EntityType(args[0]), entityID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REVISION\tTIMESTAMP\tKIND\tSNAPSHOT")
			for _, rev := range revisions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					rev.Number(),
					rev.Timestamp().Format(time.RFC3339),
					rev.Kind(),
					string(rev.Snapshot()),
				)
			}
			return w.Flush()
		},
	}
}

func newSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <entity-type> <id> <revision>",
		Short: "Entity state as of one revision",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID, err := parseEntityID(args[1])
			if err != nil {
				return err
			}
			number, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil || number == 0 {
				return fmt.Errorf("invalid revision number: %s", args[2])
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			rev, err := e.snapshot.Execute(cmd.Context(), auditDomain.EntityType(args[0]), entityID, number)
			if err != nil {
				return err
			}

			fmt.Printf("%s %d, revision %d (%s at %s)\n",
				rev.EntityType(), rev.EntityID(), rev.Number(), rev.Kind(), rev.Timestamp().Format(time.RFC3339))
			fmt.Println(string(rev.Snapshot()))
			return nil
		},
	}
}

func newRecentCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Recent changes across all tracked entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			changes, err := e.recent.Execute(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REVISION\tTIMESTAMP\tKIND\tDESCRIPTION")
			for _, c := range changes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					c.RevisionNumber,
					c.Timestamp.Format(time.RFC3339),
					c.Kind,
					c.ShortDescription,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")

	return cmd
}

func parseEntityID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid entity id: %s", arg)
	}
	return uint(id), nil
}
