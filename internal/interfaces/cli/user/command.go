// Package user provides the user administration commands.
package user

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	userUsecases "abono/internal/application/user/usecases"
	domain "abono/internal/domain/user"
	"abono/internal/infrastructure/config"
	"abono/internal/infrastructure/database"
	"abono/internal/infrastructure/repository"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User administration",
		Long:  `Register users and maintain the billing country used for tax calculation.`,
	}

	cmd.AddCommand(
		newCreateCommand(),
		newGetCommand(),
		newSetCountryCommand(),
	)

	return cmd
}

type env struct {
	register   *userUsecases.RegisterUserUseCase
	get        *userUsecases.GetUserUseCase
	setCountry *userUsecases.UpdateCountryUseCase
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

	return &env{
		register:   userUsecases.NewRegisterUserUseCase(userRepo, log),
		get:        userUsecases.NewGetUserUseCase(userRepo),
		setCountry: userUsecases.NewUpdateCountryUseCase(userRepo, log),
	}, nil
}

func newCreateCommand() *cobra.Command {
	var (
		email   string
		name    string
		country string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			u, err := e.register.Execute(cmd.Context(), userUsecases.RegisterUserCommand{
				Email:   email,
				Name:    name,
				Country: country,
			})
			if err != nil {
				return err
			}
			printUser(u)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "unique email address")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&country, "country", "", "ISO country code for tax calculation")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newGetCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one user by id or --email",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && email == "" {
				return fmt.Errorf("either an id argument or --email is required")
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer database.Close()

			var u *domain.User
			if len(args) > 0 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				u, err = e.get.Execute(cmd.Context(), id)
				if err != nil {
					return err
				}
			} else {
				u, err = e.get.ByEmail(cmd.Context(), email)
				if err != nil {
					return err
				}
			}
			printUser(u)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "look up by email instead of id")

	return cmd
}

func newSetCountryCommand() *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "set-country <id>",
		Short: "Change a user's billing country",
		Long:  `Change the country used for tax calculation. Already issued invoices keep their original tax.`,
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

			u, err := e.setCountry.Execute(cmd.Context(), id, country)
			if err != nil {
				return err
			}
			printUser(u)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "ISO country code")
	cmd.MarkFlagRequired("country")

	return cmd
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id: %s", arg)
	}
	return uint(id), nil
}

func printUser(u *domain.User) {
	country := u.Country()
	if country == "" {
		country = "-"
	}
	fmt.Printf("user %d\n", u.ID())
	fmt.Printf("  email:    %s\n", u.Email())
	fmt.Printf("  name:     %s\n", u.Name())
	fmt.Printf("  country:  %s\n", country)
	fmt.Printf("  created:  %s\n", u.CreatedAt().Format(time.DateOnly))
}
