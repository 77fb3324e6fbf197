package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/nutrilume/internal/config"
	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"gorm.io/gorm"
)

// ServeFunc runs the HTTP server until ctx is done.
type ServeFunc func(ctx context.Context, cfg config.Config) error

// NewRootCommand builds the nutrilume command tree. Running it without a
// subcommand serves the API.
func NewRootCommand(serve ServeFunc) *cobra.Command {
	var (
		envFile string
		dbPath  string
		cfg     config.Config
	)

	root := &cobra.Command{
		Use:           "nutrilume",
		Short:         "nutrilume tracks meals against personal nutrition targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if dbPath != "" {
				loaded.DBPath = dbPath
			}
			if _, err := logger.Init(loaded.AppEnv); err != nil {
				return fmt.Errorf("logger init failed: %w", err)
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides DB_PATH)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and list the applied ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cfg.DBPath, func(database *gorm.DB) error {
				return RunMigrateCommand(cmd.OutOrStdout(), database)
			})
		},
	}

	root.AddCommand(serveCmd, migrateCmd, newResetPasswordCommand(&cfg), newTargetsCommand())
	return root
}

func newResetPasswordCommand(cfg *config.Config) *cobra.Command {
	var (
		email  string
		prompt bool
	)

	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password",
		Long:  "Reset a user's password. By default a temporary password is printed and must be changed on next login; --prompt reads a new password from the terminal instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			options := ResetPasswordOptions{Email: email}
			if prompt {
				options.ReadPassword = func() ([]byte, error) {
					return readPasswordNoEcho(os.Stdin)
				}
			}
			return withDatabase(cfg.DBPath, func(database *gorm.DB) error {
				return RunResetPasswordCommand(cmd.OutOrStdout(), database, options)
			})
		},
	}
	command.Flags().StringVar(&email, "email", "", "Account email")
	command.Flags().BoolVar(&prompt, "prompt", false, "Read the new password from the terminal without echo")
	_ = command.MarkFlagRequired("email")
	return command
}

func newTargetsCommand() *cobra.Command {
	options := TargetsOptions{}

	command := &cobra.Command{
		Use:   "targets",
		Short: "Compute daily nutrition targets without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTargetsCommand(cmd.OutOrStdout(), options)
		},
	}
	flags := command.Flags()
	flags.StringVar(&options.Sex, "sex", "", "male, female or other")
	flags.IntVar(&options.AgeYears, "age", 0, "Age in years")
	flags.Float64Var(&options.Height, "height", 0, "Height")
	flags.StringVar(&options.HeightUnit, "height-unit", "cm", "cm, m or in")
	flags.Float64Var(&options.Weight, "weight", 0, "Body weight")
	flags.StringVar(&options.WeightUnit, "weight-unit", "kg", "kg or lb")
	flags.StringVar(&options.ActivityLevel, "activity", "", "sedentary, light, moderate, active or extreme")
	flags.StringVar(&options.Goal, "goal", "", "lose_weight, maintain or gain_muscle")
	flags.Float64Var(&options.TargetBodyFatPct, "target-body-fat", 0, "Optional target body fat percentage")
	for _, name := range []string{"sex", "age", "height", "weight", "activity", "goal"} {
		_ = command.MarkFlagRequired(name)
	}
	return command
}

func withDatabase(dbPath string, fn func(database *gorm.DB) error) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()
	return fn(database)
}
