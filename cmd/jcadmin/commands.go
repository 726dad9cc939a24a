package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yasinhessnawi1/jcadmin/internal/config"
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/server"
	"github.com/yasinhessnawi1/jcadmin/internal/service"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

const defaultConfigPath = "./configs/config.yaml"

// app carries state shared between the root command and its subcommands.
type app struct {
	configPath string
	jcblockDir string
	logLevel   string
	cfg        *config.AppConfig
}

// newRootCmd builds the command tree. Each call returns a fresh tree so
// tests can execute commands without sharing flag state.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "jcadmin",
		Short:         "Administer the call log, safe list and blocked list of a jcblock device",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&a.jcblockDir, "dir", "", "jcblock directory, overrides the configured one")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level, overrides the configured one")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		// The version never needs a config file.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "jcadmin\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
			return err
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("version", a.cfg.App.Version).
				Str("environment", a.cfg.App.Environment).
				Str("log_level", utils.GetLogLevel()).
				Msg("Starting jcadmin")

			srv, err := server.NewServer(cmd.Context(), a.cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start()
		},
	}

	callsCmd := &cobra.Command{
		Use:   "calls [start] [limit]",
		Short: "Print a window of the call log, newest first",
		Args:  cobra.MaximumNArgs(2),
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			start, err := utils.ParseNonNegativeInt(constants.ParamStart, argAt(args, 0), 0)
			if err != nil {
				return nil, err
			}
			limit, err := utils.ParseNonNegativeInt(constants.ParamLimit, argAt(args, 1), svc.DefaultCallLimit())
			if err != nil {
				return nil, err
			}
			return svc.GetRecentCalls(ctx, start, limit)
		}),
	}

	callerCmd := &cobra.Command{
		Use:   "caller <phonenumber>",
		Short: "Print a caller's name, call count, status and history",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			return svc.GetCallerDetail(ctx, args[0])
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list <safe|blocked>",
		Short: "Print the records of a pattern list in file order",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			return svc.FetchPatternDetail(ctx, args[0])
		}),
	}

	classifyCmd := &cobra.Command{
		Use:   "classify <safe|blocked|neutral> <phonenumber>",
		Short: "Move a number to a status",
		Args:  cobra.ExactArgs(2),
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			return svc.Classify(ctx, args[0], args[1])
		}),
	}

	renameCmd := &cobra.Command{
		Use:   "rename <phonenumber> [name]",
		Short: "Set a caller's display name, or clear it when no name is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			if err := svc.RenameCaller(ctx, args[0], argAt(args, 1)); err != nil {
				return nil, err
			}
			return &models.RenameResponse{Status: "ok"}, nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <phonenumber>",
		Short: "Forget a number that has never called",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			if err := svc.DeleteCaller(ctx, args[0]); err != nil {
				return nil, err
			}
			return &models.DeleteResponse{Deleted: true}, nil
		}),
	}

	pollCmd := &cobra.Command{
		Use:   "poll",
		Short: "Print the modification times clients poll",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error) {
			times, err := svc.PollModificationTimes(ctx)
			if err != nil {
				return nil, err
			}
			return models.NewPollResponse(times), nil
		}),
	}

	rootCmd.AddCommand(versionCmd, serveCmd, callsCmd, callerCmd, listCmd, classifyCmd, renameCmd, deleteCmd, pollCmd)
	return rootCmd
}

// loadConfig reads the configuration and initializes logging and validation.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.jcblockDir != "" {
		cfg.Files.Dir = a.jcblockDir
	}

	// Override version from build if available (not in dev mode)
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	if a.logLevel != "" {
		if err := utils.SetLogLevel(a.logLevel); err != nil {
			return err
		}
	}
	utils.InitValidator()

	a.cfg = cfg
	return nil
}

type serviceFunc func(ctx context.Context, cmd *cobra.Command, svc *service.CallerService, args []string) (interface{}, error)

// withService builds the caller service for one command, runs fn and prints
// its result as indented JSON.
func (a *app) withService(fn serviceFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		svc, err := service.NewCallerServiceFromConfig(ctx, a.cfg)
		if err != nil {
			return err
		}

		result, err := fn(ctx, cmd, svc, args)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}
}

// argAt returns args[i], or "" when there are fewer arguments.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
