// cmd/sync/commands.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ammerola/seller-sync/internal/bootstrap"
	"github.com/ammerola/seller-sync/internal/core/ports"
	"github.com/ammerola/seller-sync/internal/core/services"
	"github.com/ammerola/seller-sync/internal/health"
	"github.com/ammerola/seller-sync/internal/pkg/config"
	"github.com/ammerola/seller-sync/internal/pkg/logger"
	"github.com/ammerola/seller-sync/internal/workers"
)

var errUnhealthy = errors.New("one or more dependencies are unhealthy")

// app carries the state shared by every subcommand
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   *bootstrap.Dependencies
	asJSON bool
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seller-sync",
		Short: "Synchronize vendor stock and prices into the marketplace catalog",
		Long: `seller-sync downloads the vendor inventory snapshot, matches it against
the offers listed in the marketplace catalog and pushes stock levels and
prices in batches.

Credentials are read from CLIENT_ID and SELLER_TOKEN, or from AWS Secrets
Manager when CREDENTIAL_SOURCE=aws_secrets_manager.`,
		Version:           fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		a.newRunCmd(),
		a.newStocksCmd(),
		a.newPricesCmd(),
		a.newOffersCmd(),
		a.newEnqueueCmd(),
		a.newHealthCmd(),
	)

	return root
}

// setup loads configuration and builds the logger. Logs go to stderr so
// command output on stdout stays machine readable.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	bootLogger := logger.NewLogger(&logger.LogConfig{
		Level:  "info",
		Format: "json",
		Writer: cmd.ErrOrStderr(),
	}).Logger

	cfg, err := config.Load(bootLogger)
	if err != nil {
		bootLogger.Error("failed to load configuration", slog.String("error", err.Error()))
		return err
	}

	a.cfg = cfg
	a.logger = logger.NewLogger(&logger.LogConfig{
		Level:          cfg.App.LogLevel,
		Format:         cfg.App.LogFormat,
		Writer:         cmd.ErrOrStderr(),
		AddSource:      cfg.App.LogLevel == "debug",
		Environment:    cfg.App.Environment,
		ServiceName:    cfg.App.Name,
		ServiceVersion: Version,
	}).Logger

	cmd.SetContext(logger.WithCommand(cmd.Context(), cmd.Name()))
	return nil
}

// service wires the pipeline on first use
func (a *app) service(ctx context.Context) (ports.SyncService, error) {
	if a.deps == nil {
		deps, err := bootstrap.Initialize(ctx, a.cfg, a.logger)
		if err != nil {
			return nil, err
		}
		a.deps = deps
	}
	return a.deps.Service, nil
}

// close releases the connections opened by service
func (a *app) close() {
	if a.deps != nil {
		a.deps.Close()
	}
}

// fail logs err with its failure class and hands it back to cobra
func (a *app) fail(ctx context.Context, err error) error {
	class := services.Classify(err)
	a.logger.ErrorContext(ctx, class.Message(),
		slog.String("failure", class.String()),
		slog.String("error", err.Error()))
	return err
}

func (a *app) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a full reconciliation: offers, snapshot, stocks and prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			report, err := svc.Run(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"run %s: %d offers, %d stocks pushed (%d zeroed), %d prices pushed, %d prices rejected, %d updates failed in %s\n",
				report.RunID, report.OfferCount, report.StocksPushed, report.ZeroedOffers,
				report.PricesPushed, len(report.RejectedPrices), len(report.FailedUpdates),
				report.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func (a *app) newStocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stocks",
		Short: "Download the snapshot and push stock levels for every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			records, err := svc.DownloadInventory(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			result, err := svc.UploadStocks(ctx, records)
			if err != nil {
				return a.fail(ctx, err)
			}

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d stocks pushed, %d non-empty\n",
				len(result.All), len(result.NonEmpty))
			return nil
		},
	}
}

func (a *app) newPricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Download the snapshot and push prices for every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			records, err := svc.DownloadInventory(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			prices, err := svc.UploadPrices(ctx, records)
			if err != nil {
				return a.fail(ctx, err)
			}

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), prices)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d prices pushed\n", len(prices))
			return nil
		},
	}
}

func (a *app) newOffersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List every offer id in the marketplace catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			offers, err := svc.ListOfferIDs(ctx)
			if err != nil {
				return a.fail(ctx, err)
			}

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), offers)
			}
			for _, id := range offers {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func (a *app) newEnqueueCmd() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:       "enqueue {run|stocks|prices|cleanup}",
		Short:     "Queue a task for the worker instead of running it here",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"run", "stocks", "prices", "cleanup"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			task, err := newTask(args[0])
			if err != nil {
				return a.fail(ctx, err)
			}

			client := asynq.NewClient(asynq.RedisClientOpt{
				Addr:     a.cfg.Asynq.RedisAddr,
				Password: a.cfg.Asynq.RedisPassword,
				DB:       a.cfg.Asynq.RedisDB,
			})
			defer client.Close()

			opts := []asynq.Option{asynq.Timeout(a.cfg.Asynq.TaskTimeout)}
			if delay > 0 {
				opts = append(opts, asynq.ProcessIn(delay))
			}

			info, err := client.EnqueueContext(ctx, task, opts...)
			if err != nil {
				return a.fail(ctx, fmt.Errorf("failed to enqueue %s: %w", task.Type(), err))
			}

			a.logger.InfoContext(ctx, "task enqueued",
				slog.String("task_id", info.ID),
				slog.String("type", info.Type),
				slog.String("queue", info.Queue))

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"id": info.ID, "queue": info.Queue})
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.ID)
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "in", 0, "delay before the task becomes runnable")

	return cmd
}

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the Redis and task queue the worker depends on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			inspector := asynq.NewInspector(asynq.RedisClientOpt{
				Addr:     a.cfg.Asynq.RedisAddr,
				Password: a.cfg.Asynq.RedisPassword,
				DB:       a.cfg.Asynq.RedisDB,
			})
			defer inspector.Close()

			var redisClient *redis.Client
			if a.cfg.Sync.LockEnabled {
				redisClient = bootstrap.NewRedisClient(a.cfg)
				defer redisClient.Close()
			}

			report := health.NewChecker(redisClient, inspector, Version, a.cfg.App.Environment, a.logger).Check(ctx)
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if report.Status != health.StatusHealthy {
				return a.fail(ctx, errUnhealthy)
			}
			return nil
		},
	}
}

func newTask(name string) (*asynq.Task, error) {
	switch name {
	case "run":
		return workers.NewSyncRunTask("cli")
	case "stocks":
		return workers.NewUploadStocksTask(nil)
	case "prices":
		return workers.NewUploadPricesTask(nil)
	case "cleanup":
		return workers.NewCleanupWorkDirTask(), nil
	default:
		return nil, fmt.Errorf("unknown task %q", name)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
