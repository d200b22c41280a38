package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/skillswap/internal/config"
	"github.com/joshua-takyi/skillswap/internal/connect"
	"github.com/joshua-takyi/skillswap/internal/container"
	"github.com/joshua-takyi/skillswap/internal/helpers"
	"github.com/joshua-takyi/skillswap/internal/logger"
	"github.com/joshua-takyi/skillswap/internal/routes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "skillswap",
	Short:         "Skill exchange marketplace API",
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing env file is fine; the process environment still applies
		_ = godotenv.Load(envFile)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes used by swap queries",
	RunE:  runEnsureIndexes,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env.local", "dotenv file loaded before reading configuration")
	rootCmd.AddCommand(serveCmd, ensureIndexesCmd)
}

// bootstrap loads configuration and builds the logger shared by every command.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting skillswap API server", zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clients, err := connect.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := clients.Close(context.Background()); err != nil {
			log.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	validator, err := helpers.NewJWKSValidator(ctx, cfg.SupabaseURL, log.Named("jwks"))
	if err != nil {
		return err
	}
	defer validator.Close()

	appContainer := container.NewContainer(cfg, log, validator, container.ReposFromClients(cfg, clients))
	if err := appContainer.SwapRepo.EnsureSwapIndexes(ctx); err != nil {
		log.Warn("Could not ensure swap indexes", zap.Error(err))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.SetupRoutes(ctx, appContainer),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

func runEnsureIndexes(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	mongoClient, err := connect.MongoDBConnect(ctx, cfg)
	if err != nil {
		return err
	}
	clients := &connect.Clients{MongoDB: mongoClient}
	defer func() { _ = clients.Close(context.Background()) }()

	repos := container.ReposFromClients(cfg, clients)
	if err := repos.Swaps.EnsureSwapIndexes(ctx); err != nil {
		return err
	}
	log.Info("Swap indexes are in place", zap.String("database", cfg.MongoDBDatabase))
	return nil
}
