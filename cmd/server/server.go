package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-loadout/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-loadout/internal/config"
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	sheetv1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
	"github.com/KirkDiggler/rpg-loadout/internal/layout"
	"github.com/KirkDiggler/rpg-loadout/internal/notify"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/loadout"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/roster"
	"github.com/KirkDiggler/rpg-loadout/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-loadout/internal/redis"
	"github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot"
)

var (
	grpcPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the loadout gRPC server. Configuration is read from RPG_LOADOUT_* environment variables.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port, overrides RPG_LOADOUT_PORT")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if grpcPort != 0 {
		cfg.Port = grpcPort
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler, closeStore, err := buildHandler(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			slog.Warn("Failed to close snapshot store", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	sheetv1alpha1.RegisterSheetServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(sheetv1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Port, "store", cfg.Store)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildHandler wires the catalog, layout, snapshot store and orchestrators.
// The returned closer releases the snapshot store.
func buildHandler(ctx context.Context, cfg *config.Config) (*sheetv1alpha1.Handler, io.Closer, error) {
	cat, err := catalog.New(&catalog.Config{Dir: cfg.CatalogDir})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	slots := layout.Default()
	if cfg.LayoutFile != "" {
		slots, err = layout.LoadFile(cfg.LayoutFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load layout: %w", err)
		}
	}

	repo, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	bus := events.NewBus()
	notifier, err := notify.NewBusNotifier(&notify.Config{EventBus: bus})
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	controller, err := loadout.New(&loadout.Config{
		Catalog:  cat,
		Notifier: notifier,
	})
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to create loadout controller: %w", err)
	}

	characters, err := roster.NewOrchestrator(&roster.Config{
		Controller:   controller,
		SnapshotRepo: repo,
		IDGenerator:  idgen.NewUUID("char"),
		Layout:       slots,
		EventBus:     bus,
	})
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to create roster: %w", err)
	}

	handler, err := sheetv1alpha1.NewHandler(&sheetv1alpha1.HandlerConfig{
		Roster:  characters,
		Catalog: cat,
	})
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to create sheet handler: %w", err)
	}

	logLayout(slots)
	return handler, closers{characters, closer}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (snapshot.Repository, io.Closer, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddrs, &redis.Options{UseTLS: cfg.RedisTLS})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		repo, err := snapshot.NewRedis(&snapshot.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		return repo, client, nil
	case config.StoreSQLite:
		repo, err := snapshot.NewSQLite(ctx, &snapshot.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repo, repo, nil
	default:
		return snapshot.NewInMemory(), closers{}, nil
	}
}

func logLayout(l entities.Layout) {
	slog.Info("Slot layout loaded",
		"slots", len(l.Slots),
		"vitals", l.Vitals,
		"skills", l.Skills)
}

// closers closes each element in order and returns the first error
type closers []io.Closer

func (c closers) Close() error {
	var first error
	for _, closer := range c {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
