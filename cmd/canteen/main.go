package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"smart-canteen/internal/auth"
	"smart-canteen/internal/cart"
	"smart-canteen/internal/catalog"
	"smart-canteen/internal/config"
	"smart-canteen/internal/connections/database"
	"smart-canteen/internal/connections/rabbitmq"
	"smart-canteen/internal/dashboard"
	"smart-canteen/internal/employees"
	"smart-canteen/internal/notifier"
	"smart-canteen/internal/orders"
	"smart-canteen/internal/seed"
	"smart-canteen/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", ".env", "path to env config file")
		mode       = flag.String("mode", "server", "process mode: server or notifier")
		runSeed    = flag.Bool("seed", false, "seed demo data before starting")
	)
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("mode", *mode).Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *mode, *runSeed); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("exited with error")
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, mode string, runSeed bool) error {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cfg.Database); err != nil {
		return err
	}

	if runSeed {
		if err := seed.Run(ctx, db, log); err != nil {
			return err
		}
	}

	mq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return err
	}

	switch mode {
	case "notifier":
		return notifier.New(mq, log).Run(ctx)
	case "server":
		return runServer(ctx, cfg, log, db, mq)
	default:
		return errors.New("unknown mode: " + mode)
	}
}

func runServer(ctx context.Context, cfg *config.Config, log zerolog.Logger, db *pgxpool.Pool, mq *rabbitmq.Client) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, cfg.Auth.SessionTTL)

	catalogRepo := catalog.NewRepository(db)
	catalogService := catalog.NewService(catalogRepo)

	ordersRepo := orders.NewRepository(db)
	ordersService := orders.NewService(ordersRepo, orders.NewPublisher(mq), log)

	cartStore := cart.NewStore(rdb)
	cartService := cart.NewService(cartStore, catalogRepo)

	employeesRepo := employees.NewRepository(db)
	employeesService := employees.NewService(employeesRepo)

	router := server.NewRouter(log, server.Handlers{
		Auth:      auth.NewHandler(authService),
		Catalog:   catalog.NewHandler(catalogService),
		Orders:    orders.NewHandler(ordersService),
		Cart:      cart.NewHandler(cartService),
		Employees: employees.NewHandler(employeesService),
		Dashboard: dashboard.NewHandler(dashboard.NewRepository(db)),
		Verifier:  authService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
