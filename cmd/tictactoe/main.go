package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"

    "go.uber.org/zap"

    "github.com/jaminalder/tictactoe-history/internal/app"
    "github.com/jaminalder/tictactoe-history/internal/config"
    "github.com/jaminalder/tictactoe-history/internal/obslog"
    "github.com/jaminalder/tictactoe-history/internal/web"
)

var configPath = flag.String("config", "config.yml", "path to the yaml config file; missing files fall back to env")

func main() {
    flag.Parse()

    conf := config.MustLoad(*configPath)
    logger := obslog.New(conf.LogLevel, conf.LogFormat)
    defer func() { _ = logger.Sync() }()

    if err := run(logger, conf); err != nil {
        logger.Error("server stopped", zap.Error(err))
        // os.Exit skips deferred calls.
        _ = logger.Sync()
        os.Exit(1)
    }
}

func run(logger *zap.Logger, conf *config.Config) error {
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    svc := app.NewService(app.Options{
        Logger:      logger.Named("app"),
        LockHistory: conf.Game.LockHistory,
        TTL:         conf.Game.SessionTTL,
    })
    go svc.RunJanitor(ctx, conf.Game.SweepInterval)

    srv := &http.Server{
        Addr: conf.Addr(),
        Handler: web.NewServer(svc, web.Options{
            Logger:    logger.Named("web"),
            Heartbeat: conf.Server.Heartbeat,
        }),
        ReadTimeout: conf.Server.ReadTimeout,
        IdleTimeout: conf.Server.IdleTimeout,
        // no WriteTimeout: event streams stay open
    }

    errCh := make(chan error, 1)
    go func() {
        logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            errCh <- err
        }
    }()

    select {
    case err := <-errCh:
        return fmt.Errorf("http server: %w", err)
    case <-ctx.Done():
        logger.Info("shutting down")
    }

    shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        return fmt.Errorf("shutdown: %w", err)
    }
    return nil
}
