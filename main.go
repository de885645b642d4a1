package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbachinger/taeglich/app"
	"github.com/mbachinger/taeglich/config"
	"github.com/mbachinger/taeglich/database"
	"github.com/mbachinger/taeglich/log"
	"github.com/mbachinger/taeglich/reminder"
	"github.com/mbachinger/taeglich/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		// without a store there is nothing to run partially
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	flags, err := reminder.OpenFlags(cfg.FlagsPath)
	if err != nil {
		log.Fatal("main.flags.open:", err)
	}

	scheduler := reminder.New(cfg.Slots, flags, reminder.DesktopChannel(), cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go scheduler.Run(ctx)

	app := app.App{
		Store:     db,
		Scheduler: scheduler,
		Config:    cfg,
	}

	handler := routes.Wire(app)

	err = runServer(ctx, cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
