package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PulseBoard/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agents and the dashboard API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("[INFO] PulseBoard starting...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newApp(ctx, cfg)
	defer a.close()

	if err := a.scheduler.RegisterAll(a.schedules()); err != nil {
		return err
	}
	a.scheduler.Start()
	if cfg.RunOnStart() {
		log.Printf("[INFO] initial run of all agents in %v", cfg.StartupDelay())
		a.scheduler.StartupRun(cfg.StartupDelay())
	}

	srv := api.NewServer(api.Options{
		Store:     a.store,
		Runner:    a.scheduler,
		Commerce:  a.shop,
		Recorder:  a.recorder,
		Metrics:   a.metrics,
		StaticDir: cfg.Server.StaticDir,
		StartedAt: a.startedAt,
	})
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] dashboard listening on %s, target revenue %.0f", cfg.Server.Addr, cfg.Dashboard.TargetRevenue)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err = <-errCh:
		log.Printf("[ERROR] http server: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	a.scheduler.Stop()

	log.Println("[INFO] PulseBoard stopped")
	return err
}
