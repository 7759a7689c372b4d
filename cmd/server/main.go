package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"qrforge/internal/api"
	"qrforge/internal/config"
	"qrforge/internal/logging"
	"qrforge/internal/metrics"
	"qrforge/internal/qr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; write straight to stderr and bail.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})

	m := metrics.New()
	server, err := api.NewServer(cfg, log, m, qr.New())
	if err != nil {
		log.WithError(err).Fatal("server setup failed")
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewRouter(server),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown incomplete")
	}
}
