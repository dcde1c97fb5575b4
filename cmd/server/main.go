package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tendergate/internal/fabric"
	"tendergate/internal/platform/config"
	"tendergate/internal/platform/httpserver"
	"tendergate/internal/platform/logger"
	"tendergate/internal/platform/metrics"
	"tendergate/internal/tender/handler"
	"tendergate/internal/tender/models"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Request translation lives in internal/tender/handler; ledger session
// bootstrap lives in internal/fabric.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	factory := fabric.NewFactory(cfg.Fabric, log)
	opener := handler.OpenerFunc(func(role models.Role) (handler.Session, error) {
		return factory.Open(role)
	})

	h := handler.New(opener, log, m, cfg.Fabric.Authority.MSPID, cfg.Fabric.Auditor.MSPID)

	router := chi.NewRouter()
	h.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting tender gateway",
		"addr", cfg.Addr,
		"peer", cfg.Fabric.PeerEndpoint,
		"channel", cfg.Fabric.ChannelName,
		"chaincode", cfg.Fabric.ChaincodeName,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
