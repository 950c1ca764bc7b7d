package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/platepos/api/internal/config"
	"github.com/platepos/api/internal/jobs"
	"github.com/platepos/api/internal/router"
	"github.com/platepos/api/internal/service"
	"github.com/platepos/api/internal/store"
	"github.com/platepos/api/internal/store/file"
	"github.com/platepos/api/internal/store/postgres"
	"github.com/platepos/api/internal/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := config.Load()

	kv, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	menuRepo := store.NewMenuRepository(kv)
	orderRepo := store.NewOrderRepository(kv)
	counter := store.NewCounter(kv)

	hub := ws.NewHub()
	go hub.Run()

	menuSvc := service.NewMenuService(menuRepo)
	orderSvc := service.NewOrderService(menuRepo, orderRepo, counter, hub)
	reportSvc := service.NewReportService(orderRepo)

	if err := menuSvc.EnsureDefaults(context.Background()); err != nil {
		log.Fatalf("seed default menu: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	snapshotJob := jobs.NewRevenueSnapshotJob(reportSvc, kv, hub, logger)
	if err := snapshotJob.Start(); err != nil {
		log.Fatalf("start revenue snapshot job: %v", err)
	}
	defer snapshotJob.Stop()

	r := router.New(cfg, orderSvc, menuSvc, reportSvc, hub)

	log.Printf("Starting server on :%s (storage driver: %s)", cfg.Port, cfg.StorageDriver)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}

// openStore builds the configured KV backend. The file store is the default
// single-node setup; postgres serves deployments that already run one.
func openStore(cfg *config.Config) (store.KV, func(), error) {
	switch cfg.StorageDriver {
	case "file":
		s, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "postgres":
		s, err := postgres.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
