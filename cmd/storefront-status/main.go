package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-pizzeria/internal/app/api"
	storefrontmemory "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/memory"
	storefrontpostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/persistence/postgres"
	storefrontapp "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/application"
	storefrontdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
	storefrontports "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
	platformpostgres "github.com/Apurer/go-gin-pizzeria/internal/platform/postgres"
)

// storefront-status prints whether the store takes orders right now.
// It exits 0 while open and 1 while closed, so it can gate cron jobs and probes.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var repo storefrontports.Repository = storefrontmemory.NewRepository()
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db != nil {
		repo = storefrontpostgres.NewRepository(db)
	}

	service := storefrontapp.NewService(repo, storefrontapp.WithLocation(cfg.StoreLocation), storefrontapp.WithLogger(logger))
	status, err := service.Status(ctx)
	if err != nil {
		log.Fatalf("failed to resolve storefront status: %v", err)
	}
	if !status.Open {
		fmt.Printf("closed: %s\n", status.ClosedMessage)
		cleanup()
		os.Exit(1)
	}
	if w := status.Window; w != nil {
		fmt.Printf("open (%s %s-%s)\n", w.Day, storefrontdomain.FormatClock(w.OpenMinutes), storefrontdomain.FormatClock(w.CloseMinutes))
		return
	}
	fmt.Println("open")
}
