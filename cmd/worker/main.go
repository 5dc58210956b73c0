package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-pizzeria/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-pizzeria/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-pizzeria/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-pizzeria/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "pizzeria-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	delivery, closeDelivery := api.BuildDeliveryNotifier(cfg, serviceName, logger)
	defer closeDelivery()
	notifyActivities := orderactivities.NewActivities(delivery)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.StatusNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.StatusNotificationWorkflow, workflow.RegisterOptions{Name: orderworkflows.StatusNotificationWorkflowName})
	w.RegisterActivityWithOptions(notifyActivities.DeliverStatusNotification, activity.RegisterOptions{Name: orderactivities.DeliverStatusNotificationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.StatusNotificationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
