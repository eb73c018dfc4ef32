package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/ticket-management/internal/core/events"
	"github.com/frahmantamala/ticket-management/internal/notifygateway"
	"github.com/frahmantamala/ticket-management/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for various services",
	Long:  `Start and manage worker pools like webhook notification delivery and the event bus.`,
}

// Notification worker command
var notifyWorkerCmd = &cobra.Command{
	Use:   "notify",
	Short: "Start notification gateway worker pool",
	Long:  `Start the notification gateway worker pool for delivering ticket events to webhooks`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotifyWorker()
	},
}

// Event Bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus `,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var (
	maxWorkers     int
	jobQueueSize   int
	workerPoolSize int
	apiKey         string
	webhookURL     string
)

func startNotifyWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	// Use command line flags if provided, otherwise use config values
	notifyConfig := notifygateway.Config{
		WebhookURL:     getStringFlag(webhookURL, config.Notification.WebhookURL),
		APIKey:         getStringFlag(apiKey, config.Notification.APIKey),
		NotifyTimeout:  config.Notification.NotifyTimeout,
		MaxAttempts:    config.Notification.MaxAttempts,
		MaxWorkers:     getIntFlag(maxWorkers, config.Notification.MaxWorkers),
		JobQueueSize:   getIntFlag(jobQueueSize, config.Notification.QueueSize),
		WorkerPoolSize: getIntFlag(workerPoolSize, config.Notification.MaxWorkers),
	}

	logger.Info("starting notification worker",
		"max_workers", notifyConfig.MaxWorkers,
		"job_queue_size", notifyConfig.JobQueueSize,
		"webhook_url", notifyConfig.WebhookURL)

	client := notifygateway.NewClient(notifyConfig, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("notification worker is running. Press Ctrl+C to stop.")

	// wait for shutdown signal
	sig := <-sigChan
	logger.Info("received signal, shutting down notification worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		client.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		logger.Info("notification worker pool shutdown complete")
	case <-ctx.Done():
		logger.Warn("shutdown timeout reached, forcing exit")
	}
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	eventBus.Subscribe("test.event", func(ctx context.Context, event events.Event) error {
		logger.Info("received test event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	logger.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	logger.Info("received signal, shutting down event bus", "signal", sig)
	logger.Info("event bus shutdown complete")
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	notifyWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	notifyWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	notifyWorkerCmd.Flags().IntVar(&workerPoolSize, "worker-pool-size", 0, "Worker pool channel size (overrides config)")
	notifyWorkerCmd.Flags().StringVar(&apiKey, "api-key", "", "Webhook API key (overrides config)")
	notifyWorkerCmd.Flags().StringVar(&webhookURL, "webhook-url", "", "Webhook URL (overrides config)")

	workerCmd.AddCommand(notifyWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
