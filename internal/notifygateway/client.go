package notifygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/ticket-management/internal/core/events"
)

// NotificationJob is one webhook delivery attempt for a ticket event.
type NotificationJob struct {
	EventID   string
	EventType string
	Payload   []byte
	Attempt   int
}

type Worker struct {
	ID         int
	WorkerPool chan chan NotificationJob
	JobChannel chan NotificationJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan NotificationJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan NotificationJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(NotificationJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {

			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing notification", "worker_id", w.ID, "event_id", job.EventID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client delivers ticket events to an external webhook through a bounded
// worker pool so slow receivers never block the request path.
type Client struct {
	webhookURL    string
	apiKey        string
	notifyTimeout time.Duration
	maxAttempts   int
	logger        *slog.Logger

	jobQueue   chan NotificationJob
	workerPool chan chan NotificationJob
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type Config struct {
	WebhookURL     string
	APIKey         string
	NotifyTimeout  time.Duration
	MaxAttempts    int
	MaxWorkers     int
	JobQueueSize   int
	WorkerPoolSize int
}

func NewClient(config Config, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	workerPoolSize := config.WorkerPoolSize
	if workerPoolSize <= 0 {
		workerPoolSize = maxWorkers
	}

	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	client := &Client{
		webhookURL:    config.WebhookURL,
		apiKey:        config.APIKey,
		notifyTimeout: config.NotifyTimeout,
		maxAttempts:   maxAttempts,
		logger:        logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan NotificationJob, jobQueueSize),
		workerPool: make(chan chan NotificationJob, workerPoolSize),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {

		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.processNotificationJob)
		}

		go c.dispatch()

		c.logger.Info("notification gateway worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	defer c.wg.Done()
	c.wg.Add(1)

	for {
		select {
		case job := <-c.jobQueue:

			select {
			case jobChannel := <-c.workerPool:

				select {
				case jobChannel <- job:

				case <-c.ctx.Done():
					c.logger.Info("dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("dispatcher shutting down")
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down notification gateway client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("notification gateway client shutdown complete")
}

// Notify serializes the event and queues it for webhook delivery.
// A full queue drops the notification rather than blocking the caller.
func (c *Client) Notify(event events.Event) error {
	if c.webhookURL == "" {
		c.logger.Debug("no webhook configured, skipping notification", "event_type", event.EventType())
		return nil
	}

	envelope := map[string]interface{}{
		"event_id":    event.EventID(),
		"event_type":  event.EventType(),
		"occurred_at": event.OccurredAt().UTC().Format(time.RFC3339),
		"data":        event.Payload(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	job := NotificationJob{
		EventID:   event.EventID(),
		EventType: event.EventType(),
		Payload:   payload,
		Attempt:   1,
	}

	select {
	case c.jobQueue <- job:
		c.logger.Info("notification queued",
			"event_id", job.EventID,
			"event_type", job.EventType,
			"queue_length", len(c.jobQueue))
	default:
		c.logger.Warn("notification queue full, dropping event",
			"event_id", job.EventID,
			"queue_capacity", cap(c.jobQueue))
		return fmt.Errorf("notification queue full")
	}

	return nil
}

func (c *Client) processNotificationJob(job NotificationJob) {
	err := c.deliver(job)
	if err == nil {
		return
	}

	c.logger.Warn("notification delivery failed",
		"event_id", job.EventID,
		"attempt", job.Attempt,
		"error", err)

	if job.Attempt >= c.maxAttempts {
		c.logger.Error("notification dropped after max attempts",
			"event_id", job.EventID,
			"attempts", job.Attempt)
		return
	}

	backoff := time.Duration(job.Attempt) * time.Second
	select {
	case <-time.After(backoff):
	case <-c.ctx.Done():
		return
	}

	job.Attempt++
	select {
	case c.jobQueue <- job:
	default:
		c.logger.Error("notification queue full during retry, dropping event",
			"event_id", job.EventID)
	}
}

func (c *Client) deliver(job NotificationJob) error {
	timeout := c.notifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewBuffer(job.Payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	c.logger.Info("notification delivered",
		"event_id", job.EventID,
		"event_type", job.EventType,
		"status_code", resp.StatusCode)
	return nil
}
