package notifygateway

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/ticket-management/internal/core/events"
)

// EventHandler forwards ticket events from the in-process bus to the
// webhook delivery client.
type EventHandler struct {
	client *Client
	logger *slog.Logger
}

func NewEventHandler(client *Client, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		client: client,
		logger: logger,
	}
}

func (h *EventHandler) HandleTicketEvent(ctx context.Context, event events.Event) error {
	h.logger.Info("forwarding ticket event to notification gateway",
		"event_type", event.EventType(),
		"event_id", event.EventID())

	if err := h.client.Notify(event); err != nil {
		h.logger.Error("failed to queue notification",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
		return err
	}

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeTicketStatusChanged, h.HandleTicketEvent)
	eventBus.Subscribe(events.EventTypeTicketAssigned, h.HandleTicketEvent)
	eventBus.Subscribe(events.EventTypeThreadCreated, h.HandleTicketEvent)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{
			events.EventTypeTicketStatusChanged,
			events.EventTypeTicketAssigned,
			events.EventTypeThreadCreated,
		})
}
