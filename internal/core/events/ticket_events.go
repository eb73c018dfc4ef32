package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTicketStatusChanged = "ticket.status_changed"
	EventTypeTicketAssigned      = "ticket.assigned"
	EventTypeThreadCreated       = "ticket.thread_created"
)

type TicketStatusChangedEvent struct {
	BaseEvent
	TicketID    int64  `json:"ticket_id"`
	Field       string `json:"field"`
	FromID      int64  `json:"from_id"`
	ToID        int64  `json:"to_id"`
	ActorUserID int64  `json:"actor_user_id"`
}

// NewTicketStatusChangedEvent covers every field transition (status,
// priority, category); Field carries which one.
func NewTicketStatusChangedEvent(ticketID int64, field string, fromID, toID, actorUserID int64) *TicketStatusChangedEvent {
	return &TicketStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTicketStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"ticket_id":     ticketID,
				"field":         field,
				"from_id":       fromID,
				"to_id":         toID,
				"actor_user_id": actorUserID,
			},
		},
		TicketID:    ticketID,
		Field:       field,
		FromID:      fromID,
		ToID:        toID,
		ActorUserID: actorUserID,
	}
}

type TicketAssignedEvent struct {
	BaseEvent
	TicketID       int64  `json:"ticket_id"`
	FromUserTeamID int64  `json:"from_user_team_id"`
	ToUserTeamID   int64  `json:"to_user_team_id"`
	ActorUserID    int64  `json:"actor_user_id"`
	ClaimKind      string `json:"claim_kind,omitempty"`
}

func NewTicketAssignedEvent(ticketID, fromUserTeamID, toUserTeamID, actorUserID int64, claimKind string) *TicketAssignedEvent {
	return &TicketAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTicketAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"ticket_id":         ticketID,
				"from_user_team_id": fromUserTeamID,
				"to_user_team_id":   toUserTeamID,
				"actor_user_id":     actorUserID,
				"claim_kind":        claimKind,
			},
		},
		TicketID:       ticketID,
		FromUserTeamID: fromUserTeamID,
		ToUserTeamID:   toUserTeamID,
		ActorUserID:    actorUserID,
		ClaimKind:      claimKind,
	}
}

type ThreadCreatedEvent struct {
	BaseEvent
	TicketID    int64 `json:"ticket_id"`
	ThreadID    int64 `json:"thread_id"`
	ActorUserID int64 `json:"actor_user_id"`
}

func NewThreadCreatedEvent(ticketID, threadID, actorUserID int64) *ThreadCreatedEvent {
	return &ThreadCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeThreadCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"ticket_id":     ticketID,
				"thread_id":     threadID,
				"actor_user_id": actorUserID,
			},
		},
		TicketID:    ticketID,
		ThreadID:    threadID,
		ActorUserID: actorUserID,
	}
}
