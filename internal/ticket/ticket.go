package ticket

import (
	"time"

	ticketDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/ticket"
	"github.com/frahmantamala/ticket-management/internal/permission"
)

type Ticket struct {
	ID                int64      `json:"id"`
	Subject           string     `json:"subject"`
	Description       string     `json:"description"`
	CurrentStatusID   int64      `json:"current_status_id"`
	CurrentPriorityID int64      `json:"current_priority_id"`
	CurrentCategoryID int64      `json:"current_category_id"`
	AssignedTo        *Entity    `json:"assigned_to,omitempty"`
	CreatedBy         Entity     `json:"created_by"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Entity mirrors the polymorphic assignment target: a team-only entity
// is "assigned to the team, unclaimed by any individual".
type Entity struct {
	TeamID     int64 `json:"team_id,omitempty"`
	UserTeamID int64 `json:"user_team_id,omitempty"`
}

type Thread struct {
	ID               int64     `json:"id"`
	TicketID         int64     `json:"ticket_id"`
	AuthorUserTeamID int64     `json:"author_user_team_id"`
	Body             string    `json:"body"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsClaimed reports whether a specific individual currently holds the
// ticket.
func (t *Ticket) IsClaimed() bool {
	return t.AssignedTo != nil && t.AssignedTo.UserTeamID != 0
}

// AssigneeEntityID is the identity threads are scoped against: the
// holding user-team when claimed, otherwise the holding team, else 0.
func (t *Ticket) AssigneeEntityID() int64 {
	if t.AssignedTo == nil {
		return 0
	}
	if t.AssignedTo.UserTeamID != 0 {
		return t.AssignedTo.UserTeamID
	}
	return t.AssignedTo.TeamID
}

// Snapshot freezes the ticket for one authorization decision.
func (t *Ticket) Snapshot() *permission.Ticket {
	snap := &permission.Ticket{
		ID:                t.ID,
		CurrentStatusID:   t.CurrentStatusID,
		CurrentPriorityID: t.CurrentPriorityID,
		CurrentCategoryID: t.CurrentCategoryID,
		CreatedBy: permission.Entity{
			TeamID:     t.CreatedBy.TeamID,
			UserTeamID: t.CreatedBy.UserTeamID,
		},
	}
	if t.AssignedTo != nil {
		snap.AssignedTo = &permission.Entity{
			TeamID:     t.AssignedTo.TeamID,
			UserTeamID: t.AssignedTo.UserTeamID,
		}
	}
	return snap
}

func FromDataModel(row *ticketDatamodel.Ticket) *Ticket {
	t := &Ticket{
		ID:                row.ID,
		Subject:           row.Subject,
		Description:       row.Description,
		CurrentStatusID:   row.CurrentStatusID,
		CurrentPriorityID: row.CurrentPriorityID,
		CurrentCategoryID: row.CurrentCategoryID,
		CreatedBy:         Entity{TeamID: row.CreatedByTeamID},
		ClosedAt:          row.ClosedAt,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if row.CreatedByUserTeam != nil {
		t.CreatedBy.UserTeamID = *row.CreatedByUserTeam
	}
	if row.AssignedTeamID != nil || row.AssignedUserTeam != nil {
		t.AssignedTo = &Entity{}
		if row.AssignedTeamID != nil {
			t.AssignedTo.TeamID = *row.AssignedTeamID
		}
		if row.AssignedUserTeam != nil {
			t.AssignedTo.UserTeamID = *row.AssignedUserTeam
		}
	}
	return t
}

func ThreadFromDataModel(row *ticketDatamodel.Thread) *Thread {
	return &Thread{
		ID:               row.ID,
		TicketID:         row.TicketID,
		AuthorUserTeamID: row.AuthorUserTeamID,
		Body:             row.Body,
		CreatedAt:        row.CreatedAt,
	}
}
