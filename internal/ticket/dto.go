package ticket

import (
	"strings"

	"github.com/frahmantamala/ticket-management/internal"
)

type CreateTicketDTO struct {
	Subject           string `json:"subject"`
	Description       string `json:"description"`
	StatusID          int64  `json:"status_id"`
	PriorityID        int64  `json:"priority_id"`
	CategoryID        int64  `json:"category_id"`
	CreatorUserTeamID int64  `json:"creator_user_team_id"`
}

func (d *CreateTicketDTO) Validate() error {
	if strings.TrimSpace(d.Subject) == "" {
		return internal.NewValidationFieldError("subject", "subject is required", internal.ErrCodeInvalidSubject)
	}
	if d.StatusID <= 0 || d.PriorityID <= 0 || d.CategoryID <= 0 {
		return internal.NewValidationFieldError("status_id", "status, priority and category are required", internal.ErrCodeInvalidField)
	}
	if d.CreatorUserTeamID <= 0 {
		return internal.NewValidationFieldError("creator_user_team_id", "creator membership is required", internal.ErrCodeInvalidField)
	}
	return nil
}

// ChangeFieldDTO carries the exact prior value the caller observed;
// the write is conditional on it (see ErrStaleTicket).
type ChangeFieldDTO struct {
	FromID int64 `json:"from_id"`
	ToID   int64 `json:"to_id"`
}

func (d *ChangeFieldDTO) Validate() error {
	if d.ToID <= 0 {
		return internal.NewValidationFieldError("to_id", "target value is required", internal.ErrCodeInvalidField)
	}
	return nil
}

type AssignDTO struct {
	FromUserTeamID int64 `json:"from_user_team_id"`
	ToUserTeamID   int64 `json:"to_user_team_id"`
	ToTeamID       int64 `json:"to_team_id"`
}

type ClaimDTO struct {
	ToUserTeamID int64 `json:"to_user_team_id"`
}

type CreateThreadDTO struct {
	AuthorUserTeamID int64  `json:"author_user_team_id"`
	Body             string `json:"body"`
}

func (d *CreateThreadDTO) Validate() error {
	if strings.TrimSpace(d.Body) == "" {
		return internal.NewValidationFieldError("body", "body is required", internal.ErrCodeInvalidBody)
	}
	if d.AuthorUserTeamID <= 0 {
		return internal.NewValidationFieldError("author_user_team_id", "author membership is required", internal.ErrCodeInvalidField)
	}
	return nil
}

type ClaimResponse struct {
	TicketID  int64  `json:"ticket_id"`
	ClaimKind string `json:"claim_kind"`
}

type ThreadsResponse struct {
	Threads []*Thread `json:"threads"`
}
