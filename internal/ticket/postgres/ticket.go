package postgres

import (
	"context"
	"time"

	ticketDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/ticket"
	"github.com/frahmantamala/ticket-management/internal/permission"
	"github.com/frahmantamala/ticket-management/internal/ticket"
	"gorm.io/gorm"
)

// TicketRepository implements ticket.RepositoryAPI and
// permission.TicketStore using GORM.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(t *ticket.Ticket) error {
	row := toDataModel(t)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	t.ID = row.ID
	t.CreatedAt = row.CreatedAt
	t.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *TicketRepository) GetByID(id int64) (*ticket.Ticket, error) {
	var row ticketDatamodel.Ticket
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return ticket.FromDataModel(&row), nil
}

func (r *TicketRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&ticketDatamodel.Ticket{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateStatusIf commits the transition only when the row still holds
// the expected prior value; zero rows affected means a concurrent
// writer got there first.
func (r *TicketRepository) UpdateStatusIf(id, fromStatusID, toStatusID int64) (bool, error) {
	return r.conditionalUpdate(id, "current_status_id", fromStatusID, toStatusID)
}

func (r *TicketRepository) UpdatePriorityIf(id, fromPriorityID, toPriorityID int64) (bool, error) {
	return r.conditionalUpdate(id, "current_priority_id", fromPriorityID, toPriorityID)
}

func (r *TicketRepository) UpdateCategoryIf(id, fromCategoryID, toCategoryID int64) (bool, error) {
	return r.conditionalUpdate(id, "current_category_id", fromCategoryID, toCategoryID)
}

func (r *TicketRepository) conditionalUpdate(id int64, column string, fromID, toID int64) (bool, error) {
	res := r.db.Model(&ticketDatamodel.Ticket{}).
		Where("id = ? AND "+column+" = ?", id, fromID).
		Updates(map[string]interface{}{
			column:       toID,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// UpdateAssigneeIf is keyed on the currently assigned user-team;
// expectedUserTeamID 0 means "no individual holds it".
func (r *TicketRepository) UpdateAssigneeIf(id, expectedUserTeamID, toUserTeamID, toTeamID int64) (bool, error) {
	q := r.db.Model(&ticketDatamodel.Ticket{}).Where("id = ?", id)
	if expectedUserTeamID == 0 {
		q = q.Where("assigned_user_team_id IS NULL")
	} else {
		q = q.Where("assigned_user_team_id = ?", expectedUserTeamID)
	}

	updates := map[string]interface{}{
		"assigned_user_team_id": toUserTeamID,
		"updated_at":            time.Now(),
	}
	if toTeamID != 0 {
		updates["assigned_team_id"] = toTeamID
	}

	res := q.Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *TicketRepository) CreateThread(th *ticket.Thread) error {
	row := &ticketDatamodel.Thread{
		TicketID:         th.TicketID,
		AuthorUserTeamID: th.AuthorUserTeamID,
		Body:             th.Body,
	}
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	th.ID = row.ID
	th.CreatedAt = row.CreatedAt
	return nil
}

func (r *TicketRepository) ThreadsByTicket(ticketID int64) ([]*ticket.Thread, error) {
	var rows []*ticketDatamodel.Thread
	err := r.db.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	threads := make([]*ticket.Thread, 0, len(rows))
	for _, row := range rows {
		threads = append(threads, ticket.ThreadFromDataModel(row))
	}
	return threads, nil
}

// TicketSnapshot implements permission.TicketStore. A missing ticket
// is (nil, nil): the resolver cannot tell no-access from no-ticket and
// the service layer disambiguates.
func (r *TicketRepository) TicketSnapshot(_ context.Context, ticketID int64) (*permission.Ticket, error) {
	var row ticketDatamodel.Ticket
	err := r.db.Where("id = ?", ticketID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return ticket.FromDataModel(&row).Snapshot(), nil
}

func toDataModel(t *ticket.Ticket) *ticketDatamodel.Ticket {
	row := &ticketDatamodel.Ticket{
		ID:                t.ID,
		Subject:           t.Subject,
		Description:       t.Description,
		CurrentStatusID:   t.CurrentStatusID,
		CurrentPriorityID: t.CurrentPriorityID,
		CurrentCategoryID: t.CurrentCategoryID,
		CreatedByTeamID:   t.CreatedBy.TeamID,
		ClosedAt:          t.ClosedAt,
	}
	if t.CreatedBy.UserTeamID != 0 {
		v := t.CreatedBy.UserTeamID
		row.CreatedByUserTeam = &v
	}
	if t.AssignedTo != nil {
		if t.AssignedTo.TeamID != 0 {
			v := t.AssignedTo.TeamID
			row.AssignedTeamID = &v
		}
		if t.AssignedTo.UserTeamID != 0 {
			v := t.AssignedTo.UserTeamID
			row.AssignedUserTeam = &v
		}
	}
	return row
}
