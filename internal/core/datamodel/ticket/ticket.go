package ticket

import "time"

type Ticket struct {
	ID                int64      `gorm:"primaryKey"`
	Subject           string     `gorm:"column:subject;not null"`
	Description       string     `gorm:"column:description"`
	CurrentStatusID   int64      `gorm:"column:current_status_id;not null"`
	CurrentPriorityID int64      `gorm:"column:current_priority_id;not null"`
	CurrentCategoryID int64      `gorm:"column:current_category_id;not null"`
	AssignedTeamID    *int64     `gorm:"column:assigned_team_id"`
	AssignedUserTeam  *int64     `gorm:"column:assigned_user_team_id"`
	CreatedByTeamID   int64      `gorm:"column:created_by_team_id;not null"`
	CreatedByUserTeam *int64     `gorm:"column:created_by_user_team_id"`
	ClosedAt          *time.Time `gorm:"column:closed_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type Thread struct {
	ID               int64     `gorm:"primaryKey"`
	TicketID         int64     `gorm:"column:ticket_id;not null;index"`
	AuthorUserTeamID int64     `gorm:"column:author_user_team_id;not null"`
	Body             string    `gorm:"column:body;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Thread) TableName() string {
	return "ticket_threads"
}
