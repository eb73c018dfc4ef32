package team

import (
	"time"

	teamDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/team"
)

type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserTeam struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TeamID      int64     `json:"team_id"`
	IsActive    bool      `json:"is_active"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Team) HasPermission(permission string) bool {
	for _, p := range t.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (ut *UserTeam) HasPermission(permission string) bool {
	for _, p := range ut.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func TeamFromDataModel(t *teamDatamodel.Team) *Team {
	return &Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		Permissions: t.Permissions,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TeamToDataModel(t *Team) *teamDatamodel.Team {
	return &teamDatamodel.Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		Permissions: t.Permissions,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func UserTeamFromDataModel(ut *teamDatamodel.UserTeam) *UserTeam {
	return &UserTeam{
		ID:          ut.ID,
		UserID:      ut.UserID,
		TeamID:      ut.TeamID,
		IsActive:    ut.IsActive,
		Permissions: ut.Permissions,
		CreatedAt:   ut.CreatedAt,
		UpdatedAt:   ut.UpdatedAt,
	}
}
