package team

type TeamResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions,omitempty"`
}

type TeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

type MemberResponse struct {
	UserTeamID  int64    `json:"user_team_id"`
	UserID      int64    `json:"user_id"`
	TeamID      int64    `json:"team_id"`
	Permissions []string `json:"permissions,omitempty"`
}

type MembersResponse struct {
	Members []MemberResponse `json:"members"`
}

type GrantPermissionDTO struct {
	Permission string `json:"permission"`
}

func (t *Team) ToResponse() TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Permissions: t.Permissions,
	}
}

func (ut *UserTeam) ToResponse() MemberResponse {
	return MemberResponse{
		UserTeamID:  ut.ID,
		UserID:      ut.UserID,
		TeamID:      ut.TeamID,
		Permissions: ut.Permissions,
	}
}
