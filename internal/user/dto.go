package user

// MembershipResponse is one active team seat of the current user.
type MembershipResponse struct {
	UserTeamID  int64    `json:"user_team_id"`
	TeamID      int64    `json:"team_id"`
	Permissions []string `json:"permissions,omitempty"`
}

// ProfileResponse is the shape returned by GET /users/me.
type ProfileResponse struct {
	ID          int64                `json:"id"`
	Email       string               `json:"email"`
	Name        string               `json:"name"`
	Memberships []MembershipResponse `json:"memberships"`
}
