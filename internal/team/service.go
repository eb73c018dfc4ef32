package team

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/ticket-management/internal"
	teamDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/team"
	"github.com/frahmantamala/ticket-management/internal/permission"
)

type RepositoryAPI interface {
	GetAllTeams() ([]*teamDatamodel.Team, error)
	GetTeamByID(id int64) (*teamDatamodel.Team, error)
	GetTeamsByID(ids []int64) ([]*teamDatamodel.Team, error)
	GetActiveMembershipsForUser(userID int64) ([]*teamDatamodel.UserTeam, error)
	GetMembershipsForTeam(teamID int64) ([]*teamDatamodel.UserTeam, error)
	UpdateTeamPermissions(teamID int64, permissions []string) error
	UpdateMembershipPermissions(userTeamID int64, permissions []string) error
}

// Service exposes teams and memberships, and adapts the repository to
// the permission engine's MembershipStore.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllTeams() ([]*Team, error) {
	rows, err := s.repo.GetAllTeams()
	if err != nil {
		s.logger.Error("failed to get teams", "error", err)
		return nil, err
	}

	teams := make([]*Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, TeamFromDataModel(row))
	}
	return teams, nil
}

func (s *Service) GetTeamByID(id int64) (*Team, error) {
	row, err := s.repo.GetTeamByID(id)
	if err != nil {
		s.logger.Error("failed to get team", "error", err, "team_id", id)
		return nil, internal.ErrTeamNotFound
	}
	return TeamFromDataModel(row), nil
}

func (s *Service) GetTeamMembers(teamID int64) ([]*UserTeam, error) {
	rows, err := s.repo.GetMembershipsForTeam(teamID)
	if err != nil {
		s.logger.Error("failed to get team members", "error", err, "team_id", teamID)
		return nil, err
	}

	members := make([]*UserTeam, 0, len(rows))
	for _, row := range rows {
		members = append(members, UserTeamFromDataModel(row))
	}
	return members, nil
}

// GrantTeamPermission appends a permission string to the team's stored
// collection. The string is stored verbatim; the engine treats
// anything it cannot parse as non-matching.
func (s *Service) GrantTeamPermission(teamID int64, perm string) error {
	row, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return internal.ErrTeamNotFound
	}
	for _, p := range row.Permissions {
		if p == perm {
			return nil
		}
	}
	perms := append(append([]string(nil), row.Permissions...), perm)
	if err := s.repo.UpdateTeamPermissions(teamID, perms); err != nil {
		s.logger.Error("failed to grant team permission", "error", err, "team_id", teamID)
		return err
	}

	s.logger.Info("team permission granted", "team_id", teamID, "permission", perm)
	return nil
}

func (s *Service) RevokeTeamPermission(teamID int64, perm string) error {
	row, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return internal.ErrTeamNotFound
	}
	perms := make([]string, 0, len(row.Permissions))
	for _, p := range row.Permissions {
		if p != perm {
			perms = append(perms, p)
		}
	}
	if len(perms) == len(row.Permissions) {
		return nil
	}
	if err := s.repo.UpdateTeamPermissions(teamID, perms); err != nil {
		s.logger.Error("failed to revoke team permission", "error", err, "team_id", teamID)
		return err
	}

	s.logger.Info("team permission revoked", "team_id", teamID, "permission", perm)
	return nil
}

// ActiveMemberships implements permission.MembershipStore.
func (s *Service) ActiveMemberships(_ context.Context, userID int64) ([]permission.Membership, error) {
	rows, err := s.repo.GetActiveMembershipsForUser(userID)
	if err != nil {
		return nil, err
	}
	memberships := make([]permission.Membership, 0, len(rows))
	for _, row := range rows {
		memberships = append(memberships, permission.Membership{
			ID:          row.ID,
			TeamID:      row.TeamID,
			Permissions: row.Permissions,
		})
	}
	return memberships, nil
}

// TeamsByID implements permission.MembershipStore.
func (s *Service) TeamsByID(_ context.Context, teamIDs []int64) (map[int64]permission.Team, error) {
	rows, err := s.repo.GetTeamsByID(teamIDs)
	if err != nil {
		return nil, err
	}
	teams := make(map[int64]permission.Team, len(rows))
	for _, row := range rows {
		teams[row.ID] = permission.Team{
			ID:          row.ID,
			Permissions: row.Permissions,
		}
	}
	return teams, nil
}
