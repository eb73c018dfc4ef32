package postgres

import (
	teamDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/team"
	"github.com/frahmantamala/ticket-management/internal/team"
	"gorm.io/gorm"
)

// TeamRepository implements the team.RepositoryAPI interface using GORM
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetAllTeams() ([]*teamDatamodel.Team, error) {
	var teams []*teamDatamodel.Team
	err := r.db.Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetTeamByID(id int64) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) GetTeamsByID(ids []int64) ([]*teamDatamodel.Team, error) {
	var teams []*teamDatamodel.Team
	err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetActiveMembershipsForUser(userID int64) ([]*teamDatamodel.UserTeam, error) {
	var memberships []*teamDatamodel.UserTeam
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&memberships).Error
	return memberships, err
}

func (r *TeamRepository) GetMembershipsForTeam(teamID int64) ([]*teamDatamodel.UserTeam, error) {
	var memberships []*teamDatamodel.UserTeam
	err := r.db.Where("team_id = ?", teamID).Find(&memberships).Error
	return memberships, err
}

func (r *TeamRepository) UpdateTeamPermissions(teamID int64, permissions []string) error {
	return r.db.Model(&teamDatamodel.Team{}).
		Where("id = ?", teamID).
		Update("permissions", permissions).Error
}

func (r *TeamRepository) UpdateMembershipPermissions(userTeamID int64, permissions []string) error {
	return r.db.Model(&teamDatamodel.UserTeam{}).
		Where("id = ?", userTeamID).
		Update("permissions", permissions).Error
}
