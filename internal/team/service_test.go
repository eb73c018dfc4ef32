package team_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/ticket-management/internal"
	teamDatamodel "github.com/frahmantamala/ticket-management/internal/core/datamodel/team"
	"github.com/frahmantamala/ticket-management/internal/team"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTeamService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Team Service Suite")
}

// MockRepository implements team.RepositoryAPI for testing
type MockRepository struct {
	teams       map[int64]*teamDatamodel.Team
	memberships map[int64]*teamDatamodel.UserTeam
	shouldFail  bool
	failError   error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		teams:       make(map[int64]*teamDatamodel.Team),
		memberships: make(map[int64]*teamDatamodel.UserTeam),
	}
}

func (m *MockRepository) GetAllTeams() ([]*teamDatamodel.Team, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*teamDatamodel.Team
	for _, t := range m.teams {
		result = append(result, t)
	}
	return result, nil
}

func (m *MockRepository) GetTeamByID(id int64) (*teamDatamodel.Team, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	t, ok := m.teams[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return t, nil
}

func (m *MockRepository) GetTeamsByID(ids []int64) ([]*teamDatamodel.Team, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*teamDatamodel.Team
	for _, id := range ids {
		if t, ok := m.teams[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockRepository) GetActiveMembershipsForUser(userID int64) ([]*teamDatamodel.UserTeam, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*teamDatamodel.UserTeam
	for _, ut := range m.memberships {
		if ut.UserID == userID && ut.IsActive {
			result = append(result, ut)
		}
	}
	return result, nil
}

func (m *MockRepository) GetMembershipsForTeam(teamID int64) ([]*teamDatamodel.UserTeam, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*teamDatamodel.UserTeam
	for _, ut := range m.memberships {
		if ut.TeamID == teamID {
			result = append(result, ut)
		}
	}
	return result, nil
}

func (m *MockRepository) UpdateTeamPermissions(teamID int64, permissions []string) error {
	if m.shouldFail {
		return m.failError
	}
	t, ok := m.teams[teamID]
	if !ok {
		return errors.New("record not found")
	}
	t.Permissions = permissions
	return nil
}

func (m *MockRepository) UpdateMembershipPermissions(userTeamID int64, permissions []string) error {
	if m.shouldFail {
		return m.failError
	}
	ut, ok := m.memberships[userTeamID]
	if !ok {
		return errors.New("record not found")
	}
	ut.Permissions = permissions
	return nil
}

var _ = Describe("Team Service", func() {
	var (
		repo    *MockRepository
		service *team.Service
		logger  *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = NewMockRepository()
		service = team.NewService(repo, logger)

		repo.teams[1] = &teamDatamodel.Team{
			ID:          1,
			Name:        "support",
			IsActive:    true,
			Permissions: []string{"ticket:read:assigned:team:any"},
		}
		repo.memberships[10] = &teamDatamodel.UserTeam{
			ID:          10,
			UserID:      7,
			TeamID:      1,
			IsActive:    true,
			Permissions: []string{"ticket:action:claim:team"},
		}
		repo.memberships[11] = &teamDatamodel.UserTeam{
			ID:       11,
			UserID:   7,
			TeamID:   2,
			IsActive: false,
		}
	})

	Describe("GetTeamByID", func() {
		It("returns the team with its permission strings", func() {
			t, err := service.GetTeamByID(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Name).To(Equal("support"))
			Expect(t.Permissions).To(ContainElement("ticket:read:assigned:team:any"))
		})

		It("maps a missing team to not found", func() {
			_, err := service.GetTeamByID(404)

			Expect(errors.Is(err, internal.ErrTeamNotFound)).To(BeTrue())
		})
	})

	Describe("permission management", func() {
		It("grants a new permission string once", func() {
			Expect(service.GrantTeamPermission(1, "ticket:action:thread:create:team")).To(Succeed())
			Expect(service.GrantTeamPermission(1, "ticket:action:thread:create:team")).To(Succeed())

			Expect(repo.teams[1].Permissions).To(HaveLen(2))
			Expect(repo.teams[1].Permissions).To(ContainElement("ticket:action:thread:create:team"))
		})

		It("revokes a held permission string", func() {
			Expect(service.RevokeTeamPermission(1, "ticket:read:assigned:team:any")).To(Succeed())

			Expect(repo.teams[1].Permissions).To(BeEmpty())
		})

		It("treats revoking an absent permission as a no-op", func() {
			Expect(service.RevokeTeamPermission(1, "ticket:action:claim:any")).To(Succeed())

			Expect(repo.teams[1].Permissions).To(HaveLen(1))
		})
	})

	Describe("MembershipStore adaptation", func() {
		It("returns only active memberships with their permission sets", func() {
			memberships, err := service.ActiveMemberships(context.Background(), 7)

			Expect(err).NotTo(HaveOccurred())
			Expect(memberships).To(HaveLen(1))
			Expect(memberships[0].ID).To(Equal(int64(10)))
			Expect(memberships[0].TeamID).To(Equal(int64(1)))
			Expect(memberships[0].Permissions).To(ContainElement("ticket:action:claim:team"))
		})

		It("resolves teams by id into permission snapshots", func() {
			teams, err := service.TeamsByID(context.Background(), []int64{1, 404})

			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(HaveKey(int64(1)))
			Expect(teams).NotTo(HaveKey(int64(404)))
			Expect(teams[1].Permissions).To(ContainElement("ticket:read:assigned:team:any"))
		})
	})
})
