package user

import (
	"context"
	"fmt"

	"github.com/frahmantamala/ticket-management/internal/permission"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
}

type Service struct {
	repo        Repository
	memberships permission.MembershipStore
}

func NewService(repo Repository, memberships permission.MembershipStore) *Service {
	return &Service{
		repo:        repo,
		memberships: memberships,
	}
}

// GetProfile returns the user together with their active team seats.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	seats, err := s.memberships.ActiveMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user memberships: %w", err)
	}

	profile := &ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Memberships: make([]MembershipResponse, 0, len(seats)),
	}
	for _, seat := range seats {
		profile.Memberships = append(profile.Memberships, MembershipResponse{
			UserTeamID:  seat.ID,
			TeamID:      seat.TeamID,
			Permissions: seat.Permissions,
		})
	}

	return profile, nil
}
