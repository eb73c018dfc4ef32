package ticket

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/ticket-management/internal"
	"github.com/frahmantamala/ticket-management/internal/core/events"
	"github.com/frahmantamala/ticket-management/internal/permission"
)

// RepositoryAPI defines the data access methods for tickets. The
// UpdateXIf methods are conditional writes keyed on the expected prior
// value: a false return means the row moved underneath the caller.
type RepositoryAPI interface {
	Create(t *Ticket) error
	GetByID(id int64) (*Ticket, error)
	Exists(id int64) (bool, error)
	UpdateStatusIf(id, fromStatusID, toStatusID int64) (bool, error)
	UpdatePriorityIf(id, fromPriorityID, toPriorityID int64) (bool, error)
	UpdateCategoryIf(id, fromCategoryID, toCategoryID int64) (bool, error)
	UpdateAssigneeIf(id, expectedUserTeamID, toUserTeamID, toTeamID int64) (bool, error)
	CreateThread(th *Thread) error
	ThreadsByTicket(ticketID int64) ([]*Thread, error)
}

// AccessResolver is the slice of the permission engine the service
// consumes. One grant is resolved per request and threaded through
// every authorizer call; it is never recomputed per field.
type AccessResolver interface {
	AccessForUser(ctx context.Context, userID, ticketID int64) (*permission.AccessGrant, error)
	VerifyTicketAccess(ctx context.Context, userID, ticketID int64) (*permission.AccessGrant, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo        RepositoryAPI
	resolver    AccessResolver
	memberships permission.MembershipStore
	bus         EventPublisher
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, resolver AccessResolver, memberships permission.MembershipStore, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		resolver:    resolver,
		memberships: memberships,
		bus:         bus,
		logger:      logger,
	}
}

// verifyAccess resolves the caller's grant, turning an unreadable but
// existing ticket into a permission failure and a missing ticket into
// a 404. The resolver itself cannot tell the two apart.
func (s *Service) verifyAccess(ctx context.Context, userID, ticketID int64) (*permission.AccessGrant, error) {
	grant, err := s.resolver.VerifyTicketAccess(ctx, userID, ticketID)
	if err == nil {
		return grant, nil
	}
	if _, ok := permission.IsPermissionError(err); !ok {
		return nil, err
	}
	exists, existsErr := s.repo.Exists(ticketID)
	if existsErr != nil {
		return nil, existsErr
	}
	if !exists {
		return nil, internal.ErrTicketNotFound
	}
	return nil, err
}

func (s *Service) GetTicket(ctx context.Context, userID, ticketID int64) (*Ticket, error) {
	if _, err := s.verifyAccess(ctx, userID, ticketID); err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		s.logger.Error("failed to load ticket", "error", err, "ticket_id", ticketID)
		return nil, internal.ErrTicketNotFound
	}
	return t, nil
}

func (s *Service) CreateTicket(ctx context.Context, userID int64, dto CreateTicketDTO) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// The creating identity must be one of the caller's own active
	// memberships; the created-by entity is frozen from it.
	memberships, err := s.memberships.ActiveMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	var creator *permission.Membership
	for i, m := range memberships {
		if m.ID == dto.CreatorUserTeamID {
			creator = &memberships[i]
			break
		}
	}
	if creator == nil {
		return nil, internal.NewValidationFieldError("creator_user_team_id",
			"creator must be one of your own memberships", internal.ErrCodeInvalidField)
	}

	t := &Ticket{
		Subject:           dto.Subject,
		Description:       dto.Description,
		CurrentStatusID:   dto.StatusID,
		CurrentPriorityID: dto.PriorityID,
		CurrentCategoryID: dto.CategoryID,
		CreatedBy:         Entity{TeamID: creator.TeamID, UserTeamID: creator.ID},
	}
	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create ticket", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("ticket created", "ticket_id", t.ID, "user_id", userID)
	return t, nil
}

// ChangeField authorizes and commits one field transition. fromID must
// be the exact value the caller observed; the write is conditional on
// it still holding, and a mismatch at commit time surfaces as
// ErrStaleTicket, to be retried with a freshly resolved grant.
func (s *Service) ChangeField(ctx context.Context, userID, ticketID int64, field permission.Field, fromID, toID int64) error {
	grant, err := s.verifyAccess(ctx, userID, ticketID)
	if err != nil {
		return err
	}
	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return internal.ErrTicketNotFound
	}

	if err := permission.VerifyChangePermission(grant, t.Snapshot(), field, fromID, toID); err != nil {
		s.logger.Warn("field change denied",
			"ticket_id", ticketID,
			"user_id", userID,
			"field", string(field),
			"from_id", fromID,
			"to_id", toID)
		return err
	}

	var (
		updated   bool
		updateErr error
	)
	switch field {
	case permission.FieldStatus:
		updated, updateErr = s.repo.UpdateStatusIf(ticketID, fromID, toID)
	case permission.FieldPriority:
		updated, updateErr = s.repo.UpdatePriorityIf(ticketID, fromID, toID)
	case permission.FieldCategory:
		updated, updateErr = s.repo.UpdateCategoryIf(ticketID, fromID, toID)
	default:
		return internal.NewValidationError("unsupported field", internal.ErrCodeInvalidField)
	}
	if updateErr != nil {
		s.logger.Error("field change failed", "error", updateErr, "ticket_id", ticketID)
		return updateErr
	}
	if !updated {
		return internal.ErrStaleTicket
	}

	if err := s.bus.Publish(ctx, events.NewTicketStatusChangedEvent(ticketID, string(field), fromID, toID, userID)); err != nil {
		s.logger.Warn("failed to publish change event", "error", err, "ticket_id", ticketID)
	}

	s.logger.Info("ticket field changed",
		"ticket_id", ticketID,
		"field", string(field),
		"from_id", fromID,
		"to_id", toID,
		"user_id", userID)
	return nil
}

// Assign reassigns a ticket between individuals using the older
// assignment dialect, evaluated over the caller's raw memberships.
func (s *Service) Assign(ctx context.Context, userID, ticketID, fromUserTeamID, toUserTeamID, toTeamID int64) error {
	grant, err := s.verifyAccess(ctx, userID, ticketID)
	if err != nil {
		return err
	}

	if err := permission.VerifyAssignmentChangePermission(grant.Memberships, fromUserTeamID, toUserTeamID); err != nil {
		s.logger.Warn("assignment denied",
			"ticket_id", ticketID,
			"user_id", userID,
			"from_user_team_id", fromUserTeamID,
			"to_user_team_id", toUserTeamID)
		return err
	}

	updated, err := s.repo.UpdateAssigneeIf(ticketID, fromUserTeamID, toUserTeamID, toTeamID)
	if err != nil {
		s.logger.Error("assignment failed", "error", err, "ticket_id", ticketID)
		return err
	}
	if !updated {
		return internal.ErrStaleTicket
	}

	if err := s.bus.Publish(ctx, events.NewTicketAssignedEvent(ticketID, fromUserTeamID, toUserTeamID, userID, "")); err != nil {
		s.logger.Warn("failed to publish assignment event", "error", err, "ticket_id", ticketID)
	}

	s.logger.Info("ticket assigned",
		"ticket_id", ticketID,
		"from_user_team_id", fromUserTeamID,
		"to_user_team_id", toUserTeamID,
		"user_id", userID)
	return nil
}

// Claim self-assigns the ticket to one of the caller's own
// memberships and reports whether that was a plain claim or a
// force-claim over an existing individual assignee.
func (s *Service) Claim(ctx context.Context, userID, ticketID, toUserTeamID int64) (permission.ClaimKind, error) {
	grant, err := s.verifyAccess(ctx, userID, ticketID)
	if err != nil {
		return "", err
	}
	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return "", internal.ErrTicketNotFound
	}
	snap := t.Snapshot()

	if err := permission.VerifyChangePermission(grant, snap, permission.FieldAssigned, 0, toUserTeamID); err != nil {
		s.logger.Warn("claim denied",
			"ticket_id", ticketID,
			"user_id", userID,
			"to_user_team_id", toUserTeamID)
		return "", err
	}
	kind := permission.ClassifyClaim(snap)

	var expected int64
	var toTeamID int64
	if t.AssignedTo != nil {
		expected = t.AssignedTo.UserTeamID
		toTeamID = t.AssignedTo.TeamID
	}
	for _, m := range grant.Memberships {
		if m.ID == toUserTeamID {
			toTeamID = m.TeamID
			break
		}
	}

	updated, err := s.repo.UpdateAssigneeIf(ticketID, expected, toUserTeamID, toTeamID)
	if err != nil {
		s.logger.Error("claim failed", "error", err, "ticket_id", ticketID)
		return "", err
	}
	if !updated {
		return "", internal.ErrStaleTicket
	}

	if err := s.bus.Publish(ctx, events.NewTicketAssignedEvent(ticketID, expected, toUserTeamID, userID, string(kind))); err != nil {
		s.logger.Warn("failed to publish claim event", "error", err, "ticket_id", ticketID)
	}

	s.logger.Info("ticket claimed",
		"ticket_id", ticketID,
		"user_id", userID,
		"to_user_team_id", toUserTeamID,
		"kind", string(kind))
	return kind, nil
}

func (s *Service) CreateThread(ctx context.Context, userID, ticketID int64, dto CreateThreadDTO) (*Thread, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	grant, err := s.verifyAccess(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ticketID)
	if err != nil {
		return nil, internal.ErrTicketNotFound
	}

	if err := permission.VerifyThreadCreatePermission(grant, t.AssigneeEntityID()); err != nil {
		s.logger.Warn("thread creation denied", "ticket_id", ticketID, "user_id", userID)
		return nil, err
	}

	// Threads are authored as one of the caller's own memberships.
	if !grant.OwnsUserTeam(dto.AuthorUserTeamID) {
		return nil, internal.NewValidationFieldError("author_user_team_id",
			"author must be one of your own memberships", internal.ErrCodeInvalidField)
	}

	th := &Thread{
		TicketID:         ticketID,
		AuthorUserTeamID: dto.AuthorUserTeamID,
		Body:             dto.Body,
	}
	if err := s.repo.CreateThread(th); err != nil {
		s.logger.Error("failed to create thread", "error", err, "ticket_id", ticketID)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.NewThreadCreatedEvent(ticketID, th.ID, userID)); err != nil {
		s.logger.Warn("failed to publish thread event", "error", err, "ticket_id", ticketID)
	}

	s.logger.Info("thread created", "ticket_id", ticketID, "thread_id", th.ID, "user_id", userID)
	return th, nil
}

func (s *Service) ListThreads(ctx context.Context, userID, ticketID int64) ([]*Thread, error) {
	if _, err := s.verifyAccess(ctx, userID, ticketID); err != nil {
		return nil, err
	}
	threads, err := s.repo.ThreadsByTicket(ticketID)
	if err != nil {
		s.logger.Error("failed to list threads", "error", err, "ticket_id", ticketID)
		return nil, err
	}
	return threads, nil
}
