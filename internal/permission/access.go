package permission

import (
	"context"
	"log/slog"
	"strings"
)

// Entity is a polymorphic assignment target: a team (unclaimed by any
// individual) or a specific user-team membership. A zero id means the
// side is absent.
type Entity struct {
	TeamID     int64
	UserTeamID int64
}

// Ticket is the frozen snapshot one authorization decision runs
// against. The caller is responsible for re-reading the row
// transactionally before committing any change.
type Ticket struct {
	ID                int64
	CurrentStatusID   int64
	CurrentPriorityID int64
	CurrentCategoryID int64
	AssignedTo        *Entity
	CreatedBy         Entity
}

// Membership is one active user-team row with its own permission set,
// distinct from the team's.
type Membership struct {
	ID          int64
	TeamID      int64
	Permissions []string
}

// Team carries the permissions that apply to every active member.
type Team struct {
	ID          int64
	Permissions []string
}

// Source tells whether a permission string came from the membership
// itself or from its team.
type Source string

const (
	SourceUserTeam Source = "userTeam"
	SourceTeam     Source = "team"
)

// AccessVia is a witnessed reason the caller may read the ticket.
// Via entries are the only relationship facts later authorizers may
// consult: a scoped change permission can only be satisfied through a
// relationship that already granted read access.
type AccessVia struct {
	UserTeamID int64
	TeamID     int64
	Source     Source
	Permission string
	Relation   RelationKind
}

// AccessGrant is the resolved result of one access check. It is
// computed once per request and threaded immutably into every
// authorizer call; nothing here is cached across requests.
type AccessGrant struct {
	UserID   int64
	TicketID int64
	Via      []AccessVia

	// ActionPermissions is the union of every "ticket:action:*" string
	// the caller holds across all memberships, collected whether or not
	// it matches anything for this ticket.
	ActionPermissions []string

	// Memberships is the caller's active membership snapshot, frozen at
	// resolve time. Claim authorization needs it to pin self-assignment
	// to the caller's own user-team ids.
	Memberships []Membership
}

// OwnsUserTeam reports whether id is one of the caller's own
// membership ids.
func (g *AccessGrant) OwnsUserTeam(id int64) bool {
	for _, m := range g.Memberships {
		if m.ID == id {
			return true
		}
	}
	return false
}

// MembershipStore supplies the caller's active memberships and the
// teams they reference.
type MembershipStore interface {
	ActiveMemberships(ctx context.Context, userID int64) ([]Membership, error)
	TeamsByID(ctx context.Context, teamIDs []int64) (map[int64]Team, error)
}

// TicketStore supplies the ticket snapshot. A missing ticket is
// (nil, nil), not an error.
type TicketStore interface {
	TicketSnapshot(ctx context.Context, ticketID int64) (*Ticket, error)
}

// Resolver computes the relationships through which a user may read a
// ticket. It performs the only I/O in this package; every decision
// function downstream is a pure computation over its arguments.
type Resolver struct {
	memberships MembershipStore
	tickets     TicketStore
	logger      *slog.Logger
}

func NewResolver(memberships MembershipStore, tickets TicketStore, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		memberships: memberships,
		tickets:     tickets,
		logger:      logger,
	}
}

type readCandidate struct {
	rule       ReadRule
	membership Membership
	source     Source
}

// AccessForUser resolves the caller's access to a ticket. A nil grant
// means either no access or no such ticket; the caller must
// disambiguate before choosing 403 vs 404.
func (r *Resolver) AccessForUser(ctx context.Context, userID, ticketID int64) (*AccessGrant, error) {
	memberships, err := r.memberships.ActiveMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	teamIDs := make([]int64, 0, len(memberships))
	seen := make(map[int64]bool, len(memberships))
	for _, m := range memberships {
		if !seen[m.TeamID] {
			seen[m.TeamID] = true
			teamIDs = append(teamIDs, m.TeamID)
		}
	}
	teams, err := r.memberships.TeamsByID(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	var (
		actions    []string
		candidates []readCandidate
	)
	for _, m := range memberships {
		collect := func(perms []string, source Source) {
			for _, p := range perms {
				if strings.HasPrefix(p, "ticket:action:") {
					actions = append(actions, p)
					continue
				}
				rule, ok := Parse(p)
				if !ok {
					continue
				}
				if read, ok := rule.(ReadRule); ok {
					candidates = append(candidates, readCandidate{rule: read, membership: m, source: source})
				}
			}
		}
		collect(m.Permissions, SourceUserTeam)
		collect(teams[m.TeamID].Permissions, SourceTeam)
	}

	// Without any read rule there is no point loading the ticket.
	if len(candidates) == 0 {
		return nil, nil
	}

	ticket, err := r.tickets.TicketSnapshot(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}

	var via []AccessVia
	for _, c := range candidates {
		target := &ticket.CreatedBy
		if c.rule.Relation == RelationAssignment {
			target = ticket.AssignedTo
		}
		if !matchReadRule(c.rule, target, c.membership) {
			continue
		}
		via = append(via, AccessVia{
			UserTeamID: c.membership.ID,
			TeamID:     c.membership.TeamID,
			Source:     c.source,
			Permission: c.rule.Raw(),
			Relation:   c.rule.Relation,
		})
	}
	if len(via) == 0 {
		return nil, nil
	}

	r.logger.Debug("ticket access resolved",
		"user_id", userID,
		"ticket_id", ticketID,
		"via_count", len(via),
		"action_permissions", len(actions))

	return &AccessGrant{
		UserID:            userID,
		TicketID:          ticketID,
		Via:               via,
		ActionPermissions: actions,
		Memberships:       memberships,
	}, nil
}

// VerifyTicketAccess resolves access and converts a nil grant into a
// PermissionError.
func (r *Resolver) VerifyTicketAccess(ctx context.Context, userID, ticketID int64) (*AccessGrant, error) {
	grant, err := r.AccessForUser(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, newPermissionError("ticket:read", "ticket", map[string]any{
			"ticketId": ticketID,
			"userId":   userID,
		})
	}
	return grant, nil
}

func matchReadRule(rule ReadRule, target *Entity, m Membership) bool {
	if target == nil {
		return false
	}
	switch rule.Scope {
	case ReadAny:
		return true
	case ReadTeamAny:
		return target.TeamID == m.TeamID
	case ReadTeamUnclaimed:
		return target.TeamID == m.TeamID && target.UserTeamID == 0
	case ReadSelf:
		return target.UserTeamID == m.ID
	}
	return false
}
