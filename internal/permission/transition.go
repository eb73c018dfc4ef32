package permission

import (
	"fmt"
	"strings"
)

// VerifyChangePermission decides whether the grant authorizes the
// field transition (fromID, toID) on the ticket. Numeric token
// mismatch rejects a rule before any scope evaluation; an
// unconditional rule authorizes immediately; a conditional rule only
// authorizes through a via already proven for read access.
func VerifyChangePermission(grant *AccessGrant, ticket *Ticket, field Field, fromID, toID int64) error {
	if authorizeChange(grant, ticket, field, fromID, toID) {
		return nil
	}
	return newPermissionError(
		fmt.Sprintf("ticket:action:change:%s:from:%d:to:%d", field, fromID, toID),
		"ticket",
		map[string]any{
			"ticketId": ticket.ID,
			"field":    string(field),
			"fromId":   fromID,
			"toId":     toID,
			"reason":   "no held permission matches this transition",
		},
	)
}

// HasChangePermission is the non-throwing form of
// VerifyChangePermission.
func HasChangePermission(grant *AccessGrant, ticket *Ticket, field Field, fromID, toID int64) bool {
	return authorizeChange(grant, ticket, field, fromID, toID)
}

func authorizeChange(grant *AccessGrant, ticket *Ticket, field Field, fromID, toID int64) bool {
	for _, raw := range grant.ActionPermissions {
		rule, ok := Parse(raw)
		if !ok {
			continue
		}
		switch r := rule.(type) {
		case ChangeRule:
			if r.Field != field {
				continue
			}
			if !r.From.Matches(fromID) || !r.To.Matches(toID) {
				continue
			}
			if !r.Conditional {
				return true
			}
			if matchScopedVia(grant.Via, ticket, r.Context, r.Scope) {
				return true
			}
		case ClaimRule:
			if field != FieldAssigned {
				continue
			}
			if authorizeClaim(grant, ticket, r, fromID, toID) {
				return true
			}
		}
	}
	return false
}

// matchScopedVia checks a conditional rule's context/scope pair
// against the vias recorded for read access.
func matchScopedVia(vias []AccessVia, ticket *Ticket, context RuleContext, scope Scope) bool {
	target := &ticket.CreatedBy
	if context == ContextAssigned {
		if ticket.AssignedTo == nil {
			return false
		}
		target = ticket.AssignedTo
	}
	for _, v := range vias {
		switch scope {
		case ScopeAny:
			return true
		case ScopeTeam:
			if v.TeamID == target.TeamID {
				return true
			}
		case ScopeSelf:
			if v.UserTeamID == target.UserTeamID {
				return true
			}
		}
	}
	return false
}

// authorizeClaim interprets a claim rule as an "assigned" transition
// from the unassigned sentinel to one of the caller's own user-team
// ids. The grammar cannot assign to another user.
func authorizeClaim(grant *AccessGrant, ticket *Ticket, rule ClaimRule, fromID, toID int64) bool {
	if fromID != 0 {
		return false
	}
	if !grant.OwnsUserTeam(toID) {
		return false
	}
	// Overriding an existing individual assignee needs the force form.
	if ticket.AssignedTo != nil && ticket.AssignedTo.UserTeamID != 0 &&
		ticket.AssignedTo.UserTeamID != toID && !rule.Force {
		return false
	}
	// A wholly unassigned ticket leaves nothing for the scope to bind
	// against; the self-assignment constraint above already applies.
	if ticket.AssignedTo == nil {
		return true
	}
	if rule.Unclaimed {
		for _, v := range grant.Via {
			if strings.HasSuffix(v.Permission, ":team:unclaimed") {
				return true
			}
		}
		return false
	}
	for _, v := range grant.Via {
		if v.Relation != RelationAssignment {
			continue
		}
		switch rule.Scope {
		case ScopeAny:
			return true
		case ScopeTeam:
			if v.TeamID == ticket.AssignedTo.TeamID {
				return true
			}
		case ScopeSelf:
			if v.UserTeamID == toID {
				return true
			}
		}
	}
	return false
}
