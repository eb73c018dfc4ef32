package permission

import "strings"

// VerifyThreadCreatePermission decides whether the grant authorizes
// creating a thread (comment) on the ticket. ticketEntityID is the id
// of the ticket's assignee entity (team or user-team id); scoped
// thread rules bind against it through the vias recorded for read
// access, matched on the suffix of the via's own permission string.
func VerifyThreadCreatePermission(grant *AccessGrant, ticketEntityID int64) error {
	if authorizeThreadCreate(grant, ticketEntityID) {
		return nil
	}
	return newPermissionError("ticket:action:thread:create", "ticket:thread", map[string]any{
		"ticketId":       grant.TicketID,
		"ticketEntityId": ticketEntityID,
	})
}

// HasThreadCreatePermission is the non-throwing form of
// VerifyThreadCreatePermission.
func HasThreadCreatePermission(grant *AccessGrant, ticketEntityID int64) bool {
	return authorizeThreadCreate(grant, ticketEntityID)
}

func authorizeThreadCreate(grant *AccessGrant, ticketEntityID int64) bool {
	for _, raw := range grant.ActionPermissions {
		rule, ok := Parse(raw)
		if !ok {
			continue
		}
		tr, ok := rule.(ThreadRule)
		if !ok {
			continue
		}
		if tr.Scope == ScopeAny {
			return true
		}
		suffix := threadViaSuffix(tr)
		for _, v := range grant.Via {
			if !strings.HasSuffix(v.Permission, suffix) {
				continue
			}
			switch v.Relation {
			case RelationAssignment:
				if v.TeamID == ticketEntityID || v.UserTeamID == ticketEntityID {
					return true
				}
			case RelationCreation:
				// A ticket's creator may always comment, subject to the
				// same scope suffix convention.
				if !tr.Unclaimed {
					return true
				}
			}
		}
	}
	return false
}

func threadViaSuffix(tr ThreadRule) string {
	switch {
	case tr.Unclaimed:
		return ":team:unclaimed"
	case tr.Scope == ScopeTeam:
		return ":team:any"
	default:
		return ":self"
	}
}
