package permission

import "strings"

// VerifyAssignmentChangePermission evaluates the older
// assignment-specific dialect directly against the caller's raw
// membership list, without going through AccessVia:
//
//	ticket:action:change:assigned:any
//	ticket:action:change:assigned:from:<own|any>:to:<own|any>:assigned:<own|any>
//
// "own" resolves against the caller's own user-team id per membership
// being iterated, not the ticket's assignee. The trailing
// "assigned:<own|any>" pair constrains the currently assigned
// user-team (the from side) a second time. This dialect and the claim
// path of VerifyChangePermission overlap but are deliberately kept
// independent; see the consistency tests.
func VerifyAssignmentChangePermission(memberships []Membership, fromUserTeamID, toUserTeamID int64) error {
	for _, m := range memberships {
		for _, raw := range m.Permissions {
			if matchLegacyAssignment(raw, m.ID, fromUserTeamID, toUserTeamID) {
				return nil
			}
		}
	}
	return newPermissionError("ticket:action:change:assigned", "ticket:assignment", map[string]any{
		"fromUserTeamId": fromUserTeamID,
		"toUserTeamId":   toUserTeamID,
	})
}

func matchLegacyAssignment(raw string, ownUserTeamID, fromUserTeamID, toUserTeamID int64) bool {
	const prefix = "ticket:action:change:assigned:"
	if !strings.HasPrefix(raw, prefix) {
		return false
	}
	rest := strings.Split(raw[len(prefix):], ":")
	if len(rest) == 1 && rest[0] == "any" {
		return true
	}
	if len(rest) != 6 || rest[0] != "from" || rest[2] != "to" || rest[4] != "assigned" {
		return false
	}
	return matchOwnSpec(rest[1], ownUserTeamID, fromUserTeamID) &&
		matchOwnSpec(rest[3], ownUserTeamID, toUserTeamID) &&
		matchOwnSpec(rest[5], ownUserTeamID, fromUserTeamID)
}

func matchOwnSpec(spec string, ownUserTeamID, id int64) bool {
	switch spec {
	case "any":
		return true
	case "own":
		return id == ownUserTeamID
	}
	return false
}
