package permission

// ClaimKind is the presentation label of an already-authorized claim.
// It has no authorization effect; the UI uses it to pick a
// confirmation prompt.
type ClaimKind string

const (
	// ClaimPlain is self-assignment of a ticket that no individual
	// currently holds (assigned to a team only, or unassigned).
	ClaimPlain ClaimKind = "claim"
	// ClaimForce overrides an existing individual assignee.
	ClaimForce ClaimKind = "force-claim"
)

// ClassifyClaim derives the label from the ticket snapshot.
func ClassifyClaim(ticket *Ticket) ClaimKind {
	if ticket.AssignedTo != nil && ticket.AssignedTo.UserTeamID != 0 {
		return ClaimForce
	}
	return ClaimPlain
}
