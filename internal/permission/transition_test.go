package permission_test

import (
	"math/rand"

	"github.com/frahmantamala/ticket-management/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VerifyChangePermission", func() {
	const (
		callerUserTeam = int64(7)
		callerTeam     = int64(5)
	)

	newGrant := func(actions []string, via []permission.AccessVia) *permission.AccessGrant {
		return &permission.AccessGrant{
			UserID:            42,
			TicketID:          100,
			Via:               via,
			ActionPermissions: actions,
			Memberships: []permission.Membership{
				{ID: callerUserTeam, TeamID: callerTeam},
			},
		}
	}

	selfVia := func() []permission.AccessVia {
		return []permission.AccessVia{{
			UserTeamID: callerUserTeam,
			TeamID:     callerTeam,
			Source:     permission.SourceUserTeam,
			Permission: "ticket:read:assigned:self",
			Relation:   permission.RelationAssignment,
		}}
	}

	Describe("unconditional rules", func() {
		It("authorizes a matching transition without any via", func() {
			grant := newGrant([]string{"ticket:action:change:status:from:1:to:2"}, nil)
			ticket := &permission.Ticket{ID: 100, CurrentStatusID: 1}

			Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 1, 2)).To(Succeed())
		})

		It("rejects a numeric mismatch even when a scope would match", func() {
			grant := newGrant(
				[]string{"ticket:action:change:status:from:1:to:2:assigned:self"},
				selfVia(),
			)
			ticket := &permission.Ticket{
				ID:              100,
				CurrentStatusID: 1,
				AssignedTo:      &permission.Entity{TeamID: callerTeam, UserTeamID: callerUserTeam},
			}

			Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 1, 3)).NotTo(Succeed())
			Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 2, 2)).NotTo(Succeed())
		})

		It("never crosses fields", func() {
			grant := newGrant([]string{"ticket:action:change:status:from:any:to:any"}, nil)
			ticket := &permission.Ticket{ID: 100}

			Expect(permission.HasChangePermission(grant, ticket, permission.FieldPriority, 1, 2)).To(BeFalse())
		})
	})

	Describe("conditional rules", func() {
		It("authorizes status 1 to 2 when assigned to the caller, denies 1 to 3", func() {
			grant := newGrant(
				[]string{"ticket:action:change:status:from:1:to:2:assigned:self"},
				selfVia(),
			)
			ticket := &permission.Ticket{
				ID:              100,
				CurrentStatusID: 1,
				AssignedTo:      &permission.Entity{TeamID: callerTeam, UserTeamID: callerUserTeam},
			}

			Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 1, 2)).To(Succeed())

			err := permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 1, 3)
			Expect(err).To(HaveOccurred())
			perr, ok := permission.IsPermissionError(err)
			Expect(ok).To(BeTrue())
			Expect(perr.Required).To(Equal("ticket:action:change:status:from:1:to:3"))
			Expect(perr.Context).To(HaveKeyWithValue("field", "status"))
		})

		It("denies a self-scoped rule when assigned to someone else", func() {
			grant := newGrant(
				[]string{"ticket:action:change:status:from:1:to:2:assigned:self"},
				selfVia(),
			)
			ticket := &permission.Ticket{
				ID:              100,
				CurrentStatusID: 1,
				AssignedTo:      &permission.Entity{TeamID: callerTeam, UserTeamID: 8},
			}

			Expect(permission.HasChangePermission(grant, ticket, permission.FieldStatus, 1, 2)).To(BeFalse())
		})

		It("denies an assigned-context rule on an unassigned ticket", func() {
			grant := newGrant(
				[]string{"ticket:action:change:status:from:any:to:any:assigned:any"},
				selfVia(),
			)
			ticket := &permission.Ticket{ID: 100, CurrentStatusID: 1}

			Expect(permission.HasChangePermission(grant, ticket, permission.FieldStatus, 1, 2)).To(BeFalse())
		})

		It("evaluates createdby context against the creator", func() {
			grant := newGrant(
				[]string{"ticket:action:change:priority:from:any:to:any:createdby:team"},
				[]permission.AccessVia{{
					UserTeamID: callerUserTeam,
					TeamID:     callerTeam,
					Source:     permission.SourceTeam,
					Permission: "ticket:read:createdby:team:any",
					Relation:   permission.RelationCreation,
				}},
			)
			ticket := &permission.Ticket{
				ID:        100,
				CreatedBy: permission.Entity{TeamID: callerTeam, UserTeamID: 9},
			}

			Expect(permission.HasChangePermission(grant, ticket, permission.FieldPriority, 2, 1)).To(BeTrue())

			ticket.CreatedBy.TeamID = 6
			Expect(permission.HasChangePermission(grant, ticket, permission.FieldPriority, 2, 1)).To(BeFalse())
		})
	})

	Describe("claim rules", func() {
		It("authorizes a plain claim of a wholly unassigned ticket", func() {
			grant := newGrant([]string{"ticket:action:claim:team:unclaimed"}, nil)
			ticket := &permission.Ticket{ID: 100}

			Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldAssigned, 0, callerUserTeam)).To(Succeed())
			Expect(permission.ClassifyClaim(ticket)).To(Equal(permission.ClaimPlain))
		})

		It("authorizes an unclaimed-scope claim of a team-held ticket", func() {
			grant := newGrant(
				[]string{"ticket:action:claim:team:unclaimed"},
				[]permission.AccessVia{{
					UserTeamID: callerUserTeam,
					TeamID:     callerTeam,
					Source:     permission.SourceUserTeam,
					Permission: "ticket:read:assigned:team:unclaimed",
					Relation:   permission.RelationAssignment,
				}},
			)
			ticket := &permission.Ticket{
				ID:         100,
				AssignedTo: &permission.Entity{TeamID: callerTeam},
			}

			Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldAssigned, 0, callerUserTeam)).To(Succeed())
			Expect(permission.ClassifyClaim(ticket)).To(Equal(permission.ClaimPlain))
		})

		It("requires the force form to take over a claimed ticket", func() {
			via := []permission.AccessVia{{
				UserTeamID: callerUserTeam,
				TeamID:     callerTeam,
				Source:     permission.SourceUserTeam,
				Permission: "ticket:read:assigned:team:any",
				Relation:   permission.RelationAssignment,
			}}
			ticket := &permission.Ticket{
				ID:         100,
				AssignedTo: &permission.Entity{TeamID: callerTeam, UserTeamID: 9},
			}

			plain := newGrant([]string{"ticket:action:claim:team"}, via)
			Expect(permission.HasChangePermission(plain, ticket, permission.FieldAssigned, 0, callerUserTeam)).To(BeFalse())

			force := newGrant([]string{"ticket:action:claim:team:force"}, via)
			Expect(permission.VerifyChangePermission(force, ticket, permission.FieldAssigned, 0, callerUserTeam)).To(Succeed())
			Expect(permission.ClassifyClaim(ticket)).To(Equal(permission.ClaimForce))
		})

		It("never authorizes assignment to another user's membership", func() {
			grant := newGrant([]string{"ticket:action:claim:any"}, selfVia())
			ticket := &permission.Ticket{
				ID:         100,
				AssignedTo: &permission.Entity{TeamID: callerTeam},
			}

			Expect(permission.HasChangePermission(grant, ticket, permission.FieldAssigned, 0, 999)).To(BeFalse())
		})

		It("only applies to transitions from the unassigned sentinel", func() {
			grant := newGrant([]string{"ticket:action:claim:any"}, selfVia())
			ticket := &permission.Ticket{
				ID:         100,
				AssignedTo: &permission.Entity{TeamID: callerTeam, UserTeamID: 8},
			}

			Expect(permission.HasChangePermission(grant, ticket, permission.FieldAssigned, 8, callerUserTeam)).To(BeFalse())
		})
	})

	Describe("decision stability", func() {
		It("is independent of permission order", func() {
			actions := []string{
				"ticket:action:change:status:from:3:to:4",
				"ticket:action:change:status:from:1:to:2:assigned:self",
				"ticket:action:thread:create:any",
				"ticket:action:claim:team:unclaimed",
				"ticket:action:change:priority:from:any:to:any",
			}
			ticket := &permission.Ticket{
				ID:              100,
				CurrentStatusID: 1,
				AssignedTo:      &permission.Entity{TeamID: callerTeam, UserTeamID: callerUserTeam},
			}

			reference := permission.HasChangePermission(newGrant(actions, selfVia()), ticket, permission.FieldStatus, 1, 2)
			Expect(reference).To(BeTrue())

			rng := rand.New(rand.NewSource(1))
			for i := 0; i < 20; i++ {
				shuffled := append([]string(nil), actions...)
				rng.Shuffle(len(shuffled), func(a, b int) {
					shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
				})
				grant := newGrant(shuffled, selfVia())
				Expect(permission.HasChangePermission(grant, ticket, permission.FieldStatus, 1, 2)).To(Equal(reference))
				Expect(permission.HasChangePermission(grant, ticket, permission.FieldStatus, 1, 3)).To(BeFalse())
			}
		})

		It("is idempotent over an unchanged snapshot", func() {
			grant := newGrant(
				[]string{"ticket:action:change:status:from:1:to:2:assigned:self"},
				selfVia(),
			)
			ticket := &permission.Ticket{
				ID:              100,
				CurrentStatusID: 1,
				AssignedTo:      &permission.Entity{TeamID: callerTeam, UserTeamID: callerUserTeam},
			}

			for i := 0; i < 5; i++ {
				Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 1, 2)).To(Succeed())
				Expect(permission.VerifyChangePermission(grant, ticket, permission.FieldStatus, 1, 3)).NotTo(Succeed())
			}
		})
	})
})
