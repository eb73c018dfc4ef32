package permission_test

import (
	"github.com/frahmantamala/ticket-management/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VerifyThreadCreatePermission", func() {
	const (
		callerUserTeam = int64(7)
		callerTeam     = int64(5)
	)

	grantWith := func(actions []string, via []permission.AccessVia) *permission.AccessGrant {
		return &permission.AccessGrant{
			UserID:            42,
			TicketID:          100,
			Via:               via,
			ActionPermissions: actions,
		}
	}

	It("authorizes any-scope unconditionally", func() {
		grant := grantWith([]string{"ticket:action:thread:create:any"}, nil)
		Expect(permission.VerifyThreadCreatePermission(grant, 0)).To(Succeed())
	})

	It("authorizes team scope through a team-proven assignment via", func() {
		grant := grantWith(
			[]string{"ticket:action:thread:create:team"},
			[]permission.AccessVia{{
				UserTeamID: callerUserTeam,
				TeamID:     callerTeam,
				Source:     permission.SourceTeam,
				Permission: "ticket:read:assigned:team:any",
				Relation:   permission.RelationAssignment,
			}},
		)

		Expect(permission.VerifyThreadCreatePermission(grant, callerTeam)).To(Succeed())
		Expect(permission.HasThreadCreatePermission(grant, 99)).To(BeFalse())
	})

	It("refuses team scope when read access was proven another way", func() {
		grant := grantWith(
			[]string{"ticket:action:thread:create:team"},
			[]permission.AccessVia{{
				UserTeamID: callerUserTeam,
				TeamID:     callerTeam,
				Source:     permission.SourceUserTeam,
				Permission: "ticket:read:assigned:self",
				Relation:   permission.RelationAssignment,
			}},
		)

		Expect(permission.HasThreadCreatePermission(grant, callerTeam)).To(BeFalse())
	})

	It("authorizes self scope against the caller's own membership", func() {
		grant := grantWith(
			[]string{"ticket:action:thread:create:self"},
			[]permission.AccessVia{{
				UserTeamID: callerUserTeam,
				TeamID:     callerTeam,
				Source:     permission.SourceUserTeam,
				Permission: "ticket:read:assigned:self",
				Relation:   permission.RelationAssignment,
			}},
		)

		Expect(permission.VerifyThreadCreatePermission(grant, callerUserTeam)).To(Succeed())
		Expect(permission.HasThreadCreatePermission(grant, 8)).To(BeFalse())
	})

	It("lets a creator comment through a creation via with matching suffix", func() {
		grant := grantWith(
			[]string{"ticket:action:thread:create:self"},
			[]permission.AccessVia{{
				UserTeamID: callerUserTeam,
				TeamID:     callerTeam,
				Source:     permission.SourceUserTeam,
				Permission: "ticket:read:createdby:self",
				Relation:   permission.RelationCreation,
			}},
		)

		Expect(permission.VerifyThreadCreatePermission(grant, 0)).To(Succeed())
	})

	It("matches team:unclaimed only through an unclaimed-proven via", func() {
		unclaimedVia := []permission.AccessVia{{
			UserTeamID: callerUserTeam,
			TeamID:     callerTeam,
			Source:     permission.SourceUserTeam,
			Permission: "ticket:read:assigned:team:unclaimed",
			Relation:   permission.RelationAssignment,
		}}

		grant := grantWith([]string{"ticket:action:thread:create:team:unclaimed"}, unclaimedVia)
		Expect(permission.VerifyThreadCreatePermission(grant, callerTeam)).To(Succeed())

		grant = grantWith([]string{"ticket:action:thread:create:team"}, unclaimedVia)
		Expect(permission.HasThreadCreatePermission(grant, callerTeam)).To(BeFalse())
	})

	It("reports the required permission on denial", func() {
		grant := grantWith(nil, nil)
		err := permission.VerifyThreadCreatePermission(grant, callerTeam)
		Expect(err).To(HaveOccurred())

		perr, ok := permission.IsPermissionError(err)
		Expect(ok).To(BeTrue())
		Expect(perr.Required).To(Equal("ticket:action:thread:create"))
		Expect(perr.Scope).To(Equal("ticket:thread"))
		Expect(perr.Context).To(HaveKeyWithValue("ticketEntityId", callerTeam))
	})
})
