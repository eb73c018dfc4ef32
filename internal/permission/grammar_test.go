package permission_test

import (
	"testing"

	"github.com/frahmantamala/ticket-management/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Engine Suite")
}

var _ = Describe("Parse", func() {
	Describe("read rules", func() {
		It("parses every read rule of the stored vocabulary", func() {
			cases := map[string]struct {
				relation permission.RelationKind
				scope    permission.ReadScope
			}{
				"ticket:read:assigned:any":            {permission.RelationAssignment, permission.ReadAny},
				"ticket:read:assigned:team:any":       {permission.RelationAssignment, permission.ReadTeamAny},
				"ticket:read:assigned:team:unclaimed": {permission.RelationAssignment, permission.ReadTeamUnclaimed},
				"ticket:read:assigned:self":           {permission.RelationAssignment, permission.ReadSelf},
				"ticket:read:createdby:any":           {permission.RelationCreation, permission.ReadAny},
				"ticket:read:createdby:team:any":      {permission.RelationCreation, permission.ReadTeamAny},
				"ticket:read:createdby:self":          {permission.RelationCreation, permission.ReadSelf},
			}
			for raw, want := range cases {
				rule, ok := permission.Parse(raw)
				Expect(ok).To(BeTrue(), raw)
				read, isRead := rule.(permission.ReadRule)
				Expect(isRead).To(BeTrue(), raw)
				Expect(read.Relation).To(Equal(want.relation), raw)
				Expect(read.Scope).To(Equal(want.scope), raw)
				Expect(read.Raw()).To(Equal(raw))
			}
		})
	})

	Describe("change rules", func() {
		It("parses the canonical from/to layout", func() {
			rule, ok := permission.Parse("ticket:action:change:status:from:1:to:2")
			Expect(ok).To(BeTrue())
			change := rule.(permission.ChangeRule)
			Expect(change.Field).To(Equal(permission.FieldStatus))
			Expect(change.From.Matches(1)).To(BeTrue())
			Expect(change.From.Matches(3)).To(BeFalse())
			Expect(change.To.Matches(2)).To(BeTrue())
			Expect(change.Conditional).To(BeFalse())
		})

		It("parses the legacy flat layout without labels", func() {
			rule, ok := permission.Parse("ticket:action:change:priority:3:4")
			Expect(ok).To(BeTrue())
			change := rule.(permission.ChangeRule)
			Expect(change.Field).To(Equal(permission.FieldPriority))
			Expect(change.From.Matches(3)).To(BeTrue())
			Expect(change.To.Matches(4)).To(BeTrue())
		})

		It("parses a trailing context and scope pair", func() {
			rule, ok := permission.Parse("ticket:action:change:status:from:1:to:2:assigned:self")
			Expect(ok).To(BeTrue())
			change := rule.(permission.ChangeRule)
			Expect(change.Conditional).To(BeTrue())
			Expect(change.Context).To(Equal(permission.ContextAssigned))
			Expect(change.Scope).To(Equal(permission.ScopeSelf))
		})

		It("treats any as a literal bypass, never a number", func() {
			rule, ok := permission.Parse("ticket:action:change:category:from:any:to:7:createdby:team")
			Expect(ok).To(BeTrue())
			change := rule.(permission.ChangeRule)
			Expect(change.From.Matches(0)).To(BeTrue())
			Expect(change.From.Matches(999)).To(BeTrue())
			Expect(change.To.Matches(7)).To(BeTrue())
			Expect(change.To.Matches(8)).To(BeFalse())
		})
	})

	Describe("claim rules", func() {
		It("parses scope and modifier combinations", func() {
			rule, ok := permission.Parse("ticket:action:claim:team:unclaimed")
			Expect(ok).To(BeTrue())
			claim := rule.(permission.ClaimRule)
			Expect(claim.Scope).To(Equal(permission.ScopeTeam))
			Expect(claim.Unclaimed).To(BeTrue())
			Expect(claim.Force).To(BeFalse())

			rule, ok = permission.Parse("ticket:action:claim:team:force")
			Expect(ok).To(BeTrue())
			claim = rule.(permission.ClaimRule)
			Expect(claim.Force).To(BeTrue())

			rule, ok = permission.Parse("ticket:action:claim:any")
			Expect(ok).To(BeTrue())
			Expect(rule.(permission.ClaimRule).Scope).To(Equal(permission.ScopeAny))
		})
	})

	Describe("thread rules", func() {
		It("parses every thread scope", func() {
			for raw, scope := range map[string]permission.Scope{
				"ticket:action:thread:create:any":  permission.ScopeAny,
				"ticket:action:thread:create:team": permission.ScopeTeam,
				"ticket:action:thread:create:self": permission.ScopeSelf,
			} {
				rule, ok := permission.Parse(raw)
				Expect(ok).To(BeTrue(), raw)
				Expect(rule.(permission.ThreadRule).Scope).To(Equal(scope), raw)
			}

			rule, ok := permission.Parse("ticket:action:thread:create:team:unclaimed")
			Expect(ok).To(BeTrue())
			Expect(rule.(permission.ThreadRule).Unclaimed).To(BeTrue())
		})
	})

	Describe("malformed input", func() {
		It("rejects without panicking", func() {
			malformed := []string{
				"",
				"ticket",
				"ticket:read",
				"ticket:read:assigned",
				"ticket:read:assigned:bogus",
				"ticket:write:assigned:any",
				"invoice:read:assigned:any",
				"ticket:action:change:status:from:1",
				"ticket:action:change:status:from:x:to:2",
				"ticket:action:change:mood:from:1:to:2",
				"ticket:action:change:status:from:1:to:2:assigned",
				"ticket:action:change:status:from:1:to:2:somewhere:self",
				"ticket:action:thread:create",
				"ticket:action:thread:destroy:any",
				"ticket:action:claim:",
				"ticket:action:claim:team:gently",
			}
			for _, raw := range malformed {
				rule, ok := permission.Parse(raw)
				Expect(ok).To(BeFalse(), raw)
				Expect(rule).To(BeNil(), raw)
			}
		})
	})
})
