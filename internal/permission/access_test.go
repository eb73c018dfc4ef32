package permission_test

import (
	"context"
	"errors"

	"github.com/frahmantamala/ticket-management/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeStore backs the resolver with in-memory snapshots.
type fakeStore struct {
	memberships map[int64][]permission.Membership
	teams       map[int64]permission.Team
	tickets     map[int64]*permission.Ticket

	membershipErr error
	ticketLoads   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		memberships: make(map[int64][]permission.Membership),
		teams:       make(map[int64]permission.Team),
		tickets:     make(map[int64]*permission.Ticket),
	}
}

func (f *fakeStore) ActiveMemberships(_ context.Context, userID int64) ([]permission.Membership, error) {
	if f.membershipErr != nil {
		return nil, f.membershipErr
	}
	return f.memberships[userID], nil
}

func (f *fakeStore) TeamsByID(_ context.Context, teamIDs []int64) (map[int64]permission.Team, error) {
	out := make(map[int64]permission.Team, len(teamIDs))
	for _, id := range teamIDs {
		if t, ok := f.teams[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (f *fakeStore) TicketSnapshot(_ context.Context, ticketID int64) (*permission.Ticket, error) {
	f.ticketLoads++
	return f.tickets[ticketID], nil
}

var _ = Describe("Resolver", func() {
	var (
		store    *fakeStore
		resolver *permission.Resolver
		ctx      context.Context
	)

	const (
		userID   = int64(42)
		ticketID = int64(100)
	)

	BeforeEach(func() {
		store = newFakeStore()
		resolver = permission.NewResolver(store, store, nil)
		ctx = context.Background()
	})

	Describe("AccessForUser", func() {
		It("returns nil for a user with no active memberships", func() {
			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
		})

		It("grants through assigned:any for any assignee whatsoever", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 1, Permissions: []string{"ticket:read:assigned:any"}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:         ticketID,
				AssignedTo: &permission.Entity{TeamID: 99, UserTeamID: 1234},
				CreatedBy:  permission.Entity{TeamID: 3},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())
			Expect(grant.Via).To(HaveLen(1))
			Expect(grant.Via[0].Relation).To(Equal(permission.RelationAssignment))
			Expect(grant.Via[0].Permission).To(Equal("ticket:read:assigned:any"))
		})

		It("denies assigned:any when the ticket has no assignee", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 1, Permissions: []string{"ticket:read:assigned:any"}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:        ticketID,
				CreatedBy: permission.Entity{TeamID: 3},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
		})

		It("grants assigned:self only for the exact membership", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{"ticket:read:assigned:self"}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:         ticketID,
				AssignedTo: &permission.Entity{TeamID: 5, UserTeamID: 7},
				CreatedBy:  permission.Entity{TeamID: 5},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())

			// Same team, different individual: denied.
			store.tickets[ticketID].AssignedTo.UserTeamID = 8
			grant, err = resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
		})

		It("matches team:unclaimed only when no individual holds the ticket", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{"ticket:read:assigned:team:unclaimed"}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:         ticketID,
				AssignedTo: &permission.Entity{TeamID: 5},
				CreatedBy:  permission.Entity{TeamID: 5},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())

			store.tickets[ticketID].AssignedTo.UserTeamID = 8
			grant, err = resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
		})

		It("merges team permissions into every active member's view", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5},
			}
			store.teams[5] = permission.Team{ID: 5, Permissions: []string{"ticket:read:createdby:team:any"}}
			store.tickets[ticketID] = &permission.Ticket{
				ID:        ticketID,
				CreatedBy: permission.Entity{TeamID: 5, UserTeamID: 9},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())
			Expect(grant.Via[0].Source).To(Equal(permission.SourceTeam))
			Expect(grant.Via[0].Relation).To(Equal(permission.RelationCreation))
		})

		It("collects action permissions even when they match nothing here", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{
					"ticket:read:assigned:any",
					"ticket:action:change:status:from:8:to:9",
				}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:         ticketID,
				AssignedTo: &permission.Entity{TeamID: 1, UserTeamID: 2},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())
			Expect(grant.ActionPermissions).To(ContainElement("ticket:action:change:status:from:8:to:9"))
		})

		It("skips the ticket load entirely when no read rules exist", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{"ticket:action:thread:create:any"}},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
			Expect(store.ticketLoads).To(BeZero())
		})

		It("returns nil when the ticket does not exist", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{"ticket:read:assigned:any"}},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
		})

		It("propagates storage errors", func() {
			store.membershipErr = errors.New("database unreachable")
			_, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).To(MatchError("database unreachable"))
		})

		It("ignores malformed stored strings instead of failing", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{
					"ticket:read:assigned:bogus:tokens:here",
					"not even close",
					"ticket:read:assigned:any",
				}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:         ticketID,
				AssignedTo: &permission.Entity{TeamID: 1, UserTeamID: 2},
			}

			grant, err := resolver.AccessForUser(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())
			Expect(grant.Via).To(HaveLen(1))
		})
	})

	Describe("VerifyTicketAccess", func() {
		It("converts a nil grant into a PermissionError", func() {
			_, err := resolver.VerifyTicketAccess(ctx, userID, ticketID)
			Expect(err).To(HaveOccurred())

			perr, ok := permission.IsPermissionError(err)
			Expect(ok).To(BeTrue())
			Expect(perr.Required).To(Equal("ticket:read"))
			Expect(perr.Scope).To(Equal("ticket"))
			Expect(perr.Context).To(HaveKeyWithValue("ticketId", ticketID))
			Expect(perr.Context).To(HaveKeyWithValue("userId", userID))
		})

		It("returns the grant untouched when access exists", func() {
			store.memberships[userID] = []permission.Membership{
				{ID: 7, TeamID: 5, Permissions: []string{"ticket:read:assigned:any"}},
			}
			store.tickets[ticketID] = &permission.Ticket{
				ID:         ticketID,
				AssignedTo: &permission.Entity{TeamID: 1, UserTeamID: 2},
			}

			grant, err := resolver.VerifyTicketAccess(ctx, userID, ticketID)
			Expect(err).NotTo(HaveOccurred())
			Expect(grant.UserID).To(Equal(userID))
			Expect(grant.TicketID).To(Equal(ticketID))
		})
	})
})
