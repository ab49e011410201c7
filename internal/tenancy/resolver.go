// Package tenancy resolves which team a request operates against. The sticky
// preference is an explicit input and output, never ambient state: the caller
// owns the storage medium (a cookie) and applies the persist instruction.
package tenancy

import (
	"context"
	"fmt"

	"github.com/kmorishita/tasklane/internal/domain"
)

// Outcome classifies a resolution. Unauthenticated and NoTeam are control
// flow, not errors: they direct the caller to login or onboarding.
type Outcome string

const (
	OutcomeTeam            Outcome = "team"
	OutcomeNoTeam          Outcome = "no_team"
	OutcomeUnauthenticated Outcome = "unauthenticated"
)

// Resolution is the result of resolving a tenant.
type Resolution struct {
	Outcome Outcome
	TeamID  string
	// PersistPreference instructs the caller to store TeamID as the new
	// sticky preference. The write is fire-and-forget: concurrent resolvers
	// compute the same deterministic default, so write races are benign.
	PersistPreference bool
}

// MembershipReader is the subset of the member repository the resolver needs.
type MembershipReader interface {
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.TeamMember, error)
}

// Resolver validates sticky preferences against current membership and
// computes deterministic defaults. A stale preference naming a team the user
// was removed from is never returned; membership is re-checked on every call.
type Resolver struct {
	members MembershipReader
}

// NewResolver creates a Resolver.
func NewResolver(members MembershipReader) *Resolver {
	return &Resolver{members: members}
}

// Resolve determines the active team for userID. stickyTeamID is the
// client-persisted preference, or empty when absent.
func (r *Resolver) Resolve(ctx context.Context, userID, stickyTeamID string) (Resolution, error) {
	if userID == "" {
		return Resolution{Outcome: OutcomeUnauthenticated}, nil
	}

	if stickyTeamID != "" {
		ok, err := r.members.IsMember(ctx, stickyTeamID, userID)
		if err != nil {
			return Resolution{}, fmt.Errorf("validating sticky team preference: %w", err)
		}
		if ok {
			return Resolution{Outcome: OutcomeTeam, TeamID: stickyTeamID}, nil
		}
		// Stale preference: fall through and self-heal with a fresh default.
	}

	memberships, err := r.members.ListByUser(ctx, userID)
	if err != nil {
		return Resolution{}, fmt.Errorf("listing memberships: %w", err)
	}
	if len(memberships) == 0 {
		return Resolution{Outcome: OutcomeNoTeam}, nil
	}

	// Earliest-joined team is the deterministic default, so concurrent
	// resolutions for the same user converge without coordination.
	return Resolution{
		Outcome:           OutcomeTeam,
		TeamID:            memberships[0].TeamID,
		PersistPreference: true,
	}, nil
}
