package repositories

import (
	"context"

	"github.com/financebook/financebook/internal/core/domain"
)

// TeamReader defines read operations for the team roster.
type TeamReader interface {
	// FindTeamMembersByOwner retrieves the roster for one owner, oldest first.
	FindTeamMembersByOwner(ctx context.Context, ownerUserID string) ([]domain.TeamMember, error)
}

// TeamWriter defines write operations for the team roster.
type TeamWriter interface {
	// SaveTeamMember persists a new roster entry.
	SaveTeamMember(ctx context.Context, member domain.TeamMember) error

	// UpdateTeamMemberRole changes a member's role, scoped to the owner.
	UpdateTeamMemberRole(ctx context.Context, ownerUserID, memberID string, role domain.Role) error

	// DeleteTeamMember removes a roster entry, scoped to the owner.
	DeleteTeamMember(ctx context.Context, ownerUserID, memberID string) error
}

// TeamRepositoryFacade combines all team roster repository interfaces.
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
}
