package services

import (
	"context"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/financebook/financebook/internal/dto"
)

// TeamSvcFacade exposes the roster operations. The roster is labeling only:
// members carry no credentials and cannot sign in.
type TeamSvcFacade interface {
	// ListTeam returns the owner's roster.
	ListTeam(ctx context.Context, ownerUserID string) ([]domain.TeamMember, error)

	// InviteMember adds a roster entry.
	InviteMember(ctx context.Context, ownerUserID string, req dto.InviteTeamMemberRequest) (*domain.TeamMember, error)

	// UpdateRole changes a member's role.
	UpdateRole(ctx context.Context, ownerUserID, memberID string, req dto.UpdateTeamRoleRequest) error

	// RemoveMember deletes a roster entry.
	RemoveMember(ctx context.Context, ownerUserID, memberID string) error
}
