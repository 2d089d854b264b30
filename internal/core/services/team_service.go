package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/google/uuid"
)

// teamService implements the TeamSvcFacade interface.
type teamService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
}

// NewTeamService creates a new team roster service.
func NewTeamService(repo portsrepo.TeamRepositoryFacade) portssvc.TeamSvcFacade {
	return &teamService{teamRepo: repo}
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

func (s *teamService) ListTeam(ctx context.Context, ownerUserID string) ([]domain.TeamMember, error) {
	members, err := s.teamRepo.FindTeamMembersByOwner(ctx, ownerUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list team members", slog.String("owner_user_id", ownerUserID))
		return nil, err
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	return members, nil
}

func (s *teamService) InviteMember(ctx context.Context, ownerUserID string, req dto.InviteTeamMemberRequest) (*domain.TeamMember, error) {
	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationFailedError("unknown role " + req.Role)
	}

	member := domain.TeamMember{
		MemberID:    uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        req.Name,
		Email:       req.Email,
		Role:        role,
		CreatedAt:   time.Now(),
	}

	if err := s.teamRepo.SaveTeamMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save team member",
			slog.String("member_id", member.MemberID),
			slog.String("owner_user_id", ownerUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Team member added",
		slog.String("member_id", member.MemberID),
		slog.String("role", req.Role))
	return &member, nil
}

func (s *teamService) UpdateRole(ctx context.Context, ownerUserID, memberID string, req dto.UpdateTeamRoleRequest) error {
	role := domain.Role(req.Role)
	if !role.Valid() {
		return apperrors.NewValidationFailedError("unknown role " + req.Role)
	}
	if err := s.teamRepo.UpdateTeamMemberRole(ctx, ownerUserID, memberID, role); err != nil {
		s.LogError(ctx, err, "Failed to update team member role",
			slog.String("member_id", memberID))
		return err
	}
	s.LogInfo(ctx, "Team member role updated",
		slog.String("member_id", memberID),
		slog.String("role", req.Role))
	return nil
}

func (s *teamService) RemoveMember(ctx context.Context, ownerUserID, memberID string) error {
	if err := s.teamRepo.DeleteTeamMember(ctx, ownerUserID, memberID); err != nil {
		s.LogError(ctx, err, "Failed to remove team member",
			slog.String("member_id", memberID))
		return err
	}
	s.LogInfo(ctx, "Team member removed", slog.String("member_id", memberID))
	return nil
}
