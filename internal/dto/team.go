package dto

import (
	"time"

	"github.com/financebook/financebook/internal/core/domain"
)

// InviteTeamMemberRequest carries the roster invite form.
type InviteTeamMemberRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=Owner Staff Cashier"`
}

// UpdateTeamRoleRequest changes a roster member's role.
type UpdateTeamRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Owner Staff Cashier"`
}

// TeamMemberResponse is the externally visible shape of a roster entry.
type TeamMemberResponse struct {
	MemberID  string    `json:"memberID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToTeamMemberResponse converts a domain roster entry.
func ToTeamMemberResponse(m *domain.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		MemberID:  m.MemberID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

// ToTeamMemberResponses converts a roster slice.
func ToTeamMemberResponses(members []domain.TeamMember) []TeamMemberResponse {
	out := make([]TeamMemberResponse, len(members))
	for i := range members {
		out[i] = ToTeamMemberResponse(&members[i])
	}
	return out
}
