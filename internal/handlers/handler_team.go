package handlers

import (
	"net/http"

	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/gin-gonic/gin"
)

// teamHandler handles the roster endpoints.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
}

func newTeamHandler(ts portssvc.TeamSvcFacade) *teamHandler {
	return &teamHandler{teamService: ts}
}

// registerTeamRoutes registers the roster routes.
func registerTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade) {
	h := newTeamHandler(teamService)

	team := rg.Group("/team")
	{
		team.GET("", h.list)
		team.POST("", h.invite)
		team.PATCH("/:id/role", h.updateRole)
		team.DELETE("/:id", h.remove)
	}
}

// list godoc
// @Summary List team members
// @Description Returns the owner's roster, oldest first.
// @Tags team
// @Produce json
// @Success 200 {array} dto.TeamMemberResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /team [get]
func (h *teamHandler) list(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	members, err := h.teamService.ListTeam(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list team members")
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamMemberResponses(members))
}

// invite godoc
// @Summary Add a team member
// @Description Adds a roster entry. Members are labels only and cannot sign in.
// @Tags team
// @Accept json
// @Produce json
// @Param member body dto.InviteTeamMemberRequest true "Member details"
// @Success 201 {object} dto.TeamMemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already on the roster"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /team [post]
func (h *teamHandler) invite(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.InviteTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	member, err := h.teamService.InviteMember(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to add team member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTeamMemberResponse(member))
}

// updateRole godoc
// @Summary Change a member's role
// @Tags team
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param role body dto.UpdateTeamRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /team/{id}/role [patch]
func (h *teamHandler) updateRole(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTeamRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if err := h.teamService.UpdateRole(c.Request.Context(), userID, c.Param("id"), req); err != nil {
		respondError(c, err, "Failed to update team member role")
		return
	}
	c.Status(http.StatusNoContent)
}

// remove godoc
// @Summary Remove a team member
// @Tags team
// @Produce json
// @Param id path string true "Member ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /team/{id} [delete]
func (h *teamHandler) remove(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.teamService.RemoveMember(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove team member")
		return
	}
	c.Status(http.StatusNoContent)
}
