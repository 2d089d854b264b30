package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 2 << 20

var allowedAvatarExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// profileHandler handles the signed-in user's account endpoints.
type profileHandler struct {
	userService portssvc.UserSvcFacade
}

func newProfileHandler(us portssvc.UserSvcFacade) *profileHandler {
	return &profileHandler{userService: us}
}

// registerProfileRoutes registers the profile routes.
func registerProfileRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newProfileHandler(userService)

	profile := rg.Group("/profile")
	{
		profile.GET("", h.get)
		profile.PATCH("", h.update)
		profile.POST("/password", h.changePassword)
		profile.POST("/avatar", h.uploadAvatar)
	}
}

// get godoc
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [get]
func (h *profileHandler) get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// update godoc
// @Summary Update own profile
// @Description Updates the display name and business name. Omitted fields stay unchanged.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Editable fields"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile [patch]
func (h *profileHandler) update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change password
// @Description Verifies the current password and replaces it. Only local accounts can change passwords.
// @Tags profile
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile/password [post]
func (h *profileHandler) changePassword(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadAvatar godoc
// @Summary Upload an avatar
// @Description Stores an avatar image and records its public URL on the profile.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image (jpg, png or webp, max 2 MiB)"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profile/avatar [post]
func (h *profileHandler) uploadAvatar(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Avatar file required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Avatar exceeds the 2 MiB limit"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAvatarExts[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported file type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	user, err := h.userService.SetAvatar(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err, "Failed to upload avatar")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
