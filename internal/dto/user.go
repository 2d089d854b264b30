package dto

// UpdateProfileRequest carries the editable profile fields. Nil pointers
// leave the stored value untouched.
type UpdateProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	BusinessName *string `json:"businessName" binding:"omitempty,max=100"`
}

// ChangePasswordRequest carries a password change for a local account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
