package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an authenticated identity that owns transactions,
// debts and a team roster.
type User struct {
	UserID       string       `json:"userID" db:"user_id"` // Primary Key (UUID)
	Name         string       `json:"name" db:"name"`
	BusinessName string       `json:"businessName" db:"business_name"`
	Email        string       `json:"email" db:"email"` // Unique
	PasswordHash string       `json:"-" db:"password_hash"`
	Role         Role         `json:"role" db:"role"` // Self-registered users are Owner
	AvatarURL    *string      `json:"avatarURL,omitempty" db:"avatar_url"`
	AuthProvider AuthProvider `json:"-" db:"auth_provider"`

	// ProviderUserID is the subject from the external identity provider;
	// nil for local accounts.
	ProviderUserID *string `json:"-" db:"provider_user_id"`

	// Refresh token state; only the SHA256 hash is stored.
	RefreshTokenHash       *string    `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Soft delete
}
