package domain

import "time"

// Role is the business role attached to users and roster members.
type Role string

const (
	RoleOwner   Role = "Owner"
	RoleStaff   Role = "Staff"
	RoleCashier Role = "Cashier"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleStaff || r == RoleCashier
}

// TeamMember is a roster entry scoped to an owning user. Roster members carry
// no credentials and no login capability; the roster is purely a labeling
// feature for the business.
type TeamMember struct {
	MemberID    string    `json:"memberID" db:"member_id"` // Primary Key (UUID)
	OwnerUserID string    `json:"ownerUserID" db:"owner_user_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Role        Role      `json:"role" db:"role"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
