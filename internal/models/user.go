package models

import "time"

// Role names assigned to users.
const (
	RoleAdmin      = "Admin"
	RoleInvestor   = "Investor"
	RoleSuperAdmin = "SuperAdmin"
)

// User represents the user model in the database
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Username            string     `gorm:"uniqueIndex;not null" json:"username"`
	Password            string     `gorm:"not null" json:"-"`
	Name                string     `json:"name"`
	LastName            string     `json:"last_name"`
	Phone               string     `json:"phone"`
	ProfileImage        string     `json:"profile_image,omitempty"`
	Role                string     `gorm:"not null;default:'Investor'" json:"role"`
	EmailConfirmed      bool       `gorm:"default:false" json:"email_confirmed"`
	ConfirmationToken   string     `gorm:"size:64" json:"-"`
	ResetToken          string     `gorm:"size:64" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Portfolios []InvestmentPortfolio `gorm:"foreignKey:UserID" json:"portfolios,omitempty"`
}

// IsLocked reports whether the user is currently locked out.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
