package domain

import (
	"strings"
	"time"
)

const (
	RoleClient  = "client"
	RolePartner = "partner"
	RoleAdmin   = "admin"
)

// User models an account in the platform. The password hash is never
// serialised into API responses.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password"`
	Role         string     `json:"role" bson:"role"`
	Organization string     `json:"organization,omitempty" bson:"organization,omitempty"`
	Phone        string     `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive     bool       `json:"isActive" bson:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// IsStaff reports whether the user may bypass ownership checks.
func (u *User) IsStaff() bool {
	return IsStaffRole(u.Role)
}

// IsStaffRole reports whether role belongs to the staff set (partner or admin).
func IsStaffRole(role string) bool {
	return role == RolePartner || role == RoleAdmin
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleClient, RolePartner, RoleAdmin:
		return true
	}
	return false
}

// NormalizeEmail lowercases and trims an email address. All email comparisons
// in the system happen post-normalization.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
