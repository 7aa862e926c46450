package ports

import (
	"context"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// ListUsersFilter carries query parameters for listing users. Filters combine
// with logical AND; the search term matches any of name/email/organization
// (case-insensitive substring).
type ListUsersFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Page     int // 1-based
	Limit    int
}

// UserUpdate is a partial administrative update; nil fields are left
// untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	Organization *string
	Phone        *string
	IsActive     *bool
}

// UserRepository defines persistence operations for user accounts. Email
// uniqueness is enforced by the store (Create returns domain.ErrEmailTaken on
// a duplicate).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users matching filter plus the total match count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// ListStaff returns active partner/admin users ordered by name.
	ListStaff(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id string, passwordHash string) error
	TouchLastLogin(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}
