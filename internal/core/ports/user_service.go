package ports

import (
	"context"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// UserPage is a paginated user listing result.
type UserPage struct {
	Items []*domain.User
	Total int64
	Page  int
	Limit int
	Pages int
}

// UpdateUserInput is the administrative user edit; nil fields are untouched.
type UpdateUserInput struct {
	Name         *string
	Email        *string
	Role         *string
	Organization *string
	Phone        *string
	IsActive     *bool
}

// UserService covers staff-facing account management. Mutations are
// admin-gated at the transport layer.
type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) (*UserPage, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// Partners lists active staff users (for assignment pickers).
	Partners(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
