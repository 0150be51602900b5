package repository

import (
	"context"

	"catalog-service/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository looks users up with their role preloaded. Lookups that
// match nothing return nil without an error.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
