package repository

import (
	"context"

	"catalog-service/internal/domain/entity"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
}
