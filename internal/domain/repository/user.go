package repository

import (
	"context"

	"github.com/khanhng/orderflow/internal/domain/model"
)

// UserRepository persists worker accounts and their role sets.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash, name string, roles model.RoleSet) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
