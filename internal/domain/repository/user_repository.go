package repository

import (
	"context"

	"github.com/tu-usuario/salon-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia para credenciales del personal.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
