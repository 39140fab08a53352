package repository

import (
	"context"

	"github.com/seuhd/campuscoffee/internal/domain/entity"
)

// UserRepository is the data-access port for the user domain.
//
// Save inserts when the user has no ID and overwrites the addressed row
// when it does. The store enforces the login-name and email uniqueness
// constraints atomically at save time; a violation surfaces as
// *domain.DuplicationError, a missing row as *domain.NotFoundError.
type UserRepository interface {
	FindAll(ctx context.Context) ([]entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByName(ctx context.Context, name string) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	DeleteByID(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
	ResetIdentitySequence(ctx context.Context) error
}
