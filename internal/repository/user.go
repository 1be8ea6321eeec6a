package repository

import (
	"context"
	"time"

	"gedo/internal/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// Update writes the profile columns: username, email, role, obra and active flag.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	// UpdatePassword writes the hash and the password bookkeeping columns.
	UpdatePassword(ctx context.Context, u *model.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// Delete returns ErrInUse while records still name the user as author.
	Delete(ctx context.Context, id string) error
}
