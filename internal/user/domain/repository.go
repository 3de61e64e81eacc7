package domain

import (
	"context"
	"time"

	"github.com/jobee/jobee-api/internal/apifilters"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) (string, error)
	FindByID(ctx context.Context, id string) (*User, error)
	// FindByIDWithPassword and FindByEmail include the password hash, which
	// the default projection hides.
	FindByIDWithPassword(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*User, error)
	UpdateProfile(ctx context.Context, id, name, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, hashedToken string, expire time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	// ResetPassword sets the new password hash and clears the reset token
	// fields in one update.
	ResetPassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query apifilters.Query) ([]*User, error)
}
