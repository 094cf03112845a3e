// Package users is the credential store: user records keyed by id, email and
// session token, in a PostgreSQL and an in-memory flavour.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository stores users. Lookups report absence with common.ErrNotFound;
// Create reports a taken email with common.ErrConflict.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	// SetToken overwrites the user's token; nil clears it.
	SetToken(ctx context.Context, id int64, token *string) (*models.User, error)
}
