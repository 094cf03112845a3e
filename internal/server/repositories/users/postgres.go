package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	var existing int64
	err := r.db.GetContext(ctx, &existing, `SELECT id FROM users WHERE email = $1`, user.Email)
	if err == nil {
		return nil, common.ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query :=
		`INSERT INTO users (email, phone, password_digest)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, phone, password_digest, token, created_at, updated_at`

	created := &models.User{}
	err = r.db.QueryRowxContext(ctx, query, user.Email, user.Phone, user.PasswordDigest).StructScan(created)
	if err != nil {
		// lost a race with a concurrent registration
		if isUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrNotFound
	}
	return r.getBy(ctx, "token", token)
}

func (r *PostgresRepository) getBy(ctx context.Context, column string, value any) (*models.User, error) {
	query := `SELECT id, email, phone, password_digest, token, created_at, updated_at
		 FROM users WHERE ` + column + ` = $1`

	user := &models.User{}
	if err := r.db.GetContext(ctx, user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) SetToken(ctx context.Context, id int64, token *string) (*models.User, error) {
	query :=
		`UPDATE users SET token = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING id, email, phone, password_digest, token, created_at, updated_at`

	user := &models.User{}
	if err := r.db.QueryRowxContext(ctx, query, token, id).StructScan(user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
