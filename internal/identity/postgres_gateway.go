package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type postgresGateway struct {
	pool       *pgxpool.Pool
	bcryptCost int
}

// NewPostgresGateway returns a Gateway backed by the identity_accounts table.
func NewPostgresGateway(pool *pgxpool.Pool, bcryptCost int) Gateway {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &postgresGateway{pool: pool, bcryptCost: bcryptCost}
}

func (g *postgresGateway) CreateAccount(ctx context.Context, email, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &Account{UID: uuid.NewString(), Email: email}

	const query = `
        INSERT INTO identity_accounts (uid, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	if err := g.pool.QueryRow(ctx, query, account.UID, account.Email, string(hash)).Scan(&account.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return account, nil
}

func (g *postgresGateway) DeleteAccount(ctx context.Context, uid string) error {
	const query = `DELETE FROM identity_accounts WHERE uid=$1`
	_, err := g.pool.Exec(ctx, query, uid)
	return err
}

func (g *postgresGateway) VerifyCredentials(ctx context.Context, email, password string) (*Account, error) {
	const query = `
        SELECT uid, email, password_hash, created_at
        FROM identity_accounts WHERE email=$1`

	var account Account
	var hash string
	if err := g.pool.QueryRow(ctx, query, email).Scan(
		&account.UID,
		&account.Email,
		&hash,
		&account.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

func (g *postgresGateway) GetByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
        SELECT uid, email, created_at
        FROM identity_accounts WHERE email=$1`

	var account Account
	if err := g.pool.QueryRow(ctx, query, email).Scan(
		&account.UID,
		&account.Email,
		&account.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
