package account

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/pkg/pg"
)

// Migrations holds the goose migrations for the accounts table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose should read.
const MigrationsDir = "migrations"

const accountColumns = `id, identity, credential_hash, otp_secret, otp_activated, otp_verified,
	recovery_codes, is_active, is_staff, is_superuser, version, created_at, updated_at`

// PostgresRepository stores accounts in the accounts table. Update holds a
// row lock (SELECT ... FOR UPDATE) for the duration of the callback.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, a *Account) error {
	now := r.now().UTC()
	a.Version = 1
	a.CreatedAt, a.UpdatedAt = now, now

	_, err := r.pool.Exec(ctx, `INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		pgtype.UUID{Bytes: a.ID, Valid: true}, a.Identity, a.CredentialHash, a.OTPSecret,
		a.OTPActivated, a.OTPVerified, a.RecoveryCodes, a.IsActive, a.IsStaff, a.IsSuperuser,
		a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrUnexpected, err)
	}
	return nil
}

func (r *PostgresRepository) GetByIdentity(ctx context.Context, identity string) (*Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE identity = $1`, identity)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapQueryError(err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, identity string, fn UpdateFunc) (*Account, error) {
	var updated *Account

	err := pg.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE identity = $1 FOR UPDATE`, identity)
		current, err := scanAccount(row)
		if err != nil {
			return mapQueryError(err)
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return err
		}

		next.ID, next.Identity, next.CreatedAt = current.ID, current.Identity, current.CreatedAt
		next.Version = current.Version + 1
		next.UpdatedAt = r.now().UTC()

		_, err = tx.Exec(ctx, `UPDATE accounts SET
			credential_hash = $2, otp_secret = $3, otp_activated = $4, otp_verified = $5,
			recovery_codes = $6, is_active = $7, is_staff = $8, is_superuser = $9,
			version = $10, updated_at = $11
			WHERE identity = $1`,
			identity, next.CredentialHash, next.OTPSecret, next.OTPActivated, next.OTPVerified,
			next.RecoveryCodes, next.IsActive, next.IsStaff, next.IsSuperuser,
			next.Version, next.UpdatedAt,
		)
		if err != nil {
			return errors.Join(ErrUnexpected, err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, pg.ErrTxFailed) {
			return nil, errors.Join(ErrUnexpected, err)
		}
		return nil, err
	}
	return updated, nil
}

func scanAccount(row pgx.Row) (*Account, error) {
	var (
		a  Account
		id pgtype.UUID
	)
	err := row.Scan(&id, &a.Identity, &a.CredentialHash, &a.OTPSecret, &a.OTPActivated, &a.OTPVerified,
		&a.RecoveryCodes, &a.IsActive, &a.IsStaff, &a.IsSuperuser, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ID = id.Bytes
	return &a, nil
}

func mapQueryError(err error) error {
	if pg.IsNotFoundError(err) {
		return ErrNotFound
	}
	return errors.Join(ErrUnexpected, err)
}
