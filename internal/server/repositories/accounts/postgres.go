package accounts

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daterapp/auth/internal/dbx"
	"github.com/daterapp/auth/internal/result"
	"github.com/daterapp/auth/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for unique-constraint hits.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, account *models.Account) result.Result[string] {
	if account == nil {
		return result.Error[string](http.StatusBadRequest, "account cannot be nil")
	}

	query := `
		INSERT INTO accounts (email, hashed_password, refresh_token, refresh_token_expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.HashedPassword,
		nullString(account.RefreshToken), nullTime(account.RefreshTokenExpiry),
	).Scan(&account.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return result.Error[string](http.StatusConflict, "account already exists")
		}
		return result.Error[string](http.StatusInternalServerError, "error adding account")
	}

	return result.SuccessWithStatus(account.ID, http.StatusCreated)
}

func (r *PostgresRepository) Update(ctx context.Context, account *models.Account) result.Result[bool] {
	if account == nil {
		return result.Error[bool](http.StatusBadRequest, "account cannot be nil")
	}
	if account.ID == "" {
		return result.Error[bool](http.StatusBadRequest, "account id cannot be empty")
	}

	query := `
		UPDATE accounts
		SET email = $1, hashed_password = $2, refresh_token = $3, refresh_token_expires_at = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		account.Email, account.HashedPassword,
		nullString(account.RefreshToken), nullTime(account.RefreshTokenExpiry),
		account.ID,
	)
	if err != nil {
		return result.Error[bool](http.StatusInternalServerError, "error updating account")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return result.Error[bool](http.StatusInternalServerError, "error updating account")
	}
	if affected == 0 {
		return result.Error[bool](http.StatusNotFound, "account not found")
	}

	return result.Success(true)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) result.Result[*models.Account] {
	if email == "" {
		return result.Error[*models.Account](http.StatusBadRequest, "email cannot be empty")
	}

	query := `
		SELECT id, email, hashed_password, refresh_token, refresh_token_expires_at
		FROM accounts
		WHERE email = $1
	`

	account := &models.Account{}
	var refreshToken sql.NullString
	var refreshExpiry sql.NullTime

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.HashedPassword,
		&refreshToken, &refreshExpiry,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.Error[*models.Account](http.StatusNotFound, "account not found")
		}
		return result.Error[*models.Account](http.StatusInternalServerError, "error searching account")
	}

	account.RefreshToken = refreshToken.String
	account.RefreshTokenExpiry = refreshExpiry.Time

	return result.Success(account)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) result.Result[bool] {
	if id == "" {
		return result.Error[bool](http.StatusBadRequest, "account id cannot be empty")
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return result.Error[bool](http.StatusInternalServerError, "error deleting account")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return result.Error[bool](http.StatusInternalServerError, "error deleting account")
	}
	if affected == 0 {
		return result.Error[bool](http.StatusNotFound, "account not found")
	}

	return result.Success(true)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
