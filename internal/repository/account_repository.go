package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/socialdash/internal/models"
)

// ErrDuplicateAccount is returned when a user tries to connect the same
// external account twice. Uniqueness is enforced by the database on
// (user_id, platform, account_id).
var ErrDuplicateAccount = errors.New("social account already connected")

type AccountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, a *models.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error)
	ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.Account, error)
	CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error)
	SetToken(ctx context.Context, accountID int64, accessToken string, expiresAt time.Time) error
	SetLastMessageAt(ctx context.Context, accountID int64, lastMessageAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, tx *sql.Tx, a *models.Account) (int64, error) {
	var id int64

	insertQuery := `
		INSERT INTO accounts(
			user_id,
			platform,
			account_id,
			account_name,
			profile_picture_url,
			access_token,
			token_expires_at,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	args := []interface{}{
		a.UserID,
		a.Platform,
		a.AccountID,
		a.AccountName,
		a.ProfilePicture,
		a.AccessToken,
		a.TokenExpiresAt,
		a.IsActive,
	}

	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, insertQuery, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, insertQuery, args...).Scan(&id)
	}

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateAccount
		}
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, user_id, platform, account_id, account_name, profile_picture_url,
			access_token, token_expires_at, last_message_at, is_active, created_at, updated_at
		FROM accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Platform, &a.AccountID, &a.AccountName,
		&a.ProfilePicture, &a.AccessToken, &a.TokenExpiresAt, &a.LastMessageAt,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &a, nil
}

func (r *accountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error) {
	query := `
		SELECT id, user_id, platform, account_id, account_name, profile_picture_url,
			access_token, token_expires_at, last_message_at, is_active, created_at, updated_at
		FROM accounts WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.UserID, &a.Platform, &a.AccountID, &a.AccountName,
			&a.ProfilePicture, &a.AccessToken, &a.TokenExpiresAt, &a.LastMessageAt,
			&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.Account, error) {
	query := `
		SELECT id, user_id, platform, account_id, access_token, token_expires_at
		FROM accounts
		WHERE is_active
		AND ((token_expires_at BETWEEN $1 AND $2) OR (token_expires_at < $1))`
	rows, err := r.db.QueryContext(ctx, query, initialTime, finalTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.UserID, &a.Platform, &a.AccountID, &a.AccessToken, &a.TokenExpiresAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	query := `SELECT 1 FROM accounts WHERE id = $1 AND user_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, accountID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *accountRepository) SetToken(ctx context.Context, accountID int64, accessToken string, expiresAt time.Time) error {
	query := `
		UPDATE accounts
		SET access_token = $2,
			token_expires_at = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, accountID, accessToken, expiresAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected != 1 {
		return errors.New("no rows affected; account may not exist")
	}

	return nil
}

// SetLastMessageAt advances the inbound-message watermark after a
// conversation check. It never moves backwards from the caller's side.
func (r *accountRepository) SetLastMessageAt(ctx context.Context, accountID int64, lastMessageAt time.Time) error {
	query := `UPDATE accounts SET last_message_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, accountID, lastMessageAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *accountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
