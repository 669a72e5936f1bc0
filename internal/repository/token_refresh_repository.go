package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/socialdash/internal/models"
)

type TokenRefreshRepository interface {
	// GetValid returns the cached refresh for (userID, platform) whose
	// expiry is still in the future, or (nil, nil) when there is none.
	GetValid(ctx context.Context, userID int64, platform string) (*models.TokenRefresh, error)
	Save(ctx context.Context, tr *models.TokenRefresh) (int64, error)
	DeleteExpired(ctx context.Context) error
}

type tokenRefreshRepository struct {
	db *sql.DB
}

func NewTokenRefreshRepository(db *sql.DB) TokenRefreshRepository {
	return &tokenRefreshRepository{db: db}
}

func (r *tokenRefreshRepository) GetValid(ctx context.Context, userID int64, platform string) (*models.TokenRefresh, error) {
	query := `
		SELECT id, user_id, platform, token, expires_at, created_at
		FROM token_refreshes
		WHERE user_id = $1 AND platform = $2 AND expires_at > NOW()
		ORDER BY expires_at DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID, platform)

	var tr models.TokenRefresh
	err := row.Scan(&tr.ID, &tr.UserID, &tr.Platform, &tr.Token, &tr.ExpiresAt, &tr.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &tr, nil
}

// Save upserts the cached refresh for (user_id, platform). Two callers
// racing on the same key both succeed; the last write wins.
func (r *tokenRefreshRepository) Save(ctx context.Context, tr *models.TokenRefresh) (int64, error) {
	query := `
		INSERT INTO token_refreshes(user_id, platform, token, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, platform)
		DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, tr.UserID, tr.Platform, tr.Token, tr.ExpiresAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *tokenRefreshRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM token_refreshes WHERE expires_at <= NOW()`
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
