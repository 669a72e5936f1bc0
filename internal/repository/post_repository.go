package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/socialdash/internal/models"
)

type PostRepository interface {
	// ReplaceForAccount swaps the whole cached post list for an account
	// with a fresh sync result, inside one transaction. Posts deleted on
	// the platform since the last sync disappear locally.
	ReplaceForAccount(ctx context.Context, accountID int64, posts []*models.Post) error
	ListByAccountID(ctx context.Context, accountID int64) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, p *models.Post) error
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const insertPostQuery = `
	INSERT INTO posts(id, account_id, content, media_url, like_count, share_count, posted_at, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const insertCommentQuery = `
	INSERT INTO comments(id, post_id, parent_id, author, author_picture_url, content, is_hidden, like_count, created_time, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *postRepository) ReplaceForAccount(ctx context.Context, accountID int64, posts []*models.Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE account_id = $1)`, accountID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM posts WHERE account_id = $1`, accountID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	// Written order must match the mapper's order, which mirrors the
	// platform's response order.
	for i, p := range posts {
		_, err = tx.ExecContext(ctx, insertPostQuery,
			p.ID, accountID, p.Content, p.MediaURL, p.LikeCount, p.ShareCount, p.PostedAt, i)
		if err != nil {
			slog.Info(err.Error())
			return err
		}

		for j, c := range p.Comments {
			_, err = tx.ExecContext(ctx, insertCommentQuery,
				c.ID, p.ID, c.ParentID, c.Author, c.AuthorPicture, c.Content,
				c.IsHidden, c.LikeCount, c.CreatedTime, j)
			if err != nil {
				slog.Info(err.Error())
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*models.Post, error) {
	query := `
		SELECT id, account_id, content, media_url, like_count, share_count, posted_at
		FROM posts WHERE account_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		err := rows.Scan(&p.ID, &p.AccountID, &p.Content, &p.MediaURL,
			&p.LikeCount, &p.ShareCount, &p.PostedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		p.Comments = []*models.Comment{}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	commentQuery := `
		SELECT id, post_id, parent_id, author, author_picture_url, content, is_hidden, like_count, created_time
		FROM comments WHERE post_id = $1 ORDER BY position`
	for _, p := range posts {
		crows, err := r.db.QueryContext(ctx, commentQuery, p.ID)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}

		for crows.Next() {
			var c models.Comment
			err := crows.Scan(&c.ID, &c.PostID, &c.ParentID, &c.Author, &c.AuthorPicture,
				&c.Content, &c.IsHidden, &c.LikeCount, &c.CreatedTime)
			if err != nil {
				crows.Close()
				slog.Info(err.Error())
				return nil, err
			}
			c.Replies = []*models.Comment{}
			p.Comments = append(p.Comments, &c)
		}
		crows.Close()

		if err := crows.Err(); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT id, account_id, content, media_url, like_count, share_count, posted_at
		FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.Post
	err := row.Scan(&p.ID, &p.AccountID, &p.Content, &p.MediaURL,
		&p.LikeCount, &p.ShareCount, &p.PostedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, p *models.Post) error {
	query := `
		INSERT INTO posts(id, account_id, content, media_url, like_count, share_count, posted_at, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM posts WHERE account_id = $2))`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.ID, p.AccountID, p.Content, p.MediaURL, p.LikeCount, p.ShareCount, p.PostedAt)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.ID, p.AccountID, p.Content, p.MediaURL, p.LikeCount, p.ShareCount, p.PostedAt)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
