package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/socialdash/internal/models"
)

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]*models.Comment, error)
	SetHidden(ctx context.Context, id string, hidden bool) error
	Remove(ctx context.Context, id string) error
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := `
		INSERT INTO comments(id, post_id, parent_id, author, author_picture_url, content, is_hidden, like_count, created_time, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM comments WHERE post_id = $2))`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.PostID, c.ParentID, c.Author, c.AuthorPicture, c.Content,
		c.IsHidden, c.LikeCount, c.CreatedTime)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, post_id, parent_id, author, author_picture_url, content, is_hidden, like_count, created_time
		FROM comments WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.ParentID, &c.Author, &c.AuthorPicture,
		&c.Content, &c.IsHidden, &c.LikeCount, &c.CreatedTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	c.Replies = []*models.Comment{}
	return &c, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `
		SELECT id, post_id, parent_id, author, author_picture_url, content, is_hidden, like_count, created_time
		FROM comments WHERE post_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.ParentID, &c.Author, &c.AuthorPicture,
			&c.Content, &c.IsHidden, &c.LikeCount, &c.CreatedTime)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		c.Replies = []*models.Comment{}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	query := `UPDATE comments SET is_hidden = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, hidden)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *commentRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
