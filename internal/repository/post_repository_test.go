package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostRepo(t *testing.T) (PostRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostRepository(db), mock
}

func TestReplaceForAccount(t *testing.T) {
	repo, mock := newPostRepo(t)

	postedAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	createdTime := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	posts := []*models.Post{
		{
			ID:        "p1",
			AccountID: 5,
			Content:   "first",
			LikeCount: 3,
			PostedAt:  postedAt,
			Comments: []*models.Comment{
				{ID: "c1", PostID: "p1", Author: "Jane", AuthorPicture: "/a.png", Content: "hi", CreatedTime: createdTime},
			},
		},
		{ID: "p2", AccountID: 5, Content: "second", PostedAt: postedAt, Comments: []*models.Comment{}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE account_id = $1)")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE account_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO posts").
		WithArgs("p1", int64(5), "first", "", 3, 0, postedAt, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO comments").
		WithArgs("c1", "p1", "", "Jane", "/a.png", "hi", false, 0, createdTime, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO posts").
		WithArgs("p2", int64(5), "second", "", 0, 0, postedAt, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceForAccount(context.Background(), 5, posts)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceForAccount_InsertFailureRollsBack(t *testing.T) {
	repo, mock := newPostRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM posts").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO posts").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceForAccount(context.Background(), 5, []*models.Post{
		{ID: "p1", AccountID: 5},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByAccountID(t *testing.T) {
	repo, mock := newPostRepo(t)

	postedAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	createdTime := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	postRows := sqlmock.NewRows([]string{"id", "account_id", "content", "media_url", "like_count", "share_count", "posted_at"}).
		AddRow("p1", int64(5), "first", "", 3, 1, postedAt).
		AddRow("p2", int64(5), "second", "", 0, 0, postedAt)

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE account_id").
		WithArgs(int64(5)).
		WillReturnRows(postRows)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE post_id").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "parent_id", "author", "author_picture_url", "content", "is_hidden", "like_count", "created_time"}).
			AddRow("c1", "p1", "", "Jane", "/a.png", "hi", false, 0, createdTime))
	mock.ExpectQuery("SELECT (.+) FROM comments WHERE post_id").
		WithArgs("p2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "parent_id", "author", "author_picture_url", "content", "is_hidden", "like_count", "created_time"}))

	posts, err := repo.ListByAccountID(context.Background(), 5)
	assert.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "Jane", posts[0].Comments[0].Author)
	assert.Empty(t, posts[1].Comments)
}

func TestPostGetByID_NotFound(t *testing.T) {
	repo, mock := newPostRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestPostCreate_AppendsPosition(t *testing.T) {
	repo, mock := newPostRepo(t)
	postedAt := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("COALESCE(MAX(position), -1) + 1")).
		WithArgs("p9", int64(5), "new post", "", 0, 0, postedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), nil, &models.Post{
		ID:        "p9",
		AccountID: 5,
		Content:   "new post",
		PostedAt:  postedAt,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
