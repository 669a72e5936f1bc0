package service

import (
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/socialdash/internal/transfer"
	"github.com/stretchr/testify/assert"
)

func TestMapPost(t *testing.T) {
	raw := &transfer.GraphPost{
		ID:          "123_456",
		Message:     "hello world",
		CreatedTime: "2024-01-15T10:30:00+0000",
		FullPicture: "https://example.com/pic.jpg",
		Likes:       &transfer.GraphLikes{},
		Shares:      &transfer.GraphShares{Count: 3},
	}
	raw.Likes.Summary.TotalCount = 42

	post, err := MapPost(raw, 7)
	assert.NoError(t, err)
	assert.Equal(t, "123_456", post.ID)
	assert.Equal(t, int64(7), post.AccountID)
	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, "https://example.com/pic.jpg", post.MediaURL)
	assert.Equal(t, 42, post.LikeCount)
	assert.Equal(t, 3, post.ShareCount)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), post.PostedAt.UTC())
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)
}

func TestMapPost_MissingOptionalFields(t *testing.T) {
	post, err := MapPost(&transfer.GraphPost{ID: "123"}, 1)
	assert.NoError(t, err)
	assert.Equal(t, "", post.Content)
	assert.Equal(t, "", post.MediaURL)
	assert.Equal(t, 0, post.LikeCount)
	assert.Equal(t, 0, post.ShareCount)
	assert.True(t, post.PostedAt.IsZero())
}

func TestMapPost_MissingID(t *testing.T) {
	_, err := MapPost(&transfer.GraphPost{Message: "no id"}, 1)
	assert.True(t, errors.Is(err, ErrMissingID))

	_, err = MapPost(nil, 1)
	assert.True(t, errors.Is(err, ErrMissingID))
}

func TestMapPost_EmbeddedComments(t *testing.T) {
	raw := &transfer.GraphPost{ID: "p1"}
	raw.Comments = &struct {
		Data []*transfer.GraphComment `json:"data"`
	}{
		Data: []*transfer.GraphComment{
			{ID: "c1", Message: "first"},
			{ID: "c2", Message: "second"},
		},
	}

	post, err := MapPost(raw, 1)
	assert.NoError(t, err)
	assert.Len(t, post.Comments, 2)
	assert.Equal(t, "c1", post.Comments[0].ID)
	assert.Equal(t, "p1", post.Comments[0].PostID)
}

func TestMapComment(t *testing.T) {
	raw := &transfer.GraphComment{
		ID:          "c1",
		Message:     "nice post",
		CreatedTime: "2024-02-01T08:00:00+0000",
		LikeCount:   5,
		From: &transfer.GraphFrom{
			ID:   "u1",
			Name: "Jane Doe",
		},
	}
	raw.From.Picture = &transfer.GraphPicture{}
	raw.From.Picture.Data.URL = "https://example.com/jane.jpg"

	comment, err := MapComment(raw, "p1")
	assert.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)
	assert.Equal(t, "p1", comment.PostID)
	assert.Equal(t, "Jane Doe", comment.Author)
	assert.Equal(t, "https://example.com/jane.jpg", comment.AuthorPicture)
	assert.Equal(t, 5, comment.LikeCount)
	assert.False(t, comment.IsHidden)
	assert.NotNil(t, comment.Replies)
	assert.Empty(t, comment.Replies)
}

func TestMapComment_AuthorFallbacks(t *testing.T) {
	comment, err := MapComment(&transfer.GraphComment{ID: "c1"}, "p1")
	assert.NoError(t, err)
	assert.Equal(t, UnknownAuthor, comment.Author)
	assert.Equal(t, DefaultAvatarURL, comment.AuthorPicture)

	// A from block without a picture still keeps the avatar fallback.
	comment, err = MapComment(&transfer.GraphComment{
		ID:   "c2",
		From: &transfer.GraphFrom{Name: "Bob"},
	}, "p1")
	assert.NoError(t, err)
	assert.Equal(t, "Bob", comment.Author)
	assert.Equal(t, DefaultAvatarURL, comment.AuthorPicture)
}

func TestMapComment_MissingID(t *testing.T) {
	_, err := MapComment(&transfer.GraphComment{Message: "no id"}, "p1")
	assert.True(t, errors.Is(err, ErrMissingID))
}

func TestParseGraphTime_Invalid(t *testing.T) {
	assert.True(t, parseGraphTime("").IsZero())
	assert.True(t, parseGraphTime("not-a-time").IsZero())
}
