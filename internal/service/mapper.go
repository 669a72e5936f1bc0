package service

import (
	"fmt"
	"time"

	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/transfer"
)

const (
	// UnknownAuthor is the sentinel for comments whose author is absent
	// from the external payload.
	UnknownAuthor = "Unknown User"

	// DefaultAvatarURL is served by the frontend when the platform
	// returns no profile picture.
	DefaultAvatarURL = "/default-avatar.png"
)

const graphTimeLayout = "2006-01-02T15:04:05-0700"

// MapPost converts a raw Graph post into the local shape. Missing
// optional fields get zero defaults; only a missing id is an error.
func MapPost(raw *transfer.GraphPost, accountID int64) (*models.Post, error) {
	if raw == nil || raw.ID == "" {
		return nil, fmt.Errorf("post: %w", ErrMissingID)
	}

	p := &models.Post{
		ID:        raw.ID,
		AccountID: accountID,
		Content:   raw.Message,
		MediaURL:  raw.FullPicture,
		PostedAt:  parseGraphTime(raw.CreatedTime),
		Comments:  []*models.Comment{},
	}

	if raw.Likes != nil {
		p.LikeCount = raw.Likes.Summary.TotalCount
	}
	if raw.Shares != nil {
		p.ShareCount = raw.Shares.Count
	}

	if raw.Comments != nil {
		for _, rc := range raw.Comments.Data {
			c, err := MapComment(rc, raw.ID)
			if err != nil {
				return nil, err
			}
			p.Comments = append(p.Comments, c)
		}
	}

	return p, nil
}

// MapComment converts a raw Graph comment. Replies are never populated
// from external data; only locally created replies are attached later.
func MapComment(raw *transfer.GraphComment, postID string) (*models.Comment, error) {
	if raw == nil || raw.ID == "" {
		return nil, fmt.Errorf("comment: %w", ErrMissingID)
	}

	c := &models.Comment{
		ID:            raw.ID,
		PostID:        postID,
		Author:        UnknownAuthor,
		AuthorPicture: DefaultAvatarURL,
		Content:       raw.Message,
		LikeCount:     raw.LikeCount,
		CreatedTime:   parseGraphTime(raw.CreatedTime),
		Replies:       []*models.Comment{},
	}

	if raw.From != nil {
		if raw.From.Name != "" {
			c.Author = raw.From.Name
		}
		if raw.From.Picture != nil && raw.From.Picture.Data.URL != "" {
			c.AuthorPicture = raw.From.Picture.Data.URL
		}
	}

	return c, nil
}

func parseGraphTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(graphTimeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
