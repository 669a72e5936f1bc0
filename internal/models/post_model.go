package models

import (
	"time"
)

// Post is a platform post cached locally. ID is the platform-assigned
// identifier once published. Counters are denormalized from the last
// sync and are not authoritative.
type Post struct {
	ID         string     `db:"id" json:"id"`
	AccountID  int64      `db:"account_id" json:"account_id"`
	Content    string     `db:"content" json:"content"`
	MediaURL   string     `db:"media_url" json:"media_url,omitempty"`
	LikeCount  int        `db:"like_count" json:"like_count"`
	ShareCount int        `db:"share_count" json:"share_count"`
	PostedAt   time.Time  `db:"posted_at" json:"posted_at"`
	Comments   []*Comment `db:"-" json:"comments"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type Comment struct {
	ID            string     `db:"id" json:"id"`
	PostID        string     `db:"post_id" json:"post_id"`
	ParentID      string     `db:"parent_id" json:"parent_id,omitempty"`
	Author        string     `db:"author" json:"author"`
	AuthorPicture string     `db:"author_picture_url" json:"author_picture"`
	Content       string     `db:"content" json:"content"`
	IsHidden      bool       `db:"is_hidden" json:"is_hidden"`
	LikeCount     int        `db:"like_count" json:"like_count"`
	CreatedTime   time.Time  `db:"created_time" json:"created_time"`
	Replies       []*Comment `db:"-" json:"replies"`
}
