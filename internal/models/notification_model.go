package models

import (
	"encoding/json"
	"time"
)

const (
	NotificationTypeComment = "comment"
	NotificationTypeLike    = "like"
	NotificationTypeMessage = "message"
	NotificationTypeMention = "mention"
)

type Notification struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Type      string          `db:"type" json:"type"`
	Content   string          `db:"content" json:"content"`
	Data      json.RawMessage `db:"data" json:"data"`
	IsRead    bool            `db:"is_read" json:"is_read"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
