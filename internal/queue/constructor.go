package queue

import (
	"github.com/maheshrc27/socialdash/internal/service"
)

type Queue struct {
	ss service.SocialService
}

func NewQueue(ss service.SocialService) *Queue {
	return &Queue{
		ss: ss,
	}
}

const TaskTypeSyncAccount = "sync:account"

type SyncAccountPayload struct {
	UserID    int64 `json:"user_id"`
	AccountID int64 `json:"account_id"`
}
