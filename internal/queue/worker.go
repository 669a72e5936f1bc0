package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

func (j *Queue) HandleSyncAccountTask(ctx context.Context, task *asynq.Task) error {
	var payload SyncAccountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	posts, err := j.ss.SyncPosts(ctx, payload.UserID, payload.AccountID)
	if err != nil {
		log.Printf("Error syncing AccountID %d: %v", payload.AccountID, err)
		return err
	}

	// Message notifications are best effort; a failed check never
	// re-runs the whole sync.
	if err := j.ss.CheckNewMessages(ctx, payload.UserID, payload.AccountID); err != nil {
		log.Printf("Error checking messages for AccountID %d: %v", payload.AccountID, err)
	}

	log.Printf("Synced %d posts for AccountID %d", len(posts), payload.AccountID)
	return nil
}
