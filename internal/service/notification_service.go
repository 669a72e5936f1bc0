package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/maheshrc27/socialdash/internal/models"
	"github.com/maheshrc27/socialdash/internal/repository"
	"github.com/maheshrc27/socialdash/internal/ws"
)

type NotificationService interface {
	List(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	NotifyNewComment(ctx context.Context, userID, accountID int64, postID string, comment *models.Comment)
	NotifyNewMessage(ctx context.Context, userID int64, sender, message string)
}

type notificationService struct {
	nr  repository.NotificationRepository
	hub *ws.Hub
}

func NewNotificationService(nr repository.NotificationRepository, hub *ws.Hub) NotificationService {
	return &notificationService{
		nr:  nr,
		hub: hub,
	}
}

func (s *notificationService) List(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.nr.ListByUserID(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.nr.MarkRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.nr.MarkAllRead(ctx, userID)
}

// NotifyNewComment persists the notification, pushes it to the owning
// user and broadcasts a new_comment event to the account's room. Push
// delivery is best effort; a failed write never fails the comment.
func (s *notificationService) NotifyNewComment(ctx context.Context, userID, accountID int64, postID string, comment *models.Comment) {
	data, err := json.Marshal(map[string]interface{}{
		"post_id": postID,
		"comment": comment,
	})
	if err != nil {
		slog.Info(err.Error())
		return
	}

	s.create(ctx, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeComment,
		Content: "New comment on your post",
		Data:    data,
	})

	s.hub.BroadcastToRoom(strconv.FormatInt(accountID, 10), ws.Event{
		Type: "new_comment",
		Data: map[string]interface{}{
			"post_id": postID,
			"comment": comment,
		},
	})
}

func (s *notificationService) NotifyNewMessage(ctx context.Context, userID int64, sender, message string) {
	data, err := json.Marshal(map[string]string{
		"sender":  sender,
		"message": message,
	})
	if err != nil {
		slog.Info(err.Error())
		return
	}

	s.create(ctx, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeMessage,
		Content: "New message from " + sender,
		Data:    data,
	})
}

func (s *notificationService) create(ctx context.Context, n *models.Notification) {
	saved, err := s.nr.Create(ctx, n)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	s.hub.SendToUser(n.UserID, ws.Event{Type: "notification", Data: saved})
}
