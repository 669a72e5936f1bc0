package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialdash/internal/service"
)

type NotificationHandler struct {
	s service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{s: s}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	userID := GetUserID(c)

	notifications, err := h.s.List(c.Context(), userID)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Failed to fetch notifications")
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := GetUserID(c)
	notificationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification id",
		})
	}

	if err := h.s.MarkRead(c.Context(), userID, int64(notificationID)); err != nil {
		return errorJSON(c, err, "Unable to mark notification as read")
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.s.MarkAllRead(c.Context(), userID); err != nil {
		return errorJSON(c, err, "Unable to mark notifications as read")
	}

	return c.SendStatus(fiber.StatusOK)
}
