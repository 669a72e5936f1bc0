package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialdash/internal/service"
)

type KeysHandler struct {
	s service.ApiKeyService
}

func NewKeysHandler(s service.ApiKeyService) *KeysHandler {
	return &KeysHandler{s: s}
}

func (h *KeysHandler) CreateKey(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.s.Create(c.Context(), userID); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *KeysHandler) ListKeys(c *fiber.Ctx) error {
	userID := GetUserID(c)

	keys, err := h.s.List(c.Context(), userID)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Failed to fetch API keys")
	}

	return c.Status(fiber.StatusOK).JSON(keys)
}

func (h *KeysHandler) DeleteKey(c *fiber.Ctx) error {
	userID := GetUserID(c)
	keyID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid key id",
		})
	}

	if err := h.s.RemoveAPIKey(c.Context(), userID, int64(keyID)); err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to delete API key")
	}

	return c.SendStatus(fiber.StatusOK)
}
