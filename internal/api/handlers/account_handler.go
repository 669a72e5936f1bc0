package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/socialdash/internal/queue"
	"github.com/maheshrc27/socialdash/internal/service"
	"github.com/maheshrc27/socialdash/internal/transfer"
)

type AccountHandler struct {
	ps          service.PlatformService
	AsynqClient *asynq.Client
}

func NewAccountHandler(ps service.PlatformService, asynqClient *asynq.Client) *AccountHandler {
	return &AccountHandler{ps: ps, AsynqClient: asynqClient}
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	accounts, err := h.ps.List(c.Context(), userID)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Failed to fetch social accounts")
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

// ConnectAccount validates the submitted platform token, stores the
// account and enqueues an initial post sync.
func (h *AccountHandler) ConnectAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.ConnectAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.Platform == "" || req.AccessToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "platform and access_token are required",
		})
	}

	account, err := h.ps.Connect(c.Context(), userID, &req)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to connect account")
	}

	err = queue.EnqueueSync(h.AsynqClient, queue.SyncAccountPayload{
		UserID:    userID,
		AccountID: account.ID,
	}, 0)
	if err != nil {
		slog.Info(err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(account)
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	if err := h.ps.Delete(c.Context(), userID, int64(accountID)); err != nil {
		return errorJSON(c, err, "Unable to delete social account")
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *AccountHandler) SyncAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	err = queue.EnqueueSync(h.AsynqClient, queue.SyncAccountPayload{
		UserID:    userID,
		AccountID: int64(accountID),
	}, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to schedule sync",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Sync scheduled",
	})
}

// ListAvailablePages lists the external accounts a user token can
// manage, so the UI can offer them for connection.
func (h *AccountHandler) ListAvailablePages(c *fiber.Ctx) error {
	userID := GetUserID(c)
	platform := c.Params("platform")
	accessToken := c.Query("access_token")

	if accessToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "access_token is required",
		})
	}

	pages, err := h.ps.ListAvailable(c.Context(), userID, platform, accessToken)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Failed to fetch pages")
	}

	return c.Status(fiber.StatusOK).JSON(pages)
}
