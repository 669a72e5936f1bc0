package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialdash/internal/service"
	"github.com/maheshrc27/socialdash/internal/transfer"
)

type SocialHandler struct {
	s service.SocialService
}

func NewSocialHandler(s service.SocialService) *SocialHandler {
	return &SocialHandler{s: s}
}

func (h *SocialHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	posts, err := h.s.ListPosts(c.Context(), userID, int64(accountID))
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Failed to fetch posts")
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// CreatePost publishes to the platform first and only stores the post
// locally once the platform accepted it.
func (h *SocialHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	content := c.FormValue("content")
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}
	files := form.File["media"]

	if content == "" && len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content or media is required",
		})
	}

	post, err := h.s.CreatePost(c.Context(), userID, int64(accountID), content, files)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to publish post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *SocialHandler) AddComment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}
	postID := c.Params("postId")

	var req transfer.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	comment, err := h.s.AddComment(c.Context(), userID, int64(accountID), postID, req.Message)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to add comment")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *SocialHandler) HideComment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}
	commentID := c.Params("commentId")

	if err := h.s.HideComment(c.Context(), userID, int64(accountID), commentID); err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to hide comment")
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *SocialHandler) DeleteComment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}
	commentID := c.Params("commentId")

	if err := h.s.DeleteComment(c.Context(), userID, int64(accountID), commentID); err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to delete comment")
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *SocialHandler) ListMessages(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	conversations, err := h.s.ListMessages(c.Context(), userID, int64(accountID))
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Failed to fetch messages")
	}

	return c.Status(fiber.StatusOK).JSON(conversations)
}

func (h *SocialHandler) SendMessage(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	var req transfer.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.RecipientID == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "recipient_id and message are required",
		})
	}

	msg, err := h.s.SendMessage(c.Context(), userID, int64(accountID), req.RecipientID, req.Message)
	if err != nil {
		slog.Info(err.Error())
		return errorJSON(c, err, "Unable to send message")
	}

	return c.Status(fiber.StatusOK).JSON(msg)
}
