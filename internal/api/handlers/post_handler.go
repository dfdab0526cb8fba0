package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/queue"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	asynqClient *asynq.Client
}

func NewPostHandler(s service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: s, asynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	post, delay, err := h.s.Create(c.Context(), userID, &pc)
	if err != nil {
		return respondError(c, err)
	}

	h.enqueueIfScheduled(post, delay)

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid post id",
		})
	}

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	post, delay, err := h.s.Update(c.Context(), userID, int64(postID), &pc)
	if err != nil {
		return respondError(c, err)
	}

	h.enqueueIfScheduled(post, delay)

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filter := &transfer.PostFilter{
		Status:   c.Query("status"),
		Platform: c.Query("platform"),
		From:     parseDate(c.Query("from")),
		To:       parseDate(c.Query("to")),
	}

	posts, err := h.s.List(c.Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid post id",
		})
	}

	post, err := h.s.PostInfo(c.Context(), int64(postID), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid post id",
		})
	}

	if err := h.s.Remove(c.Context(), userID, int64(postID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// enqueueIfScheduled hands scheduled posts to the delayed queue. An
// enqueue failure is logged but does not fail the request; the post row
// already exists and a later update can reschedule it.
func (h *PostHandler) enqueueIfScheduled(post *models.Post, delay time.Duration) {
	if post.Status != models.PostStatusScheduled {
		return
	}

	payload := queue.PublishPostPayload{PostID: post.ID}
	if err := queue.EnqueuePost(h.asynqClient, payload, delay); err != nil {
		slog.Error("failed to enqueue publish task", slog.Int64("post_id", post.ID), slog.Any("error", err))
	}
}
