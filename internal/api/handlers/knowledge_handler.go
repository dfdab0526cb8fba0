package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type KnowledgeHandler struct {
	s service.KnowledgeService
}

func NewKnowledgeHandler(s service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{s: s}
}

func (h *KnowledgeHandler) CreateDocument(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var dc transfer.DocumentCreation
	if err := c.BodyParser(&dc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	id, err := h.s.CreateDocument(c.Context(), userID, &dc)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

func (h *KnowledgeHandler) ListDocuments(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filter := &transfer.DocumentFilter{
		DocType: c.Query("type"),
	}
	if collectionID := c.QueryInt("collectionId", 0); collectionID > 0 {
		id := int64(collectionID)
		filter.CollectionID = &id
	}

	docs, err := h.s.ListDocuments(c.Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(docs)
}

func (h *KnowledgeHandler) GetDocument(c *fiber.Ctx) error {
	userID := GetUserID(c)
	documentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid document id",
		})
	}

	detail, err := h.s.DocumentInfo(c.Context(), userID, int64(documentID))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *KnowledgeHandler) DeleteDocument(c *fiber.Ctx) error {
	userID := GetUserID(c)
	documentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid document id",
		})
	}

	if err := h.s.DeleteDocument(c.Context(), userID, int64(documentID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *KnowledgeHandler) CreateCollection(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var cc transfer.CollectionCreation
	if err := c.BodyParser(&cc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	id, err := h.s.CreateCollection(c.Context(), userID, &cc)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

func (h *KnowledgeHandler) ListCollections(c *fiber.Ctx) error {
	userID := GetUserID(c)

	cols, err := h.s.ListCollections(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(cols)
}

func (h *KnowledgeHandler) DeleteCollection(c *fiber.Ctx) error {
	userID := GetUserID(c)
	collectionID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid collection id",
		})
	}

	if err := h.s.DeleteCollection(c.Context(), userID, int64(collectionID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
