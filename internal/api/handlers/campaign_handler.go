package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/internal/wizard"
)

type CampaignHandler struct {
	cs    service.CampaignService
	store *wizard.Store
}

func NewCampaignHandler(cs service.CampaignService, store *wizard.Store) *CampaignHandler {
	return &CampaignHandler{cs: cs, store: store}
}

func (h *CampaignHandler) StartWizard(c *fiber.Ctx) error {
	userID := GetUserID(c)

	session, err := h.store.Create(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *CampaignHandler) GetWizard(c *fiber.Ctx) error {
	session, err := h.ownedSession(c)
	if err != nil {
		return h.wizardError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *CampaignHandler) ChooseMode(c *fiber.Ctx) error {
	session, err := h.ownedSession(c)
	if err != nil {
		return h.wizardError(c, err)
	}

	var body struct {
		Mode string `json:"mode"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := session.ChooseMode(wizard.Mode(body.Mode)); err != nil {
		return h.wizardError(c, err)
	}
	if err := h.store.Save(c.Context(), session); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

// WizardNext advances one step. At the preview step the draft is
// submitted: the session is removed and the assembled draft returned.
func (h *CampaignHandler) WizardNext(c *fiber.Ctx) error {
	session, err := h.ownedSession(c)
	if err != nil {
		return h.wizardError(c, err)
	}

	var input wizard.StepInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	draft, err := session.Next(&input)
	if err != nil {
		return h.wizardError(c, err)
	}

	if draft != nil {
		if err := h.store.Delete(c.Context(), session.ID); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"submitted": true,
			"draft":     draft,
		})
	}

	if err := h.store.Save(c.Context(), session); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *CampaignHandler) WizardBack(c *fiber.Ctx) error {
	session, err := h.ownedSession(c)
	if err != nil {
		return h.wizardError(c, err)
	}

	if err := session.Back(); err != nil {
		return h.wizardError(c, err)
	}
	if err := h.store.Save(c.Context(), session); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *CampaignHandler) Generate(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.CampaignGateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	plan, err := h.cs.GeneratePlan(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(plan)
}

// ownedSession loads the session and hides other users' sessions behind
// the not-found error.
func (h *CampaignHandler) ownedSession(c *fiber.Ctx) (*wizard.Session, error) {
	session, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if session.UserID != GetUserID(c) {
		return nil, wizard.ErrSessionNotFound
	}
	return session, nil
}

func (h *CampaignHandler) wizardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not found",
		})
	case errors.Is(err, wizard.ErrModeNotChosen),
		errors.Is(err, wizard.ErrAlreadyChosen),
		errors.Is(err, wizard.ErrUnknownMode),
		errors.Is(err, wizard.ErrStepMismatch),
		errors.Is(err, wizard.ErrAlreadyDone),
		errors.Is(err, wizard.ErrIncompleteDraft):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return respondError(c, err)
	}
}
