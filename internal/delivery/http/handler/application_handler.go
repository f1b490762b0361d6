package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/pkg/response"
	ucapp "jobboard/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID uuid.UUID, in ucapp.ApplyInput) (application.Application, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	Stats(ctx context.Context, userID uuid.UUID) (application.Stats, error)
	ListForJob(ctx context.Context, actorID, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, actorID, id uuid.UUID, status string) (application.Application, error)
}

type ApplicationHandler struct {
	uc ApplicationUsecase
}

func NewApplicationHandler(uc ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterJobRoutes mounts the per-job endpoints on the /jobs group.
func (h *ApplicationHandler) RegisterJobRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/:id/apply", auth, h.Apply)
	r.Get("/:id/applications", auth, h.ListForJob)
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/me", auth, h.ListMine)
	r.Get("/me/stats", auth, h.Stats)
	r.Patch("/:id/status", auth, h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
	}

	a, err := h.uc.Apply(c.Context(), userID, jobID, ucapp.ApplyInput{CoverLetter: req.CoverLetter, ResumeURL: req.ResumeURL})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) Stats(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	st, err := h.uc.Stats(c.Context(), userID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListForJob(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), userID, id, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", dto.NewApplicationResponse(a))
}

func mapApplicationUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucapp.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucapp.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapp.ErrJobClosed):
		return middleware.NewAppError(fiber.StatusBadRequest, "This job is no longer accepting applications", nil, err)
	case errors.Is(err, ucapp.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", nil, err)
	case errors.Is(err, ucapp.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not an employer of this company", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
