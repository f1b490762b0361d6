package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in profile.UpdateInput) (profile.Profile, error)
}

type SavedJobsUsecase interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
}

type UserHandler struct {
	profiles ProfileUsecase
	saved    SavedJobsUsecase
}

func NewUserHandler(profiles ProfileUsecase, saved SavedJobsUsecase) *UserHandler {
	return &UserHandler{profiles: profiles, saved: saved}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)

	if h.saved != nil {
		r.Get("/me/saved-jobs", h.ListSavedJobs)
		r.Post("/me/saved-jobs/:jobId", h.SaveJob)
		r.Delete("/me/saved-jobs/:jobId", h.UnsaveJob)
	}
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	prof, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	prof, err := h.profiles.UpdateProfile(c.Context(), userID, req.Input())
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

func (h *UserHandler) ListSavedJobs(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.saved.ListSaved(c.Context(), userID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *UserHandler) SaveJob(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.saved.Save(c.Context(), userID, jobID); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job saved", nil)
}

func (h *UserHandler) UnsaveJob(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.saved.Unsave(c.Context(), userID, jobID); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job removed from saved", nil)
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, profile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, profile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
