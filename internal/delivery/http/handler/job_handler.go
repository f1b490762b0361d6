package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	ucjob "jobboard/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobUsecase interface {
	List(ctx context.Context, p ucjob.ListParams) ([]job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Create(ctx context.Context, actorID uuid.UUID, in ucjob.Input) (job.Job, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in ucjob.Input) (job.Job, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type JobHandler struct {
	uc JobUsecase
}

func NewJobHandler(uc JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts reads publicly and writes behind auth.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", auth, h.Create)
	r.Put("/:id", auth, h.Update)
	r.Delete("/:id", auth, h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	var companyID uuid.UUID
	if raw := c.Query("companyId"); raw != "" {
		if companyID, err = uuid.Parse(raw); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid companyId", nil, err)
		}
	}

	items, err := h.uc.List(c.Context(), ucjob.ListParams{
		Search:    c.Query("search"),
		Location:  c.Query("location"),
		Type:      firstQuery(c, "type", "jobType"),
		Level:     firstQuery(c, "level", "experienceLevel"),
		CompanyID: companyID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.uc.Create(c.Context(), userID, req.Input())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.uc.Update(c.Context(), userID, id, req.Input())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", dto.NewJobResponse(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

// mapJobUsecaseError also serves the saved-jobs and company-jobs routes.
func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not an employer of this company", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
