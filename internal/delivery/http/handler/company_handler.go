package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	ucompany "jobboard/internal/usecase/company"
	ucjob "jobboard/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in ucompany.Input) (company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (company.Company, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in ucompany.Input) (company.Company, error)
	ListEmployers(ctx context.Context, actorID, companyID uuid.UUID) ([]company.Employer, error)
	AddEmployer(ctx context.Context, actorID, companyID uuid.UUID, email, roleTitle string) (company.Employer, error)
	RemoveEmployer(ctx context.Context, actorID, companyID, userID uuid.UUID) error
}

type JobLister interface {
	List(ctx context.Context, p ucjob.ListParams) ([]job.Job, error)
}

type CompanyHandler struct {
	uc   CompanyUsecase
	jobs JobLister
}

func NewCompanyHandler(uc CompanyUsecase, jobs JobLister) *CompanyHandler {
	return &CompanyHandler{uc: uc, jobs: jobs}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/:id", h.Get)
	r.Get("/:id/jobs", h.ListJobs)

	r.Post("/", auth, h.Create)
	r.Put("/:id", auth, h.Update)
	r.Get("/:id/employers", auth, h.ListEmployers)
	r.Post("/:id/employers", auth, h.AddEmployer)
	r.Delete("/:id/employers/:userId", auth, h.RemoveEmployer)
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	co, err := h.uc.Create(c.Context(), userID, req.Input())
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Company created", dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	co, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) ListJobs(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	if _, err := h.uc.Get(c.Context(), id); err != nil {
		return mapCompanyUsecaseError(err)
	}

	items, err := h.jobs.List(c.Context(), ucjob.ListParams{CompanyID: id, Limit: limit, Offset: offset})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.CompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	co, err := h.uc.Update(c.Context(), userID, id, req.Input())
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Company updated", dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) ListEmployers(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListEmployers(c.Context(), userID, id)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	out := make([]dto.EmployerResponse, 0, len(items))
	for _, e := range items {
		out = append(out, dto.NewEmployerResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanyHandler) AddEmployer(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddEmployerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	e, err := h.uc.AddEmployer(c.Context(), userID, id, req.Email, req.RoleTitle)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Employer added", dto.NewEmployerResponse(e))
}

func (h *CompanyHandler) RemoveEmployer(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	target, err := parseUUIDParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveEmployer(c.Context(), userID, id, target); err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Employer removed", nil)
}

func mapCompanyUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucompany.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucompany.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, ucompany.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucompany.ErrEmployerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employer not found", nil, err)
	case errors.Is(err, ucompany.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, ucompany.ErrNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Company name already taken", nil, err)
	case errors.Is(err, ucompany.ErrAlreadyOwner):
		return middleware.NewAppError(fiber.StatusConflict, "You already own a company", nil, err)
	case errors.Is(err, ucompany.ErrEmployerExists):
		return middleware.NewAppError(fiber.StatusConflict, "User is already an employer of this company", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
