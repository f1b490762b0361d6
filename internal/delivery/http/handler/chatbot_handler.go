package handler

import (
	"context"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase/chatbot"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ChatbotUsecase interface {
	HandleMessage(ctx context.Context, userID uuid.UUID, message string) (chatbot.Reply, error)
	MatchJobs(ctx context.Context, userID uuid.UUID, f chatbot.MatchFilters) ([]chatbot.MatchedJob, error)
	JobDetails(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	UserApplications(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	ApplicationStats(ctx context.Context, userID uuid.UUID) (application.Stats, error)
}

type ChatbotHandler struct {
	uc ChatbotUsecase
}

func NewChatbotHandler(uc ChatbotUsecase) *ChatbotHandler {
	return &ChatbotHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *ChatbotHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/message", h.Message)
	r.Get("/matchJobs", h.MatchJobs)
	r.Get("/jobDetails/:jobId", h.JobDetails)
	r.Get("/userApplications", h.UserApplications)
	r.Get("/applicationStats", h.ApplicationStats)
}

func (h *ChatbotHandler) Message(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.ChatMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	reply, err := h.uc.HandleMessage(c.Context(), userID, req.Message)
	if err != nil {
		return mapChatbotUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatReply(reply))
}

func (h *ChatbotHandler) MatchJobs(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchJobs(c.Context(), userID, chatbot.MatchFilters{
		Skills:   parseSkillsQuery(c.Query("skills")),
		Level:    firstQuery(c, "experienceLevel", "level"),
		Type:     firstQuery(c, "jobType", "type"),
		Location: c.Query("location"),
		Limit:    limit,
	})
	if err != nil {
		return mapChatbotUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchJobsResponse(items))
}

func (h *ChatbotHandler) JobDetails(c fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	j, err := h.uc.JobDetails(c.Context(), jobID)
	if err != nil {
		return mapChatbotUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *ChatbotHandler) UserApplications(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.UserApplications(c.Context(), userID)
	if err != nil {
		return mapChatbotUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ChatbotHandler) ApplicationStats(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	st, err := h.uc.ApplicationStats(c.Context(), userID)
	if err != nil {
		return mapChatbotUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func mapChatbotUsecaseError(err error) error {
	switch {
	case errors.Is(err, chatbot.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, chatbot.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, chatbot.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
