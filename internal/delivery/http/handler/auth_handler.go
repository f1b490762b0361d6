package handler

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/pkg/response"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, ucauth.Tokens, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, ucauth.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (ucauth.Tokens, error)
	LoginWithProvider(ctx context.Context, p ucauth.FederatedProfile) (user.User, ucauth.Tokens, error)
}

type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (oauth.Profile, error)
}

// StateIssuer mints and checks the anti-forgery state of an OAuth round trip.
type StateIssuer interface {
	GenerateStateToken() (string, error)
	ValidateStateToken(token string) error
}

type AuthHandler struct {
	uc          AuthUsecase
	google      GoogleProvider
	states      StateIssuer
	frontendURL string
	logger      *log.Logger
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAuthHandler wires password auth. Google sign-in routes are only
// registered when google is non-nil.
func NewAuthHandler(uc AuthUsecase, google GoogleProvider, states StateIssuer, frontendURL string, logger *log.Logger) *AuthHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthHandler{
		uc:          uc,
		google:      google,
		states:      states,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)

	if h.google != nil && h.states != nil {
		r.Get("/google", h.GoogleRedirect)
		r.Get("/google/callback", h.GoogleCallback)
	}
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, authPayload(usr, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, authPayload(usr, tokens))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, tokens)
}

func (h *AuthHandler) GoogleRedirect(c fiber.Ctx) error {
	state, err := h.states.GenerateStateToken()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   oauthStateMaxAge,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect().Status(fiber.StatusFound).To(h.google.AuthCodeURL(state))
}

// GoogleCallback never answers with JSON: the browser is always sent back to
// the frontend, with a token on success.
func (h *AuthHandler) GoogleCallback(c fiber.Ctx) error {
	state := c.Query("state")
	cookieState := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)

	if state == "" || state != cookieState {
		h.logger.Printf("[Auth] google callback state mismatch rid=%s", middleware.RequestID(c))
		return h.oauthFailed(c)
	}
	if err := h.states.ValidateStateToken(state); err != nil {
		h.logger.Printf("[Auth] google callback invalid state rid=%s err=%v", middleware.RequestID(c), err)
		return h.oauthFailed(c)
	}

	prof, err := h.google.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		h.logger.Printf("[Auth] google exchange failed rid=%s err=%v", middleware.RequestID(c), err)
		return h.oauthFailed(c)
	}

	_, tokens, err := h.uc.LoginWithProvider(c.Context(), ucauth.FederatedProfile{
		ID:          prof.ID,
		DisplayName: prof.DisplayName,
		Emails:      prof.Emails,
		Photos:      prof.Photos,
	})
	if err != nil {
		h.logger.Printf("[Auth] google login failed rid=%s err=%v", middleware.RequestID(c), err)
		return h.oauthFailed(c)
	}

	target := h.frontendURL + "/auth/callback?token=" + url.QueryEscape(tokens.AccessToken)
	return c.Redirect().Status(fiber.StatusFound).To(target)
}

func (h *AuthHandler) oauthFailed(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusFound).To(h.frontendURL + "/login?error=oauth_failed")
}

func authPayload(u user.User, t ucauth.Tokens) map[string]any {
	return map[string]any{
		"user":         dto.NewUserResponse(u),
		"accessToken":  t.AccessToken,
		"refreshToken": t.RefreshToken,
	}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, ucauth.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, ucauth.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
