package auth

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

// FederatedProfile is the identity returned by an OAuth provider.
type FederatedProfile struct {
	ID          string
	DisplayName string
	Emails      []string
	Photos      []string
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return user.User{}, Tokens{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	if exists {
		return user.User{}, Tokens{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         user.RoleJobSeeker,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return user.User{}, Tokens{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, Tokens{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	return s.issue(created)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, ErrInvalidCredentials
		}
		return user.User{}, Tokens{}, ErrInternal
	}

	// Accounts created through OAuth have no password.
	if u.PasswordHash == "" {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !s.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrUnauthorized
		}
		return Tokens{}, ErrInternal
	}

	_, toks, err := s.issue(u)
	return toks, err
}

// LoginWithProvider resolves a federated identity to a local user: first by
// provider id, then by the first email (linking the provider id), otherwise
// a new job seeker account is created.
func (s *Service) LoginWithProvider(ctx context.Context, p FederatedProfile) (user.User, Tokens, error) {
	providerID := strings.TrimSpace(p.ID)
	if providerID == "" {
		return user.User{}, Tokens{}, ErrInvalidInput
	}

	u, err := s.users.GetUserByGoogleID(ctx, providerID)
	if err == nil {
		return s.issue(u)
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, Tokens{}, ErrInternal
	}

	email := ""
	if len(p.Emails) > 0 {
		email = normalizeEmail(p.Emails[0])
	}
	if email == "" {
		return user.User{}, Tokens{}, ErrInvalidInput
	}

	u, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.LinkGoogleID(ctx, u.ID, providerID); err != nil {
			return user.User{}, Tokens{}, ErrInternal
		}
		u.GoogleID = &providerID
		return s.issue(u)
	case !errors.Is(err, user.ErrNotFound):
		return user.User{}, Tokens{}, ErrInternal
	}

	name := strings.TrimSpace(p.DisplayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	avatar := ""
	if len(p.Photos) > 0 {
		avatar = p.Photos[0]
	}

	nu := user.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Role:      user.RoleJobSeeker,
		AvatarURL: avatar,
		GoogleID:  &providerID,
	}
	if err := s.users.CreateUser(ctx, nu); err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	created, err := s.users.GetUserByID(ctx, nu.ID)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	return s.issue(created)
}

func (s *Service) issue(u user.User) (user.User, Tokens, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	return sanitizeUser(u), Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
