package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// ProfileUpdate carries the scalar profile fields a user may change. Nil
// fields are left untouched.
type ProfileUpdate struct {
	Name      *string
	Skills    []string
	Bio       *string
	Location  *string
	Phone     *string
	AvatarURL *string
	ResumeURL *string
}

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) error
	SetRole(ctx context.Context, id uuid.UUID, role Role) error
}

type WorkExperienceRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]WorkExperience, error)
	Create(ctx context.Context, w WorkExperience) (uuid.UUID, error)
	Update(ctx context.Context, w WorkExperience) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type EducationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Education, error)
	Create(ctx context.Context, e Education) (uuid.UUID, error)
	Update(ctx context.Context, e Education) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
