package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// SignupRequest is the POST /users payload.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	PhotoURL string `json:"photoURL"`
}

// SignupResult distinguishes a fresh registration from the idempotent
// already-exists case.
type SignupResult struct {
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
	Created bool         `json:"-"`
}

// UserService covers signup, listing, deletion and role promotion.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Signup registers a user. Re-posting an existing email returns the
// existing record and creates nothing.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to check existing user")
	}
	if existing != nil {
		return &SignupResult{User: existing, Message: "user already exists"}, nil
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("email", user.Email))
	return &SignupResult{User: user, Created: true}, nil
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list users")
	}
	return users, nil
}

// ListInstructors returns users holding the instructor role.
func (s *UserService) ListInstructors(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list instructors")
	}
	return users, nil
}

// Promote sets the role on a user record.
func (s *UserService) Promote(ctx context.Context, id string, role models.UserRole) error {
	if role != models.RoleAdmin && role != models.RoleInstructor {
		return appErrors.Clone(appErrors.ErrValidation, "unsupported role promotion")
	}
	if err := s.repo.UpdateRole(ctx, id, role, time.Now().UTC()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update role")
	}
	s.logger.Info("user role updated", zap.String("id", id), zap.String("role", string(role)))
	return nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete user")
	}
	return nil
}

// HasRole reports whether the user identified by email holds the role.
// Absent users simply answer false.
func (s *UserService) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load user")
	}
	return user.Role == role, nil
}
