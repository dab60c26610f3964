package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
)

type authUserReader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthConfig defines configuration for token issuance and validation.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService issues and validates access tokens. Token issuance assumes
// the caller's identity was already established upstream; the role claim
// is always resolved from the users collection, never trusted from input.
type AuthService struct {
	users     authUserReader
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// IssueTokenRequest is the /jwt payload.
type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserReader, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, validator: validate, logger: logger, config: config}
}

// IssueToken signs an access token for the given identity. Unknown emails
// still receive a token (signup may not have happened yet); the role guard
// re-checks the store on every protected request anyway.
func (s *AuthService) IssueToken(ctx context.Context, req IssueTokenRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid token payload")
	}

	var role models.UserRole
	user, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		role = user.Role
	case errors.Is(err, mongo.ErrNoDocuments):
		// not registered yet
	default:
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load user")
	}

	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		Email: req.Email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   req.Email,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "unauthorized access")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unauthorized access")
	}

	return claims, nil
}
