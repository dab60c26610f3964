package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
)

type stubUserReader struct {
	user *models.User
}

func (s *stubUserReader) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newAuthService(reader authUserReader, expiration time.Duration) *AuthService {
	return NewAuthService(reader, nil, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "sports-academy-api",
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	reader := &stubUserReader{user: &models.User{ID: "u1", Email: "ada@example.com", Role: models.RoleAdmin}}
	svc := newAuthService(reader, time.Hour)

	token, err := svc.IssueToken(context.Background(), IssueTokenRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "sports-academy-api", claims.Issuer)
}

func TestIssueTokenUnknownEmailGetsNoRole(t *testing.T) {
	svc := newAuthService(&stubUserReader{}, time.Hour)

	token, err := svc.IssueToken(context.Background(), IssueTokenRequest{Email: "new@example.com"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)
	assert.Empty(t, claims.Role, "role claim never comes from the request")
}

func TestIssueTokenRejectsBadEmail(t *testing.T) {
	svc := newAuthService(&stubUserReader{}, time.Hour)

	_, err := svc.IssueToken(context.Background(), IssueTokenRequest{Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newAuthService(&stubUserReader{}, -time.Minute)

	token, err := svc.IssueToken(context.Background(), IssueTokenRequest{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := newAuthService(&stubUserReader{}, time.Hour)
	token, err := issuer.IssueToken(context.Background(), IssueTokenRequest{Email: "ada@example.com"})
	require.NoError(t, err)

	verifier := NewAuthService(&stubUserReader{}, nil, zap.NewNop(), AuthConfig{Secret: "other-secret", Expiration: time.Hour})
	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newAuthService(&stubUserReader{}, time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}
