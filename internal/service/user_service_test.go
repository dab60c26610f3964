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

type mockUserRepo struct {
	users       []models.User
	createCalls int
}

func (r *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			cp := r.users[i]
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *mockUserRepo) Create(_ context.Context, user *models.User) error {
	r.createCalls++
	r.users = append(r.users, *user)
	return nil
}

func (r *mockUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *mockUserRepo) ListByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	out := make([]models.User, 0)
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *mockUserRepo) UpdateRole(_ context.Context, id string, role models.UserRole, updatedAt time.Time) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Role = role
			r.users[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *mockUserRepo) Delete(_ context.Context, id string) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func TestSignupIsIdempotent(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Signup(ctx, SignupRequest{Email: "Sam@Example.com", Name: "Sam"})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "sam@example.com", first.User.Email, "emails are normalised")
	assert.Equal(t, models.RoleStudent, first.User.Role)

	second, err := svc.Signup(ctx, SignupRequest{Email: "sam@example.com", Name: "Sam Again"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, "user already exists", second.Message)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, repo.createCalls)
}

func TestSignupValidation(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, zap.NewNop())

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "not-an-email", Name: "X"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestPromoteChangesRoleVisibleToHasRole(t *testing.T) {
	repo := &mockUserRepo{users: []models.User{{ID: "u1", Email: "lee@example.com", Role: models.RoleStudent}}}
	svc := NewUserService(repo, nil, zap.NewNop())
	ctx := context.Background()

	has, err := svc.HasRole(ctx, "lee@example.com", models.RoleInstructor)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, svc.Promote(ctx, "u1", models.RoleInstructor))

	has, err = svc.HasRole(ctx, "lee@example.com", models.RoleInstructor)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPromoteRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, zap.NewNop())

	err := svc.Promote(context.Background(), "u1", models.UserRole("superuser"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestPromoteMissingUser(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, zap.NewNop())

	err := svc.Promote(context.Background(), "ghost", models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestHasRoleAbsentUser(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, zap.NewNop())

	has, err := svc.HasRole(context.Background(), "nobody@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestListInstructors(t *testing.T) {
	repo := &mockUserRepo{users: []models.User{
		{ID: "u1", Email: "a@example.com", Role: models.RoleInstructor},
		{ID: "u2", Email: "b@example.com", Role: models.RoleStudent},
		{ID: "u3", Email: "c@example.com", Role: models.RoleInstructor},
	}}
	svc := NewUserService(repo, nil, zap.NewNop())

	instructors, err := svc.ListInstructors(context.Background())
	require.NoError(t, err)
	require.Len(t, instructors, 2)
}

func TestDeleteUser(t *testing.T) {
	repo := &mockUserRepo{users: []models.User{{ID: "u1", Email: "a@example.com"}}}
	svc := NewUserService(repo, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "u1"))

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
