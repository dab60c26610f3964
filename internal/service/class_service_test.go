package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
)

type mockClassRepo struct {
	classes   []models.ClassOffering
	listCalls int
}

func (r *mockClassRepo) Create(_ context.Context, class *models.ClassOffering) error {
	r.classes = append(r.classes, *class)
	return nil
}

func (r *mockClassRepo) FindByID(_ context.Context, id string) (*models.ClassOffering, error) {
	for i := range r.classes {
		if r.classes[i].ID == id {
			cp := r.classes[i]
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *mockClassRepo) List(_ context.Context) ([]models.ClassOffering, error) {
	r.listCalls++
	out := make([]models.ClassOffering, len(r.classes))
	copy(out, r.classes)
	return out, nil
}

func (r *mockClassRepo) ListByStatus(_ context.Context, status models.ClassStatus) ([]models.ClassOffering, error) {
	r.listCalls++
	out := make([]models.ClassOffering, 0)
	for _, class := range r.classes {
		if class.Status == status {
			out = append(out, class)
		}
	}
	return out, nil
}

func (r *mockClassRepo) TopByEnrollment(_ context.Context, limit int) ([]models.ClassOffering, error) {
	r.listCalls++
	out := make([]models.ClassOffering, len(r.classes))
	copy(out, r.classes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EnrolledCount > out[j].EnrolledCount
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *mockClassRepo) UpdateStatus(_ context.Context, id string, status models.ClassStatus) error {
	for i := range r.classes {
		if r.classes[i].ID == id {
			r.classes[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *mockClassRepo) SetFeedback(_ context.Context, id, feedback string) error {
	for i := range r.classes {
		if r.classes[i].ID == id {
			r.classes[i].Feedback = feedback
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type stubListingCache struct {
	store map[string][]byte
}

func (s *stubListingCache) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubListingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubListingCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
		}
	}
	return nil
}

type stubCacheObserver struct {
	hits   int
	misses int
}

func (s *stubCacheObserver) ObserveCacheLookup(hit bool) {
	if hit {
		s.hits++
		return
	}
	s.misses++
}

func offering(id string, status models.ClassStatus, enrolled int) models.ClassOffering {
	return models.ClassOffering{
		ID:             id,
		Name:           "Class " + id,
		InstructorName: "Coach",
		Price:          2000,
		TotalSeats:     20,
		AvailableSeats: 20 - enrolled,
		EnrolledCount:  enrolled,
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestSubmitClassStartsPending(t *testing.T) {
	repo := &mockClassRepo{}
	svc := NewClassService(repo, nil, nil, time.Minute, nil, zap.NewNop())

	class, err := svc.Submit(context.Background(), SubmitClassRequest{
		Name:           "Junior Karate",
		InstructorName: "Daniel",
		Price:          3000,
		TotalSeats:     12,
	}, "daniel@example.com")
	require.NoError(t, err)

	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.Equal(t, 12, class.AvailableSeats)
	assert.Equal(t, 0, class.EnrolledCount)
	assert.Equal(t, "daniel@example.com", class.InstructorEmail)
	assert.NotEmpty(t, class.ID)
}

func TestSubmitClassValidation(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, nil, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), SubmitClassRequest{Name: "No Seats", InstructorName: "X", Price: 100}, "x@example.com")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestApproveLifecycle(t *testing.T) {
	repo := &mockClassRepo{classes: []models.ClassOffering{offering("c1", models.ClassStatusPending, 0)}}
	svc := NewClassService(repo, nil, nil, time.Minute, nil, zap.NewNop())
	ctx := context.Background()

	class, err := svc.Approve(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusApproved, class.Status)

	// re-approving is a no-op
	class, err = svc.Approve(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusApproved, class.Status)

	// flipping a terminal status is rejected
	_, err = svc.Deny(ctx, "c1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Contains(t, appErr.Message, "already approved")
}

func TestDenyMissingClass(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, nil, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Deny(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestAttachFeedback(t *testing.T) {
	repo := &mockClassRepo{classes: []models.ClassOffering{offering("c1", models.ClassStatusDenied, 0)}}
	svc := NewClassService(repo, nil, nil, time.Minute, nil, zap.NewNop())

	class, err := svc.AttachFeedback(context.Background(), "c1", FeedbackRequest{Feedback: "seat count looks wrong"})
	require.NoError(t, err)
	assert.Equal(t, "seat count looks wrong", class.Feedback)

	_, err = svc.AttachFeedback(context.Background(), "ghost", FeedbackRequest{Feedback: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestListApprovedUsesCache(t *testing.T) {
	repo := &mockClassRepo{classes: []models.ClassOffering{
		offering("c1", models.ClassStatusApproved, 3),
		offering("c2", models.ClassStatusPending, 0),
	}}
	cache := &stubListingCache{}
	observer := &stubCacheObserver{}
	svc := NewClassService(repo, cache, observer, time.Minute, nil, zap.NewNop())
	ctx := context.Background()

	listed, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "c1", listed[0].ID)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 1, observer.misses)

	cached, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Equal(t, listed[0].ID, cached[0].ID)
	assert.Equal(t, 1, repo.listCalls, "second read is served from cache")
	assert.Equal(t, 1, observer.hits)
}

func TestTopByEnrollmentRanking(t *testing.T) {
	repo := &mockClassRepo{classes: []models.ClassOffering{
		offering("c1", models.ClassStatusApproved, 3),
		offering("c2", models.ClassStatusApproved, 7),
		offering("c3", models.ClassStatusApproved, 1),
		offering("c4", models.ClassStatusApproved, 7),
	}}
	svc := NewClassService(repo, nil, nil, time.Minute, nil, zap.NewNop())

	top, err := svc.TopByEnrollment(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "c2", top[0].ID)
	assert.Equal(t, "c4", top[1].ID, "equal counts keep insertion order")
	assert.Equal(t, "c1", top[2].ID)
}

func TestMutationInvalidatesListingCache(t *testing.T) {
	repo := &mockClassRepo{classes: []models.ClassOffering{
		offering("c1", models.ClassStatusApproved, 0),
		offering("c2", models.ClassStatusPending, 0),
	}}
	cache := &stubListingCache{}
	svc := NewClassService(repo, cache, nil, time.Minute, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Contains(t, cache.store, "classes:approved")

	_, err = svc.Approve(ctx, "c2")
	require.NoError(t, err)
	assert.NotContains(t, cache.store, "classes:approved")

	listed, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2, "fresh read sees the newly approved class")
}
