package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
)

const (
	cacheKeyApprovedClasses = "classes:approved"
	cacheKeyTopClasses      = "classes:top:%d"
	classCachePattern       = "classes:*"
)

type classRepository interface {
	Create(ctx context.Context, class *models.ClassOffering) error
	FindByID(ctx context.Context, id string) (*models.ClassOffering, error)
	List(ctx context.Context) ([]models.ClassOffering, error)
	ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.ClassOffering, error)
	TopByEnrollment(ctx context.Context, limit int) ([]models.ClassOffering, error)
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) error
	SetFeedback(ctx context.Context, id, feedback string) error
}

type classCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheObserver interface {
	ObserveCacheLookup(hit bool)
}

// SubmitClassRequest is the instructor class submission payload. Whatever
// status the caller sends is discarded; offerings always start pending.
type SubmitClassRequest struct {
	Name           string `json:"name" validate:"required"`
	Image          string `json:"image"`
	InstructorName string `json:"instructorName" validate:"required"`
	Price          int64  `json:"price" validate:"required,gt=0"`
	TotalSeats     int    `json:"totalSeats" validate:"required,gt=0"`
}

// FeedbackRequest carries admin feedback for an offering.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ClassService manages the offering lifecycle and the read-side listings.
type ClassService struct {
	repo      classRepository
	cache     classCache
	metrics   cacheObserver
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService instance. cache and metrics
// may be nil.
func NewClassService(repo classRepository, cache classCache, metrics cacheObserver, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// Submit creates a pending offering on behalf of an instructor.
func (s *ClassService) Submit(ctx context.Context, req SubmitClassRequest, instructorEmail string) (*models.ClassOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.ClassOffering{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: instructorEmail,
		Price:           req.Price,
		TotalSeats:      req.TotalSeats,
		AvailableSeats:  req.TotalSeats,
		EnrolledCount:   0,
		Status:          models.ClassStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create class")
	}

	s.invalidate(ctx)
	s.logger.Info("class submitted", zap.String("id", class.ID), zap.String("instructor", instructorEmail))
	return class, nil
}

// List returns every offering regardless of status.
func (s *ClassService) List(ctx context.Context) ([]models.ClassOffering, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list classes")
	}
	return classes, nil
}

// ListApproved returns approved offerings, served from cache when warm.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.ClassOffering, error) {
	var cached []models.ClassOffering
	if s.lookupCache(ctx, cacheKeyApprovedClasses, &cached) {
		return cached, nil
	}

	classes, err := s.repo.ListByStatus(ctx, models.ClassStatusApproved)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list approved classes")
	}

	s.fillCache(ctx, cacheKeyApprovedClasses, classes)
	return classes, nil
}

// TopByEnrollment returns offerings ranked by enrolled count descending,
// ties broken by insertion order.
func (s *ClassService) TopByEnrollment(ctx context.Context, limit int) ([]models.ClassOffering, error) {
	if limit <= 0 {
		limit = 6
	}

	key := fmt.Sprintf(cacheKeyTopClasses, limit)
	var cached []models.ClassOffering
	if s.lookupCache(ctx, key, &cached) {
		return cached, nil
	}

	classes, err := s.repo.TopByEnrollment(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to rank classes")
	}

	s.fillCache(ctx, key, classes)
	return classes, nil
}

// Get returns a single offering, including its feedback.
func (s *ClassService) Get(ctx context.Context, id string) (*models.ClassOffering, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load class")
	}
	return class, nil
}

// Approve transitions an offering to approved. Re-approving an approved
// offering is a no-op; approving a denied one is rejected.
func (s *ClassService) Approve(ctx context.Context, id string) (*models.ClassOffering, error) {
	return s.transition(ctx, id, models.ClassStatusApproved)
}

// Deny transitions an offering to denied, with the mirrored policy.
func (s *ClassService) Deny(ctx context.Context, id string) (*models.ClassOffering, error) {
	return s.transition(ctx, id, models.ClassStatusDenied)
}

// AttachFeedback upserts the feedback text on an offering.
func (s *ClassService) AttachFeedback(ctx context.Context, id string, req FeedbackRequest) (*models.ClassOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	if err := s.repo.SetFeedback(ctx, id, req.Feedback); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to set feedback")
	}

	s.invalidate(ctx)
	return s.Get(ctx, id)
}

func (s *ClassService) transition(ctx context.Context, id string, target models.ClassStatus) (*models.ClassOffering, error) {
	class, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if class.Status == target {
		return class, nil
	}
	if class.Status != models.ClassStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("class already %s", class.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update class status")
	}

	s.invalidate(ctx)
	class.Status = target
	s.logger.Info("class status changed", zap.String("id", id), zap.String("status", string(target)))
	return class, nil
}

func (s *ClassService) lookupCache(ctx context.Context, key string, dest *[]models.ClassOffering) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.ObserveCacheLookup(hit)
	}
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("class cache read failed", zap.String("key", key), zap.Error(err))
	}
	return hit
}

func (s *ClassService) fillCache(ctx context.Context, key string, value []models.ClassOffering) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("class cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops every class listing key; called on any class mutation
// and by the checkout workflow after a seat count changes.
func (s *ClassService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, classCachePattern); err != nil {
		s.logger.Warn("class cache invalidation failed", zap.Error(err))
	}
}

// InvalidateListings exposes cache invalidation to sibling services.
func (s *ClassService) InvalidateListings(ctx context.Context) {
	s.invalidate(ctx)
}
