package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/payments"
)

// Checkout stage labels, reported inside CheckoutError.
const (
	StageReserveSeat      = "reserve_seat"
	StageConsumeSelection = "consume_selection"
	StageRecordPayment    = "record_payment"
	StageRecordEnrollment = "record_enrollment"
)

type selectionRepository interface {
	Create(ctx context.Context, selection *models.SelectedClass) error
	FindByID(ctx context.Context, id string) (*models.SelectedClass, error)
	ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error)
	Exists(ctx context.Context, email, classID string) (bool, error)
	Delete(ctx context.Context, id string) error
	TakeByID(ctx context.Context, id string) (*models.SelectedClass, error)
}

type seatLedger interface {
	FindByID(ctx context.Context, id string) (*models.ClassOffering, error)
	ReserveSeat(ctx context.Context, id string) error
	ReleaseSeat(ctx context.Context, id string) error
}

type paymentLedger interface {
	Create(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id string) error
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
}

type enrollmentLedger interface {
	Create(ctx context.Context, enrollment *models.EnrolledClass) error
	Delete(ctx context.Context, id string) error
	ListByEmail(ctx context.Context, email string) ([]models.EnrolledClass, error)
	Exists(ctx context.Context, email, classID string) (bool, error)
}

type intentProvider interface {
	CreateIntent(amount int64, currency string) (*payments.Intent, error)
	VerifyConfirmation(clientSecret string, amount int64, currency string) (string, error)
}

type listingInvalidator interface {
	InvalidateListings(ctx context.Context)
}

type checkoutObserver interface {
	ObserveCheckout(result string)
}

// SelectClassRequest adds a class to the caller's cart.
type SelectClassRequest struct {
	ClassID string `json:"classId" validate:"required"`
}

// IntentRequest asks for a payment intent covering the given amount.
type IntentRequest struct {
	Price int64 `json:"price" validate:"required,gt=0"`
}

// CheckoutRequest completes the enrollment for one selected class.
type CheckoutRequest struct {
	SelectedClassID string `json:"selectedClassId" validate:"required"`
	Confirmation    string `json:"confirmation" validate:"required"`
}

// CheckoutResult is returned after all checkout effects are applied.
type CheckoutResult struct {
	Payment  *models.Payment       `json:"payment"`
	Enrolled *models.EnrolledClass `json:"enrolled"`
}

// CheckoutService is the enrollment workflow engine. A checkout either
// applies all of payment + enrollment + selection removal + seat counters,
// or rolls back to the pre-call state before returning the error.
type CheckoutService struct {
	selections  selectionRepository
	classes     seatLedger
	payments    paymentLedger
	enrollments enrollmentLedger
	intents     intentProvider
	listings    listingInvalidator
	metrics     checkoutObserver
	currency    string
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCheckoutService constructs a CheckoutService. listings and metrics
// may be nil.
func NewCheckoutService(
	selections selectionRepository,
	classes seatLedger,
	paymentRepo paymentLedger,
	enrollments enrollmentLedger,
	intents intentProvider,
	listings listingInvalidator,
	metrics checkoutObserver,
	currency string,
	validate *validator.Validate,
	logger *zap.Logger,
) *CheckoutService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutService{
		selections:  selections,
		classes:     classes,
		payments:    paymentRepo,
		enrollments: enrollments,
		intents:     intents,
		listings:    listings,
		metrics:     metrics,
		currency:    currency,
		validator:   validate,
		logger:      logger,
	}
}

// Select puts an approved class into the caller's cart. A class already
// selected or already enrolled is rejected, keeping the at-most-one
// invariant per (student, class) pair.
func (s *CheckoutService) Select(ctx context.Context, req SelectClassRequest, email string) (*models.SelectedClass, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	class, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load class")
	}
	if class.Status != models.ClassStatusApproved {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class is not open for enrollment")
	}

	if selected, err := s.selections.Exists(ctx, email, req.ClassID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to check cart")
	} else if selected {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class already selected")
	}
	if enrolled, err := s.enrollments.Exists(ctx, email, req.ClassID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to check enrollment")
	} else if enrolled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class already enrolled")
	}

	selection := &models.SelectedClass{
		ID:             uuid.NewString(),
		Email:          email,
		ClassID:        class.ID,
		ClassName:      class.Name,
		Image:          class.Image,
		InstructorName: class.InstructorName,
		Price:          class.Price,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.selections.Create(ctx, selection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create selection")
	}
	return selection, nil
}

// Cart lists the caller's pending selections.
func (s *CheckoutService) Cart(ctx context.Context, email string) ([]models.SelectedClass, error) {
	selections, err := s.selections.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list selections")
	}
	return selections, nil
}

// RemoveSelection drops a selection owned by the caller.
func (s *CheckoutService) RemoveSelection(ctx context.Context, id, email string) error {
	selection, err := s.selections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "selected class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load selection")
	}
	if selection.Email != email {
		return appErrors.Clone(appErrors.ErrForbidden, "forbidden message")
	}

	if err := s.selections.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "selected class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete selection")
	}
	return nil
}

// CreateIntent issues a payment intent for the amount the client is about
// to pay.
func (s *CheckoutService) CreateIntent(ctx context.Context, req IntentRequest) (*payments.Intent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intent payload")
	}
	intent, err := s.intents.CreateIntent(req.Price, s.currency)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create payment intent")
	}
	return intent, nil
}

// Checkout converts a selection into a payment plus an enrollment and
// claims a seat, all-or-nothing.
//
// The seat is reserved with a conditional decrement before anything else
// is written: the SeatsExhausted path provably leaves no payment behind
// and the selection untouched. The conditional selection delete that
// follows is the linearization point between concurrent checkouts on the
// same selection id; a retry after a confirmed success lands on the
// selection lookup and fails with NotFound instead of double charging.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest, email string) (*CheckoutResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checkout payload")
	}

	selection, err := s.selections.FindByID(ctx, req.SelectedClassID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.observe("not_found")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load selection")
	}
	if selection.Email != email {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "forbidden message")
	}

	transactionID, err := s.intents.VerifyConfirmation(req.Confirmation, selection.Price, s.currency)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment confirmation")
	}

	if err := s.classes.ReserveSeat(ctx, selection.ClassID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.observe("seats_exhausted")
			return nil, appErrors.Clone(appErrors.ErrSeatsExhausted, "no seats available")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to reserve seat")
	}

	taken, err := s.selections.TakeByID(ctx, selection.ID)
	if err != nil {
		causes := []error{err}
		causes = s.compensate(ctx, causes, func(ctx context.Context) error {
			return s.classes.ReleaseSeat(ctx, selection.ClassID)
		})
		if errors.Is(err, mongo.ErrNoDocuments) {
			// lost the race against a concurrent checkout
			s.observe("not_found")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected class not found")
		}
		s.observe("failed")
		return nil, appErrors.NewCheckoutError(StageConsumeSelection, causes...)
	}

	now := time.Now().UTC()
	payment := &models.Payment{
		ID:            uuid.NewString(),
		Email:         taken.Email,
		ClassID:       taken.ClassID,
		ClassName:     taken.ClassName,
		Amount:        taken.Price,
		Currency:      s.currency,
		TransactionID: transactionID,
		CreatedAt:     now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		causes := s.compensate(ctx, []error{err},
			func(ctx context.Context) error { return s.selections.Create(ctx, taken) },
			func(ctx context.Context) error { return s.classes.ReleaseSeat(ctx, selection.ClassID) },
		)
		s.observe("failed")
		return nil, appErrors.NewCheckoutError(StageRecordPayment, causes...)
	}

	enrolled := &models.EnrolledClass{
		ID:             uuid.NewString(),
		Email:          taken.Email,
		ClassID:        taken.ClassID,
		ClassName:      taken.ClassName,
		Image:          taken.Image,
		InstructorName: taken.InstructorName,
		Price:          taken.Price,
		EnrolledAt:     now,
	}
	if err := s.enrollments.Create(ctx, enrolled); err != nil {
		causes := s.compensate(ctx, []error{err},
			func(ctx context.Context) error { return s.payments.Delete(ctx, payment.ID) },
			func(ctx context.Context) error { return s.selections.Create(ctx, taken) },
			func(ctx context.Context) error { return s.classes.ReleaseSeat(ctx, selection.ClassID) },
		)
		s.observe("failed")
		return nil, appErrors.NewCheckoutError(StageRecordEnrollment, causes...)
	}

	if s.listings != nil {
		s.listings.InvalidateListings(ctx)
	}
	s.observe("success")
	s.logger.Info("checkout completed",
		zap.String("email", taken.Email),
		zap.String("classId", taken.ClassID),
		zap.String("transactionId", transactionID),
	)
	return &CheckoutResult{Payment: payment, Enrolled: enrolled}, nil
}

// PaymentsByEmail returns the student's payment history, newest first.
func (s *CheckoutService) PaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	history, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list payments")
	}
	return history, nil
}

// EnrolledByEmail returns the student's enrolled classes.
func (s *CheckoutService) EnrolledByEmail(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	enrolled, err := s.enrollments.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list enrollments")
	}
	return enrolled, nil
}

// PaymentLedger returns every payment for the admin export.
func (s *CheckoutService) PaymentLedger(ctx context.Context) ([]models.Payment, error) {
	ledger, err := s.payments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list payments")
	}
	return ledger, nil
}

// compensate runs rollback steps in order, appending any rollback failure
// to the cause list. Rollback failures are logged, never swallowed.
func (s *CheckoutService) compensate(ctx context.Context, causes []error, steps ...func(context.Context) error) []error {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			s.logger.Error("checkout compensation step failed", zap.Error(err))
			causes = append(causes, err)
		}
	}
	return causes
}

func (s *CheckoutService) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveCheckout(result)
	}
}
