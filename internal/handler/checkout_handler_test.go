package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/sports-academy-api/internal/models"
	"github.com/noah-isme/sports-academy-api/internal/service"
	"github.com/noah-isme/sports-academy-api/pkg/payments"
)

type testSelectionStore struct {
	items map[string]*models.SelectedClass
}

func newTestSelectionStore() *testSelectionStore {
	return &testSelectionStore{items: make(map[string]*models.SelectedClass)}
}

func (s *testSelectionStore) Create(_ context.Context, selection *models.SelectedClass) error {
	cp := *selection
	s.items[selection.ID] = &cp
	return nil
}

func (s *testSelectionStore) FindByID(_ context.Context, id string) (*models.SelectedClass, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *item
	return &cp, nil
}

func (s *testSelectionStore) ListByEmail(_ context.Context, email string) ([]models.SelectedClass, error) {
	out := make([]models.SelectedClass, 0)
	for _, item := range s.items {
		if item.Email == email {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *testSelectionStore) Exists(_ context.Context, email, classID string) (bool, error) {
	for _, item := range s.items {
		if item.Email == email && item.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (s *testSelectionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.items, id)
	return nil
}

func (s *testSelectionStore) TakeByID(_ context.Context, id string) (*models.SelectedClass, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(s.items, id)
	cp := *item
	return &cp, nil
}

type testClassStore struct {
	classes map[string]*models.ClassOffering
}

func (s *testClassStore) FindByID(_ context.Context, id string) (*models.ClassOffering, error) {
	class, ok := s.classes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *class
	return &cp, nil
}

func (s *testClassStore) ReserveSeat(_ context.Context, id string) error {
	class, ok := s.classes[id]
	if !ok || class.AvailableSeats <= 0 {
		return mongo.ErrNoDocuments
	}
	class.AvailableSeats--
	class.EnrolledCount++
	return nil
}

func (s *testClassStore) ReleaseSeat(_ context.Context, id string) error {
	class, ok := s.classes[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	class.AvailableSeats++
	class.EnrolledCount--
	return nil
}

type testPaymentStore struct {
	items map[string]*models.Payment
}

func (s *testPaymentStore) Create(_ context.Context, payment *models.Payment) error {
	cp := *payment
	s.items[payment.ID] = &cp
	return nil
}

func (s *testPaymentStore) Delete(_ context.Context, id string) error {
	delete(s.items, id)
	return nil
}

func (s *testPaymentStore) ListByEmail(_ context.Context, email string) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, item := range s.items {
		if item.Email == email {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *testPaymentStore) List(_ context.Context) ([]models.Payment, error) {
	out := make([]models.Payment, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	return out, nil
}

type testEnrollmentStore struct {
	items map[string]*models.EnrolledClass
}

func (s *testEnrollmentStore) Create(_ context.Context, enrollment *models.EnrolledClass) error {
	cp := *enrollment
	s.items[enrollment.ID] = &cp
	return nil
}

func (s *testEnrollmentStore) Delete(_ context.Context, id string) error {
	delete(s.items, id)
	return nil
}

func (s *testEnrollmentStore) ListByEmail(_ context.Context, email string) ([]models.EnrolledClass, error) {
	out := make([]models.EnrolledClass, 0)
	for _, item := range s.items {
		if item.Email == email {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *testEnrollmentStore) Exists(_ context.Context, email, classID string) (bool, error) {
	for _, item := range s.items {
		if item.Email == email && item.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

type checkoutRouterFixture struct {
	router     *gin.Engine
	signer     *payments.IntentSigner
	selections *testSelectionStore
	classes    *testClassStore
	payments   *testPaymentStore
}

func buildCheckoutRouter(t *testing.T) *checkoutRouterFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	selections := newTestSelectionStore()
	classes := &testClassStore{classes: map[string]*models.ClassOffering{
		"class-1": {
			ID:             "class-1",
			Name:           "Junior Swim",
			InstructorName: "Katie",
			Price:          5500,
			TotalSeats:     8,
			AvailableSeats: 8,
			Status:         models.ClassStatusApproved,
		},
	}}
	paymentStore := &testPaymentStore{items: make(map[string]*models.Payment)}
	enrollments := &testEnrollmentStore{items: make(map[string]*models.EnrolledClass)}
	signer := payments.NewIntentSigner("test-payment-secret", time.Hour)

	svc := service.NewCheckoutService(
		selections, classes, paymentStore, enrollments,
		signer, nil, nil, "usd", nil, zap.NewNop(),
	)
	checkoutHandler := NewCheckoutHandler(svc)

	router := gin.New()
	router.Use(testAuth())
	router.POST("/selectedClasses", checkoutHandler.Select)
	router.GET("/selectedClass", checkoutHandler.Cart)
	router.DELETE("/selectedClass/:id", checkoutHandler.Remove)
	router.POST("/create-payment-intent", checkoutHandler.CreateIntent)
	router.POST("/payments", checkoutHandler.Checkout)
	router.GET("/paymentSuccessfully/:email", checkoutHandler.PaymentHistory)
	router.GET("/enrolledStudent/:email", checkoutHandler.Enrolled)
	router.GET("/payments/export", checkoutHandler.ExportPayments)

	return &checkoutRouterFixture{
		router:     router,
		signer:     signer,
		selections: selections,
		classes:    classes,
		payments:   paymentStore,
	}
}

func jsonRequest(method, path, body, email string) *http.Request {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("X-Test-Email", email)
	}
	return req
}

func TestCheckoutEndToEnd(t *testing.T) {
	f := buildCheckoutRouter(t)
	email := "swimmer@example.com"

	// select the class
	resp := performRequest(f.router, jsonRequest(http.MethodPost, "/selectedClasses", `{"classId":"class-1"}`, email))
	require.Equal(t, http.StatusCreated, resp.Code)
	var selection models.SelectedClass
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &selection))
	require.Equal(t, "class-1", selection.ClassID)

	// cart shows it
	resp = performRequest(f.router, jsonRequest(http.MethodGet, "/selectedClass", "", email))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), selection.ID)

	// ask for a payment intent covering the price
	resp = performRequest(f.router, jsonRequest(http.MethodPost, "/create-payment-intent", `{"price":5500}`, email))
	require.Equal(t, http.StatusOK, resp.Code)
	var intent payments.Intent
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &intent))
	require.NotEmpty(t, intent.ClientSecret)

	// complete the checkout
	payload := fmt.Sprintf(`{"selectedClassId":%q,"confirmation":%q}`, selection.ID, intent.ClientSecret)
	resp = performRequest(f.router, jsonRequest(http.MethodPost, "/payments", payload, email))
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"payment"`)
	require.Contains(t, resp.Body.String(), `"enrolled"`)
	require.Equal(t, 7, f.classes.classes["class-1"].AvailableSeats)

	// history and enrollment listing reflect it
	resp = performRequest(f.router, jsonRequest(http.MethodGet, "/paymentSuccessfully/"+email, "", email))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"class-1"`)

	resp = performRequest(f.router, jsonRequest(http.MethodGet, "/enrolledStudent/"+email, "", email))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "Junior Swim")

	// replaying the same checkout is refused
	resp = performRequest(f.router, jsonRequest(http.MethodPost, "/payments", payload, email))
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), `"error":true`)
}

func TestCheckoutEndpointRejectsForgedConfirmation(t *testing.T) {
	f := buildCheckoutRouter(t)
	email := "swimmer@example.com"

	resp := performRequest(f.router, jsonRequest(http.MethodPost, "/selectedClasses", `{"classId":"class-1"}`, email))
	require.Equal(t, http.StatusCreated, resp.Code)
	var selection models.SelectedClass
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &selection))

	payload := fmt.Sprintf(`{"selectedClassId":%q,"confirmation":"pi_x.5500.usd.9999999999.forged"}`, selection.ID)
	resp = performRequest(f.router, jsonRequest(http.MethodPost, "/payments", payload, email))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, 8, f.classes.classes["class-1"].AvailableSeats)
	require.Empty(t, f.payments.items)
}

func TestHistoryEndpointsEnforceSelfAccess(t *testing.T) {
	f := buildCheckoutRouter(t)

	resp := performRequest(f.router, jsonRequest(http.MethodGet, "/paymentSuccessfully/victim@example.com", "", "snoop@example.com"))
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.Contains(t, resp.Body.String(), "forbidden message")

	resp = performRequest(f.router, jsonRequest(http.MethodGet, "/enrolledStudent/victim@example.com", "", "snoop@example.com"))
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRemoveSelectionEndpoint(t *testing.T) {
	f := buildCheckoutRouter(t)
	email := "swimmer@example.com"

	resp := performRequest(f.router, jsonRequest(http.MethodPost, "/selectedClasses", `{"classId":"class-1"}`, email))
	require.Equal(t, http.StatusCreated, resp.Code)
	var selection models.SelectedClass
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &selection))

	resp = performRequest(f.router, jsonRequest(http.MethodDelete, "/selectedClass/"+selection.ID, "", "other@example.com"))
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = performRequest(f.router, jsonRequest(http.MethodDelete, "/selectedClass/"+selection.ID, "", email))
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Empty(t, f.selections.items)
}

func TestExportPaymentsEndpoint(t *testing.T) {
	f := buildCheckoutRouter(t)
	f.payments.items["p1"] = &models.Payment{
		ID: "p1", Email: "a@example.com", ClassName: "Junior Swim",
		Amount: 5500, Currency: "usd", TransactionID: "txn-1",
		CreatedAt: time.Now().UTC(),
	}

	resp := performRequest(f.router, jsonRequest(http.MethodGet, "/payments/export?format=csv", "", "admin@example.com"))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	require.Contains(t, resp.Body.String(), "Junior Swim")
	require.Contains(t, resp.Body.String(), "55.00")

	resp = performRequest(f.router, jsonRequest(http.MethodGet, "/payments/export?format=pdf", "", "admin@example.com"))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))

	resp = performRequest(f.router, jsonRequest(http.MethodGet, "/payments/export?format=xml", "", "admin@example.com"))
	require.Equal(t, http.StatusBadRequest, resp.Code)
}
