package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subscription-be/internal/dto"
	"subscription-be/internal/entity"
	"subscription-be/internal/pkg/apperror"
	"subscription-be/internal/pkg/serverutils"
	"subscription-be/pkg/billing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubscriptionService struct {
	createRes  *dto.SubscriptionResponse
	createErr  error
	trialRes   *dto.SubscriptionResponse
	trialErr   error
	updateRes  *dto.SubscriptionResponse
	updateErr  error
	cancelErr  error
	getRes     *dto.SubscriptionResponse
	getErr     error
	webhookErr error

	webhookPayload   []byte
	webhookSignature string
}

func (s *stubSubscriptionService) Create(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	return s.createRes, s.createErr
}

func (s *stubSubscriptionService) StartFreeTrial(ctx context.Context, req *dto.FreeTrialRequest) (*dto.SubscriptionResponse, error) {
	return s.trialRes, s.trialErr
}

func (s *stubSubscriptionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	return s.updateRes, s.updateErr
}

func (s *stubSubscriptionService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.cancelErr
}

func (s *stubSubscriptionService) GetActiveByUser(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	return s.getRes, s.getErr
}

func (s *stubSubscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	s.webhookPayload = append([]byte(nil), payload...)
	s.webhookSignature = signature
	return s.webhookErr
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestApp(svc *stubSubscriptionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))

	api := app.Group("/api")
	NewSubscriptionController(svc).RegisterRoutes(api)
	NewWebhookController(svc).RegisterRoutes(api)
	return app
}

func bearerToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubscriptionRoutes_RequireToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(&stubSubscriptionService{})

	req := jsonRequest(http.MethodPost, "/api/subscriptions", dto.CreateSubscriptionRequest{})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateSubscription_Created(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	res := &dto.SubscriptionResponse{
		Id:     uuid.New(),
		Status: entity.SubscriptionStatusActive,
	}
	app := newTestApp(&stubSubscriptionService{createRes: res})

	req := jsonRequest(http.MethodPost, "/api/subscriptions", dto.CreateSubscriptionRequest{
		UserId: uuid.New(),
		PlanId: uuid.New(),
	})
	req.Header.Set("Authorization", bearerToken(t, "test-secret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body serverutils.Response[dto.SubscriptionResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, res.Id, body.Data.Id)
}

func TestCreateSubscription_MissingFields(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(&stubSubscriptionService{})

	req := jsonRequest(http.MethodPost, "/api/subscriptions", map[string]string{})
	req.Header.Set("Authorization", bearerToken(t, "test-secret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not found", apperror.NotFound("subscription"), http.StatusNotFound},
		{"conflict", apperror.Conflict("duplicate active subscription"), http.StatusConflict},
		{"upstream", apperror.Upstream("create", assert.AnError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubSubscriptionService{createErr: tt.serviceErr})

			req := jsonRequest(http.MethodPost, "/api/subscriptions", dto.CreateSubscriptionRequest{
				UserId: uuid.New(),
				PlanId: uuid.New(),
			})
			req.Header.Set("Authorization", bearerToken(t, "test-secret"))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestCancelSubscription(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(&stubSubscriptionService{})

	req := jsonRequest(http.MethodDelete, "/api/subscriptions/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", bearerToken(t, "test-secret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCancelSubscription_BadId(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp(&stubSubscriptionService{})

	req := jsonRequest(http.MethodDelete, "/api/subscriptions/not-a-uuid", nil)
	req.Header.Set("Authorization", bearerToken(t, "test-secret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhook_PassesRawBodyAndSignature(t *testing.T) {
	svc := &stubSubscriptionService{}
	app := newTestApp(svc)

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"received":true}`, string(body))
	assert.Equal(t, payload, svc.webhookPayload)
	assert.Equal(t, "t=1,v1=abc", svc.webhookSignature)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	svc := &stubSubscriptionService{webhookErr: billing.ErrInvalidSignature}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Stripe-Signature", "bad")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
