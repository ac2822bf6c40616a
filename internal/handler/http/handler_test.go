package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/numrent/virtual-number-service/internal/domain"
	"github.com/numrent/virtual-number-service/internal/provider"
	"github.com/numrent/virtual-number-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	order      *domain.Order
	status     *domain.StatusResult
	views      []domain.OrderView
	balance    string
	mapping    map[string]string
	err        error
	partitions []string
}

func (f *fakeOrderService) CreateOrder(_ context.Context, _, _ string) (*domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) PollStatus(_ context.Context, _ string) (*domain.StatusResult, error) {
	return f.status, f.err
}

func (f *fakeOrderService) CancelOrder(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeOrderService) RequestAgain(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeOrderService) DeleteOrder(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeOrderService) ListOrders(_ context.Context, partition string) ([]domain.OrderView, error) {
	f.partitions = append(f.partitions, partition)
	return f.views, f.err
}

func (f *fakeOrderService) Balance(_ context.Context) (string, error) {
	return f.balance, f.err
}

func (f *fakeOrderService) AllServices(_ context.Context) (map[string]string, error) {
	return f.mapping, f.err
}

func (f *fakeOrderService) AllCountries(_ context.Context) (map[string]string, error) {
	return f.mapping, f.err
}

func (f *fakeOrderService) Start() {}
func (f *fakeOrderService) Stop()  {}

func doRequest(t *testing.T, svc service.OrderService, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHttpHandler(":0", svc)
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	h.server.Handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}

func TestGetServices(t *testing.T) {
	recorder := doRequest(t, &fakeOrderService{}, http.MethodGet, "/api/services", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "WhatsApp", body["wa"])
	assert.Equal(t, "Google", body["go"])
}

func TestGetCountries(t *testing.T) {
	recorder := doRequest(t, &fakeOrderService{}, http.MethodGet, "/api/countries", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Indonesia", body["6"])
}

func TestCreateOrder(t *testing.T) {
	now := time.Now().UTC()
	svc := &fakeOrderService{order: &domain.Order{
		ID:          "12345",
		PhoneNumber: "6281234567890",
		Service:     "wa",
		Country:     "6",
		Status:      domain.StatusWaiting,
		CreatedAt:   now,
		ExpiresAt:   now.Add(domain.OrderTTL),
	}}

	recorder := doRequest(t, svc, http.MethodPost, "/api/create", []byte(`{"service":"wa","country":"6"}`))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	order := body["order"].(map[string]any)
	assert.Equal(t, "12345", order["id"])
	assert.Equal(t, "6281234567890", order["number"])
	assert.Equal(t, "WAITING", order["status"])
}

func TestCreateOrderMissingBody(t *testing.T) {
	recorder := doRequest(t, &fakeOrderService{}, http.MethodPost, "/api/create", []byte(`{"service":"wa"}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
}

func TestCreateOrderInvalidSelection(t *testing.T) {
	svc := &fakeOrderService{err: domain.ErrInvalidSelection}

	recorder := doRequest(t, svc, http.MethodPost, "/api/create", []byte(`{"service":"xx","country":"99"}`))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid service or country", body["error"])
}

func TestCreateOrderTransportFailureHidesPlumbing(t *testing.T) {
	svc := &fakeOrderService{err: &provider.TransportError{Action: provider.ActionGetNumber, Err: errors.New("timeout")}}

	recorder := doRequest(t, svc, http.MethodPost, "/api/create", []byte(`{"service":"wa","country":"6"}`))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to create order", body["error"])
}

func TestCreateOrderProviderRejectionPassesRawText(t *testing.T) {
	svc := &fakeOrderService{err: &service.ProviderRejection{Raw: "NO_NUMBERS"}}

	recorder := doRequest(t, svc, http.MethodPost, "/api/create", []byte(`{"service":"wa","country":"6"}`))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NO_NUMBERS", body["error"])
}

func TestGetStatus(t *testing.T) {
	svc := &fakeOrderService{status: &domain.StatusResult{Status: "COMPLETED", Sms: "837291"}}

	recorder := doRequest(t, svc, http.MethodGet, "/api/status/12345", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "COMPLETED", body["status"])
	assert.Equal(t, "837291", body["sms"])
}

func TestGetStatusUnknownOrder(t *testing.T) {
	svc := &fakeOrderService{err: domain.ErrOrderNotFound}

	recorder := doRequest(t, svc, http.MethodGet, "/api/status/missing", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "UNKNOWN", body["status"])
}

func TestListOrdersForwardsPartition(t *testing.T) {
	svc := &fakeOrderService{views: []domain.OrderView{}}

	recorder := doRequest(t, svc, http.MethodGet, "/api/orders?partition=active", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"active"}, svc.partitions)

	recorder = doRequest(t, svc, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"active", "all"}, svc.partitions)
}

func TestCancelOrderRejection(t *testing.T) {
	svc := &fakeOrderService{err: &service.ProviderRejection{Raw: "ACCESS_ERROR"}}

	recorder := doRequest(t, svc, http.MethodPost, "/api/cancel/12345", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "ACCESS_ERROR", body["error"])
}

func TestRemoveOrder(t *testing.T) {
	recorder := doRequest(t, &fakeOrderService{}, http.MethodPost, "/api/remove_order/12345", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
}

func TestGetBalance(t *testing.T) {
	svc := &fakeOrderService{balance: "12.50"}

	recorder := doRequest(t, svc, http.MethodGet, "/api/balance", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "12.50", body["balance"])
}

func TestGetAllServices(t *testing.T) {
	svc := &fakeOrderService{mapping: map[string]string{"wa": "WhatsApp"}}

	recorder := doRequest(t, svc, http.MethodGet, "/api/all_services", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	services := body["services"].(map[string]any)
	assert.Equal(t, "WhatsApp", services["wa"])
}
