package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
	"github.com/polkiloo/storebot/internal/server/http/dto"
	"github.com/polkiloo/storebot/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/storebot/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var out dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return out.Error
}

func TestCurrentOperator(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentOperator(c); got != "" {
		t.Fatalf("expected empty operator, got %q", got)
	}
	c.Set(middleware.OperatorContextKey, "admin")
	if got := CurrentOperator(c); got != "admin" {
		t.Fatalf("expected admin, got %q", got)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{AuthenticateFn: func(_ context.Context, username, password string) (string, error) {
		if username != "admin" || password != "secret" {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "session-token", nil
	}}
	handler := NewAuthHandler(facade).Login

	resp := performRequest(t, http.MethodPost, "/login", "/login", handler, jsonBody(t, dto.LoginRequest{Username: "admin", Password: "secret"}), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out dto.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.Token != "session-token" {
		t.Fatalf("unexpected login response %q (%v)", resp.Body.String(), err)
	}
	if resp.Header().Get("Authorization") != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}

	resp = performRequest(t, http.MethodPost, "/login", "/login", handler, jsonBody(t, dto.LoginRequest{Username: "admin", Password: "nope"}), jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/login", "/login", handler, []byte(`{"username":"admin"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", resp.Code)
	}

	failing := NewAuthHandler(&testhelpers.StoreFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", errors.New("boom")
	}})
	resp = performRequest(t, http.MethodPost, "/login", "/login", failing.Login, jsonBody(t, dto.LoginRequest{Username: "a", Password: "b"}), jsonHeaders)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestWebhookReceive(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{}
	handler := NewWebhookHandler(facade, "", discardLogger())

	resp := performRequest(t, http.MethodPost, "/hook", "/hook", handler.Receive, []byte(`{"update_id":1}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
	if facade.UpdateCount() != 1 || string(facade.Updates[0]) != `{"update_id":1}` {
		t.Fatalf("expected update to be forwarded, got %v", facade.Updates)
	}
}

func TestWebhookReceiveSwallowsErrors(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{HandleUpdateFn: func(context.Context, []byte) error {
		return domainErrors.ErrPersistence
	}}
	handler := NewWebhookHandler(facade, "", discardLogger())

	resp := performRequest(t, http.MethodPost, "/hook", "/hook", handler.Receive, []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Fatalf("expected 200 ok despite failure, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestWebhookReceiveKeepsContextAlive(t *testing.T) {
	var ctxErr error
	facade := &testhelpers.StoreFacadeStub{HandleUpdateFn: func(ctx context.Context, _ []byte) error {
		ctxErr = ctx.Err()
		return nil
	}}
	handler := NewWebhookHandler(facade, "", discardLogger())

	router := gin.New()
	router.POST("/hook", handler.Receive)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(`{}`)).WithContext(ctx)
	router.ServeHTTP(httptest.NewRecorder(), req)
	if ctxErr != nil {
		t.Fatalf("expected detached context, got %v", ctxErr)
	}
}

func TestWebhookReceiveBotInactive(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{Disabled: true}
	handler := NewWebhookHandler(facade, "", discardLogger())

	resp := performRequest(t, http.MethodPost, "/hook", "/hook", handler.Receive, []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if decodeError(t, resp) != "bot inactive" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
	if facade.UpdateCount() != 0 {
		t.Fatal("expected update to be dropped")
	}
}

func TestWebhookReceiveSecret(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{}
	handler := NewWebhookHandler(facade, "s3cret", discardLogger())

	resp := performRequest(t, http.MethodPost, "/hook", "/hook", handler.Receive, []byte(`{}`), nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/hook", "/hook", handler.Receive, []byte(`{}`), map[string]string{SecretTokenHeader: "wrong"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/hook", "/hook", handler.Receive, []byte(`{}`), map[string]string{SecretTokenHeader: "s3cret"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d", resp.Code)
	}
	if facade.UpdateCount() != 1 {
		t.Fatalf("expected exactly one forwarded update, got %d", facade.UpdateCount())
	}
}

func TestWebhookStatus(t *testing.T) {
	handler := NewWebhookHandler(&testhelpers.StoreFacadeStub{}, "", nil)
	resp := performRequest(t, http.MethodGet, "/hook", "/hook", handler.Status, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"status":"Active"`) {
		t.Fatalf("unexpected status response %d %q", resp.Code, resp.Body.String())
	}
}

func TestOrderHandlerComplete(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{}
	handler := NewOrderHandler(facade, discardLogger())

	body := jsonBody(t, dto.CompleteOrderRequest{OrderID: 7, TelegramID: 42, AccountCredentials: "user:x|pass:y"})
	resp := performRequest(t, http.MethodPost, "/complete", "/complete", handler.Complete, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
	if len(facade.Completed) != 1 {
		t.Fatalf("expected one completion, got %d", len(facade.Completed))
	}
	call := facade.Completed[0]
	if call.OrderID != 7 || call.UserID != 42 || call.Notes != "user:x|pass:y" {
		t.Fatalf("unexpected completion call %+v", call)
	}
}

func TestOrderHandlerCompleteFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "malformed", body: []byte("{"), status: http.StatusBadRequest},
		{name: "missing order", body: []byte(`{"accountCredentials":"x"}`), status: http.StatusBadRequest},
		{name: "missing credentials", body: []byte(`{"orderId":1,"accountCredentials":"  "}`), status: http.StatusBadRequest},
		{name: "not found", body: []byte(`{"orderId":1,"accountCredentials":"x"}`), err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "other user", body: []byte(`{"orderId":1,"telegramId":9,"accountCredentials":"x"}`), err: domainErrors.ErrUserMismatch, status: http.StatusBadRequest},
		{name: "still pending", body: []byte(`{"orderId":1,"accountCredentials":"x"}`), err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "storage", body: []byte(`{"orderId":1,"accountCredentials":"x"}`), err: domainErrors.ErrPersistence, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := &testhelpers.StoreFacadeStub{CompleteFn: func(context.Context, int64, int64, string) (*model.Order, error) {
				return nil, tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/complete", "/complete", NewOrderHandler(facade, discardLogger()).Complete, tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if decodeError(t, resp) == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	variant := "1 Month"
	var gotStatus model.OrderStatus
	facade := &testhelpers.StoreFacadeStub{OrdersFn: func(_ context.Context, status model.OrderStatus) ([]model.OrderView, error) {
		gotStatus = status
		return []model.OrderView{{
			Order: model.Order{
				ID: 3, UserID: 42, ProductName: "Netflix", VariantName: &variant,
				TotalPrice: 50000, Status: model.OrderStatusVerification, CreatedAt: time.Unix(0, 0),
			},
			Username: "alice",
		}}, nil
	}}
	handler := NewOrderHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=paid", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotStatus != model.OrderStatusVerification {
		t.Fatalf("expected legacy status to be normalized, got %q", gotStatus)
	}
	var out []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Username != "alice" || out[0].VariantName == nil || *out[0].VariantName != variant || out[0].Status != "verification" {
		t.Fatalf("unexpected orders %+v", out)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?status=shipped", handler.List, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.Code)
	}

	empty := NewOrderHandler(&testhelpers.StoreFacadeStub{}, nil)
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", empty.List, nil, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %q", resp.Code, resp.Body.String())
	}

	failing := NewOrderHandler(&testhelpers.StoreFacadeStub{OrdersFn: func(context.Context, model.OrderStatus) ([]model.OrderView, error) {
		return nil, domainErrors.ErrPersistence
	}}, nil)
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", failing.List, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{OrderFn: func(_ context.Context, id int64) (*model.Order, error) {
		if id != 5 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Order{ID: 5, Status: model.OrderStatusPending, TotalPrice: 10}, nil
	}}
	handler := NewOrderHandler(facade, nil)

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", handler.Get, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"id":5`) {
		t.Fatalf("unexpected response %d %q", resp.Code, resp.Body.String())
	}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/6", handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/abc", handler.Get, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerExport(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{ExportFn: func(_ context.Context, status model.OrderStatus) ([]byte, error) {
		if status != model.OrderStatusCompleted {
			t.Fatalf("unexpected status %q", status)
		}
		return []byte("PK"), nil
	}}
	handler := NewOrderHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodGet, "/export", "/export?status=completed", handler.Export, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(resp.Header().Get("Content-Disposition"), `attachment; filename="orders_`) {
		t.Fatalf("unexpected disposition %q", resp.Header().Get("Content-Disposition"))
	}
	if resp.Body.String() != "PK" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}

	failing := NewOrderHandler(&testhelpers.StoreFacadeStub{ExportFn: func(context.Context, model.OrderStatus) ([]byte, error) {
		return nil, errors.New("boom")
	}}, discardLogger())
	resp = performRequest(t, http.MethodGet, "/export", "/export", failing.Export, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestOrderHandlerStats(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{StatsFn: func(context.Context) (*model.Stats, error) {
		return &model.Stats{Products: 4, ActiveProducts: 3, Orders: 10, Income: 150000}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/stats", "/stats", NewOrderHandler(facade, nil).Stats, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out dto.StatsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != (dto.StatsResponse{Products: 4, ActiveProducts: 3, Orders: 10, Income: 150000}) {
		t.Fatalf("unexpected stats %+v", out)
	}

	failing := &testhelpers.StoreFacadeStub{StatsFn: func(context.Context) (*model.Stats, error) { return nil, errors.New("boom") }}
	resp = performRequest(t, http.MethodGet, "/stats", "/stats", NewOrderHandler(failing, nil).Stats, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestProductHandlerCreate(t *testing.T) {
	var got model.Product
	facade := &testhelpers.StoreFacadeStub{CreateFn: func(_ context.Context, p model.Product) (*model.Product, error) {
		got = p
		p.ID = 11
		return &p, nil
	}}
	handler := NewProductHandler(facade)

	body := []byte(`{"name":"Spotify","price":0,"unit":"account","variants":[{"name":"1 Month","price":20000}]}`)
	resp := performRequest(t, http.MethodPost, "/products", "/products", handler.Create, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if !got.IsActive || len(got.Variants) != 1 || got.Variants[0].Price != 20000 {
		t.Fatalf("unexpected product passed to facade %+v", got)
	}
	var out dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.ID != 11 {
		t.Fatalf("unexpected response %q (%v)", resp.Body.String(), err)
	}

	inactive := []byte(`{"name":"Old","price":1,"isActive":false}`)
	resp = performRequest(t, http.MethodPost, "/products", "/products", handler.Create, inactive, jsonHeaders)
	if resp.Code != http.StatusCreated || got.IsActive {
		t.Fatalf("expected inactive product, got %d %+v", resp.Code, got)
	}
}

func TestProductHandlerErrors(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{
		CreateFn: func(context.Context, model.Product) (*model.Product, error) { return nil, domainErrors.ErrInvalidProduct },
		UpdateFn: func(context.Context, model.Product) (*model.Product, error) { return nil, domainErrors.ErrNotFound },
		DeleteFn: func(context.Context, int64) error { return domainErrors.ErrPersistence },
		ProductsFn: func(context.Context) ([]model.Product, error) {
			return nil, domainErrors.ErrPersistence
		},
	}
	handler := NewProductHandler(facade)

	resp := performRequest(t, http.MethodPost, "/products", "/products", handler.Create, []byte(`{"name":"","price":-1}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPost, "/products", "/products", handler.Create, []byte(`nope`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPut, "/products/:id", "/products/3", handler.Update, []byte(`{"name":"x"}`), jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodPut, "/products/:id", "/products/0", handler.Update, []byte(`{"name":"x"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/products/:id", "/products/3", handler.Delete, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/products", "/products", handler.List, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestProductHandlerUpdateAndDelete(t *testing.T) {
	var updatedID, deletedID int64
	facade := &testhelpers.StoreFacadeStub{
		UpdateFn: func(_ context.Context, p model.Product) (*model.Product, error) {
			updatedID = p.ID
			return &p, nil
		},
		DeleteFn: func(_ context.Context, id int64) error {
			deletedID = id
			return nil
		},
		ProductsFn: func(context.Context) ([]model.Product, error) {
			return []model.Product{{ID: 1, Name: "A", IsActive: true}}, nil
		},
	}
	handler := NewProductHandler(facade)

	resp := performRequest(t, http.MethodPut, "/products/:id", "/products/9", handler.Update, []byte(`{"name":"x","price":5}`), jsonHeaders)
	if resp.Code != http.StatusOK || updatedID != 9 {
		t.Fatalf("expected update of 9, got %d id=%d", resp.Code, updatedID)
	}
	resp = performRequest(t, http.MethodDelete, "/products/:id", "/products/4", handler.Delete, nil, nil)
	if resp.Code != http.StatusNoContent || deletedID != 4 {
		t.Fatalf("expected delete of 4, got %d id=%d", resp.Code, deletedID)
	}
	resp = performRequest(t, http.MethodGet, "/products", "/products", handler.List, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"variants":[]`) {
		t.Fatalf("unexpected list %d %q", resp.Code, resp.Body.String())
	}
}

func TestProductHandlerGet(t *testing.T) {
	facade := &testhelpers.StoreFacadeStub{ProductFn: func(_ context.Context, id int64) (*model.Product, error) {
		if id != 2 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Product{ID: 2, Name: "Canva", Variants: []model.Variant{{Name: "1 Year", Price: 90000}}}, nil
	}}
	handler := NewProductHandler(facade)

	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/2", handler.Get, nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"1 Year"`) {
		t.Fatalf("unexpected response %d %q", resp.Code, resp.Body.String())
	}
	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/3", handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCustomerHandlerMessages(t *testing.T) {
	var gotLimit int
	facade := &testhelpers.StoreFacadeStub{ConversationFn: func(_ context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
		gotLimit = limit
		return []model.ChatMessage{{ID: 1, UserID: userID, Direction: model.DirectionInbound, Content: "/start"}}, nil
	}}
	handler := NewCustomerHandler(facade, nil)

	resp := performRequest(t, http.MethodGet, "/users/:id/messages", "/users/42/messages?limit=20", handler.Messages, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotLimit != 20 {
		t.Fatalf("expected limit 20, got %d", gotLimit)
	}
	var out []dto.MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || len(out) != 1 || out[0].Direction != "in" {
		t.Fatalf("unexpected messages %q (%v)", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/users/:id/messages", "/users/x/messages", handler.Messages, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	facade.ConversationFn = func(context.Context, int64, int) ([]model.ChatMessage, error) {
		return nil, domainErrors.ErrNotFound
	}
	resp = performRequest(t, http.MethodGet, "/users/:id/messages", "/users/7/messages", handler.Messages, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.Code)
	}
}

func TestCustomerHandlerSend(t *testing.T) {
	var sentTo int64
	var sent string
	facade := &testhelpers.StoreFacadeStub{SendFn: func(_ context.Context, userID int64, text string) error {
		sentTo, sent = userID, text
		return nil
	}}
	handler := NewCustomerHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodPost, "/users/:id/messages", "/users/42/messages", handler.Send, []byte(`{"text":"hello"}`), jsonHeaders)
	if resp.Code != http.StatusOK || sentTo != 42 || sent != "hello" {
		t.Fatalf("unexpected send %d to=%d text=%q", resp.Code, sentTo, sent)
	}

	resp = performRequest(t, http.MethodPost, "/users/:id/messages", "/users/42/messages", handler.Send, []byte(`{"text":" "}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank text, got %d", resp.Code)
	}

	tests := []struct {
		err    error
		status int
	}{
		{err: domainErrors.ErrBotDisabled, status: http.StatusServiceUnavailable},
		{err: errors.Join(domainErrors.ErrNotificationFailed, errors.New("blocked")), status: http.StatusBadGateway},
		{err: domainErrors.ErrPersistence, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		failing := NewCustomerHandler(&testhelpers.StoreFacadeStub{SendFn: func(context.Context, int64, string) error { return tc.err }}, discardLogger())
		resp = performRequest(t, http.MethodPost, "/users/:id/messages", "/users/42/messages", failing.Send, []byte(`{"text":"hi"}`), jsonHeaders)
		if resp.Code != tc.status {
			t.Fatalf("expected %d for %v, got %d", tc.status, tc.err, resp.Code)
		}
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(&testhelpers.StoreFacadeStub{}).Check, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(&testhelpers.StoreFacadeStub{HealthErr: errors.New("down")}).Check, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

var _ StoreFacade = (*testhelpers.StoreFacadeStub)(nil)

func TestAuthHandlerLoginPassesCredentialsThrough(t *testing.T) {
	username := testhelpers.RandomASCIIString(5, 12)
	password := testhelpers.RandomASCIIString(16, 32)
	facade := &testhelpers.StoreFacadeStub{AuthenticateFn: func(_ context.Context, gotUser, gotPassword string) (string, error) {
		if gotUser != username || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotUser, gotPassword)
		}
		return "session-token", nil
	}}
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login,
		jsonBody(t, dto.LoginRequest{Username: username, Password: password}), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
