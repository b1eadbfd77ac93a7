package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/server/http/dto"
	"github.com/khanhng/orderflow/internal/server/http/middleware"
	testhelpers "github.com/khanhng/orderflow/internal/test"
	"github.com/khanhng/orderflow/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func asWorker(roles ...model.Role) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, &model.User{ID: 1, Login: "worker", Name: "Worker", Roles: roles})
	}
}

// closeNotifyRecorder adds the http.CloseNotifier implementation that
// gin's Context.Stream requires and httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func performRequest(t *testing.T, method, path, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(closeNotifyRecorder{w, make(chan bool, 1)}, req)
	return w
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var envelope dto.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return envelope
}

func TestCurrentUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUser(c); got != nil {
		t.Fatalf("expected nil when not set, got %+v", got)
	}

	c.Set(middleware.UserContextKey, &model.User{ID: 42})
	if got := CurrentUser(c); got == nil || got.ID != 42 {
		t.Fatalf("expected user 42, got %+v", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass", Name: "User", Roles: []string{"SALE"}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
	envelope := decodeEnvelope(t, resp)
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed payload",
			facade: testhelpers.AuthFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, model.RoleSet) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "user", Password: "pass"}),
			status: http.StatusConflict,
		},
		{
			name: "unknown role",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, model.RoleSet) (*model.User, string, error) {
				return nil, "", fmt.Errorf("%w: unknown role", domainErrors.ErrValidation)
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "user", Password: "pass", Roles: []string{"JANITOR"}}),
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tc.facade).Register, nil, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	body := mustJSON(t, dto.AuthRequest{Login: "user", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	payload := dto.OrderPayload{
		CustomerName: "Nguyen Van A",
		Type:         "NORMAL",
		ItemPrice:    500_000,
		Items:        []dto.PaintingPayload{{Type: "FLAT", Width: 40, Height: 60, Quantity: 1}},
	}
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).Create, asWorker(model.RoleSale), mustJSON(t, payload))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	envelope := decodeEnvelope(t, resp)
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}
}

func TestOrderHandlerCreateForbidden(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{CreateFn: func(context.Context, *model.User, model.OrderSnapshot) (*model.Order, error) {
		return nil, domainErrors.ErrForbidden
	}}
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, asWorker(model.RolePrinter), mustJSON(t, dto.OrderPayload{}))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestOrderHandlerGetReportsDerivedCuttingStatus(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{GetFn: func(_ context.Context, id int64) (*model.Order, error) {
		return &model.Order{
			ID:            id,
			Code:          "DH-TEST",
			Status:        model.OrderStatusNew,
			CuttingStatus: model.CuttingStatusNotCut,
			Items:         []model.Painting{{ID: 1, Type: model.PaintingTypeFlat, Quantity: 1}},
		}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(facade).Get, asWorker(model.RoleSale), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"frameCuttingStatus":"NOT_APPLICABLE"`) {
		t.Fatalf("expected derived NOT_APPLICABLE cutting status, body: %s", resp.Body.String())
	}
}

func TestOrderHandlerGetInvalidID(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/abc", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asWorker(model.RoleSale), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateReturnsPendingDraft(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{UpdateFn: func(_ context.Context, _ *model.User, id int64, snap model.OrderSnapshot) (*model.Order, *model.OrderDraft, error) {
		return &model.Order{ID: id}, &model.OrderDraft{ID: 3, OrderID: id, Status: model.DraftStatusPending, Proposed: snap}, nil
	}}
	payload := dto.OrderPayload{CustomerName: "A", Type: "NORMAL", ItemPrice: 1_000_000}
	resp := performRequest(t, http.MethodPatch, "/orders/:id", "/orders/5", NewOrderHandler(facade).Update, asWorker(model.RoleSale), mustJSON(t, payload))
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for draft reroute, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"status":"PENDING"`) {
		t.Fatalf("expected pending draft payload, body: %s", resp.Body.String())
	}
}

func TestOrderHandlerChangeStatusInvalidTransition(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{StatusFn: func(context.Context, *model.User, int64, model.OrderStatus, string) (*model.Order, error) {
		return nil, fmt.Errorf("%w: NEW -> SENT", domainErrors.ErrInvalidTransition)
	}}
	body := mustJSON(t, dto.StatusRequest{Status: "SENT"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/5/status", NewOrderHandler(facade).ChangeStatus, asWorker(model.RoleAdmin), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	envelope := decodeEnvelope(t, resp)
	if envelope.Success || envelope.Message == "" {
		t.Fatalf("expected failure envelope with message, got %+v", envelope)
	}
}

func TestOrderHandlerConcurrentUpdateConflict(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{UpdateFn: func(context.Context, *model.User, int64, model.OrderSnapshot) (*model.Order, *model.OrderDraft, error) {
		return nil, nil, domainErrors.ErrConflict
	}}
	resp := performRequest(t, http.MethodPatch, "/orders/:id", "/orders/5", NewOrderHandler(facade).Update, asWorker(model.RoleAdmin), mustJSON(t, dto.OrderPayload{}))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestOrderHandlerAccept(t *testing.T) {
	var gotRole model.Role
	facade := testhelpers.OrderFacadeStub{AcceptFn: func(_ context.Context, _ *model.User, id int64, role model.Role) (*model.Order, error) {
		gotRole = role
		return &model.Order{ID: id, Status: model.OrderStatusAwaitingPacking}, nil
	}}
	body := mustJSON(t, dto.AcceptRequest{Role: "PACKER"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/accept", "/orders/5/accept", NewOrderHandler(facade).Accept, asWorker(model.RolePacker), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotRole != model.RolePacker {
		t.Fatalf("expected role forwarded, got %q", gotRole)
	}
}

func TestOrderHandlerComplete(t *testing.T) {
	var gotInput usecase.CompleteInput
	facade := testhelpers.OrderFacadeStub{CompleteFn: func(_ context.Context, _ *model.User, id int64, input usecase.CompleteInput) (*model.Order, error) {
		gotInput = input
		return &model.Order{ID: id, Status: model.OrderStatusSent}, nil
	}}
	body := mustJSON(t, dto.CompleteRequest{Role: "SHIPPER", ShippingMethod: "CARRIER", TrackingCode: "GHN123", CarrierCost: 25_000})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/complete", "/orders/5/complete", NewOrderHandler(facade).Complete, asWorker(model.RoleShipper), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotInput.Role != model.RoleShipper || gotInput.TrackingCode != "GHN123" || gotInput.CarrierCost != 25_000 {
		t.Fatalf("expected completion data forwarded, got %+v", gotInput)
	}
}

func TestOrderHandlerReceiveBeforePrinted(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ReceiveFn: func(context.Context, *model.User, int64, usecase.ReceiveCategory) (*model.Order, error) {
		return nil, fmt.Errorf("%w: item 1 not printed yet", domainErrors.ErrInvalidTransition)
	}}
	body := mustJSON(t, dto.ReceiveRequest{Category: "frame"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/receive", "/orders/5/receive", NewOrderHandler(facade).Receive, asWorker(model.RoleProduction), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerRework(t *testing.T) {
	var gotKind usecase.ReworkKind
	facade := testhelpers.OrderFacadeStub{ReworkFn: func(_ context.Context, _ *model.User, id int64, kind usecase.ReworkKind, _ string) (*model.Order, error) {
		gotKind = kind
		return &model.Order{ID: id, Status: model.OrderStatusFixRequested}, nil
	}}
	body := mustJSON(t, dto.ReworkRequest{Kind: "fix", Reason: "wrong colors"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/rework", "/orders/5/rework", NewOrderHandler(facade).Rework, asWorker(model.RoleSale), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotKind != usecase.ReworkKindFix {
		t.Fatalf("expected fix kind forwarded, got %q", gotKind)
	}
}

func TestOrderHandlerDeleteSecretMismatch(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{DeleteFn: func(_ context.Context, _ *model.User, _ int64, secret string) error {
		if secret != "good" {
			return domainErrors.ErrSecretMismatch
		}
		return nil
	}}
	resp := performRequest(t, http.MethodDelete, "/orders/:id", "/orders/5?secret=bad", NewOrderHandler(facade).Delete, asWorker(model.RoleAdmin), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for bad secret, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/5?secret=good", NewOrderHandler(facade).Delete, asWorker(model.RoleAdmin), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for good secret, got %d", resp.Code)
	}
}

func TestOrderHandlerPurge(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{PurgeFn: func(context.Context, *model.User, string) (int64, error) {
		return 4, nil
	}}
	body := mustJSON(t, dto.SecretRequest{Secret: "good"})
	resp := performRequest(t, http.MethodPost, "/orders/purge", "/orders/purge", NewOrderHandler(facade).Purge, asWorker(model.RoleAdmin), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"purged":4`) {
		t.Fatalf("expected purge count in body, got %s", resp.Body.String())
	}
}

func TestDraftHandlerPendingNotFound(t *testing.T) {
	facade := testhelpers.DraftFacadeStub{PendingFn: func(context.Context, int64) (*model.OrderDraft, error) {
		return nil, domainErrors.ErrNoPendingDraft
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id/draft", "/orders/5/draft", NewDraftHandler(facade).Pending, asWorker(model.RoleAdmin), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDraftHandlerReject(t *testing.T) {
	var gotReason string
	facade := testhelpers.DraftFacadeStub{RejectFn: func(_ context.Context, _ *model.User, id int64, reason string) (*model.Order, error) {
		gotReason = reason
		return &model.Order{ID: id, Status: model.OrderStatusNew}, nil
	}}
	body := mustJSON(t, dto.RejectRequest{Reason: "price too low"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/draft/reject", "/orders/5/draft/reject", NewDraftHandler(facade).Reject, asWorker(model.RoleAdmin), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotReason != "price too low" {
		t.Fatalf("expected reason forwarded, got %q", gotReason)
	}
}

func TestStreamHandlerDeliversEvents(t *testing.T) {
	facade := testhelpers.StreamFacadeStub{Events: []events.Event{
		{ID: "1", Type: events.TypeStatusChanged, OrderCode: "DH-TEST", Message: "step completed"},
	}}
	resp := performRequest(t, http.MethodGet, "/events/stream", "/events/stream", NewStreamHandler(facade).Stream, asWorker(model.RolePrinter), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Fatalf("expected SSE content type, got %q", got)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "event:status_changed") {
		t.Fatalf("expected status_changed event in stream, got %s", body)
	}
	if !strings.Contains(body, "DH-TEST") {
		t.Fatalf("expected order code in stream payload, got %s", body)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
