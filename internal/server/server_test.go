package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"dealsync/internal/domain"
	"dealsync/internal/domain/service/dealsync"
	"dealsync/internal/domain/value"
	"dealsync/internal/server"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type fakeSyncService struct {
	requests []dealsync.SyncRequest
	result   dealsync.SyncResult
	err      error
}

func (f *fakeSyncService) Sync(_ context.Context, request dealsync.SyncRequest) (dealsync.SyncResult, error) {
	f.requests = append(f.requests, request)

	return f.result, f.err
}

func serve(svc *fakeSyncService, method, target, body string) *httptest.ResponseRecorder {
	return serveWithHeaders(svc, method, target, body, nil)
}

func serveWithHeaders(svc *fakeSyncService, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	handler := server.NewServer(server.NewSyncServer(svc)).Handler(logx.NewSensitiveDataMasker(), 4096)

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	return w
}

func decode(rq *require.Assertions, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any

	rq.NoError(json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestPostSyncOrderCreated(t *testing.T) {
	rq := require.New(t)

	svc := &fakeSyncService{result: dealsync.SyncResult{OrderID: 9001, OrderNo: "4521", CustomItemsCount: 1}}

	w := serve(svc, http.MethodPost, "/v1/sync_order", `{
		"deal_id": 4521,
		"won_time": "2025-03-04 10:20:30",
		"deal_title": "Sauna Oy",
		"customer": {"name": "Sauna Oy", "email": "buyer@sauna.fi"},
		"products": [
			{"name": "Sauna heater", "sku": "hx-9", "quantity": 2, "price_per_unit": "1200.50", "vat_rate": 23},
			{"name": "Install work", "quantity": 1, "price_per_unit": 25, "vat_rate": 0, "discount_percent": 50}
		]
	}`)

	rq.Equal(http.StatusCreated, w.Code)
	rq.JSONEq(`{"success":true,"order_id":9001,"order_no":"4521","custom_items_count":1}`, w.Body.String())

	rq.Len(svc.requests, 1)
	request := svc.requests[0]
	rq.Equal("4521", request.DealID)
	rq.Equal("buyer@sauna.fi", request.CustomerEmail)
	rq.Len(request.Products, 2)
	rq.Equal("hx-9", request.Products[0].StockCode)
	rq.Equal(2, request.Products[0].Quantity)
	rq.Equal("1200.5", request.Products[0].UnitPrice.String())

	vat, known := request.Products[1].VAT.Percent()
	rq.True(known)
	rq.Zero(vat)
	rq.Equal("50", request.Products[1].LineDiscount.String())
	rq.Equal(value.DiscountTotalPercentage, request.Products[1].LineDiscountKind)
}

func TestPostSyncOrderProductsPresence(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		products bool
	}{
		{name: "Absent", body: `{"deal_id":"7"}`, products: false},
		{name: "Null", body: `{"deal_id":"7","products":null}`, products: false},
		{name: "Empty", body: `{"deal_id":"7","products":[]}`, products: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			svc := &fakeSyncService{}

			w := serve(svc, http.MethodPost, "/v1/sync_order", tc.body)
			rq.Equal(http.StatusCreated, w.Code)
			rq.Len(svc.requests, 1)
			rq.Equal(tc.products, svc.requests[0].Products != nil)
		})
	}
}

func TestPostSyncOrderErrors(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		err    error
		status int
		check  func(rq *require.Assertions, body map[string]any)
	}{
		{
			name:   "Broken JSON",
			body:   `{"deal_id":`,
			status: http.StatusBadRequest,
			check: func(rq *require.Assertions, body map[string]any) {
				rq.Equal(false, body["success"])
				rq.Equal(errcodes.ValidationError.String(), body["code"])
			},
		},
		{
			name: "Missing deal id",
			body: `{}`,
			err: failure.NewInvalidArgumentError(
				"deal id is empty",
				failure.WithCode(errcodes.DealIDRequired),
				failure.WithDescription("deal_id required"),
			),
			status: http.StatusBadRequest,
			check: func(rq *require.Assertions, body map[string]any) {
				rq.Equal("deal_id required", body["error"])
				rq.Equal(errcodes.DealIDRequired.String(), body["code"])
			},
		},
		{
			name: "Duplicate order",
			body: `{"deal_id":"4521"}`,
			err: domain.NewError(errcodes.OrderAlreadyExists, "Order already exists").
				WithDetail("order_id", int64(9001)).
				WithDetail("order_no", "4521"),
			status: http.StatusConflict,
			check: func(rq *require.Assertions, body map[string]any) {
				rq.Equal("Order already exists", body["error"])
				rq.InDelta(9001, body["order_id"], 0)
				rq.Equal("4521", body["order_no"])
			},
		},
		{
			name:   "Remote failure",
			body:   `{"deal_id":"4521"}`,
			err:    domain.WrapError(errors.New("503: unavailable"), errcodes.RemoteCallFailed, "katana: POST sales_orders"),
			status: http.StatusInternalServerError,
			check: func(rq *require.Assertions, body map[string]any) {
				rq.Equal("katana: POST sales_orders: 503: unavailable", body["error"])
				rq.Equal(errcodes.RemoteCallFailed.String(), body["code"])
				rq.NotEmpty(body["supportId"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			w := serve(&fakeSyncService{err: tc.err}, http.MethodPost, "/v1/sync_order", tc.body)
			rq.Equal(tc.status, w.Code)
			tc.check(rq, decode(rq, w))
		})
	}
}

func TestHealth(t *testing.T) {
	rq := require.New(t)

	w := serve(&fakeSyncService{}, http.MethodGet, "/v1/health", "")
	rq.Equal(http.StatusOK, w.Code)
	rq.JSONEq(`{"status":"ok","message":"Pipedrive-Katana sync is running"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		target       string
		headers      map[string]string
		code         int
		allowOrigin  string
		allowMethods string
		allowHeaders string
	}{
		{
			name:   "preflight",
			method: http.MethodOptions,
			target: "/v1/sync_order",
			headers: map[string]string{
				"Origin":                         "https://crm.example.com",
				"Access-Control-Request-Method":  http.MethodPost,
				"Access-Control-Request-Headers": "content-type",
			},
			code:         http.StatusOK,
			allowOrigin:  "*",
			allowMethods: http.MethodPost,
			allowHeaders: "Content-Type",
		},
		{
			name:    "options without origin",
			method:  http.MethodOptions,
			target:  "/v1/sync_order",
			headers: nil,
			code:    http.StatusOK,
		},
		{
			name:        "actual request",
			method:      http.MethodGet,
			target:      "/v1/health",
			headers:     map[string]string{"Origin": "https://crm.example.com"},
			code:        http.StatusOK,
			allowOrigin: "*",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			svc := &fakeSyncService{}

			w := serveWithHeaders(svc, tc.method, tc.target, "", tc.headers)
			rq.Equal(tc.code, w.Code)
			rq.Equal(tc.allowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			rq.Equal(tc.allowMethods, w.Header().Get("Access-Control-Allow-Methods"))
			rq.Equal(tc.allowHeaders, w.Header().Get("Access-Control-Allow-Headers"))
			rq.Empty(svc.requests)
		})
	}
}

func TestMethods(t *testing.T) {
	rq := require.New(t)

	svc := &fakeSyncService{}

	w := serve(svc, http.MethodOptions, "/v1/sync_order", "")
	rq.Equal(http.StatusOK, w.Code)
	rq.Empty(w.Body.String())

	w = serve(svc, http.MethodGet, "/v1/sync_order", "")
	rq.Equal(http.StatusMethodNotAllowed, w.Code)

	body := decode(rq, w)
	rq.Equal(false, body["success"])
	rq.Equal("Method not allowed", body["error"])

	w = serve(svc, http.MethodPost, "/v1/unknown", "{}")
	rq.Equal(http.StatusNotFound, w.Code)

	rq.Empty(svc.requests)
}
