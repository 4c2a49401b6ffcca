package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/babjihd-maker/Pearl-Tailor/internal/estimator"
	"github.com/babjihd-maker/Pearl-Tailor/internal/middleware"
	"github.com/babjihd-maker/Pearl-Tailor/internal/model"
	"github.com/babjihd-maker/Pearl-Tailor/internal/repository"
	"github.com/babjihd-maker/Pearl-Tailor/internal/service"
)

type stubService struct {
	authErr        error
	createOrderID  int64
	createOrderErr error
	lastOrderInput service.CreateOrderInput
	order          *model.Order
	measurements   *model.Measurements
	getOrderErr    error
	orders         []model.Order
	setStatusErr   error
	lastStatus     model.OrderStatus
	collectErr     error
	collectedID    int64
	updateErr      error
	customer       *model.Customer
	findErr        error
	customers      []model.Customer
	fabrics        []model.FabricItem
}

func (s *stubService) Authenticate(login, password string) error { return s.authErr }

func (s *stubService) CreateOrder(_ context.Context, in service.CreateOrderInput) (int64, error) {
	s.lastOrderInput = in
	return s.createOrderID, s.createOrderErr
}

func (s *stubService) GetOrder(_ context.Context, id int64) (*model.Order, *model.Measurements, error) {
	if s.getOrderErr != nil {
		return nil, nil, s.getOrderErr
	}
	return s.order, s.measurements, nil
}

func (s *stubService) ListOrders(_ context.Context) ([]model.Order, error) { return s.orders, nil }

func (s *stubService) SetStatus(_ context.Context, id int64, status model.OrderStatus) error {
	s.lastStatus = status
	return s.setStatusErr
}

func (s *stubService) CollectPayment(_ context.Context, id int64) error {
	s.collectedID = id
	return s.collectErr
}

func (s *stubService) UpdateOrder(_ context.Context, in service.UpdateOrderInput) error {
	return s.updateErr
}

func (s *stubService) FindCustomer(_ context.Context, mobile string) (*model.Customer, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.customer, nil
}

func (s *stubService) ListCustomers(_ context.Context) ([]model.Customer, error) {
	return s.customers, nil
}

func (s *stubService) BillingStats(_ context.Context) (*model.BillingStats, error) {
	stats := service.BillingStatsOf(s.orders)
	return &stats, nil
}

func (s *stubService) DashboardStats(_ context.Context) (*model.DashboardStats, error) {
	return &model.DashboardStats{TotalOrders: len(s.orders)}, nil
}

func (s *stubService) LowStockFabrics(_ context.Context) ([]model.FabricItem, error) {
	return s.fabrics, nil
}

func (s *stubService) EstimateFabric(garmentType string, heightFt, chest, waist float64, bodyType string) (*estimator.Result, error) {
	garment, err := estimator.ParseGarmentType(garmentType)
	if err != nil {
		return nil, err
	}
	res, err := estimator.Estimate(garment, estimator.Input{HeightFt: heightFt, Chest: chest, Waist: waist, Body: estimator.BodyNormal})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *stubService) CreateFabric(_ context.Context, f model.FabricItem, pricePerMeter float64) (int64, error) {
	return 1, nil
}

func (s *stubService) UpdateFabric(_ context.Context, f model.FabricItem, pricePerMeter float64) error {
	return nil
}

func (s *stubService) DeleteFabric(_ context.Context, id int64) error { return nil }

func (s *stubService) ListFabrics(_ context.Context) ([]model.FabricItem, *model.InventoryStats, error) {
	return s.fabrics, &model.InventoryStats{Total: len(s.fabrics)}, nil
}

func newTestHandler(svc *stubService) *Handler {
	return NewHandler(svc, zap.NewNop(), middleware.NewAuthMiddleware("test-secret"))
}

func withURLParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestLogin(t *testing.T) {
	t.Run("success sets cookie", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"admin","password":"admin123"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(w.Result().Cookies()) == 0 {
			t.Fatal("no auth cookie set")
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		h := newTestHandler(&stubService{authErr: service.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"admin","password":"nope"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubService{createOrderID: 42}
		h := newTestHandler(svc)

		body := `{
			"customer_name": "Ravi Kumar",
			"mobile": "9876543210",
			"garment_type": "Shirt",
			"total_amount": 1500,
			"advance_amount": 500,
			"measurements": {"chest": "40", "waist": "32.5", "neck": "abc"}
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.CreateOrder(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
		}

		var resp createOrderResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != 42 {
			t.Fatalf("id = %d, want 42", resp.ID)
		}

		m := svc.lastOrderInput.Measurements
		if m.Chest != 40 || m.Waist != 32.5 {
			t.Fatalf("measurements = %+v", m)
		}
		if m.Neck != 0 {
			t.Fatalf("unparseable neck should coerce to 0, got %v", m.Neck)
		}
	})

	t.Run("missing mobile", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customer_name":"Ravi","total_amount":100}`))
		w := httptest.NewRecorder()

		h.CreateOrder(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		h := newTestHandler(&stubService{createOrderErr: service.ErrInvalidAmount})

		body := `{"mobile":"9876543210","total_amount":100,"advance_amount":200}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.CreateOrder(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubService{
			order: &model.Order{
				ID:            1,
				CustomerID:    7,
				CustomerName:  "Ravi",
				Mobile:        "9876543210",
				Status:        model.StatusStitching,
				TotalAmount:   150000,
				AdvanceAmount: 50000,
			},
			measurements: &model.Measurements{OrderID: 1, Chest: 40},
		}
		h := newTestHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/1", nil), "orderID", "1")
		w := httptest.NewRecorder()

		h.GetOrder(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp orderResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Status != "Stitching" || resp.Stage != 2 || resp.StageName != "In Production" {
			t.Fatalf("progress = %q/%d/%q", resp.Status, resp.Stage, resp.StageName)
		}
		if resp.TotalAmount != 1500 || resp.AdvanceAmount != 500 || resp.Due != 1000 {
			t.Fatalf("amounts = %v/%v/%v", resp.TotalAmount, resp.AdvanceAmount, resp.Due)
		}
		if resp.Measurements == nil || resp.Measurements.Chest != 40 {
			t.Fatalf("measurements = %+v", resp.Measurements)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestHandler(&stubService{getOrderErr: repository.ErrOrderNotFound})

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/99", nil), "orderID", "99")
		w := httptest.NewRecorder()

		h.GetOrder(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil), "orderID", "abc")
		w := httptest.NewRecorder()

		h.GetOrder(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestSetStatus(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &stubService{}
		h := newTestHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{"status":"Ironing"}`)), "orderID", "1")
		w := httptest.NewRecorder()

		h.SetStatus(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if svc.lastStatus != model.StatusIroning {
			t.Fatalf("status = %q, want Ironing", svc.lastStatus)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{"status":"Shipped"}`)), "orderID", "1")
		w := httptest.NewRecorder()

		h.SetStatus(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", w.Code)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		h := newTestHandler(&stubService{setStatusErr: repository.ErrOrderNotFound})

		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/orders/99/status", strings.NewReader(`{"status":"Cutting"}`)), "orderID", "99")
		w := httptest.NewRecorder()

		h.SetStatus(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestCollectPayment(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &stubService{}
		h := newTestHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/orders/5/collect", nil), "orderID", "5")
		w := httptest.NewRecorder()

		h.CollectPayment(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if svc.collectedID != 5 {
			t.Fatalf("collected id = %d, want 5", svc.collectedID)
		}
	})

	t.Run("overpaid record", func(t *testing.T) {
		h := newTestHandler(&stubService{collectErr: repository.ErrOverpaid})

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/orders/5/collect", nil), "orderID", "5")
		w := httptest.NewRecorder()

		h.CollectPayment(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestHandler(&stubService{collectErr: repository.ErrOrderNotFound})

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/orders/99/collect", nil), "orderID", "99")
		w := httptest.NewRecorder()

		h.CollectPayment(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestFindCustomer(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := newTestHandler(&stubService{customer: &model.Customer{ID: 3, Name: "Ravi", Mobile: "9876543210"}})

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/9876543210", nil), "mobile", "9876543210")
		w := httptest.NewRecorder()

		h.FindCustomer(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp customerResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != 3 || resp.Mobile != "9876543210" {
			t.Fatalf("customer = %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestHandler(&stubService{findErr: repository.ErrCustomerNotFound})

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/0000000000", nil), "mobile", "0000000000")
		w := httptest.NewRecorder()

		h.FindCustomer(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestBilling(t *testing.T) {
	svc := &stubService{orders: []model.Order{
		{ID: 1, CustomerName: "Ravi", TotalAmount: 10000, AdvanceAmount: 10000},
		{ID: 2, CustomerName: "Amit", TotalAmount: 20000, AdvanceAmount: 5000},
	}}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/billing", nil)
	w := httptest.NewRecorder()

	h.Billing(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp billingResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Stats.TotalSales != 300 || resp.Stats.Collected != 150 || resp.Stats.Pending != 150 {
		t.Fatalf("stats = %+v", resp.Stats)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(resp.Transactions))
	}
	if !resp.Transactions[0].Settled || resp.Transactions[1].Settled {
		t.Fatalf("settled flags = %v/%v", resp.Transactions[0].Settled, resp.Transactions[1].Settled)
	}
}

func TestEstimate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		body := `{"garment_type":"Shirt","height_ft":5.8,"chest":38}`
		req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.Estimate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp estimator.Result
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Meters != "1.60" {
			t.Fatalf("meters = %q, want 1.60", resp.Meters)
		}
	})

	t.Run("unknown garment", func(t *testing.T) {
		h := newTestHandler(&stubService{})

		body := `{"garment_type":"Dress","height_ft":5.8}`
		req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
		w := httptest.NewRecorder()

		h.Estimate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestCreateFabricValidation(t *testing.T) {
	h := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"price_per_meter":200}`))
	w := httptest.NewRecorder()

	h.CreateFabric(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a nameless fabric", w.Code)
	}
}

func TestRouterAuth(t *testing.T) {
	h := newTestHandler(&stubService{})
	router := h.SetupRouter()

	t.Run("orders require auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("login is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"admin","password":"admin123"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("cookie grants access", func(t *testing.T) {
		login := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"admin","password":"admin123"}`))
		lw := httptest.NewRecorder()
		router.ServeHTTP(lw, login)

		cookies := lw.Result().Cookies()
		if len(cookies) == 0 {
			t.Fatal("login set no cookie")
		}

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}

func TestUpdateOrderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid amount", service.ErrInvalidAmount, http.StatusBadRequest},
		{"not found", repository.ErrOrderNotFound, http.StatusNotFound},
		{"storage failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubService{updateErr: tt.err})

			body := bytes.NewReader([]byte(`{"total_amount":1000,"advance_amount":200}`))
			req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/orders/1", body), "orderID", "1")
			w := httptest.NewRecorder()

			h.UpdateOrder(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
