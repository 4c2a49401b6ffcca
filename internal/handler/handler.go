// Package handler contains the HTTP handlers of the tailoring shop API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/babjihd-maker/Pearl-Tailor/internal/estimator"
	"github.com/babjihd-maker/Pearl-Tailor/internal/middleware"
	"github.com/babjihd-maker/Pearl-Tailor/internal/model"
	"github.com/babjihd-maker/Pearl-Tailor/internal/repository"
	"github.com/babjihd-maker/Pearl-Tailor/internal/service"
)

// Service defines the business logic contract used by the HTTP handlers.
type Service interface {
	Authenticate(login, password string) error
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (int64, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, *model.Measurements, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	SetStatus(ctx context.Context, id int64, status model.OrderStatus) error
	CollectPayment(ctx context.Context, id int64) error
	UpdateOrder(ctx context.Context, in service.UpdateOrderInput) error
	FindCustomer(ctx context.Context, mobile string) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	BillingStats(ctx context.Context) (*model.BillingStats, error)
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	LowStockFabrics(ctx context.Context) ([]model.FabricItem, error)
	EstimateFabric(garmentType string, heightFt, chest, waist float64, bodyType string) (*estimator.Result, error)
	CreateFabric(ctx context.Context, f model.FabricItem, pricePerMeter float64) (int64, error)
	UpdateFabric(ctx context.Context, f model.FabricItem, pricePerMeter float64) error
	DeleteFabric(ctx context.Context, id int64) error
	ListFabrics(ctx context.Context) ([]model.FabricItem, *model.InventoryStats, error)
}

// Handler implements the HTTP handlers of the tailoring shop API.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler instance.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login authenticates the shop operator and sets the auth cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.Authenticate(req.Login, req.Password); err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.authMiddleware.SetAuthCookie(w, 1)
	w.WriteHeader(http.StatusOK)
}

// measurementsRequest carries the measurement form fields. Values arrive as
// free text from the entry form; unparseable values are stored as zero.
type measurementsRequest struct {
	Chest        string `json:"chest"`
	Waist        string `json:"waist"`
	ShirtLength  string `json:"shirt_length"`
	PantLength   string `json:"pant_length"`
	Shoulder     string `json:"shoulder"`
	SleeveLength string `json:"sleeve_length"`
	Neck         string `json:"neck"`
	Hip          string `json:"hip"`
	Inseam       string `json:"inseam"`
	Thigh        string `json:"thigh"`
	ArmHole      string `json:"arm_hole"`
	Bicep        string `json:"bicep"`
	Knee         string `json:"knee"`
	Calf         string `json:"calf"`
	Ankle        string `json:"ankle"`
	Notes        string `json:"notes"`
}

func coerce(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func (m measurementsRequest) toModel() model.Measurements {
	return model.Measurements{
		Chest:        coerce(m.Chest),
		Waist:        coerce(m.Waist),
		ShirtLength:  coerce(m.ShirtLength),
		PantLength:   coerce(m.PantLength),
		Shoulder:     coerce(m.Shoulder),
		SleeveLength: coerce(m.SleeveLength),
		Neck:         coerce(m.Neck),
		Hip:          coerce(m.Hip),
		Inseam:       coerce(m.Inseam),
		Thigh:        coerce(m.Thigh),
		ArmHole:      coerce(m.ArmHole),
		Bicep:        coerce(m.Bicep),
		Knee:         coerce(m.Knee),
		Calf:         coerce(m.Calf),
		Ankle:        coerce(m.Ankle),
		Notes:        m.Notes,
	}
}

// measurementsResponse renders only the measurements that were taken;
// zero means "not specified" and is omitted.
type measurementsResponse struct {
	Chest        float64 `json:"chest,omitempty"`
	Waist        float64 `json:"waist,omitempty"`
	ShirtLength  float64 `json:"shirt_length,omitempty"`
	PantLength   float64 `json:"pant_length,omitempty"`
	Shoulder     float64 `json:"shoulder,omitempty"`
	SleeveLength float64 `json:"sleeve_length,omitempty"`
	Neck         float64 `json:"neck,omitempty"`
	Hip          float64 `json:"hip,omitempty"`
	Inseam       float64 `json:"inseam,omitempty"`
	Thigh        float64 `json:"thigh,omitempty"`
	ArmHole      float64 `json:"arm_hole,omitempty"`
	Bicep        float64 `json:"bicep,omitempty"`
	Knee         float64 `json:"knee,omitempty"`
	Calf         float64 `json:"calf,omitempty"`
	Ankle        float64 `json:"ankle,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

func newMeasurementsResponse(m *model.Measurements) *measurementsResponse {
	if m == nil {
		return nil
	}
	return &measurementsResponse{
		Chest:        m.Chest,
		Waist:        m.Waist,
		ShirtLength:  m.ShirtLength,
		PantLength:   m.PantLength,
		Shoulder:     m.Shoulder,
		SleeveLength: m.SleeveLength,
		Neck:         m.Neck,
		Hip:          m.Hip,
		Inseam:       m.Inseam,
		Thigh:        m.Thigh,
		ArmHole:      m.ArmHole,
		Bicep:        m.Bicep,
		Knee:         m.Knee,
		Calf:         m.Calf,
		Ankle:        m.Ankle,
		Notes:        m.Notes,
	}
}

type createOrderRequest struct {
	CustomerID    int64               `json:"customer_id,omitempty"`
	CustomerName  string              `json:"customer_name"`
	Mobile        string              `json:"mobile"`
	Gender        string              `json:"gender"`
	Age           string              `json:"age"`
	GarmentType   string              `json:"garment_type"`
	FabricDetails string              `json:"fabric_details"`
	PaymentMethod string              `json:"payment_method"`
	IsUrgent      bool                `json:"is_urgent"`
	TotalAmount   float64             `json:"total_amount"`
	AdvanceAmount float64             `json:"advance_amount"`
	Measurements  measurementsRequest `json:"measurements"`
}

type createOrderResponse struct {
	ID int64 `json:"id"`
}

// CreateOrder places a new order together with its measurement set.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.CustomerID == 0 && req.Mobile == "" {
		http.Error(w, "customer mobile is required", http.StatusBadRequest)
		return
	}

	age, _ := strconv.Atoi(req.Age)

	id, err := h.service.CreateOrder(r.Context(), service.CreateOrderInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		Mobile:        req.Mobile,
		Gender:        req.Gender,
		Age:           age,
		GarmentType:   req.GarmentType,
		FabricDetails: req.FabricDetails,
		PaymentMethod: req.PaymentMethod,
		IsUrgent:      req.IsUrgent,
		Total:         req.TotalAmount,
		Advance:       req.AdvanceAmount,
		Measurements:  req.Measurements.toModel(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("create order error", zap.Error(err), zap.String("mobile", req.Mobile))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createOrderResponse{ID: id}); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

type customerResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Gender string `json:"gender,omitempty"`
	Age    int    `json:"age,omitempty"`
}

type orderResponse struct {
	ID            int64                 `json:"id"`
	Status        string                `json:"status"`
	Stage         int                   `json:"stage"`
	StageName     string                `json:"stage_name"`
	TotalAmount   float64               `json:"total_amount"`
	AdvanceAmount float64               `json:"advance_amount"`
	Due           float64               `json:"due"`
	PaymentMethod string                `json:"payment_method"`
	GarmentType   string                `json:"garment_type"`
	FabricDetails string                `json:"fabric_details"`
	IsUrgent      bool                  `json:"is_urgent"`
	DeliveryDate  string                `json:"delivery_date"`
	CreatedAt     string                `json:"created_at"`
	Customer      customerResponse      `json:"customer"`
	Measurements  *measurementsResponse `json:"measurements,omitempty"`
}

func newOrderResponse(o model.Order, m *model.Measurements) orderResponse {
	stage := o.Stage()
	return orderResponse{
		ID:            o.ID,
		Status:        string(o.Status),
		Stage:         int(stage),
		StageName:     stage.String(),
		TotalAmount:   rupees(o.TotalAmount),
		AdvanceAmount: rupees(o.AdvanceAmount),
		Due:           rupees(o.Due()),
		PaymentMethod: o.PaymentMethod,
		GarmentType:   o.GarmentType,
		FabricDetails: o.FabricDetails,
		IsUrgent:      o.IsUrgent,
		DeliveryDate:  o.DeliveryDate.Format(time.RFC3339),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		Customer: customerResponse{
			ID:     o.CustomerID,
			Name:   o.CustomerName,
			Mobile: o.Mobile,
		},
		Measurements: newMeasurementsResponse(m),
	}
}

func rupees(paise int64) float64 {
	return float64(paise) / 100
}

// GetOrder returns a single order with its measurements.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, m, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get order error", zap.Error(err), zap.Int64("orderID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, newOrderResponse(*order, m))
}

// ListOrders returns all orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("list orders error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, newOrderResponse(o, nil))
	}

	h.writeJSON(w, resp)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus overwrites the production status of an order.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.service.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("set status error", zap.Error(err), zap.Int64("orderID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// CollectPayment settles the remaining balance and marks the order delivered.
func (h *Handler) CollectPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.CollectPayment(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, repository.ErrOverpaid):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("collect payment error", zap.Error(err), zap.Int64("orderID", id))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

type updateOrderRequest struct {
	TotalAmount   float64             `json:"total_amount"`
	AdvanceAmount float64             `json:"advance_amount"`
	GarmentType   string              `json:"garment_type"`
	FabricDetails string              `json:"fabric_details"`
	Measurements  measurementsRequest `json:"measurements"`
}

// UpdateOrder corrects billing figures, garment details and measurements.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.service.UpdateOrder(r.Context(), service.UpdateOrderInput{
		OrderID:       id,
		Total:         req.TotalAmount,
		Advance:       req.AdvanceAmount,
		GarmentType:   req.GarmentType,
		FabricDetails: req.FabricDetails,
		Measurements:  req.Measurements.toModel(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrOrderNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("update order error", zap.Error(err), zap.Int64("orderID", id))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// FindCustomer looks up a customer by mobile number for order entry prefill.
func (h *Handler) FindCustomer(w http.ResponseWriter, r *http.Request) {
	mobile := urlParam(r, "mobile")

	c, err := h.service.FindCustomer(r.Context(), mobile)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("find customer error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, customerResponse{ID: c.ID, Name: c.Name, Mobile: c.Mobile, Gender: c.Gender, Age: c.Age})
}

// ListCustomers returns all customers, newest first.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("list customers error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, customerResponse{ID: c.ID, Name: c.Name, Mobile: c.Mobile, Gender: c.Gender, Age: c.Age})
	}

	h.writeJSON(w, resp)
}

type transactionResponse struct {
	OrderID  int64   `json:"order_id"`
	Customer string  `json:"customer"`
	Bill     float64 `json:"bill"`
	Paid     float64 `json:"paid"`
	Due      float64 `json:"due"`
	Settled  bool    `json:"settled"`
}

type billingResponse struct {
	Stats        model.BillingStats    `json:"stats"`
	Transactions []transactionResponse `json:"transactions"`
}

// Billing returns the billing aggregates and the per-order figures.
func (h *Handler) Billing(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("billing error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := billingResponse{
		Stats:        service.BillingStatsOf(orders),
		Transactions: make([]transactionResponse, 0, len(orders)),
	}
	for _, o := range orders {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			OrderID:  o.ID,
			Customer: o.CustomerName,
			Bill:     rupees(o.TotalAmount),
			Paid:     rupees(o.AdvanceAmount),
			Due:      rupees(o.Due()),
			Settled:  o.Due() == 0,
		})
	}

	h.writeJSON(w, resp)
}

type dashboardResponse struct {
	Stats    model.DashboardStats `json:"stats"`
	LowStock []fabricResponse     `json:"low_stock"`
}

// Dashboard returns the order-book counters and the low-stock fabric panel.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	lowStock, err := h.service.LowStockFabrics(r.Context())
	if err != nil {
		h.logger.Error("low stock error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{Stats: *stats, LowStock: make([]fabricResponse, 0, len(lowStock))}
	for _, f := range lowStock {
		resp.LowStock = append(resp.LowStock, newFabricResponse(f))
	}

	h.writeJSON(w, resp)
}

type estimateRequest struct {
	GarmentType string  `json:"garment_type"`
	HeightFt    float64 `json:"height_ft"`
	Chest       float64 `json:"chest"`
	Waist       float64 `json:"waist"`
	BodyType    string  `json:"body_type"`
}

// Estimate computes an advisory fabric-length estimate. Nothing is persisted.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	res, err := h.service.EstimateFabric(req.GarmentType, req.HeightFt, req.Chest, req.Waist, req.BodyType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, res)
}

type fabricRequest struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	PricePerMeter  float64 `json:"price_per_meter"`
	StockRemaining float64 `json:"stock_remaining"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
}

type fabricResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Type           string  `json:"type"`
	PricePerMeter  float64 `json:"price_per_meter"`
	StockRemaining float64 `json:"stock_remaining"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
}

func newFabricResponse(f model.FabricItem) fabricResponse {
	return fabricResponse{
		ID:             f.ID,
		Name:           f.Name,
		Category:       f.Category,
		Type:           f.Type,
		PricePerMeter:  rupees(f.PricePerMeter),
		StockRemaining: f.StockRemaining,
		Description:    f.Description,
		ImageURL:       f.ImageURL,
	}
}

type inventoryResponse struct {
	Stats model.InventoryStats `json:"stats"`
	Items []fabricResponse     `json:"items"`
}

// ListInventory returns the fabric inventory with its aggregates.
func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, stats, err := h.service.ListFabrics(r.Context())
	if err != nil {
		h.logger.Error("list inventory error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := inventoryResponse{Stats: *stats, Items: make([]fabricResponse, 0, len(items))}
	for _, f := range items {
		resp.Items = append(resp.Items, newFabricResponse(f))
	}

	h.writeJSON(w, resp)
}

// CreateFabric adds a fabric roll to the inventory.
func (h *Handler) CreateFabric(w http.ResponseWriter, r *http.Request) {
	var req fabricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "fabric name is required", http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateFabric(r.Context(), model.FabricItem{
		Name:           req.Name,
		Category:       req.Category,
		StockRemaining: req.StockRemaining,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	}, req.PricePerMeter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("create fabric error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createOrderResponse{ID: id}); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// UpdateFabric updates an inventory item.
func (h *Handler) UpdateFabric(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "fabricID")
	if !ok {
		return
	}

	var req fabricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.service.UpdateFabric(r.Context(), model.FabricItem{
		ID:             id,
		Name:           req.Name,
		Category:       req.Category,
		StockRemaining: req.StockRemaining,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	}, req.PricePerMeter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrFabricNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("update fabric error", zap.Error(err), zap.Int64("fabricID", id))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteFabric removes an inventory item.
func (h *Handler) DeleteFabric(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "fabricID")
	if !ok {
		return
	}

	if err := h.service.DeleteFabric(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrFabricNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete fabric error", zap.Error(err), zap.Int64("fabricID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return h.pathID(w, r, "orderID")
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(urlParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
