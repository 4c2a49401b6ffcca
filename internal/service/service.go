// Package service implements the business logic of the tailoring shop.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/babjihd-maker/Pearl-Tailor/internal/estimator"
	"github.com/babjihd-maker/Pearl-Tailor/internal/model"
	"github.com/babjihd-maker/Pearl-Tailor/internal/repository"
)

// Orders are due seven days after placement; the shop does not schedule per order.
const deliveryLeadTime = 7 * 24 * time.Hour

// Low-stock panel on the dashboard shows at most five items under ten meters.
const (
	lowStockThreshold = 10
	lowStockLimit     = 5
)

// ErrInvalidAmount is returned when billing figures fail validation before a write.
var (
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidCredentials is returned when the operator login does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository describes the data access contract used by the service.
type Repository interface {
	Close() error
	CreateCustomer(ctx context.Context, name, mobile, gender string, age int) (int64, error)
	GetCustomerByMobile(ctx context.Context, mobile string) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, name, gender string, age int) error
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CreateOrderWithMeasurements(ctx context.Context, o model.Order, m model.Measurements) (int64, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	GetMeasurements(ctx context.Context, orderID int64) (*model.Measurements, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error
	SettleOrder(ctx context.Context, id int64) error
	UpdateOrderDetails(ctx context.Context, id int64, total, advance int64, garmentType, fabricDetails string) error
	UpdateMeasurements(ctx context.Context, m model.Measurements) error
	CreateFabric(ctx context.Context, f model.FabricItem) (int64, error)
	UpdateFabric(ctx context.Context, f model.FabricItem) error
	DeleteFabric(ctx context.Context, id int64) error
	ListFabrics(ctx context.Context) ([]model.FabricItem, error)
	LowStockFabrics(ctx context.Context, threshold float64, limit int) ([]model.FabricItem, error)
}

// Service contains the business logic of the tailoring shop.
type Service struct {
	repo          Repository
	adminLogin    string
	adminPassword string
}

// NewService creates a service over the given repository with the configured
// operator credentials.
func NewService(repo Repository, adminLogin, adminPassword string) *Service {
	return &Service{
		repo:          repo,
		adminLogin:    adminLogin,
		adminPassword: adminPassword,
	}
}

// Close releases the service resources.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// Authenticate checks the shop operator credentials.
func (s *Service) Authenticate(login, password string) error {
	if login != s.adminLogin || password != s.adminPassword {
		return ErrInvalidCredentials
	}
	return nil
}

// CreateOrderInput carries everything needed to place a new order.
// Amounts are in rupees.
type CreateOrderInput struct {
	CustomerID    int64 // 0 when the customer is not known yet
	CustomerName  string
	Mobile        string
	Gender        string
	Age           int
	GarmentType   string
	FabricDetails string
	PaymentMethod string
	IsUrgent      bool
	Total         float64
	Advance       float64
	Measurements  model.Measurements
}

// CreateOrder resolves the customer by id or mobile number, then persists the
// order and its measurement set in one transaction. A uniqueness conflict on
// the mobile number is recovered by reusing the existing customer.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (int64, error) {
	if in.Total <= 0 {
		return 0, fmt.Errorf("%w: total must be positive", ErrInvalidAmount)
	}
	if in.Advance < 0 {
		return 0, fmt.Errorf("%w: advance must not be negative", ErrInvalidAmount)
	}
	if in.Advance > in.Total {
		return 0, fmt.Errorf("%w: advance exceeds total", ErrInvalidAmount)
	}

	customerID, err := s.resolveCustomer(ctx, in)
	if err != nil {
		return 0, err
	}

	order := model.Order{
		CustomerID:    customerID,
		Status:        model.StatusOrderReceived,
		TotalAmount:   toPaise(in.Total),
		AdvanceAmount: toPaise(in.Advance),
		PaymentMethod: in.PaymentMethod,
		GarmentType:   in.GarmentType,
		FabricDetails: in.FabricDetails,
		IsUrgent:      in.IsUrgent,
		DeliveryDate:  time.Now().Add(deliveryLeadTime),
	}

	return s.repo.CreateOrderWithMeasurements(ctx, order, in.Measurements)
}

func (s *Service) resolveCustomer(ctx context.Context, in CreateOrderInput) (int64, error) {
	if in.CustomerID != 0 {
		if err := s.repo.UpdateCustomer(ctx, in.CustomerID, in.CustomerName, in.Gender, in.Age); err != nil {
			return 0, err
		}
		return in.CustomerID, nil
	}

	id, err := s.repo.CreateCustomer(ctx, in.CustomerName, in.Mobile, in.Gender, in.Age)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrCustomerExists) {
		return 0, err
	}

	// Another order already registered this mobile number; reuse that identity.
	existing, err := s.repo.GetCustomerByMobile(ctx, in.Mobile)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// FindCustomer looks a customer up by mobile number for prefill during order entry.
func (s *Service) FindCustomer(ctx context.Context, mobile string) (*model.Customer, error) {
	return s.repo.GetCustomerByMobile(ctx, mobile)
}

// ListCustomers returns all shop customers.
func (s *Service) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// GetOrder returns an order with its measurement set. Orders created before
// the transactional creation flow may lack measurements; those return nil.
func (s *Service) GetOrder(ctx context.Context, id int64) (*model.Order, *model.Measurements, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	m, err := s.repo.GetMeasurements(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return order, nil, nil
		}
		return nil, nil, err
	}

	return order, m, nil
}

// ListOrders returns all orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.repo.ListOrders(ctx)
}

// SetStatus overwrites the order status. Any enumerated status is legal from
// any other; the production pipeline allows skipping and reworking steps.
func (s *Service) SetStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	return s.repo.UpdateOrderStatus(ctx, id, status)
}

// CollectPayment settles the remaining balance in full and marks the order
// delivered, as one atomic update. Calling it on a settled order is a no-op
// that leaves the order fully paid and delivered.
func (s *Service) CollectPayment(ctx context.Context, id int64) error {
	return s.repo.SettleOrder(ctx, id)
}

// UpdateOrderInput carries an order correction. Amounts are in rupees.
type UpdateOrderInput struct {
	OrderID       int64
	Total         float64
	Advance       float64
	GarmentType   string
	FabricDetails string
	Measurements  model.Measurements
}

// UpdateOrder corrects the billing figures, garment details and measurements
// of an existing order.
func (s *Service) UpdateOrder(ctx context.Context, in UpdateOrderInput) error {
	if in.Total <= 0 {
		return fmt.Errorf("%w: total must be positive", ErrInvalidAmount)
	}
	if in.Advance < 0 || in.Advance > in.Total {
		return fmt.Errorf("%w: advance must be between zero and total", ErrInvalidAmount)
	}

	err := s.repo.UpdateOrderDetails(ctx, in.OrderID, toPaise(in.Total), toPaise(in.Advance), in.GarmentType, in.FabricDetails)
	if err != nil {
		return err
	}

	m := in.Measurements
	m.OrderID = in.OrderID
	return s.repo.UpdateMeasurements(ctx, m)
}

// BillingStats recomputes the billing aggregates over all orders on every call.
func (s *Service) BillingStats(ctx context.Context) (*model.BillingStats, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	stats := BillingStatsOf(orders)
	return &stats, nil
}

// BillingStatsOf reduces a set of orders to its billing aggregates.
func BillingStatsOf(orders []model.Order) model.BillingStats {
	var total, collected int64
	for _, o := range orders {
		total += o.TotalAmount
		collected += o.AdvanceAmount
	}
	return model.BillingStats{
		TotalSales: toRupees(total),
		Collected:  toRupees(collected),
		Pending:    toRupees(total - collected),
	}
}

// DashboardStats recomputes the dashboard counters over all orders.
func (s *Service) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	stats := model.DashboardStats{TotalOrders: len(orders)}
	var revenue int64
	for _, o := range orders {
		if o.Status != model.StatusDelivered {
			stats.Pending++
		}
		if o.Status == model.StatusReadyForDelivery {
			stats.Ready++
		}
		revenue += o.TotalAmount
	}
	stats.Revenue = toRupees(revenue)

	return &stats, nil
}

// LowStockFabrics returns the fabrics running out, for the dashboard panel.
func (s *Service) LowStockFabrics(ctx context.Context) ([]model.FabricItem, error) {
	return s.repo.LowStockFabrics(ctx, lowStockThreshold, lowStockLimit)
}

// EstimateFabric computes an advisory cloth-length estimate. Missing chest and
// waist default to 40" and 32"; a missing body type defaults to Normal. The
// result is never persisted against an order.
func (s *Service) EstimateFabric(garmentType string, heightFt, chest, waist float64, bodyType string) (*estimator.Result, error) {
	garment, err := estimator.ParseGarmentType(garmentType)
	if err != nil {
		return nil, err
	}

	body := estimator.BodyNormal
	if bodyType != "" {
		body, err = estimator.ParseBodyType(bodyType)
		if err != nil {
			return nil, err
		}
	}

	if chest == 0 {
		chest = 40
	}
	if waist == 0 {
		waist = 32
	}

	res, err := estimator.Estimate(garment, estimator.Input{
		HeightFt: heightFt,
		Chest:    chest,
		Waist:    waist,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateFabric adds a fabric roll to the inventory. Price is in rupees.
func (s *Service) CreateFabric(ctx context.Context, f model.FabricItem, pricePerMeter float64) (int64, error) {
	if pricePerMeter < 0 || f.StockRemaining < 0 {
		return 0, fmt.Errorf("%w: price and stock must not be negative", ErrInvalidAmount)
	}
	f.PricePerMeter = toPaise(pricePerMeter)
	if f.Type == "" {
		f.Type = "Fabric"
	}
	return s.repo.CreateFabric(ctx, f)
}

// UpdateFabric updates an inventory item. Price is in rupees.
func (s *Service) UpdateFabric(ctx context.Context, f model.FabricItem, pricePerMeter float64) error {
	if pricePerMeter < 0 || f.StockRemaining < 0 {
		return fmt.Errorf("%w: price and stock must not be negative", ErrInvalidAmount)
	}
	f.PricePerMeter = toPaise(pricePerMeter)
	if f.Type == "" {
		f.Type = "Fabric"
	}
	return s.repo.UpdateFabric(ctx, f)
}

// DeleteFabric removes an inventory item.
func (s *Service) DeleteFabric(ctx context.Context, id int64) error {
	return s.repo.DeleteFabric(ctx, id)
}

// ListFabrics returns the whole inventory together with its aggregates.
func (s *Service) ListFabrics(ctx context.Context) ([]model.FabricItem, *model.InventoryStats, error) {
	items, err := s.repo.ListFabrics(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := model.InventoryStats{Total: len(items)}
	var value float64
	for _, f := range items {
		if f.StockRemaining > 0 {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		value += toRupees(f.PricePerMeter) * f.StockRemaining
	}
	stats.StockValue = value

	return items, &stats, nil
}

func toPaise(rupees float64) int64 {
	return int64(rupees * 100)
}

func toRupees(paise int64) float64 {
	return float64(paise) / 100
}
