// Package model contains the domain entities of the tailoring shop service.
package model

import (
	"fmt"
	"time"
)

// OrderStatus describes the production step an order is currently in.
type OrderStatus string

const (
	StatusOrderReceived    OrderStatus = "Order Received"
	StatusCutting          OrderStatus = "Cutting"
	StatusStitching        OrderStatus = "Stitching"
	StatusButtoning        OrderStatus = "Buttoning"
	StatusIroning          OrderStatus = "Ironing"
	StatusReadyForDelivery OrderStatus = "Ready for Delivery"
	StatusDelivered        OrderStatus = "Delivered"
)

// OrderStatuses lists every valid status in production order.
var OrderStatuses = []OrderStatus{
	StatusOrderReceived,
	StatusCutting,
	StatusStitching,
	StatusButtoning,
	StatusIroning,
	StatusReadyForDelivery,
	StatusDelivered,
}

// ParseOrderStatus converts a raw string into an OrderStatus.
// Anything outside the enumerated set is rejected.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// ProgressStage is the 4-bucket grouping of statuses shown on the order timeline.
type ProgressStage int

const (
	StageOrderPlaced  ProgressStage = 1
	StageInProduction ProgressStage = 2
	StageReady        ProgressStage = 3
	StageDelivered    ProgressStage = 4
)

// String returns the display name of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageInProduction:
		return "In Production"
	case StageReady:
		return "Ready"
	case StageDelivered:
		return "Delivered"
	default:
		return "Order Placed"
	}
}

// StageOf maps a status to its progress stage. Unrecognized statuses fall back
// to the first stage.
func StageOf(status OrderStatus) ProgressStage {
	switch status {
	case StatusCutting, StatusStitching, StatusButtoning, StatusIroning:
		return StageInProduction
	case StatusReadyForDelivery:
		return StageReady
	case StatusDelivered:
		return StageDelivered
	default:
		return StageOrderPlaced
	}
}

// Customer represents a shop customer identified by a unique mobile number.
type Customer struct {
	ID        int64
	Name      string
	Mobile    string
	Gender    string
	Age       int
	CreatedAt time.Time
}

// Order describes a single custom-garment job. Amounts are stored in paise.
type Order struct {
	ID            int64
	CustomerID    int64
	CustomerName  string
	Mobile        string
	Status        OrderStatus
	TotalAmount   int64
	AdvanceAmount int64
	PaymentMethod string
	GarmentType   string
	FabricDetails string
	IsUrgent      bool
	DeliveryDate  time.Time
	CreatedAt     time.Time
}

// Due returns the remaining balance in paise, never negative.
func (o Order) Due() int64 {
	due := o.TotalAmount - o.AdvanceAmount
	if due < 0 {
		return 0
	}
	return due
}

// Stage returns the progress stage of the order.
func (o Order) Stage() ProgressStage {
	return StageOf(o.Status)
}

// Measurements is the measurement set attached to an order. A zero field means
// the measurement was not taken.
type Measurements struct {
	OrderID      int64
	Chest        float64
	Waist        float64
	ShirtLength  float64
	PantLength   float64
	Shoulder     float64
	SleeveLength float64
	Neck         float64
	Hip          float64
	Inseam       float64
	Thigh        float64
	ArmHole      float64
	Bicep        float64
	Knee         float64
	Calf         float64
	Ankle        float64
	Notes        string
}

// FabricItem is a fabric roll tracked in the shop inventory.
type FabricItem struct {
	ID             int64
	Name           string
	Category       string
	Type           string
	PricePerMeter  int64
	StockRemaining float64
	Description    string
	ImageURL       string
	CreatedAt      time.Time
}

// BillingStats aggregates billing figures over all orders, in rupees.
type BillingStats struct {
	TotalSales float64 `json:"total_sales"`
	Collected  float64 `json:"collected"`
	Pending    float64 `json:"pending"`
}

// DashboardStats summarizes the order book for the dashboard, revenue in rupees.
type DashboardStats struct {
	TotalOrders int     `json:"total_orders"`
	Pending     int     `json:"pending"`
	Ready       int     `json:"ready"`
	Revenue     float64 `json:"revenue"`
}

// InventoryStats summarizes the fabric inventory, stock value in rupees.
type InventoryStats struct {
	Total      int     `json:"total"`
	InStock    int     `json:"in_stock"`
	OutOfStock int     `json:"out_of_stock"`
	StockValue float64 `json:"stock_value"`
}
