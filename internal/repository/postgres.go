// Package repository contains the PostgreSQL data access layer.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/babjihd-maker/Pearl-Tailor/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrCustomerExists is returned when a customer with the same mobile number already exists.
var (
	ErrCustomerExists = errors.New("customer already exists")
	// ErrCustomerNotFound is returned when no customer matches the lookup.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound is returned when no order matches the given id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrFabricNotFound is returned when no inventory item matches the given id.
	ErrFabricNotFound = errors.New("fabric item not found")
	// ErrOverpaid is returned when an order's advance already exceeds its total.
	ErrOverpaid = errors.New("advance exceeds total amount")
)

// PostgresRepository provides access to the shop data stored in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository and initializes the schema via migrations.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		// Retries help with serialization failures and deadlocks; pgxpool
		// handles plain reconnects on its own.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected {
				if i < len(delays) {
					time.Sleep(delays[i])
					continue
				}
			}
		}

		if isConnectionError(err) {
			if i < len(delays) {
				time.Sleep(delays[i])
				continue
			}
		}

		break
	}
	return err
}

func isConnectionError(err error) bool {
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close closes the database connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateCustomer creates a new customer record.
func (r *PostgresRepository) CreateCustomer(ctx context.Context, name, mobile, gender string, age int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (name, mobile, gender, age) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, mobile, gender, age,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%w: %s", ErrCustomerExists, mobile)
		}
		return 0, fmt.Errorf("create customer: %w", err)
	}
	return id, nil
}

// GetCustomerByMobile returns the customer with the given mobile number.
func (r *PostgresRepository) GetCustomerByMobile(ctx context.Context, mobile string) (*model.Customer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, mobile, gender, age, created_at FROM customers WHERE mobile = $1`,
		mobile,
	)

	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Mobile, &c.Gender, &c.Age, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

// UpdateCustomer updates the mutable fields of an existing customer.
func (r *PostgresRepository) UpdateCustomer(ctx context.Context, id int64, name, gender string, age int) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE customers SET name = $2, gender = $3, age = $4 WHERE id = $1`,
		id, name, gender, age,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// ListCustomers returns all customers, newest first.
func (r *PostgresRepository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, mobile, gender, age, created_at
		 FROM customers
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	var res []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Mobile, &c.Gender, &c.Age, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		res = append(res, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// CreateOrderWithMeasurements persists an order and its measurement set in a
// single transaction so a failed measurement insert never leaves an orphaned order.
func (r *PostgresRepository) CreateOrderWithMeasurements(ctx context.Context, o model.Order, m model.Measurements) (int64, error) {
	var orderID int64

	err := r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		err = tx.QueryRow(ctx,
			`INSERT INTO orders
			   (customer_id, status, total_amount, advance_amount, payment_method,
			    garment_type, fabric_details, is_urgent, delivery_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			o.CustomerID, string(o.Status), o.TotalAmount, o.AdvanceAmount, o.PaymentMethod,
			o.GarmentType, o.FabricDetails, o.IsUrgent, o.DeliveryDate,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO measurements
			   (order_id, chest, waist, shirt_length, pant_length, shoulder, sleeve_length,
			    neck, hip, inseam, thigh, arm_hole, bicep, knee, calf, ankle, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			orderID, m.Chest, m.Waist, m.ShirtLength, m.PantLength, m.Shoulder, m.SleeveLength,
			m.Neck, m.Hip, m.Inseam, m.Thigh, m.ArmHole, m.Bicep, m.Knee, m.Calf, m.Ankle, m.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert measurements: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return orderID, nil
}

const orderColumns = `o.id, o.customer_id, c.name, c.mobile, o.status, o.total_amount,
	 o.advance_amount, o.payment_method, o.garment_type, o.fabric_details,
	 o.is_urgent, o.delivery_date, o.created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var status string
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.Mobile, &status, &o.TotalAmount,
		&o.AdvanceAmount, &o.PaymentMethod, &o.GarmentType, &o.FabricDetails,
		&o.IsUrgent, &o.DeliveryDate, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

// GetOrder returns an order together with its customer fields.
func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+`
		 FROM orders o
		 JOIN customers c ON c.id = o.customer_id
		 WHERE o.id = $1`,
		id,
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

// GetMeasurements returns the measurement set attached to the given order.
func (r *PostgresRepository) GetMeasurements(ctx context.Context, orderID int64) (*model.Measurements, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT order_id, chest, waist, shirt_length, pant_length, shoulder, sleeve_length,
		        neck, hip, inseam, thigh, arm_hole, bicep, knee, calf, ankle, notes
		 FROM measurements
		 WHERE order_id = $1`,
		orderID,
	)

	var m model.Measurements
	err := row.Scan(
		&m.OrderID, &m.Chest, &m.Waist, &m.ShirtLength, &m.PantLength, &m.Shoulder, &m.SleeveLength,
		&m.Neck, &m.Hip, &m.Inseam, &m.Thigh, &m.ArmHole, &m.Bicep, &m.Knee, &m.Calf, &m.Ankle, &m.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get measurements: %w", err)
	}

	return &m, nil
}

// ListOrders returns all orders with customer fields, newest first.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders o
		 JOIN customers c ON c.id = o.customer_id
		 ORDER BY o.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus overwrites the order status. Any status from the enumerated
// set is accepted regardless of the current one; the shop skips and reworks steps.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SettleOrder raises the advance to the full total and marks the order delivered
// as one atomic update. Locks the order row so a concurrent settle or edit cannot
// interleave. Returns ErrOverpaid when the advance already exceeds the total.
func (r *PostgresRepository) SettleOrder(ctx context.Context, id int64) error {
	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var total, advance int64
		err = tx.QueryRow(ctx,
			`SELECT total_amount, advance_amount FROM orders WHERE id = $1 FOR UPDATE`,
			id,
		).Scan(&total, &advance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		if advance > total {
			return ErrOverpaid
		}

		_, err = tx.Exec(ctx,
			`UPDATE orders SET advance_amount = total_amount, status = $2 WHERE id = $1`,
			id, string(model.StatusDelivered),
		)
		if err != nil {
			return fmt.Errorf("settle order: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}

		return nil
	})
}

// UpdateOrderDetails corrects the billing figures and garment details of an order.
func (r *PostgresRepository) UpdateOrderDetails(ctx context.Context, id int64, total, advance int64, garmentType, fabricDetails string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE orders
		 SET total_amount = $2, advance_amount = $3, garment_type = $4, fabric_details = $5
		 WHERE id = $1`,
		id, total, advance, garmentType, fabricDetails,
	)
	if err != nil {
		return fmt.Errorf("update order details: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateMeasurements replaces the measurement set of an order.
func (r *PostgresRepository) UpdateMeasurements(ctx context.Context, m model.Measurements) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE measurements
		 SET chest = $2, waist = $3, shirt_length = $4, pant_length = $5, shoulder = $6,
		     sleeve_length = $7, neck = $8, hip = $9, inseam = $10, thigh = $11,
		     arm_hole = $12, bicep = $13, knee = $14, calf = $15, ankle = $16, notes = $17
		 WHERE order_id = $1`,
		m.OrderID, m.Chest, m.Waist, m.ShirtLength, m.PantLength, m.Shoulder,
		m.SleeveLength, m.Neck, m.Hip, m.Inseam, m.Thigh,
		m.ArmHole, m.Bicep, m.Knee, m.Calf, m.Ankle, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("update measurements: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// CreateFabric adds a fabric roll to the inventory.
func (r *PostgresRepository) CreateFabric(ctx context.Context, f model.FabricItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO inventory (name, category, type, price_per_meter, stock_remaining, description, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		f.Name, f.Category, f.Type, f.PricePerMeter, f.StockRemaining, f.Description, f.ImageURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create fabric: %w", err)
	}
	return id, nil
}

// UpdateFabric updates an existing inventory item.
func (r *PostgresRepository) UpdateFabric(ctx context.Context, f model.FabricItem) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE inventory
		 SET name = $2, category = $3, type = $4, price_per_meter = $5,
		     stock_remaining = $6, description = $7, image_url = $8
		 WHERE id = $1`,
		f.ID, f.Name, f.Category, f.Type, f.PricePerMeter, f.StockRemaining, f.Description, f.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update fabric: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFabricNotFound
	}
	return nil
}

// DeleteFabric removes an inventory item.
func (r *PostgresRepository) DeleteFabric(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fabric: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrFabricNotFound
	}
	return nil
}

// ListFabrics returns all inventory items ordered by id.
func (r *PostgresRepository) ListFabrics(ctx context.Context) ([]model.FabricItem, error) {
	return r.selectFabrics(ctx,
		`SELECT id, name, category, type, price_per_meter, stock_remaining, description, image_url, created_at
		 FROM inventory
		 ORDER BY id`,
	)
}

// LowStockFabrics returns up to limit items whose remaining stock is below threshold.
func (r *PostgresRepository) LowStockFabrics(ctx context.Context, threshold float64, limit int) ([]model.FabricItem, error) {
	return r.selectFabrics(ctx,
		`SELECT id, name, category, type, price_per_meter, stock_remaining, description, image_url, created_at
		 FROM inventory
		 WHERE stock_remaining < $1
		 ORDER BY stock_remaining
		 LIMIT $2`,
		threshold, limit,
	)
}

func (r *PostgresRepository) selectFabrics(ctx context.Context, query string, args ...any) ([]model.FabricItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select inventory: %w", err)
	}
	defer rows.Close()

	var res []model.FabricItem
	for rows.Next() {
		var f model.FabricItem
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Type, &f.PricePerMeter,
			&f.StockRemaining, &f.Description, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fabric: %w", err)
		}
		res = append(res, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
