package postgres

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

const orderColumns = `id, user_id, product_id, product_name, variant_name, total_price, status, payment_proof_url, admin_notes, created_at, updated_at`

// verificationStatuses also matches rows written with the legacy "paid" value.
var verificationStatuses = []string{string(model.OrderStatusVerification), "paid"}

func scanOrder(row scanner, extra ...any) (*model.Order, error) {
	var (
		o         model.Order
		productID *int64
		status    string
	)
	dest := []any{&o.ID, &o.UserID, &productID, &o.ProductName, &o.VariantName, &o.TotalPrice, &status, &o.PaymentProofURL, &o.AdminNotes, &o.CreatedAt, &o.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if productID != nil {
		o.ProductID = *productID
	}
	o.Status = model.NormalizeOrderStatus(status)
	return &o, nil
}

func statusFilter(status model.OrderStatus) []string {
	if status == model.OrderStatusVerification {
		return verificationStatuses
	}
	return []string{string(status)}
}

func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	const query = `INSERT INTO orders (user_id, product_id, product_name, variant_name, total_price, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + orderColumns
	var productID *int64
	if draft.ProductID != 0 {
		productID = &draft.ProductID
	}
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query,
		draft.UserID, productID, draft.ProductName, draft.VariantName, draft.TotalPrice, string(model.OrderStatusPending),
	))
	if err != nil {
		return nil, storeErr("create order", err)
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeErr("get order", err)
	}
	return order, nil
}

func (r *orderRepository) LatestPending(ctx context.Context, userID int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE user_id=$1 AND status=$2
                   ORDER BY created_at DESC, id DESC
                   LIMIT 1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, userID, string(model.OrderStatusPending)))
	if err != nil {
		return nil, storeErr("latest pending order", err)
	}
	return order, nil
}

func (r *orderRepository) AttachProof(ctx context.Context, id int64, proofURL string) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1, payment_proof_url=$2, updated_at=NOW()
                   WHERE id=$3 AND status=$4
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query,
		string(model.OrderStatusVerification), proofURL, id, string(model.OrderStatusPending),
	))
	if err != nil {
		return nil, storeErr("attach proof", err)
	}
	return order, nil
}

func (r *orderRepository) Complete(ctx context.Context, id int64, notes string) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1, admin_notes=$2, updated_at=NOW()
                   WHERE id=$3 AND status = ANY($4)
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query,
		string(model.OrderStatusCompleted), notes, id, verificationStatuses,
	))
	if err != nil {
		return nil, storeErr("complete order", err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, status model.OrderStatus) ([]model.OrderView, error) {
	const base = `SELECT o.id, o.user_id, o.product_id, COALESCE(p.name, o.product_name), o.variant_name, o.total_price,
                  o.status, o.payment_proof_url, o.admin_notes, o.created_at, o.updated_at,
                  COALESCE(u.username, ''), COALESCE(u.full_name, '')
                  FROM orders o
                  LEFT JOIN products p ON p.id = o.product_id
                  LEFT JOIN users u ON u.telegram_id = o.user_id`
	const order = ` ORDER BY o.created_at DESC, o.id DESC`

	query, args := base+order, []any{}
	if status != "" {
		query = base + ` WHERE o.status = ANY($1)` + order
		args = append(args, statusFilter(status))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	defer rows.Close()

	var result []model.OrderView
	for rows.Next() {
		var view model.OrderView
		o, err := scanOrder(rows, &view.Username, &view.FullName)
		if err != nil {
			return nil, storeErr("list orders", err)
		}
		view.Order = *o
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list orders", err)
	}
	return result, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.Stats, error) {
	const query = `SELECT
                   (SELECT COUNT(*) FROM products),
                   (SELECT COUNT(*) FROM products WHERE is_active = TRUE),
                   (SELECT COUNT(*) FROM orders),
                   (SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = ANY($1))`
	incomeStatuses := append([]string{string(model.OrderStatusCompleted)}, verificationStatuses...)
	var stats model.Stats
	err := r.storage.pool.QueryRow(ctx, query, incomeStatuses).Scan(&stats.Products, &stats.ActiveProducts, &stats.Orders, &stats.Income)
	if err != nil {
		return nil, storeErr("stats", err)
	}
	return &stats, nil
}
