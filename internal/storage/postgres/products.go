package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	"github.com/polkiloo/storebot/internal/domain/model"
)

const productColumns = `id, name, price, unit, category, description, is_active, variants, created_at, updated_at`

func scanProduct(row scanner) (*model.Product, error) {
	var (
		p        model.Product
		variants []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Unit, &p.Category, &p.Description, &p.IsActive, &variants, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(variants) > 0 && string(variants) != "null" {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("decode variants of product %d: %w", p.ID, err)
		}
	}
	return &p, nil
}

func encodeVariants(variants []model.Variant) ([]byte, error) {
	if len(variants) == 0 {
		return nil, nil
	}
	return json.Marshal(variants)
}

func (r *productRepository) collect(ctx context.Context, op, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return result, nil
}

func (r *productRepository) ListActive(ctx context.Context, limit int) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
                   WHERE is_active = TRUE ORDER BY id ASC LIMIT $1`
	if limit <= 0 {
		limit = math.MaxInt32
	}
	return r.collect(ctx, "list active products", query, limit)
}

func (r *productRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM products WHERE is_active = TRUE`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, storeErr("count active products", err)
	}
	return count, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeErr("get product", err)
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY id ASC`
	return r.collect(ctx, "list products", query)
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, price, unit, category, description, is_active, variants)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at, updated_at`
	variants, err := encodeVariants(product.Variants)
	if err != nil {
		return nil, err
	}
	err = r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Price, product.Unit, product.Category, product.Description, product.IsActive, variants,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, storeErr("create product", err)
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET name=$1, price=$2, unit=$3, category=$4, description=$5, is_active=$6, variants=$7, updated_at=NOW()
                   WHERE id=$8
                   RETURNING created_at, updated_at`
	variants, err := encodeVariants(product.Variants)
	if err != nil {
		return nil, err
	}
	err = r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Price, product.Unit, product.Category, product.Description, product.IsActive, variants, product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, storeErr("update product", err)
	}
	return &product, nil
}

// Delete detaches orders from the product before removing it; orders keep
// their snapshotted product name.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE orders SET product_id = NULL WHERE product_id=$1`, id); err != nil {
			return storeErr("detach orders", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
		if err != nil {
			return storeErr("delete product", err)
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return err
		}
		return storeErr("delete product", err)
	}
	return nil
}
