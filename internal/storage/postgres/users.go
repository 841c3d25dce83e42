package postgres

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

const userColumns = `telegram_id, username, full_name, catalog_revision, created_at, updated_at`

func (r *userRepository) Upsert(ctx context.Context, user model.User) error {
	const query = `INSERT INTO users (telegram_id, username, full_name) VALUES ($1, $2, $3)
                   ON CONFLICT (telegram_id) DO UPDATE
                   SET username = EXCLUDED.username, full_name = EXCLUDED.full_name, updated_at = NOW()`
	if _, err := r.storage.pool.Exec(ctx, query, user.TelegramID, user.Username, user.FullName); err != nil {
		return storeErr("upsert user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, telegramID int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE telegram_id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, telegramID).Scan(
		&u.TelegramID, &u.Username, &u.FullName, &u.CatalogRevision, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return &u, nil
}

func (r *userRepository) SetCatalogRevision(ctx context.Context, telegramID int64, revision string) error {
	const query = `INSERT INTO users (telegram_id, catalog_revision) VALUES ($1, $2)
                   ON CONFLICT (telegram_id) DO UPDATE
                   SET catalog_revision = EXCLUDED.catalog_revision, updated_at = NOW()`
	if _, err := r.storage.pool.Exec(ctx, query, telegramID, revision); err != nil {
		return storeErr("set catalog revision", err)
	}
	return nil
}
