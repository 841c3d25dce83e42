package postgres

import (
	"context"

	"github.com/polkiloo/storebot/internal/domain/model"
)

func (r *messageRepository) Append(ctx context.Context, msg model.ChatMessage) error {
	const query = `INSERT INTO chat_messages (user_id, direction, content) VALUES ($1, $2, $3)`
	if _, err := r.storage.pool.Exec(ctx, query, msg.UserID, string(msg.Direction), msg.Content); err != nil {
		return storeErr("append message", err)
	}
	return nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	const query = `SELECT id, user_id, direction, content, created_at FROM (
                       SELECT id, user_id, direction, content, created_at FROM chat_messages
                       WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2
                   ) recent ORDER BY created_at ASC, id ASC`
	rows, err := r.storage.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	defer rows.Close()

	var result []model.ChatMessage
	for rows.Next() {
		var (
			m         model.ChatMessage
			direction string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &direction, &m.Content, &m.CreatedAt); err != nil {
			return nil, storeErr("list messages", err)
		}
		m.Direction = model.MessageDirection(direction)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list messages", err)
	}
	return result, nil
}
