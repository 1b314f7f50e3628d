package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"voltpark-backend/internal/domain"
	"voltpark-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	attributes, err := json.Marshal(note.Attributes)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (recipient_id, title, message, severity, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, false, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		note.RecipientID, note.Title, note.Message, note.Severity, attributes, time.Now().UTC(),
	).Scan(&note.ID)
}

func (r *notificationRepository) List(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE recipient_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, recipientID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, recipient_id, title, message, severity, is_read, attributes, created_on
	          FROM notifications WHERE recipient_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attributes []byte
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Severity, &n.IsRead, &attributes, &createdOn); err != nil {
			return nil, 0, err
		}
		if len(attributes) > 0 {
			if err := json.Unmarshal(attributes, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		n.CreatedOn = createdOn.Format(time.RFC3339)
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int64, recipientID string) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("notification", "")
	}
	return nil
}
