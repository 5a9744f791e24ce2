package postgres

import (
	"context"
	"database/sql"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, e *domain.AuditEvent) error {
	query := `INSERT INTO audit_events (id, actor_id, actor_name, actor_email, action, entity_id, module, detail, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.ActorID, e.ActorName, e.ActorEmail, e.Action, e.EntityID, e.Module, e.Detail, e.Timestamp)
	return err
}

func (r *auditRepository) ListByEntity(ctx context.Context, module string, entityID int32) ([]domain.AuditEvent, error) {
	query := `SELECT id, actor_id, actor_name, actor_email, action, entity_id, module, detail, timestamp
	          FROM audit_events WHERE module = $1 AND entity_id = $2 ORDER BY timestamp`
	rows, err := r.db.QueryContext(ctx, query, module, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.ActorEmail, &e.Action, &e.EntityID, &e.Module, &e.Detail, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
