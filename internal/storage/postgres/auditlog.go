package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/fira-bridge/internal/domain/invoice"
)

var _ invoice.AuditLog = (*AuditLogRepository)(nil)

// AuditLogRepository implements invoice.AuditLog backed by PostgreSQL.
// The audit_log table is append-only; rows are never updated or deleted.
type AuditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository returns an AuditLogRepository that uses the given pool.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

// Append inserts one audit entry.
func (r *AuditLogRepository) Append(ctx context.Context, e invoice.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_log (id, order_id, order_code, kind, message)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), e.OrderID, e.OrderCode, e.Kind, e.Message,
	)
	if err != nil {
		return errors.Wrapf(err, "append audit entry for order %d", e.OrderID)
	}
	return nil
}

// AuditRecord is a stored audit entry as read back from the table.
type AuditRecord struct {
	ID        string    `json:"id"`
	OrderID   int64     `json:"orderId"`
	OrderCode string    `json:"orderCode"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Walk streams every audit record in insertion order to fn. It stops on the
// first error from fn or from the underlying query.
func (r *AuditLogRepository) Walk(ctx context.Context, fn func(AuditRecord) error) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, order_code, kind, message, created_at
		 FROM audit_log ORDER BY created_at, id`,
	)
	if err != nil {
		return errors.Wrap(err, "query audit log")
	}
	defer rows.Close()

	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.OrderCode, &rec.Kind, &rec.Message, &rec.CreatedAt); err != nil {
			return errors.Wrap(err, "scan audit row")
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return errors.Wrap(rows.Err(), "iterate audit rows")
}
