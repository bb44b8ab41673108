package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type UsageRecordRepository struct {
	db *sql.DB
}

func NewUsageRecordRepository(db *sql.DB) *UsageRecordRepository {
	return &UsageRecordRepository{db: db}
}

func (r *UsageRecordRepository) Create(ctx context.Context, record *models.UsageRecord) (err error) {
	defer observe("usage_create", time.Now(), &err)

	if record == nil {
		return pkgerrors.ErrInvalidInput
	}

	query := `
	INSERT INTO usage_records (service_id, usage_date, usage_amount, unit)
	VALUES ($1, $2, $3, $4)
	RETURNING usage_id
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		record.ServiceID,
		record.UsageDate,
		record.Amount,
		record.Unit,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to create usage record: %w", err)
	}
	return nil
}

func (r *UsageRecordRepository) ListByService(ctx context.Context, serviceID int64) (records []models.UsageRecord, err error) {
	defer observe("usage_list_by_service", time.Now(), &err)

	query := `SELECT usage_id, service_id, usage_date, usage_amount, unit FROM usage_records WHERE service_id = $1 ORDER BY usage_id`
	rows, err := r.db.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage records for service %d: %w", serviceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.UsageRecord
		if err = rows.Scan(&rec.ID, &rec.ServiceID, &rec.UsageDate, &rec.Amount, &rec.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
