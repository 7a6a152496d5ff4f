package mysql

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coffee-server/internal/domain/donation"
)

// CheckoutRecordRepository MySQL実装のCheckoutRecordRepository
type CheckoutRecordRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewCheckoutRecordRepository 新しいCheckoutRecordRepositoryを作成
func NewCheckoutRecordRepository(db *DB) *CheckoutRecordRepository {
	return &CheckoutRecordRepository{
		db:     db,
		tracer: otel.Tracer("checkout-record-repository"),
	}
}

var _ donation.CheckoutRecordRepository = (*CheckoutRecordRepository)(nil)

// Save 決済セッション記録を保存
func (r *CheckoutRecordRepository) Save(ctx context.Context, record *donation.CheckoutRecord) error {
	ctx, span := r.tracer.Start(ctx, "CheckoutRecordRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.record_id", record.ID()),
		attribute.String("db.user_id", record.UserID()),
		attribute.String("db.kind", record.Kind().String()),
		attribute.Int64("db.price_cents", record.PriceCents()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "checkout_records"),
	)

	query := `
		INSERT INTO checkout_records (
			id, user_id, project_id, kind, tier, price_cents, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID(),
		record.UserID(),
		record.ProjectID(),
		record.Kind().String(),
		record.Tier(),
		record.PriceCents(),
		record.CreatedAt(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save checkout record: %w", err)
	}

	return nil
}

// Stats 支援者数と単発支援件数を集計
func (r *CheckoutRecordRepository) Stats(ctx context.Context) (donation.Stats, error) {
	ctx, span := r.tracer.Start(ctx, "CheckoutRecordRepository.Stats")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "checkout_records"),
	)

	query := `
		SELECT
			COUNT(DISTINCT user_id),
			COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0)
		FROM checkout_records
	`

	var stats donation.Stats
	err := r.db.QueryRowContext(ctx, query, donation.KindOneTime.String()).Scan(
		&stats.Supporters,
		&stats.Coffees,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return donation.Stats{}, fmt.Errorf("failed to aggregate checkout records: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("db.supporters", stats.Supporters),
		attribute.Int64("db.coffees", stats.Coffees),
	)
	return stats, nil
}
