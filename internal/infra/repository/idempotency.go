package repository

import (
	"context"
	"time"

	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/db"
	"fairway-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert claims the key. A key whose expiry has passed is reclaimed as if
// it were absent, so a claim abandoned by a failed request frees itself after
// the TTL. A duplicate-key error means another live request holds the key;
// the caller resolves the race by reading the record back.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	query, args, err := psql.Insert("idempotency_keys").
		Columns("key", "endpoint", "request_hash", "status", "expires_at").
		Values(key, endpoint, requestHash, IdempotencyStatusProcessing, expiresAt).
		Suffix("ON CONFLICT (key) DO UPDATE SET endpoint = EXCLUDED.endpoint, request_hash = EXCLUDED.request_hash, status = EXCLUDED.status, result_booking_id = NULL, expires_at = EXCLUDED.expires_at, updated_at = now() WHERE idempotency_keys.expires_at < now()").
		Suffix("RETURNING key").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build idempotency insert", err, infra.KindDBFailure)
	}

	var claimed uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&claimed); err != nil {
		if err == pgx.ErrNoRows {
			return infra.WrapRepoErr("idempotency key already claimed", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID) (*commands.IdempotencyRecord, error) {
	query, args, err := psql.Select("key", "endpoint", "request_hash", "status", "result_booking_id", "expires_at").
		From("idempotency_keys").
		Where("key = ?", key).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build idempotency select", err, infra.KindDBFailure)
	}

	var rec commands.IdempotencyRecord
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&rec.Key, &rec.Endpoint, &rec.RequestHash, &rec.Status, &rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error {
	query, args, err := psql.Update("idempotency_keys").
		Set("status", IdempotencyStatusCompleted).
		Set("result_booking_id", resultBookingID).
		Set("updated_at", nowExpr).
		Where("key = ?", key).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build idempotency update", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark idempotency key completed", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := psql.Delete("idempotency_keys").
		Where("expires_at < now()").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build idempotency cleanup", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
