package repository

import (
	"context"

	"fairway-booking/internal/domain/customer"
	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(dbtx db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: dbtx}
}

func (r *CustomerRepository) Create(ctx context.Context, tx db.DBTX, c *customer.Customer) error {
	query, args, err := psql.Insert("customers").
		Columns("id", "first_name", "last_name", "email", "phone", "user_id").
		Values(c.ID(), c.FirstName(), c.LastName(), c.Email().String(), c.Phone(), c.UserID()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build customer insert", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert customer", err)
	}
	return nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, dbtx db.DBTX, email customer.Email) (*customer.Customer, error) {
	query, args, err := psql.Select("id", "first_name", "last_name", "email", "phone", "user_id").
		From("customers").
		Where("email = ?", email.String()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build customer select", err, infra.KindDBFailure)
	}
	return r.scanOne(ctx, dbtx, query, args)
}

func (r *CustomerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*customer.Customer, error) {
	query, args, err := psql.Select("id", "first_name", "last_name", "email", "phone", "user_id").
		From("customers").
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build customer select", err, infra.KindDBFailure)
	}
	return r.scanOne(ctx, r.db, query, args)
}

// LinkUser attaches a user account to a walk-in customer record. The first
// writer wins; a customer already linked to another user is left untouched.
func (r *CustomerRepository) LinkUser(ctx context.Context, tx db.DBTX, customerID, userID uuid.UUID) error {
	query, args, err := psql.Update("customers").
		Set("user_id", userID).
		Set("updated_at", nowExpr).
		Where("id = ?", customerID).
		Where("user_id IS NULL").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build customer link", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to link customer to user", err)
	}
	return nil
}

func (r *CustomerRepository) scanOne(ctx context.Context, dbtx db.DBTX, query string, args []any) (*customer.Customer, error) {
	var (
		id        uuid.UUID
		firstName string
		lastName  string
		email     string
		phone     string
		userID    *uuid.UUID
	)
	err := dbtx.QueryRow(ctx, query, args...).Scan(&id, &firstName, &lastName, &email, &phone, &userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}
	return customer.ReconstructCustomer(id, firstName, lastName, email, phone, userID), nil
}
