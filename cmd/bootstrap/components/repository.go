package components

import (
	"fairway-booking/internal/infra/db"
	"fairway-booking/internal/infra/readstore"
	"fairway-booking/internal/infra/repository"
	"fairway-booking/internal/usecase/commands"
	"fairway-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		repository.NewScheduleRepository,
		repository.NewBookingRepository,
		repository.NewCustomerRepository,
		repository.NewIdempotencyRepository,
		readstore.NewBookingReadStore,

		func(r *repository.ScheduleRepository) commands.ScheduleRepository { return r },
		func(r *repository.ScheduleRepository) queries.ScheduleReadRepo { return r },
		func(r *repository.BookingRepository) commands.BookingRepository { return r },
		func(r *repository.BookingRepository) queries.BookedSlotReadRepo { return r },
		func(r *repository.CustomerRepository) commands.CustomerRepository { return r },
		func(r *repository.CustomerRepository) queries.CustomerReadRepo { return r },
		func(r *repository.IdempotencyRepository) commands.IdempotencyRepository { return r },
		func(r *readstore.BookingReadStore) queries.BookingViewRepo { return r },
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
