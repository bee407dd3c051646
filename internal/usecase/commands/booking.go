package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/customer"
	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/db"
	"fairway-booking/internal/pkg/clock"
	"fairway-booking/internal/pkg/errs"
	"fairway-booking/internal/usecase/queries"
	"fairway-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSlotConflict            = errs.New("time slot already booked")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrInvalidStatusTransition = errs.New("invalid status transition")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyMismatch     = errs.New("idempotency key reused with different request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const idempotencyTTL = 24 * time.Hour

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateIndoorBooking(ctx context.Context, input IndoorBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	CreateAccompaniedBooking(ctx context.Context, input AccompaniedBookingInput) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status booking.Status) (*queries.BookingView, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, patch BookingPatch) (*queries.BookingView, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	bookingRepo     BookingRepository
	customerRepo    CustomerRepository
	scheduleRepo    ScheduleRepository
	idempotencyRepo IdempotencyRepository
	bookingViews    queries.BookingViewRepo
	pool            *pgxpool.Pool
	cache           CacheInvalidator
	metrics         MetricsRecorder
	clock           clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	scheduleRepo ScheduleRepository,
	idempotencyRepo IdempotencyRepository,
	bookingViews queries.BookingViewRepo,
	pool *pgxpool.Pool,
	invalidator CacheInvalidator,
	recorder MetricsRecorder,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		bookingRepo:     bookingRepo,
		customerRepo:    customerRepo,
		scheduleRepo:    scheduleRepo,
		idempotencyRepo: idempotencyRepo,
		bookingViews:    bookingViews,
		pool:            pool,
		cache:           invalidator,
		metrics:         recorder,
		clock:           clk,
	}
}

func (u *bookingUseCaseImpl) CreateIndoorBooking(
	ctx context.Context,
	input IndoorBookingInput,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	if idempotencyKey != nil {
		requestHash := calculateRequestHash(input)
		replayed, err := u.handleIdempotency(ctx, *idempotencyKey, requestHash)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
		}
	}

	selection, err := u.buildSelection(ctx, input.Date, input.SelectedTimes)
	if err != nil {
		return nil, err
	}

	bookingID, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (uuid.UUID, error) {
		customerEntity, err := u.resolveCustomer(ctx, tx, input.Customer, input.UserID)
		if err != nil {
			return uuid.Nil, err
		}

		bookingEntity := booking.NewIndoorBooking(
			customerEntity.ID(), input.Date, selection,
			input.Message, input.EmailConfirmation, input.SMSReminder,
		)
		if err := u.bookingRepo.Create(ctx, tx, bookingEntity); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, startTime := range selection.Times {
			slot := booking.NewBookedTimeSlot(input.Date, startTime, bookingEntity.ID())
			if err := u.bookingRepo.CreateTimeSlot(ctx, tx, slot); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					u.metrics.BookingConflict()
					return uuid.Nil, errs.Mark(err, ErrSlotConflict)
				}
				return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if idempotencyKey != nil {
			if err := u.idempotencyRepo.MarkCompleted(ctx, tx, *idempotencyKey, bookingEntity.ID()); err != nil {
				return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return bookingEntity.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.BookingCreated(booking.TypeIndoor.String())
	u.invalidateBookingCaches(ctx)

	view, err := u.bookingViews.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateBookingResult{Booking: view}, nil
}

func (u *bookingUseCaseImpl) CreateAccompaniedBooking(
	ctx context.Context,
	input AccompaniedBookingInput,
) (*queries.BookingView, error) {
	if input.NumberOfPlayers < 1 {
		return nil, errs.Mark(errs.New("numberOfPlayers must be at least 1"), ErrDomainValidation)
	}

	bookingID, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (uuid.UUID, error) {
		customerEntity, err := u.resolveCustomer(ctx, tx, input.Customer, input.UserID)
		if err != nil {
			return uuid.Nil, err
		}

		bookingEntity := booking.NewAccompaniedBooking(customerEntity.ID(), booking.Preferences{
			ExperienceLevel: input.ExperienceLevel,
			PreferredDate:   input.PreferredDate,
			NumberOfPlayers: input.NumberOfPlayers,
			Message:         input.Message,
		})
		if err := u.bookingRepo.Create(ctx, tx, bookingEntity); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return bookingEntity.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.BookingCreated(booking.TypeAccompanied.String())
	u.invalidateBookingCaches(ctx)

	view, err := u.bookingViews.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// CancelBooking releases the held slots, then marks the booking CANCELLED,
// both in one transaction.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	_, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		bookingEntity, err := u.findForUpdate(ctx, tx, id)
		if err != nil {
			return struct{}{}, err
		}
		if err := bookingEntity.TransitionTo(booking.StatusCancelled); err != nil {
			return struct{}{}, errs.Mark(err, ErrInvalidStatusTransition)
		}
		if err := u.bookingRepo.ReleaseSlots(ctx, tx, id); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := u.bookingRepo.UpdateStatus(ctx, tx, id, booking.StatusCancelled); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.BookingCancelled()
	u.invalidateBookingCaches(ctx)

	view, err := u.bookingViews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) UpdateBookingStatus(
	ctx context.Context,
	id uuid.UUID,
	status booking.Status,
) (*queries.BookingView, error) {
	if !status.IsValid() {
		return nil, errs.Mark(errs.New("unknown booking status"), ErrDomainValidation)
	}

	_, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		bookingEntity, err := u.findForUpdate(ctx, tx, id)
		if err != nil {
			return struct{}{}, err
		}
		if err := bookingEntity.TransitionTo(status); err != nil {
			return struct{}{}, errs.Mark(err, ErrInvalidStatusTransition)
		}
		if status == booking.StatusCancelled {
			if err := u.bookingRepo.ReleaseSlots(ctx, tx, id); err != nil {
				return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		if err := u.bookingRepo.UpdateStatus(ctx, tx, id, status); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	if status == booking.StatusCancelled {
		u.metrics.BookingCancelled()
	}
	u.invalidateBookingCaches(ctx)

	view, err := u.bookingViews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) UpdateBooking(
	ctx context.Context,
	id uuid.UUID,
	patch BookingPatch,
) (*queries.BookingView, error) {
	if patch.IsEmpty() {
		return nil, errs.Mark(errs.New("no fields to update"), ErrDomainValidation)
	}
	if patch.NumberOfPlayers != nil && *patch.NumberOfPlayers < 1 {
		return nil, errs.Mark(errs.New("numberOfPlayers must be at least 1"), ErrDomainValidation)
	}

	_, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		if _, err := u.findForUpdate(ctx, tx, id); err != nil {
			return struct{}{}, err
		}
		if err := u.bookingRepo.ApplyPatch(ctx, tx, id, patch); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateBookingCaches(ctx)

	view, err := u.bookingViews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// DeleteBooking removes the slot rows before the booking row so the FK never
// blocks the delete.
func (u *bookingUseCaseImpl) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	_, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		if err := u.bookingRepo.DeleteSlots(ctx, tx, id); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := u.bookingRepo.Delete(ctx, tx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, errs.Mark(err, ErrBookingNotFound)
			}
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	u.invalidateBookingCaches(ctx)
	return nil
}

// handleIdempotency claims the key or resolves an earlier claim. A non-nil
// view means the original request already completed and should be replayed.
func (u *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	key uuid.UUID,
	requestHash string,
) (*queries.BookingView, error) {
	expiresAt := u.clock.Now().Add(idempotencyTTL)

	err := u.idempotencyRepo.TryInsert(ctx, u.pool, key, "POST /api/bookings/indoor", requestHash, expiresAt)
	if err == nil {
		return nil, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := u.idempotencyRepo.Get(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID == nil {
			return nil, errs.Mark(errs.New("completed request missing result booking ID"), ErrIdempotencyCheckFailed)
		}
		view, err := u.bookingViews.FindByID(ctx, *existing.ResultBookingID)
		if err != nil {
			return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		return view, nil
	case "processing":
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), ErrIdempotencyCheckFailed)
	}
}

// buildSelection prices the requested start times against what the templates
// leave open on the date.
func (u *bookingUseCaseImpl) buildSelection(
	ctx context.Context,
	date time.Time,
	selectedTimes []string,
) (booking.Selection, error) {
	var zero booking.Selection

	selected := make([]schedule.ClockTime, 0, len(selectedTimes))
	for _, raw := range selectedTimes {
		t, err := schedule.ParseClockTime(raw)
		if err != nil {
			return zero, errs.Mark(err, ErrDomainValidation)
		}
		selected = append(selected, t)
	}

	schedules, err := u.scheduleRepo.FindAll(ctx)
	if err != nil {
		return zero, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	bookedSlots, err := u.bookingRepo.FindBookedSlotsByDate(ctx, date)
	if err != nil {
		return zero, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	candidates := schedule.AvailableTimes(schedules, date)
	booked := make([]schedule.ClockTime, 0, len(bookedSlots))
	for _, slot := range bookedSlots {
		booked = append(booked, slot.StartTime())
	}
	bookable := booking.Bookable(candidates, booked)

	selection, err := booking.NewSelection(selected, bookable)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			u.metrics.BookingConflict()
			return zero, errs.Mark(err, ErrSlotConflict)
		}
		return zero, errs.Mark(err, ErrDomainValidation)
	}
	return selection, nil
}

// resolveCustomer finds the customer by email or creates one, and links the
// caller's user account to an unlinked record.
func (u *bookingUseCaseImpl) resolveCustomer(
	ctx context.Context,
	tx db.DBTX,
	input CustomerInput,
	userID *uuid.UUID,
) (*customer.Customer, error) {
	email, err := customer.NewEmail(input.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	existing, err := u.customerRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		created, err := customer.NewCustomer(input.FirstName, input.LastName, email, input.Phone, userID)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		if err := u.customerRepo.Create(ctx, tx, created); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return created, nil
	}

	if userID != nil && !existing.IsLinked() {
		existing.Link(*userID)
		if err := u.customerRepo.LinkUser(ctx, tx, existing.ID(), *userID); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return existing, nil
}

func (u *bookingUseCaseImpl) findForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	bookingEntity, err := u.bookingRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookingEntity, nil
}

func (u *bookingUseCaseImpl) invalidateBookingCaches(ctx context.Context) {
	for _, pattern := range []string{"availability", "bookings"} {
		if _, err := u.cache.InvalidatePattern(ctx, pattern); err != nil {
			slog.Warn("cache invalidation failed", "pattern", pattern, "error", err)
		}
	}
}

func calculateRequestHash(input IndoorBookingInput) string {
	data, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
