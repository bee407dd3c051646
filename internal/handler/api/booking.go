package api

import (
	"net/http"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/user"
	reqdto "fairway-booking/internal/handler/dto/request"
	resdto "fairway-booking/internal/handler/dto/response"
	"fairway-booking/internal/handler/httperr"
	"fairway-booking/internal/handler/middleware"
	"fairway-booking/internal/pkg/errs"
	"fairway-booking/internal/usecase/commands"
	"fairway-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	errDateRequired  = errs.New("date query parameter required")
	errNotOwnProfile = errs.New("cannot read another user's bookings")
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

func (h *BookingHandler) GetDayAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, errDateRequired, "date query parameter is required", nil)
		return
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		httperr.BadRequest(c, err, "date must be formatted YYYY-MM-DD", nil)
		return
	}

	view, err := h.bookingQueries.GetDayAvailability(c.Request.Context(), date)
	if err != nil {
		httperr.Database(c, err, "Failed to load availability")
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailabilityView(view))
}

func (h *BookingHandler) CreateIndoorBooking(c *gin.Context) {
	idempotencyKey, err := optionalIdempotencyKey(c)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid idempotency key format", nil)
		return
	}

	var req reqdto.CreateIndoorBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format", bindErr.Error())
		return
	}

	input, err := req.ToInput(optionalUserID(c))
	if err != nil {
		httperr.BadRequest(c, err, "date must be formatted YYYY-MM-DD", nil)
		return
	}

	result, err := h.bookingCommands.CreateIndoorBooking(c.Request.Context(), input, idempotencyKey)
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(result.Booking))
}

func (h *BookingHandler) CreateAccompaniedBooking(c *gin.Context) {
	var req reqdto.CreateAccompaniedBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format", bindErr.Error())
		return
	}

	input, err := req.ToInput(optionalUserID(c))
	if err != nil {
		httperr.BadRequest(c, err, "preferredDate must be formatted YYYY-MM-DD", nil)
		return
	}

	view, err := h.bookingCommands.CreateAccompaniedBooking(c.Request.Context(), input)
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter, err := parseBookingFilter(c)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid filter parameters", nil)
		return
	}

	views, err := h.bookingQueries.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Database(c, err, "Failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid user ID format", nil)
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Internal(c, errs.New("user id missing from context"), "Internal server error")
		return
	}
	role, _ := middleware.GetUserRole(c)
	if callerID != targetID && role == user.RoleUser {
		httperr.Forbidden(c, errNotOwnProfile, "Insufficient permissions")
		return
	}

	views, err := h.bookingQueries.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		if errs.Is(err, queries.ErrCustomerNotFound) {
			httperr.NotFound(c, err, "No customer linked to user")
			return
		}
		httperr.Database(c, err, "Failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingCommands.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "status is required", nil)
		return
	}

	view, err := h.bookingCommands.UpdateBookingStatus(c.Request.Context(), id, booking.Status(req.Status))
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format", bindErr.Error())
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		httperr.BadRequest(c, err, "preferredDate must be formatted YYYY-MM-DD", nil)
		return
	}

	view, err := h.bookingCommands.UpdateBooking(c.Request.Context(), id, patch)
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingCommands.DeleteBooking(c.Request.Context(), id); err != nil {
		h.abortBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) abortBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrBookingNotFound):
		httperr.NotFound(c, err, "Booking not found")
	case errs.Is(err, commands.ErrSlotConflict):
		httperr.Conflict(c, err, "One or more selected slots are already booked")
	case errs.Is(err, commands.ErrInvalidStatusTransition):
		httperr.Conflict(c, err, "Status transition not allowed")
	case errs.Is(err, commands.ErrIdempotencyMismatch):
		httperr.Conflict(c, err, "Idempotency key reused with a different request")
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.Conflict(c, err, "Request is currently being processed")
	case errs.Is(err, commands.ErrDomainValidation):
		httperr.BadRequest(c, err, "Validation failed", nil)
	default:
		httperr.Database(c, err, "Internal server error")
	}
}

func optionalIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, nil
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func optionalUserID(c *gin.Context) *uuid.UUID {
	if userID, ok := middleware.GetUserID(c); ok {
		return &userID
	}
	return nil
}

func parseBookingFilter(c *gin.Context) (queries.BookingFilter, error) {
	var filter queries.BookingFilter

	if status := c.Query("status"); status != "" {
		if !booking.Status(status).IsValid() {
			return filter, errs.New("unknown status filter")
		}
		filter.Status = &status
	}
	if bookingType := c.Query("type"); bookingType != "" {
		if !booking.Type(bookingType).IsValid() {
			return filter, errs.New("unknown type filter")
		}
		filter.Type = &bookingType
	}
	if startDate := c.Query("startDate"); startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &parsed
	}
	if endDate := c.Query("endDate"); endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &parsed
	}

	return filter, nil
}
