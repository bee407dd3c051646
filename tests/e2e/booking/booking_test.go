//go:build e2e

package booking_test

import (
	"context"
	"net/http"
	"testing"

	"fairway-booking/internal/domain/user"
	"fairway-booking/internal/handler/dto/response"
	"fairway-booking/tests/common/authtest"
	"fairway-booking/tests/common/builder"
	"fairway-booking/tests/common/dbtest"
	"fairway-booking/tests/common/httptest"
	"fairway-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	scheduleURL     = "/api/schedule"
	availabilityURL = "/api/bookings/indoor?date=2026-01-05"
	indoorURL       = "/api/bookings/indoor"
	accompaniedURL  = "/api/bookings/accompanied"
	bookingsURL     = "/api/bookings"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) coachToken() string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), uuid.New(), user.RoleCoach)
}

func (s *BookingSuite) userToken(email string) (uuid.UUID, string) {
	userID := dbtest.CreateTestUser(s.T(), s.DB, email, string(user.RoleUser))
	return userID, authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), userID, user.RoleUser)
}

func (s *BookingSuite) upsertDefaultSchedule(token string) {
	reqBody := builder.NewScheduleBuilder().BuildUpsertRequestDTO()
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, scheduleURL, reqBody, token)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
}

// =============================================================================
// Schedule management
// =============================================================================

func (s *BookingSuite) TestScheduleManagement() {
	s.Run("coach creates and replaces a weekly template", func() {
		t := s.T()
		token := s.coachToken()

		s.upsertDefaultSchedule(token)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, scheduleURL, nil, token)
		var view response.ScheduleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Len(t, view, 2)
		require.Len(t, view[0].TimeSlots, 2)
		require.NotEqual(t, uuid.Nil, view[0].TimeSlots[0].ID)
		require.Equal(t, "2026-01-05", view[0].StartDate)
		require.Empty(t, view[1].TimeSlots, "unconfigured week must come back empty")
		require.Empty(t, view[1].StartDate)

		// Replacing week 1 drops the old slots instead of accumulating.
		monday := 1
		replacement := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
			b.Slots = b.Slots[:1]
			b.Slots[0].DayOfWeek = &monday
			b.Slots[0].StartTime = "10:00"
			b.Slots[0].EndTime = "11:00"
		}).BuildUpsertRequestDTO()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scheduleURL, replacement, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, scheduleURL, nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Len(t, view[0].TimeSlots, 1)
		require.Equal(t, "10:00", view[0].TimeSlots[0].StartTime)

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "weekly_schedules", "week_number = 1"))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "schedule_slots", ""))
	})

	s.Run("schedule endpoints are staff only", func() {
		t := s.T()
		reqBody := builder.NewScheduleBuilder().BuildUpsertRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scheduleURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		_, userToken := s.userToken("member@example.com")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scheduleURL, reqBody, userToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("week number outside 1 and 2 is rejected", func() {
		t := s.T()
		reqBody := builder.NewScheduleBuilder().With(func(b *builder.ScheduleBuilder) {
			b.WeekNumber = 3
		}).BuildUpsertRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scheduleURL, reqBody, s.coachToken())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// Indoor bookings
// =============================================================================

func (s *BookingSuite) TestIndoorBookingFlow() {
	s.Run("availability reflects the template and live bookings", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, "")
		var avail response.DayAvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		// Monday 09:00-12:00 expands to six half-hour starts.
		require.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, avail.AvailableTimes)
		require.Empty(t, avail.BookedTimes)

		b := builder.NewBookingBuilder()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, b.BuildIndoorRequestDTO(), "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		expected := response.BookingResponse{
			Type:              "INDOOR",
			Status:            "PENDING",
			BookingDate:       &b.Date,
			DurationMinutes:   60,
			Price:             70,
			Message:           b.Message,
			EmailConfirmation: true,
			NumberOfPlayers:   1,
			Customer: response.CustomerResponse{
				FirstName: b.FirstName,
				LastName:  b.LastName,
				Email:     b.Email,
				Phone:     b.Phone,
			},
			Slots: []response.BookedSlotResponse{
				{Date: b.Date, StartTime: "09:00", EndTime: "09:30"},
				{Date: b.Date, StartTime: "09:30", EndTime: "10:00"},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "CreatedAt", "UpdatedAt"),
			cmpopts.IgnoreFields(response.CustomerResponse{}, "ID"),
		}
		if diff := cmp.Diff(expected, created, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.Equal(t, []string{"09:00", "09:30"}, avail.BookedTimes)
		require.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, avail.AvailableTimes)

		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "time_slots", "is_booked"))
	})

	s.Run("taken slots cannot be booked twice", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())

		reqBody := builder.NewBookingBuilder().BuildIndoorRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		second := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Email = "other.visitor@example.com"
			b.Slots = []string{"09:30", "10:00"}
		}).BuildIndoorRequestDTO()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, second, "")
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "bookings", ""))
	})

	s.Run("slots outside the template are not bookable", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())

		reqBody := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Slots = []string{"08:00"}
		}).BuildIndoorRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, reqBody, "")
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
	})

	s.Run("idempotency key replays instead of double booking", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())

		key := uuid.New().String()
		reqBody := builder.NewBookingBuilder().BuildIndoorRequestDTO()
		headers := map[string]string{"Idempotency-Key": key}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, indoorURL, reqBody, headers, "")
		var first response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, indoorURL, reqBody, headers, "")
		var replayed response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &replayed)
		require.Equal(t, first.ID, replayed.ID)

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "bookings", ""))

		// Same key with a different payload is a client error.
		altered := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Slots = []string{"11:00"}
		}).BuildIndoorRequestDTO()
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, indoorURL, altered, headers, "")
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
	})

	s.Run("abandoned idempotency claim frees itself after expiry", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())

		// A request that claimed the key and then died leaves a processing row
		// behind. Once its expiry passes the key must be claimable again.
		key := uuid.New()
		_, err := s.DB.Exec(context.Background(),
			"INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at) VALUES ($1, $2, $3, 'processing', now() - interval '1 minute')",
			key, "POST /api/bookings/indoor", "hash-of-a-request-that-never-finished")
		require.NoError(t, err)

		reqBody := builder.NewBookingBuilder().BuildIndoorRequestDTO()
		headers := map[string]string{"Idempotency-Key": key.String()}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, indoorURL, reqBody, headers, "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "idempotency_keys", "key = $1 AND status = 'completed'", key))
	})

	s.Run("cancelling frees the slots", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())
		_, token := s.userToken("golfer@example.com")

		reqBody := builder.NewBookingBuilder().BuildIndoorRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, reqBody, token)
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		cancelURL := bookingsURL + "/" + created.ID.String() + "/cancel"
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, cancelURL, nil, token)
		var cancelled response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "CANCELLED", cancelled.Status)

		var avail response.DayAvailabilityResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.Empty(t, avail.BookedTimes)

		// Released slots are fully unlinked, not just unbooked.
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "time_slots", "is_booked"))
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "time_slots", "booking_id IS NOT NULL"))

		// Cancelled is terminal.
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, cancelURL, nil, token)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")

		// The freed times can be booked again by someone else.
		rebook := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Email = "next.golfer@example.com"
		}).BuildIndoorRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, rebook, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("authenticated bookings are linked to the account", func() {
		t := s.T()
		s.upsertDefaultSchedule(s.coachToken())
		userID, token := s.userToken("linked@example.com")

		reqBody := builder.NewBookingBuilder().BuildIndoorRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "customers", "user_id = $1", userID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/user/"+userID.String(), nil, token)
		var mine []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &mine)
		require.Len(t, mine, 1)

		// Another plain user cannot read them.
		_, otherToken := s.userToken("other@example.com")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/user/"+userID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// Accompanied bookings and lifecycle
// =============================================================================

func (s *BookingSuite) TestAccompaniedBookingLifecycle() {
	s.Run("request moves through confirmation to completion", func() {
		t := s.T()
		coach := s.coachToken()

		reqBody := builder.NewBookingBuilder().BuildAccompaniedRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, accompaniedURL, reqBody, "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "ACCOMPANIED", created.Type)
		require.Empty(t, created.Slots)

		statusURL := bookingsURL + "/" + created.ID.String() + "/status"
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, map[string]any{"status": "CONFIRMED"}, coach)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, map[string]any{"status": "COMPLETED"}, coach)
		var completed response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &completed)
		require.Equal(t, "COMPLETED", completed.Status)

		// Terminal states cannot move again.
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, map[string]any{"status": "CANCELLED"}, coach)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
	})

	s.Run("indoor bookings never complete", func() {
		t := s.T()
		coach := s.coachToken()
		s.upsertDefaultSchedule(coach)

		reqBody := builder.NewBookingBuilder().BuildIndoorRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, indoorURL, reqBody, "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		statusURL := bookingsURL + "/" + created.ID.String() + "/status"
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, map[string]any{"status": "CONFIRMED"}, coach)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, map[string]any{"status": "COMPLETED"}, coach)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
	})

	s.Run("staff list, patch and delete bookings", func() {
		t := s.T()
		coach := s.coachToken()

		reqBody := builder.NewBookingBuilder().BuildAccompaniedRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, accompaniedURL, reqBody, "")
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?type=ACCOMPANIED", nil, coach)
		var listed []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listed)
		require.Len(t, listed, 1)

		patchURL := bookingsURL + "/" + created.ID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, patchURL, map[string]any{"numberOfPlayers": 4}, coach)
		var patched response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &patched)
		require.Equal(t, 4, patched.NumberOfPlayers)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, patchURL, nil, coach)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "bookings", ""))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, patchURL, nil, coach)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
