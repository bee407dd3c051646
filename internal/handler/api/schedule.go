package api

import (
	"net/http"

	reqdto "fairway-booking/internal/handler/dto/request"
	resdto "fairway-booking/internal/handler/dto/response"
	"fairway-booking/internal/handler/httperr"
	"fairway-booking/internal/pkg/errs"
	"fairway-booking/internal/usecase/commands"
	"fairway-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
		scheduleQueries:  scheduleQueries,
	}
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	view, err := h.scheduleQueries.GetSchedule(c.Request.Context())
	if err != nil {
		httperr.Database(c, err, "Failed to load schedule")
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleView(view))
}

func (h *ScheduleHandler) UpsertSchedule(c *gin.Context) {
	var req reqdto.UpsertScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format", bindErr.Error())
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid date format", nil)
		return
	}

	id, err := h.scheduleCommands.UpsertWeeklySchedule(c.Request.Context(), input)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrScheduleValidation):
			httperr.BadRequest(c, err, "Schedule validation failed", nil)
		default:
			httperr.Database(c, err, "Failed to save schedule")
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.UpsertScheduleResponse{ID: id})
}
