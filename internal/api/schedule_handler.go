package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"
	"alcyxob/fitness-schedule/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ScheduleHandler holds the schedule service dependency.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- DTOs for API (Data Transfer Objects) ---

// AssignEntryRequest carries the workout or class to put on a date.
type AssignEntryRequest struct {
	RefID string `json:"refId" binding:"required,uuid"`
}

// DayCellResponse is the DTO for one calendar grid cell.
type DayCellResponse struct {
	Date               string `json:"date"`
	DayNumber          int    `json:"dayNumber"`
	GridRow            int    `json:"gridRow"`
	GridColumn         int    `json:"gridColumn"`
	IsCurrentDay       bool   `json:"isCurrentDay"`
	IsEnabled          bool   `json:"isEnabled"`
	HasWorkout         bool   `json:"hasWorkout"`
	HasClass           bool   `json:"hasClass"`
	IsWorkoutCompleted bool   `json:"isWorkoutCompleted"`
}

// GridResponse wraps the full month grid.
type GridResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Cells []DayCellResponse `json:"cells"`
}

// MapDayCellToResponse converts a domain.DayCell to its DTO.
func MapDayCellToResponse(cell domain.DayCell) DayCellResponse {
	return DayCellResponse{
		Date:               cell.Date.Format(dateLayout),
		DayNumber:          cell.DayNumber,
		GridRow:            cell.GridRow,
		GridColumn:         cell.GridColumn,
		IsCurrentDay:       cell.IsCurrentDay,
		IsEnabled:          cell.IsEnabled,
		HasWorkout:         cell.HasWorkout,
		HasClass:           cell.HasClass,
		IsWorkoutCompleted: cell.IsWorkoutCompleted,
	}
}

// --- Handler Methods ---

// GetMonthGrid godoc
// @Summary Get the calendar grid for a month
// @Description Returns the 7-column day grid for the authenticated user, including filler cells.
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year, e.g. 2025"
// @Param month path int true "Month 1-12"
// @Success 200 {object} GridResponse
// @Failure 400 {object} gin.H "Invalid year/month"
// @Failure 500 {object} gin.H "Schedule store unavailable"
// @Router /schedule/{year}/{month} [get]
func (h *ScheduleHandler) GetMonthGrid(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid year.")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		abortWithError(c, http.StatusBadRequest, "Invalid month.")
		return
	}

	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	today := domain.DateOnly(time.Now().UTC())

	cells, err := h.scheduleService.BuildGrid(c.Request.Context(), userID, anchor, today)
	if err != nil {
		// No partial grid: any store failure fails the whole request.
		abortWithError(c, http.StatusInternalServerError, "Failed to build schedule grid.")
		return
	}

	resp := GridResponse{Year: year, Month: month, Cells: make([]DayCellResponse, 0, len(cells))}
	for _, cell := range cells {
		resp.Cells = append(resp.Cells, MapDayCellToResponse(cell))
	}
	c.JSON(http.StatusOK, resp)
}

// AssignWorkout puts a workout on a free date. Occupied dates are rejected;
// clients replace instead of re-assigning.
func (h *ScheduleHandler) AssignWorkout(c *gin.Context) {
	h.mutate(c, func(userID, refID uuid.UUID, date, today time.Time) error {
		return h.scheduleService.AssignWorkout(c.Request.Context(), userID, refID, date, today)
	}, true)
}

func (h *ScheduleHandler) AssignClass(c *gin.Context) {
	h.mutate(c, func(userID, refID uuid.UUID, date, today time.Time) error {
		return h.scheduleService.AssignClass(c.Request.Context(), userID, refID, date, today)
	}, true)
}

func (h *ScheduleHandler) ReplaceWorkout(c *gin.Context) {
	h.mutate(c, func(userID, refID uuid.UUID, date, today time.Time) error {
		return h.scheduleService.ReplaceWorkout(c.Request.Context(), userID, refID, date, today)
	}, true)
}

func (h *ScheduleHandler) ReplaceClass(c *gin.Context) {
	h.mutate(c, func(userID, refID uuid.UUID, date, today time.Time) error {
		return h.scheduleService.ReplaceClass(c.Request.Context(), userID, refID, date, today)
	}, true)
}

func (h *ScheduleHandler) RemoveWorkout(c *gin.Context) {
	h.mutate(c, func(userID, _ uuid.UUID, date, today time.Time) error {
		return h.scheduleService.RemoveWorkout(c.Request.Context(), userID, date, today)
	}, false)
}

func (h *ScheduleHandler) RemoveClass(c *gin.Context) {
	h.mutate(c, func(userID, _ uuid.UUID, date, today time.Time) error {
		return h.scheduleService.RemoveClass(c.Request.Context(), userID, date, today)
	}, false)
}

// CompleteWorkout marks the workout scheduled on the date as done.
func (h *ScheduleHandler) CompleteWorkout(c *gin.Context) {
	h.mutate(c, func(userID, _ uuid.UUID, date, today time.Time) error {
		return h.scheduleService.CompleteWorkout(c.Request.Context(), userID, date, today)
	}, false)
}

// mutate factors the shared plumbing of all schedule mutations: parse the
// date, optionally bind the refId body, run the operation, map errors.
// Successful mutations return only a status; the client re-fetches the grid.
func (h *ScheduleHandler) mutate(c *gin.Context, op func(userID, refID uuid.UUID, date, today time.Time) error, needsBody bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	refID := uuid.Nil
	if needsBody {
		var req AssignEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
		refID, err = uuid.Parse(req.RefID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid refId format.")
			return
		}
	}

	today := domain.DateOnly(time.Now().UTC())
	if err := op(userID, refID, date, today); err != nil {
		switch {
		case errors.Is(err, service.ErrPastDateImmutable):
			abortWithError(c, http.StatusUnprocessableEntity, "Past days are read-only.")
		case errors.Is(err, service.ErrFutureCompletion):
			abortWithError(c, http.StatusUnprocessableEntity, "Cannot complete a workout scheduled in the future.")
		case errors.Is(err, service.ErrAlreadyAssigned):
			abortWithError(c, http.StatusConflict, "This date already has an entry of that kind; use replace.")
		case errors.Is(err, repository.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "No entry scheduled on this date.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Schedule operation failed.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
