package handlers

import (
	"net/http"
	"strconv"
	"time"

	"shiftwise/schedule"

	"github.com/gin-gonic/gin"
)

// DayViewHandler handles GET /schedules/day?date=YYYY-MM-DD. The date
// defaults to today.
func (h *ShiftHandler) DayViewHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	date := c.DefaultQuery("date", time.Now().Format(schedule.DateLayout))

	view, err := h.Service.DayView(companyID, date)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// WeekViewHandler handles GET /schedules/week?date=YYYY-MM-DD. Any date
// inside the week works as the anchor.
func (h *ShiftHandler) WeekViewHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	anchor := c.DefaultQuery("date", time.Now().Format(schedule.DateLayout))

	view, err := h.Service.WeekView(companyID, anchor)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// MonthViewHandler handles GET /schedules/month?year=YYYY&month=M,
// defaulting to the current month.
func (h *ShiftHandler) MonthViewHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be a number"})
		return
	}

	view, err := h.Service.MonthView(companyID, year, month)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// WeekHoursHandler handles GET /reports/hours?date=YYYY-MM-DD, summing
// scheduled time per worker over the anchor date's week.
func (h *ShiftHandler) WeekHoursHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	anchor := c.DefaultQuery("date", time.Now().Format(schedule.DateLayout))

	report, err := h.Service.WeekHours(companyID, anchor)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
