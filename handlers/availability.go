package handlers

import (
	"net/http"
	"time"

	"shiftwise/schedule"
	"shiftwise/services/availability"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the availability declarations workers
// file ahead of scheduling.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// SetAvailabilityHandler handles PUT /availability/day. Re-declaring a
// day replaces the previous record.
func (h *AvailabilityHandler) SetAvailabilityHandler(c *gin.Context) {
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var req availability.SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.WorkerID = workerID
	req.CompanyID = companyID

	rec, err := h.Service.SetDay(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ClearAvailabilityHandler handles DELETE /availability/day/:date,
// returning the day to unset.
func (h *AvailabilityHandler) ClearAvailabilityHandler(c *gin.Context) {
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	if err := h.Service.ClearDay(workerID, c.Param("date")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Day cleared"})
}

// MyAvailabilityWeekHandler handles GET /availability/week?date=. The
// week always starts on Monday; days without a record come back unset.
func (h *AvailabilityHandler) MyAvailabilityWeekHandler(c *gin.Context) {
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}
	anchor := c.DefaultQuery("date", time.Now().Format(schedule.DateLayout))

	week, err := h.Service.WeekFor(workerID, anchor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, week)
}

// CompanyAvailabilityHandler handles GET /availability/company?date=.
// Managers use it to see the whole roster's week before scheduling.
func (h *AvailabilityHandler) CompanyAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	anchor := c.DefaultQuery("date", time.Now().Format(schedule.DateLayout))

	weeks, err := h.Service.CompanyWeek(companyID, anchor)
	if err != nil {
		logger.Error("Failed to build company availability", zap.String("companyID", companyID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": weeks})
}
