package handlers

import (
	"errors"
	"net/http"
	"time"

	"shiftwise/schedule"
	"shiftwise/services/shift"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShiftHandler exposes roster writes, calendar views and reports.
type ShiftHandler struct {
	Service shift.ShiftService
}

func NewShiftHandler(svc shift.ShiftService) *ShiftHandler {
	return &ShiftHandler{Service: svc}
}

// respondShiftError maps the shift service's typed errors onto HTTP
// statuses. Conflicts carry the overlapping shifts so the client can
// show exactly what is in the way.
func respondShiftError(c *gin.Context, err error) {
	var conflictErr shift.ConflictError
	var busyErr shift.DayBusyError
	var valErr shift.ValidationError
	var nfErr shift.NotFoundError

	switch {
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     conflictErr.Error(),
			"conflicts": conflictErr.Conflicts,
		})
	case errors.As(err, &busyErr):
		c.JSON(http.StatusConflict, gin.H{"error": busyErr.Error()})
	case errors.As(err, &valErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": valErr.Error()})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	default:
		utils.GetLogger().Error("Shift operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed, please try again"})
	}
}

// CreateShiftHandler handles POST /shifts/create. Managers only.
func (h *ShiftHandler) CreateShiftHandler(c *gin.Context) {
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var req shift.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.CompanyID = companyID
	req.CreatedBy = workerID

	created, err := h.Service.CreateShift(req)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateShiftHandler handles PUT /shifts/update/:id. Managers only.
func (h *ShiftHandler) UpdateShiftHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var req shift.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")
	req.CompanyID = companyID

	updated, err := h.Service.UpdateShift(req)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteShiftHandler handles DELETE /shifts/delete/:id. Managers only.
func (h *ShiftHandler) DeleteShiftHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteShift(c.Param("id"), companyID); err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

// GetShiftHandler handles GET /shifts/id/:id.
func (h *ShiftHandler) GetShiftHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	rec, err := h.Service.GetShift(c.Param("id"), companyID)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// shiftRange resolves the from/to query params, defaulting to the
// two weeks starting today.
func shiftRange(c *gin.Context) (string, string) {
	today := time.Now().Format(schedule.DateLayout)
	from := c.DefaultQuery("from", today)
	to := c.DefaultQuery("to", time.Now().AddDate(0, 0, 13).Format(schedule.DateLayout))
	return from, to
}

// MyShiftsHandler lists the authenticated worker's own shifts.
func (h *ShiftHandler) MyShiftsHandler(c *gin.Context) {
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	from, to := shiftRange(c)
	shifts, err := h.Service.WorkerShifts(companyID, workerID, from, to)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts, "from": from, "to": to})
}

// WorkerShiftsHandler lists any worker's shifts. Managers only.
func (h *ShiftHandler) WorkerShiftsHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	from, to := shiftRange(c)
	shifts, err := h.Service.WorkerShifts(companyID, c.Param("id"), from, to)
	if err != nil {
		respondShiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts, "from": from, "to": to})
}
