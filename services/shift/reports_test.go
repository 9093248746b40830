package shift_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwise/models"
	"shiftwise/services/shift"
)

func TestWeekHoursSumsBoundedAndCountsOpen(t *testing.T) {
	env := newTestEnv(t)

	// Ana: two bounded shifts plus an open close.
	env.shifts.seed(seededShift("s-ana-mon", "w-ana", "2026-08-17", clock(9, 0), clock(17, 0)))
	env.shifts.seed(seededShift("s-ana-tue", "w-ana", "2026-08-18", clock(10, 0), clock(14, 0)))
	open := seededShift("s-ana-wed", "w-ana", "2026-08-19", clock(18, 0), 0)
	open.Range = models.OpenRange(clock(18, 0))
	env.shifts.seed(open)

	// Ben: one odd-length shift so rounding shows.
	env.shifts.seed(seededShift("s-ben-thu", "w-ben", "2026-08-20", clock(10, 0), clock(20, 15)))

	// A shift left behind by a worker no longer on the roster.
	env.shifts.seed(seededShift("s-ghost", "w-ghost", "2026-08-21", clock(9, 0), clock(11, 0)))

	// A rostered worker with no shifts this week stays out of the report.
	env.workers.add(models.Worker{
		ID: "w-cleo", CompanyID: companyID,
		FirstName: "Cleo", LastName: "Mhina",
		Function: models.FunctionHost, Role: models.RoleEmployee,
		Approved: true, Active: true,
	})

	report, err := env.svc.WeekHours(companyID, "2026-08-19")
	require.NoError(t, err)

	assert.Equal(t, 2026, report.ISOYear)
	assert.Equal(t, 34, report.ISOWeek)
	assert.Equal(t, "2026-08-17", report.Monday)
	require.Len(t, report.Workers, 3)

	ana := report.Workers[0]
	assert.Equal(t, "w-ana", ana.WorkerID)
	assert.Equal(t, "Ana Moraes", ana.WorkerName)
	assert.Equal(t, models.FunctionServer, ana.Function)
	assert.Equal(t, 3, ana.ShiftCount)
	assert.Equal(t, 720, ana.Minutes)
	assert.InDelta(t, 12.0, ana.Hours, 1e-9)
	assert.Equal(t, 1, ana.OpenEndedCount, "open shifts are counted, never summed")

	ben := report.Workers[1]
	assert.Equal(t, "w-ben", ben.WorkerID)
	assert.Equal(t, 615, ben.Minutes)
	assert.InDelta(t, 10.25, ben.Hours, 1e-9)
	assert.Equal(t, 0, ben.OpenEndedCount)

	ghost := report.Workers[2]
	assert.Equal(t, "w-ghost", ghost.WorkerID)
	assert.Equal(t, "former worker", ghost.WorkerName)
	assert.Equal(t, 120, ghost.Minutes)
}

func TestWeekHoursEmptyWeek(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.svc.WeekHours(companyID, "2026-08-19")
	require.NoError(t, err)
	assert.Empty(t, report.Workers)
	assert.Equal(t, "2026-08-17", report.Monday)
}

func TestWeekHoursRejectsMalformedDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.WeekHours(companyID, "August 19")
	var verr shift.ValidationError
	require.ErrorAs(t, err, &verr)
}
