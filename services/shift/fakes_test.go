package shift_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"shiftwise/models"
	"shiftwise/schedule"
	"shiftwise/services/shift"
)

const (
	companyID      = "co-bistro"
	otherCompanyID = "co-trattoria"
	testDate       = "2026-08-21" // a Friday
)

func clock(h, m int) int { return h*60 + m }

// fakeShiftRepo keeps shifts and day locks in maps. List results come back
// sorted the way the Mongo repository sorts them, date then start minute.
type fakeShiftRepo struct {
	shifts    map[string]models.Shift
	locks     map[string]bool
	createErr error
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shifts: make(map[string]models.Shift),
		locks:  make(map[string]bool),
	}
}

func (r *fakeShiftRepo) seed(s models.Shift) { r.shifts[s.ID] = s }

func (r *fakeShiftRepo) lockHeld(workerID, date string) bool {
	return r.locks[workerID+"|"+date]
}

func (r *fakeShiftRepo) list(match func(models.Shift) bool) []models.Shift {
	var out []models.Shift
	for _, s := range r.shifts {
		if match(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Range.Start != out[j].Range.Start {
			return out[i].Range.Start < out[j].Range.Start
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeShiftRepo) GetByID(id string) (*models.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeShiftRepo) GetByWorkerAndDate(workerID, date string) ([]models.Shift, error) {
	return r.list(func(s models.Shift) bool {
		return s.WorkerID == workerID && s.Date == date
	}), nil
}

func (r *fakeShiftRepo) GetByCompanyAndDate(companyID, date string) ([]models.Shift, error) {
	return r.list(func(s models.Shift) bool {
		return s.CompanyID == companyID && s.Date == date
	}), nil
}

func (r *fakeShiftRepo) GetByCompanyAndDateRange(companyID, from, to string) ([]models.Shift, error) {
	return r.list(func(s models.Shift) bool {
		return s.CompanyID == companyID && s.Date >= from && s.Date <= to
	}), nil
}

func (r *fakeShiftRepo) GetByWorkerAndDateRange(workerID, from, to string) ([]models.Shift, error) {
	return r.list(func(s models.Shift) bool {
		return s.WorkerID == workerID && s.Date >= from && s.Date <= to
	}), nil
}

func (r *fakeShiftRepo) Create(s *models.Shift) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.shifts[s.ID] = *s
	return nil
}

func (r *fakeShiftRepo) Update(s *models.Shift) error {
	if _, ok := r.shifts[s.ID]; !ok {
		return fmt.Errorf("shift %s not found", s.ID)
	}
	r.shifts[s.ID] = *s
	return nil
}

func (r *fakeShiftRepo) Delete(id string) error {
	if _, ok := r.shifts[id]; !ok {
		return fmt.Errorf("shift %s not found", id)
	}
	delete(r.shifts, id)
	return nil
}

func (r *fakeShiftRepo) AcquireDayLock(workerID, date string) (bool, error) {
	key := workerID + "|" + date
	if r.locks[key] {
		return false, nil
	}
	r.locks[key] = true
	return true, nil
}

func (r *fakeShiftRepo) ReleaseDayLock(workerID, date string) error {
	delete(r.locks, workerID+"|"+date)
	return nil
}

// fakeWorkerRepo mirrors the Mongo repository's lookup semantics: GetByID
// errors on a missing worker, the email and username lookups return nil.
type fakeWorkerRepo struct {
	workers map[string]models.Worker
	order   []string
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[string]models.Worker)}
}

func (r *fakeWorkerRepo) add(w models.Worker) {
	if _, ok := r.workers[w.ID]; !ok {
		r.order = append(r.order, w.ID)
	}
	r.workers[w.ID] = w
}

func (r *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, fmt.Errorf("worker %s not found", id)
	}
	return &w, nil
}

func (r *fakeWorkerRepo) GetByEmail(email string) (*models.Worker, error) {
	for _, w := range r.workers {
		if w.Email == email {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkerRepo) GetByUsername(username string) (*models.Worker, error) {
	for _, w := range r.workers {
		if w.Username == username {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkerRepo) GetByCompany(companyID string) ([]models.Worker, error) {
	var out []models.Worker
	for _, id := range r.order {
		if w := r.workers[id]; w.CompanyID == companyID && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkerRepo) CountByCompany(companyID string) (int64, error) {
	var n int64
	for _, w := range r.workers {
		if w.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkerRepo) Create(w *models.Worker) error {
	r.add(*w)
	return nil
}

func (r *fakeWorkerRepo) Update(w *models.Worker) error {
	if _, ok := r.workers[w.ID]; !ok {
		return fmt.Errorf("worker %s not found", w.ID)
	}
	r.workers[w.ID] = *w
	return nil
}

func (r *fakeWorkerRepo) Delete(id string) error {
	delete(r.workers, id)
	return nil
}

func (r *fakeWorkerRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Worker, error) {
	return r.GetByID(id)
}

func (r *fakeWorkerRepo) GetByEmailWithProjection(email string, _ bson.M) (*models.Worker, error) {
	return r.GetByEmail(email)
}

type fakeAvailabilityRepo struct {
	records map[string]models.AvailabilityRecord
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{records: make(map[string]models.AvailabilityRecord)}
}

func (r *fakeAvailabilityRepo) seed(rec models.AvailabilityRecord) {
	r.records[rec.WorkerID+"|"+rec.Date] = rec
}

func (r *fakeAvailabilityRepo) Upsert(rec *models.AvailabilityRecord) error {
	r.records[rec.WorkerID+"|"+rec.Date] = *rec
	return nil
}

func (r *fakeAvailabilityRepo) GetByWorkerAndDate(workerID, date string) (*models.AvailabilityRecord, error) {
	rec, ok := r.records[workerID+"|"+date]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *fakeAvailabilityRepo) GetByWorkerAndDateRange(workerID, from, to string) ([]models.AvailabilityRecord, error) {
	var out []models.AvailabilityRecord
	for _, rec := range r.records {
		if rec.WorkerID == workerID && rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) GetByCompanyAndDateRange(companyID, from, to string) ([]models.AvailabilityRecord, error) {
	var out []models.AvailabilityRecord
	for _, rec := range r.records {
		if rec.CompanyID == companyID && rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) Delete(workerID, date string) error {
	key := workerID + "|" + date
	if _, ok := r.records[key]; !ok {
		return fmt.Errorf("no availability record for worker %s on %s", workerID, date)
	}
	delete(r.records, key)
	return nil
}

// fakeNotifier records the pushes the service asked for.
type fakeNotifier struct {
	assigned  []models.Shift
	changed   []models.Shift
	cancelled []models.Shift
	pushErr   error
}

func (n *fakeNotifier) SendWorkerPush(context.Context, string, string, string, map[string]string) error {
	return n.pushErr
}

func (n *fakeNotifier) NotifyShiftAssigned(_ context.Context, s models.Shift) error {
	if n.pushErr != nil {
		return n.pushErr
	}
	n.assigned = append(n.assigned, s)
	return nil
}

func (n *fakeNotifier) NotifyShiftChanged(_ context.Context, s models.Shift) error {
	if n.pushErr != nil {
		return n.pushErr
	}
	n.changed = append(n.changed, s)
	return nil
}

func (n *fakeNotifier) NotifyShiftCancelled(_ context.Context, s models.Shift) error {
	if n.pushErr != nil {
		return n.pushErr
	}
	n.cancelled = append(n.cancelled, s)
	return nil
}

type testEnv struct {
	svc          *shift.DefaultShiftService
	shifts       *fakeShiftRepo
	workers      *fakeWorkerRepo
	availability *fakeAvailabilityRepo
	notif        *fakeNotifier
}

// newTestEnv builds the service over fakes, with two schedulable workers
// already on the roster. The asynq client stays nil so no reminder queue
// is touched.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	window, err := schedule.NewWindow(0, 24*60, 30, 30, 20, 2)
	require.NoError(t, err)

	env := &testEnv{
		shifts:       newFakeShiftRepo(),
		workers:      newFakeWorkerRepo(),
		availability: newFakeAvailabilityRepo(),
		notif:        &fakeNotifier{},
	}
	env.workers.add(models.Worker{
		ID:        "w-ana",
		CompanyID: companyID,
		Username:  "ana.moraes",
		FirstName: "Ana",
		LastName:  "Moraes",
		Function:  models.FunctionServer,
		Role:      models.RoleEmployee,
		Approved:  true,
		Active:    true,
	})
	env.workers.add(models.Worker{
		ID:        "w-ben",
		CompanyID: companyID,
		Username:  "ben.okafor",
		FirstName: "Ben",
		LastName:  "Okafor",
		Function:  models.FunctionBartender,
		Role:      models.RoleEmployee,
		Approved:  true,
		Active:    true,
	})

	env.svc = &shift.DefaultShiftService{
		Repo:         env.shifts,
		Workers:      env.workers,
		Availability: env.availability,
		Window:       window,
		Notif:        env.notif,
	}
	return env
}

func createReq(workerID, date string, start, end int) shift.CreateShiftRequest {
	return shift.CreateShiftRequest{
		CompanyID: companyID,
		WorkerID:  workerID,
		Date:      date,
		Start:     start,
		End:       end,
		CreatedBy: "w-boss",
	}
}

func updateReq(id, workerID, date string, start, end int) shift.UpdateShiftRequest {
	return shift.UpdateShiftRequest{
		ID:        id,
		CompanyID: companyID,
		WorkerID:  workerID,
		Date:      date,
		Start:     start,
		End:       end,
	}
}

func seededShift(id, workerID, date string, start, end int) models.Shift {
	return models.Shift{
		ID:        id,
		CompanyID: companyID,
		WorkerID:  workerID,
		Date:      date,
		Range:     models.BoundedRange(start, end),
		Function:  models.FunctionServer,
	}
}
