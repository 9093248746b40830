package worker

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shiftwise/models"
)

const (
	testCompanyID   = "co-bistro"
	testCompanyCode = "BISTRO"
)

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

type fakeCompanyRepo struct {
	companies map[string]models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]models.Company)}
}

func (r *fakeCompanyRepo) add(c models.Company) { r.companies[c.ID] = c }

func (r *fakeCompanyRepo) GetByID(id string) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCompanyRepo) GetByCode(code string) (*models.Company, error) {
	for _, c := range r.companies {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Create(c *models.Company) error {
	r.companies[c.ID] = *c
	return nil
}

func (r *fakeCompanyRepo) Update(c *models.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return fmt.Errorf("company %s not found", c.ID)
	}
	r.companies[c.ID] = *c
	return nil
}

// duplicateKeyErr mimics the error Mongo raises when a unique index
// rejects an insert.
func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

type fakeRegistrationRepo struct {
	requests    map[string]models.RegistrationRequest
	dupOnCreate bool
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{requests: make(map[string]models.RegistrationRequest)}
}

func (r *fakeRegistrationRepo) GetByID(id string) (*models.RegistrationRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *fakeRegistrationRepo) GetByVerificationToken(token string) (*models.RegistrationRequest, error) {
	for _, req := range r.requests {
		if req.VerificationToken == token {
			return &req, nil
		}
	}
	return nil, nil
}

func (r *fakeRegistrationRepo) GetPendingByCompany(companyID string) ([]models.RegistrationRequest, error) {
	var out []models.RegistrationRequest
	for _, req := range r.requests {
		if req.CompanyID == companyID && req.Status == models.RegistrationPending && req.EmailVerified {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) Create(req *models.RegistrationRequest) error {
	if r.dupOnCreate {
		return duplicateKeyErr()
	}
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeRegistrationRepo) Update(req *models.RegistrationRequest) error {
	if _, ok := r.requests[req.ID]; !ok {
		return fmt.Errorf("registration request %s not found", req.ID)
	}
	r.requests[req.ID] = *req
	return nil
}

type testEnv struct {
	svc           *DefaultWorkerService
	workers       *fakeWorkerRepo
	companies     *fakeCompanyRepo
	registrations *fakeRegistrationRepo
}

// newTestEnv builds the service over fakes with one active company and
// its owner already in place, so the next employee number is BISTRO-0002.
func newTestEnv() *testEnv {
	env := &testEnv{
		workers:       newFakeWorkerRepo(),
		companies:     newFakeCompanyRepo(),
		registrations: newFakeRegistrationRepo(),
	}
	env.companies.add(models.Company{
		ID:     testCompanyID,
		Name:   "Bistro Verde",
		Code:   testCompanyCode,
		Active: true,
	})
	env.workers.add(models.Worker{
		ID:             "w-owner",
		CompanyID:      testCompanyID,
		Username:       "rui.costa",
		Email:          "rui@example.com",
		FirstName:      "Rui",
		LastName:       "Costa",
		Function:       models.FunctionManager,
		Role:           models.RoleOwner,
		EmployeeNumber: testCompanyCode + "-0001",
		Approved:       true,
		Active:         true,
	})

	env.svc = &DefaultWorkerService{
		Repo:          env.workers,
		Companies:     env.companies,
		Registrations: env.registrations,
	}
	return env
}

func submission() RegistrationSubmission {
	return RegistrationSubmission{
		Code:      "bistro",
		Email:     "Nia@Example.com",
		FirstName: " Nia ",
		LastName:  "Kato",
		Phone:     "555-0101",
		Function:  models.FunctionKitchen,
		Password:  "Kitchen2026",
	}
}
