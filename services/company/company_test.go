package company_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"shiftwise/models"
	"shiftwise/services/company"
	"shiftwise/services/worker"
)

// joinCodePattern matches the base32 alphabet the code generator draws from.
var joinCodePattern = regexp.MustCompile(`^[A-Z2-7]{6}$`)

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

type fakeCompanyRepo struct {
	companies   map[string]models.Company
	creates     int
	failCreates int // leading Create calls rejected as duplicate codes
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]models.Company)}
}

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
	r.creates++
	if r.failCreates > 0 {
		r.failCreates--
		return duplicateKeyErr()
	}
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

// fakeWorkerSvc stubs owner bootstrap. The embedded interface stays nil;
// company creation touches nothing else.
type fakeWorkerSvc struct {
	worker.WorkerService
	createErr    error
	gotCompanyID string
	gotBoot      worker.OwnerBootstrap
}

func (f *fakeWorkerSvc) CreateOwner(companyID string, boot worker.OwnerBootstrap) (*models.Worker, error) {
	f.gotCompanyID = companyID
	f.gotBoot = boot
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Worker{
		ID:        "w-owner",
		CompanyID: companyID,
		Username:  "rosa.lima",
		Email:     boot.Email,
		Role:      models.RoleOwner,
		Function:  models.FunctionManager,
		Approved:  true,
		Active:    true,
	}, nil
}

func newTestService() (*company.DefaultCompanyService, *fakeCompanyRepo, *fakeWorkerSvc) {
	repo := newFakeCompanyRepo()
	workers := &fakeWorkerSvc{}
	svc := &company.DefaultCompanyService{Repo: repo, Workers: workers}
	return svc, repo, workers
}

func createReq() company.CreateCompanyRequest {
	return company.CreateCompanyRequest{
		Name:         " Bistro Verde ",
		Address:      "12 Rua das Flores",
		Email:        " Contact@BistroVerde.example ",
		CuisineType:  "portuguese",
		MaxEmployees: 25,
		Owner: worker.OwnerBootstrap{
			Email:     "rosa@example.com",
			FirstName: "Rosa",
			LastName:  "Lima",
			Password:  "Cantina2026",
		},
	}
}

func TestCreateCompanyProvisionsOwner(t *testing.T) {
	svc, repo, workers := newTestService()

	boot, err := svc.CreateCompany(createReq())
	require.NoError(t, err)
	require.NotNil(t, boot)

	assert.Equal(t, "Bistro Verde", boot.Company.Name)
	assert.Equal(t, "contact@bistroverde.example", boot.Company.Email)
	assert.True(t, boot.Company.Active)
	assert.Regexp(t, joinCodePattern, boot.Company.Code)

	assert.Equal(t, boot.Company.ID, workers.gotCompanyID)
	assert.Equal(t, "rosa@example.com", workers.gotBoot.Email)
	assert.Equal(t, "w-owner", boot.Owner.ID)

	stored, err := repo.GetByID(boot.Company.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, boot.Company.Code, stored.Code)
}

func TestCreateCompanyRetriesCollidingCodes(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.failCreates = 2

	boot, err := svc.CreateCompany(createReq())
	require.NoError(t, err, "a colliding join code is retried with a fresh one")
	assert.Equal(t, 3, repo.creates)
	assert.Len(t, repo.companies, 1)
	assert.Regexp(t, joinCodePattern, boot.Company.Code)
}

func TestCreateCompanyGivesUpOnPersistentCollisions(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.failCreates = 5

	_, err := svc.CreateCompany(createReq())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not allocate")
	assert.Empty(t, repo.companies)
}

func TestCreateCompanyValidation(t *testing.T) {
	t.Run("blank name", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := createReq()
		req.Name = "   "
		_, err := svc.CreateCompany(req)
		assert.Error(t, err)
	})

	t.Run("negative staff limit", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := createReq()
		req.MaxEmployees = -1
		_, err := svc.CreateCompany(req)
		assert.Error(t, err)
	})
}

func TestCreateCompanyDeactivatesOnOwnerFailure(t *testing.T) {
	svc, repo, workers := newTestService()
	workers.createErr = errors.New("email already belongs to a worker")

	_, err := svc.CreateCompany(createReq())
	require.Error(t, err)

	require.Len(t, repo.companies, 1)
	for _, stored := range repo.companies {
		assert.False(t, stored.Active, "a tenant without an owner must not stay usable")
	}
}

func TestUpdateCompanyAppliesPartialChanges(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.companies["co-1"] = models.Company{
		ID: "co-1", Name: "Bistro Verde", Code: "BISTRO",
		Address: "12 Rua das Flores", MaxEmployees: 25, Active: true,
	}

	updated, err := svc.UpdateCompany(company.UpdateCompanyRequest{
		ID:   "co-1",
		Name: "Bistro Verde Mar",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bistro Verde Mar", updated.Name)
	assert.Equal(t, "12 Rua das Flores", updated.Address, "omitted fields stay put")
	assert.Equal(t, 25, updated.MaxEmployees)

	_, err = svc.UpdateCompany(company.UpdateCompanyRequest{ID: "co-1", Name: "Bistro Verde Mar"})
	assert.Error(t, err, "a change to the current values is no change")

	_, err = svc.UpdateCompany(company.UpdateCompanyRequest{ID: "co-missing", Name: "x"})
	assert.Error(t, err)
}

func TestRotateJoinCode(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.companies["co-1"] = models.Company{ID: "co-1", Name: "Bistro Verde", Code: "BISTRO", Active: true}

	rotated, err := svc.RotateJoinCode("co-1")
	require.NoError(t, err)
	assert.NotEqual(t, "BISTRO", rotated.Code)
	assert.Regexp(t, joinCodePattern, rotated.Code)
	assert.Equal(t, rotated.Code, repo.companies["co-1"].Code)

	_, err = svc.RotateJoinCode("co-missing")
	assert.Error(t, err)
}

func TestDeactivateCompany(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.companies["co-1"] = models.Company{ID: "co-1", Name: "Bistro Verde", Code: "BISTRO", Active: true}

	require.NoError(t, svc.DeactivateCompany("co-1"))
	assert.False(t, repo.companies["co-1"].Active)

	assert.Error(t, svc.DeactivateCompany("co-missing"))
}
