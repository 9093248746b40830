package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"shiftwise/middleware"
	"shiftwise/models"
	"shiftwise/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeWorkerRepo struct {
	workers map[string]models.Worker
}

func (r *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, fmt.Errorf("worker %s not found", id)
	}
	return &w, nil
}

func (r *fakeWorkerRepo) GetByEmail(string) (*models.Worker, error)    { return nil, nil }
func (r *fakeWorkerRepo) GetByUsername(string) (*models.Worker, error) { return nil, nil }
func (r *fakeWorkerRepo) GetByCompany(string) ([]models.Worker, error) { return nil, nil }
func (r *fakeWorkerRepo) CountByCompany(string) (int64, error)         { return 0, nil }
func (r *fakeWorkerRepo) Create(*models.Worker) error                  { return nil }
func (r *fakeWorkerRepo) Update(*models.Worker) error                  { return nil }
func (r *fakeWorkerRepo) Delete(string) error                          { return nil }

func (r *fakeWorkerRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Worker, error) {
	return r.GetByID(id)
}

func (r *fakeWorkerRepo) GetByEmailWithProjection(string, bson.M) (*models.Worker, error) {
	return nil, nil
}

// authRouter wires the middleware in front of a probe handler that echoes
// the identity it found in context.
func authRouter(repo *fakeWorkerRepo) *gin.Engine {
	r := gin.New()
	r.GET("/probe",
		middleware.JWTAuthWorkerMiddleware(repo),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"workerId":  c.GetString("workerID"),
				"companyId": c.GetString("companyID"),
				"role":      c.GetString("role"),
			})
		},
	)
	return r
}

func signedToken(t *testing.T, workerID string) string {
	t.Helper()
	token, err := utils.GenerateToken(workerID, workerID+"@example.com", time.Hour)
	require.NoError(t, err)
	return token
}

func probe(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWorkerAuthAdmitsValidToken(t *testing.T) {
	token := signedToken(t, "w-ana")
	repo := &fakeWorkerRepo{workers: map[string]models.Worker{
		"w-ana": {
			ID:        "w-ana",
			CompanyID: "co-bistro",
			Role:      models.RoleEmployee,
			TokenHash: utils.HashToken(token),
			Active:    true,
		},
	}}

	w := probe(authRouter(repo), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"workerId":"w-ana"`)
	assert.Contains(t, w.Body.String(), `"companyId":"co-bistro"`)
	assert.Contains(t, w.Body.String(), `"role":"employee"`)
}

func TestWorkerAuthRejects(t *testing.T) {
	token := signedToken(t, "w-ana")

	cases := map[string]struct {
		header     string
		worker     *models.Worker
		wantStatus int
		wantBody   string
	}{
		"missing header": {
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Insufficient authorization",
		},
		"wrong scheme": {
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Insufficient authorization",
		},
		"garbage token": {
			header:     "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Insufficient authorization",
		},
		"unknown worker": {
			header:     "Bearer " + token,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication error",
		},
		"deactivated worker": {
			header: "Bearer " + token,
			worker: &models.Worker{
				ID: "w-ana", CompanyID: "co-bistro",
				TokenHash: utils.HashToken(token), Active: false,
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "deactivated",
		},
		"revoked token": {
			header: "Bearer " + token,
			worker: &models.Worker{
				ID: "w-ana", CompanyID: "co-bistro",
				TokenHash: "", Active: true,
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token mismatch",
		},
		"superseded token": {
			header: "Bearer " + token,
			worker: &models.Worker{
				ID: "w-ana", CompanyID: "co-bistro",
				TokenHash: utils.HashToken("a newer token"), Active: true,
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token mismatch",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeWorkerRepo{workers: map[string]models.Worker{}}
			if tc.worker != nil {
				repo.workers[tc.worker.ID] = *tc.worker
			}

			w := probe(authRouter(repo), tc.header)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}

func TestRoleGates(t *testing.T) {
	newRouter := func(role string, gate gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		r.GET("/probe",
			func(c *gin.Context) { c.Set("role", role) },
			gate,
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		return r
	}

	cases := map[string]struct {
		role       string
		gate       gin.HandlerFunc
		wantStatus int
	}{
		"manager passes manager gate": {
			role: models.RoleManager, gate: middleware.RequireManager(), wantStatus: http.StatusOK,
		},
		"owner passes manager gate": {
			role: models.RoleOwner, gate: middleware.RequireManager(), wantStatus: http.StatusOK,
		},
		"employee fails manager gate": {
			role: models.RoleEmployee, gate: middleware.RequireManager(), wantStatus: http.StatusForbidden,
		},
		"supervisor fails manager gate": {
			role: models.RoleShiftSupervisor, gate: middleware.RequireManager(), wantStatus: http.StatusForbidden,
		},
		"owner passes owner gate": {
			role: models.RoleOwner, gate: middleware.RequireOwner(), wantStatus: http.StatusOK,
		},
		"manager fails owner gate": {
			role: models.RoleManager, gate: middleware.RequireOwner(), wantStatus: http.StatusForbidden,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			newRouter(tc.role, tc.gate).ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
