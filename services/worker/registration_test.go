package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shiftwise/models"
)

func TestLookupCompany(t *testing.T) {
	env := newTestEnv()

	company, err := env.svc.LookupCompany(" bistro ")
	require.NoError(t, err, "codes are case and whitespace insensitive")
	assert.Equal(t, testCompanyID, company.ID)

	var codeErr CompanyCodeError
	_, err = env.svc.LookupCompany("NOSUCH")
	require.ErrorAs(t, err, &codeErr)

	_, err = env.svc.LookupCompany("")
	require.ErrorAs(t, err, &codeErr)

	closed := models.Company{ID: "co-closed", Name: "Closed Doors", Code: "CLOSED", Active: false}
	env.companies.add(closed)
	_, err = env.svc.LookupCompany("CLOSED")
	require.ErrorAs(t, err, &codeErr, "deactivated companies answer like unknown codes")
}

func TestSubmitRegistration(t *testing.T) {
	env := newTestEnv()

	got, err := env.svc.SubmitRegistration(submission())
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, testCompanyID, got.CompanyID)
	assert.Equal(t, "BISTRO", got.EnteredCode)
	assert.Equal(t, "nia@example.com", got.Email, "email is lowercased and trimmed")
	assert.Equal(t, "Nia", got.FirstName)
	assert.Equal(t, models.RegistrationPending, got.Status)
	assert.False(t, got.EmailVerified)
	assert.NotEmpty(t, got.VerificationToken)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("Kitchen2026")),
		"the submitted password is hashed immediately")
	assert.Contains(t, env.registrations.requests, got.ID)
}

func TestSubmitRegistrationRejects(t *testing.T) {
	cases := map[string]func(*testEnv, *RegistrationSubmission){
		"unknown company code": func(_ *testEnv, req *RegistrationSubmission) {
			req.Code = "NOSUCH"
		},
		"invalid email": func(_ *testEnv, req *RegistrationSubmission) {
			req.Email = "nia.example.com"
		},
		"blank name": func(_ *testEnv, req *RegistrationSubmission) {
			req.FirstName = "  "
		},
		"unknown function": func(_ *testEnv, req *RegistrationSubmission) {
			req.Function = "sommelier"
		},
		"weak password": func(_ *testEnv, req *RegistrationSubmission) {
			req.Password = "short"
		},
		"email already belongs to a worker": func(env *testEnv, req *RegistrationSubmission) {
			env.workers.add(models.Worker{ID: "w-nia", Email: "nia@example.com", Active: true})
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv()
			req := submission()
			mutate(env, &req)

			_, err := env.svc.SubmitRegistration(req)
			require.Error(t, err)
			assert.Empty(t, env.registrations.requests)
		})
	}
}

func TestSubmitRegistrationDuplicatePending(t *testing.T) {
	env := newTestEnv()
	env.registrations.dupOnCreate = true

	_, err := env.svc.SubmitRegistration(submission())

	var dup DuplicateRegistrationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "nia@example.com", dup.Email)
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv()

	got, err := env.svc.SubmitRegistration(submission())
	require.NoError(t, err)

	require.NoError(t, env.svc.VerifyEmail(got.VerificationToken))
	assert.True(t, env.registrations.requests[got.ID].EmailVerified)

	assert.NoError(t, env.svc.VerifyEmail(got.VerificationToken), "clicking the link twice stays quiet")

	assert.Error(t, env.svc.VerifyEmail("bogus-token"))
}

func TestVerifyEmailOnReviewedRequest(t *testing.T) {
	env := newTestEnv()
	env.registrations.requests["req-1"] = models.RegistrationRequest{
		ID:                "req-1",
		CompanyID:         testCompanyID,
		Status:            models.RegistrationRejected,
		VerificationToken: "token-1",
	}

	var stateErr RegistrationStateError
	require.ErrorAs(t, env.svc.VerifyEmail("token-1"), &stateErr)
}

// submitVerified walks a submission through email verification and
// returns its request ID.
func submitVerified(t *testing.T, env *testEnv) string {
	t.Helper()
	got, err := env.svc.SubmitRegistration(submission())
	require.NoError(t, err)
	require.NoError(t, env.svc.VerifyEmail(got.VerificationToken))
	return got.ID
}

func TestApproveRegistration(t *testing.T) {
	env := newTestEnv()
	requestID := submitVerified(t, env)

	created, err := env.svc.ApproveRegistration(requestID, "w-owner")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "nia.kato", created.Username)
	assert.Equal(t, "BISTRO-0002", created.EmployeeNumber, "the owner already holds 0001")
	assert.Equal(t, models.RoleEmployee, created.Role)
	assert.Equal(t, models.FunctionKitchen, created.Function)
	assert.True(t, created.Approved)
	assert.True(t, created.Active)
	assert.Equal(t, "w-owner", created.ApprovedBy)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Kitchen2026")),
		"the hash from the application carries over")

	reviewed := env.registrations.requests[requestID]
	assert.Equal(t, models.RegistrationApproved, reviewed.Status)
	assert.Equal(t, "w-owner", reviewed.ReviewedBy)
}

func TestApproveRegistrationManagerFunction(t *testing.T) {
	env := newTestEnv()
	sub := submission()
	sub.Function = models.FunctionManager
	got, err := env.svc.SubmitRegistration(sub)
	require.NoError(t, err)
	require.NoError(t, env.svc.VerifyEmail(got.VerificationToken))

	created, err := env.svc.ApproveRegistration(got.ID, "w-owner")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, created.Role, "hiring for the manager function grants the manager role")
}

func TestApproveRegistrationUsernameCollision(t *testing.T) {
	env := newTestEnv()
	env.workers.add(models.Worker{ID: "w-other", CompanyID: testCompanyID, Username: "nia.kato", Active: true})
	requestID := submitVerified(t, env)

	created, err := env.svc.ApproveRegistration(requestID, "w-owner")
	require.NoError(t, err)
	assert.Equal(t, "nia.kato2", created.Username)
}

func TestApproveRegistrationGuards(t *testing.T) {
	t.Run("unverified email", func(t *testing.T) {
		env := newTestEnv()
		got, err := env.svc.SubmitRegistration(submission())
		require.NoError(t, err)

		var stateErr RegistrationStateError
		_, err = env.svc.ApproveRegistration(got.ID, "w-owner")
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("already reviewed", func(t *testing.T) {
		env := newTestEnv()
		requestID := submitVerified(t, env)
		_, err := env.svc.ApproveRegistration(requestID, "w-owner")
		require.NoError(t, err)

		var stateErr RegistrationStateError
		_, err = env.svc.ApproveRegistration(requestID, "w-owner")
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("staff limit reached", func(t *testing.T) {
		env := newTestEnv()
		company, _ := env.companies.GetByID(testCompanyID)
		company.MaxEmployees = 1
		require.NoError(t, env.companies.Update(company))
		requestID := submitVerified(t, env)

		var stateErr RegistrationStateError
		_, err := env.svc.ApproveRegistration(requestID, "w-owner")
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("reviewer is not a manager", func(t *testing.T) {
		env := newTestEnv()
		env.workers.add(models.Worker{
			ID: "w-peer", CompanyID: testCompanyID,
			Role: models.RoleEmployee, Approved: true, Active: true,
		})
		requestID := submitVerified(t, env)

		_, err := env.svc.ApproveRegistration(requestID, "w-peer")
		assert.Error(t, err)
	})

	t.Run("reviewer from another company", func(t *testing.T) {
		env := newTestEnv()
		env.workers.add(models.Worker{
			ID: "w-rival", CompanyID: "co-rival",
			Role: models.RoleManager, Approved: true, Active: true,
		})
		requestID := submitVerified(t, env)

		_, err := env.svc.ApproveRegistration(requestID, "w-rival")
		assert.Error(t, err)
	})

	t.Run("unknown request", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.svc.ApproveRegistration("nope", "w-owner")
		assert.Error(t, err)
	})
}

func TestRejectRegistration(t *testing.T) {
	env := newTestEnv()
	requestID := submitVerified(t, env)

	assert.Error(t, env.svc.RejectRegistration(requestID, "w-owner", "  "), "a reason is required")

	require.NoError(t, env.svc.RejectRegistration(requestID, "w-owner", " no openings right now "))

	reviewed := env.registrations.requests[requestID]
	assert.Equal(t, models.RegistrationRejected, reviewed.Status)
	assert.Equal(t, "no openings right now", reviewed.RejectionReason)
	assert.Equal(t, "w-owner", reviewed.ReviewedBy)

	var stateErr RegistrationStateError
	err := env.svc.RejectRegistration(requestID, "w-owner", "again")
	require.ErrorAs(t, err, &stateErr, "a decided request cannot be re-reviewed")
}
