package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type authRepoStub struct {
	employees map[string]*models.Employee
	lastLogin map[string]time.Time
}

func newAuthRepoStub(employees ...*models.Employee) *authRepoStub {
	stub := &authRepoStub{
		employees: make(map[string]*models.Employee),
		lastLogin: make(map[string]time.Time),
	}
	for _, emp := range employees {
		stub.employees[emp.ID] = emp
	}
	return stub
}

func (s *authRepoStub) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	for _, emp := range s.employees {
		if strings.EqualFold(emp.Email, email) {
			return emp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if emp, ok := s.employees[id]; ok {
		return emp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogin[id] = ts
	return nil
}

func testEmployee(t *testing.T, password string, active bool) *models.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Employee{
		ID:           authorID,
		Email:        "hr@example.com",
		PasswordHash: string(hash),
		FullName:     "HR Manager",
		Role:         models.RoleHRManager,
		Active:       active,
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	emp := testEmployee(t, "secret-pass", true)
	repo := newAuthRepoStub(emp)
	audit := &auditStub{}
	svc := NewAuthService(repo, audit, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "payroll-admin-api"})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "HR@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, emp.ID, resp.Employee.ID)
	assert.Contains(t, repo.lastLogin, emp.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, claims.EmployeeID)
	assert.Equal(t, models.RoleHRManager, claims.Role)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionLogin, audit.logs[0].Action)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newAuthRepoStub(testEmployee(t, "secret-pass", true)), nil, nil, nil, AuthConfig{Secret: "test-secret"})
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "hr@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newAuthRepoStub(), nil, nil, nil, AuthConfig{Secret: "test-secret"})
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginInactiveAccount(t *testing.T) {
	svc := NewAuthService(newAuthRepoStub(testEmployee(t, "secret-pass", false)), nil, nil, nil, AuthConfig{Secret: "test-secret"})
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "hr@example.com", Password: "secret-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(newAuthRepoStub(testEmployee(t, "secret-pass", true)), nil, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour})
	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "hr@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	other := NewAuthService(newAuthRepoStub(), nil, nil, nil, AuthConfig{Secret: "different-secret"})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	require.Error(t, err)
}

func TestAuthLoginValidatesPayload(t *testing.T) {
	svc := NewAuthService(newAuthRepoStub(), nil, nil, nil, AuthConfig{Secret: "test-secret"})
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
