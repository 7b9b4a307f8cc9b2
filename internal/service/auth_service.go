package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type authEmployeeRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService provides authentication use cases for employee principals.
type AuthService struct {
	repo      authEmployeeRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authEmployeeRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiration <= 0 {
		config.Expiration = 24 * time.Hour
	}
	return &AuthService{repo: repo, audit: audit, validator: validate, logger: logger, config: config}
}

// Login authenticates an employee and returns an issued token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	employee, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch employee")
	}

	if !employee.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	now := time.Now().UTC()
	token, expiresAt, err := s.generateAccessToken(employee, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	if err := s.repo.UpdateLastLogin(ctx, employee.ID, now); err != nil {
		s.logger.Warn("failed to stamp last login", zap.String("employee_id", employee.ID), zap.Error(err))
	}

	s.emitLoginAudit(employee, req)

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
		Employee: models.EmployeeInfo{
			ID:       employee.ID,
			Email:    employee.Email,
			FullName: employee.FullName,
			Role:     employee.Role,
		},
		IssuedAt: now,
	}, nil
}

// ValidateToken parses and validates an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(employee *models.Employee, issuedAt time.Time) (string, time.Time, error) {
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &models.JWTClaims{
		EmployeeID: employee.ID,
		Role:       employee.Role,
		Email:      employee.Email,
		FullName:   employee.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   employee.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *AuthService) emitLoginAudit(employee *models.Employee, req models.LoginRequest) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{"email": employee.Email})
	s.audit.Record(&models.AuditLog{
		EmployeeID: &employee.ID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		NewValues:  payload,
		IPAddress:  req.IP,
		UserAgent:  req.UserAgent,
	})
}
