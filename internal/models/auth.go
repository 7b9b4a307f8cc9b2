package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an employee.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued token and employee info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	Employee    EmployeeInfo `json:"employee"`
	IssuedAt    time.Time    `json:"issued_at"`
}

// EmployeeInfo describes the authenticated employee in responses.
type EmployeeInfo struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	FullName string       `json:"full_name"`
	Role     EmployeeRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	EmployeeID string       `json:"employee_id"`
	Role       EmployeeRole `json:"role"`
	Email      string       `json:"email"`
	FullName   string       `json:"full_name"`
	jwt.RegisteredClaims
}
