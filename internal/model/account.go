package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Account is a registered identity: either an administrator or a
// self-registered student.
type Account struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	Class        string    `json:"class"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated caller resolved by the auth middleware and
// attached to the request context.
type Identity struct {
	AccountID int    `json:"account_id"`
	Role      Role   `json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Age accepts both JSON numbers and numeric strings, since HTML form inputs
// routinely submit numbers as strings. Out-of-range values are rejected by
// the binding rules, never clamped.
type Age int

// UnmarshalJSON implements tolerant numeric decoding for Age.
func (a *Age) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("age must be a number")
	}
	*a = Age(n)
	return nil
}

// SignupRequest is the payload for self-registration.
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Age      Age    `json:"age" binding:"required,min=1,max=100"`
	Class    string `json:"class" binding:"required,min=1,max=50"`
}

// Normalize trims surrounding whitespace so the length rules run against
// the value that will be stored.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Class = strings.TrimSpace(r.Class)
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Normalize trims the email; passwords are compared verbatim.
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// AuthResponse is returned after successful signup or login.
type AuthResponse struct {
	AccountID int    `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Class     string `json:"class"`
	Role      Role   `json:"role"`
	Token     string `json:"token"`
}

// AccountUpdate is the sparse field set accepted by the admin account
// update path. Password and role are deliberately absent: the former is
// never round-tripped, the latter is immutable through this endpoint.
type AccountUpdate struct {
	Name  *string
	Email *string
	Age   *int
	Class *string
}

// IsEmpty reports whether no field was provided.
func (u AccountUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Age == nil && u.Class == nil
}

// DeletedAccountSummary is the minimal description of a removed account.
type DeletedAccountSummary struct {
	ID          int    `json:"id"`
	DeletedUser string `json:"deleted_user"`
}
