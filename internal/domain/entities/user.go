package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AccountType distinguishes end users from back-office admins
type AccountType string

const (
	AccountTypeUser  AccountType = "USER"
	AccountTypeAdmin AccountType = "ADMIN"
)

// UserRole represents the subscription tier of a user
type UserRole string

const (
	UserRoleNormal  UserRole = "normal"
	UserRolePremium UserRole = "premium"
)

// AccountStatus represents whether an account may log in
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// User represents a user or admin account
type User struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	Name         null.String   `json:"name"`
	PasswordHash null.String   `json:"-"`
	Type         AccountType   `json:"type"`
	Role         UserRole      `json:"role"`
	Status       AccountStatus `json:"status"`
	IsSubscribed bool          `json:"isSubscribed"`
	Avatar       null.String   `json:"avatar"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	DeletedAt    *time.Time    `json:"-"`
}

// ProfileComplete reports whether the account finished the final
// registration step. Login is only possible once this holds.
func (u *User) ProfileComplete() bool {
	return u.PasswordHash.Valid && u.PasswordHash.String != ""
}

// LoginInput represents input for login (users and admins)
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CompleteProfileInput represents the final registration step
type CompleteProfileInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// ChangePasswordInput represents input for changing a password
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdateDetailsInput carries the optional profile fields an admin may edit
type UpdateDetailsInput struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// InviteAdminInput represents input for inviting a new admin
type InviteAdminInput struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
