package domain

import (
	"time"
)

type Role string

const (
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User is a back-office account (establishment manager or platform admin).
// Scheduled employees do not log in; they live in their own type.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
