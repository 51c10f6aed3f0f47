package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleRider    UserRole = "rider"
	RoleCaptain  UserRole = "captain"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleRider, RoleCaptain:
		return true
	}
	return false
}

// RoleForPage maps the page a visitor was heading to onto the role a new
// account gets: home -> customer, ride -> rider, anything else -> captain.
func RoleForPage(page string) UserRole {
	switch page {
	case "home":
		return RoleCustomer
	case "ride":
		return RoleRider
	default:
		return RoleCaptain
	}
}

// Username is not unique; two signups may share one.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"index;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}
