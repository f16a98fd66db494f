package models

import "strings"

// UserRole defines the roles an account can hold. The role is set once at
// creation and never edited from the console.
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleRestaurant UserRole = "restaurant"
	RoleDriver     UserRole = "driver"
)

type User struct {
	ID        string   `json:"id"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Role      UserRole `json:"role,omitempty"`
}

func (u User) RecordID() string { return u.ID }

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.Firstname + " " + u.Lastname)
}

// SearchText is what the users table matches the search box against.
func (u User) SearchText() string {
	return strings.Join([]string{u.Firstname, u.Lastname, u.Email, string(u.Role)}, " ")
}

// CreateUserRequest is the admin form for a new account.
type CreateUserRequest struct {
	Firstname string   `json:"firstname" binding:"required"`
	Lastname  string   `json:"lastname" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	Phone     string   `json:"phone"`
	Role      UserRole `json:"role,omitempty"`
}

// UpdateUserRequest carries the editable fields. Role is deliberately absent.
type UpdateUserRequest struct {
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password,omitempty" binding:"omitempty,min=6"`
}
