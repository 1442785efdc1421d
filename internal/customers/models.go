package customers

import "movieticket/internal/session"

// Customer is the identity record the upstream API manages. Customers are
// created by registration, toggled enabled/disabled by admins, never deleted.
type Customer struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Role      session.Role `json:"role"`
	Enabled   bool         `json:"enabled"`
	CreatedAt string       `json:"createdAt"`
}

// RegisterRequest creates a new customer account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest carries the credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
