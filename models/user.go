// models/user.go
package models

import "time"

// Role values shared by users and decorators.
const (
	RoleUser      = "user"
	RoleDecorator = "decorator"
	RoleAdmin     = "admin"
)

// Account status values for users.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

// User is a platform identity keyed by email.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      string    `bson:"role" json:"role"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UserRegistration is the payload accepted by POST /users.
type UserRegistration struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// Caller is the authenticated principal of a request.
type Caller struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) IsDecorator() bool {
	return c.Role == RoleDecorator
}

func (c Caller) IsBanned() bool {
	return c.Status == UserStatusBanned || c.Status == DecoratorStatusBanned
}
