package models

import "time"

// Application status values.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Availability status values.
const (
	DecoratorStatusAvailable = "available"
	DecoratorStatusInactive  = "inactive"
	DecoratorStatusBanned    = "banned"
)

// Decorator is a service provider application and profile. Email joins it to a User.
type Decorator struct {
	ID                string    `bson:"id" json:"id"`
	Email             string    `bson:"email" json:"email"`
	Name              string    `bson:"name" json:"name"`
	PhotoURL          string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Phone             string    `bson:"phone,omitempty" json:"phone,omitempty"`
	District          string    `bson:"district,omitempty" json:"district,omitempty"`
	Specialties       []string  `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Experience        int       `bson:"experience" json:"experience"`
	Rating            float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	ApplicationStatus string    `bson:"applicationStatus" json:"applicationStatus"`
	Role              string    `bson:"role" json:"role"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DecoratorApplication is the payload accepted by POST /decorators.
type DecoratorApplication struct {
	Email       string   `json:"email" binding:"required,email"`
	Name        string   `json:"name" binding:"required"`
	PhotoURL    string   `json:"photoURL"`
	Phone       string   `json:"phone"`
	District    string   `json:"district"`
	Specialties []string `json:"specialties"`
	Experience  int      `json:"experience" binding:"gte=0"`
}

// RoleView is returned by the role lookup endpoints.
type RoleView struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}
