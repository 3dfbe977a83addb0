package models

import "time"

// Service is a decoration service category (e.g. wedding, home).
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ServiceInput is the payload accepted by POST /services.
type ServiceInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Package is a bookable decoration package belonging to a service.
type Package struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Service     string   `bson:"service" json:"service"`
	Price       float64  `bson:"price" json:"price"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
	Features    []string `bson:"features,omitempty" json:"features,omitempty"`
}

// CoverageArea is a district served by the platform.
type CoverageArea struct {
	ID       string   `bson:"id" json:"id"`
	Region   string   `bson:"region" json:"region"`
	District string   `bson:"district" json:"district"`
	Areas    []string `bson:"areas,omitempty" json:"areas,omitempty"`
}

// PopularPackage pairs a package with how often it has been booked.
type PopularPackage struct {
	Package  `bson:",inline"`
	Bookings int64 `bson:"bookings" json:"bookings"`
}
