package models

import "time"

// BookingStatus drives the booking workflow.
type BookingStatus string

const (
	StatusRequested         BookingStatus = "requested"
	StatusAssigned          BookingStatus = "assigned"
	StatusAccepted          BookingStatus = "accepted"
	StatusPaymentDone       BookingStatus = "paymentDone"
	StatusPlanning          BookingStatus = "planning"
	StatusMaterialsPrepared BookingStatus = "materialsPrepared"
	StatusOnTheWay          BookingStatus = "onTheWay"
	StatusSetupInProgress   BookingStatus = "setupInProgress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelled         BookingStatus = "cancelled"
)

// PaymentStatus values stored on a booking.
const (
	PaymentUnpaid = "unPaid"
	PaymentPaid   = "Paid"
)

// Booking is a customer's reservation of a decoration package.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	UserEmail      string        `bson:"userEmail" json:"userEmail"`
	UserName       string        `bson:"userName,omitempty" json:"userName,omitempty"`
	DecoratorEmail string        `bson:"decoratorEmail,omitempty" json:"decoratorEmail,omitempty"`
	DecoratorName  string        `bson:"decoratorName,omitempty" json:"decoratorName,omitempty"`
	DecoratorPhoto string        `bson:"decoratorPhoto,omitempty" json:"decoratorPhoto,omitempty"`
	PackageName    string        `bson:"packageName" json:"packageName"`
	ServiceName    string        `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	Cost           float64       `bson:"cost,omitempty" json:"cost,omitempty"`
	BookingDate    string        `bson:"bookingDate,omitempty" json:"bookingDate,omitempty"`
	Location       string        `bson:"location,omitempty" json:"location,omitempty"`
	Status         BookingStatus `bson:"status" json:"status"`
	PaymentStatus  string        `bson:"paymentStatus" json:"paymentStatus"`
	TrackingID     string        `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	TransactionID  string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	AssignedAt     *time.Time    `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	AcceptedAt     *time.Time    `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	PaidAt         *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// BookingInput is the payload accepted by POST /bookings.
type BookingInput struct {
	UserEmail   string  `json:"userEmail" binding:"required,email"`
	UserName    string  `json:"userName"`
	PackageName string  `json:"packageName" binding:"required"`
	ServiceName string  `json:"serviceName"`
	Cost        float64 `json:"cost" binding:"gte=0"`
	BookingDate string  `json:"bookingDate"`
	Location    string  `json:"location"`
}

// BookingFieldsUpdate carries the mutable scheduling fields of a booking.
type BookingFieldsUpdate struct {
	BookingDate *string `json:"bookingDate"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

// BookingFilter narrows booking listings. Empty fields match everything.
type BookingFilter struct {
	UserEmail      string
	DecoratorEmail string
	Status         BookingStatus
	PaymentStatus  string
}

// AssignInput is the payload accepted by PATCH /bookings/assign/:id.
type AssignInput struct {
	DecoratorEmail string `json:"decoratorEmail" binding:"required,email"`
}

// StatusInput is the payload accepted by PATCH /bookings/:id/status.
type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

// BookingMutation is returned by every booking write.
type BookingMutation struct {
	ModifiedCount  int64         `json:"modifiedCount"`
	PreviousStatus BookingStatus `json:"previousStatus"`
	Booking        *Booking      `json:"booking"`
}
