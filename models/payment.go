package models

import "time"

// Payment is recorded exactly once per confirmed gateway transaction.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	SessionID     string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	BookingID     string    `bson:"bookingId" json:"bookingId"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	PackageName   string    `bson:"packageName,omitempty" json:"packageName,omitempty"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	TrackingID    string    `bson:"trackingId" json:"trackingId"`
	PaidAt        time.Time `bson:"paidAt" json:"paidAt"`
}

// CheckoutInput is the payload accepted by POST /StyleDecor-checkout-session.
// Cost arrives as a string or a number depending on the client.
type CheckoutInput struct {
	BookingID   string      `json:"bookingId" binding:"required"`
	Cost        interface{} `json:"cost"`
	PackageName string      `json:"packageName"`
}

// CheckoutSession is returned after a gateway session is opened.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// PaymentConfirmation is returned by PATCH /verify-payment-success.
type PaymentConfirmation struct {
	Success         bool   `json:"success"`
	AlreadyRecorded bool   `json:"alreadyRecorded,omitempty"`
	PaymentStatus   string `json:"paymentStatus,omitempty"`
	TrackingID      string `json:"trackingId,omitempty"`
	TransactionID   string `json:"transactionId,omitempty"`
	BookingID       string `json:"bookingId,omitempty"`
	Message         string `json:"message,omitempty"`
}
