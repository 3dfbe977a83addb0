package booking

import (
	"styledecor/models"
	"styledecor/utils"
)

// Event is a request to move or modify a booking.
type Event string

const (
	EventAssign  Event = "assign"
	EventAccept  Event = "accept"
	EventReject  Event = "reject"
	EventPay     Event = "pay"
	EventCancel  Event = "cancel"
	EventUpdate  Event = "update"
	EventAdvance Event = "advance"
)

// transitions is the only place that decides which events a status accepts.
var transitions = map[models.BookingStatus]map[Event]bool{
	models.StatusRequested: {
		EventAssign: true, EventPay: true, EventCancel: true, EventUpdate: true,
	},
	models.StatusAssigned: {
		EventAssign: true, EventAccept: true, EventReject: true, EventPay: true, EventCancel: true, EventUpdate: true,
	},
	models.StatusAccepted: {
		EventAssign: true, EventReject: true, EventPay: true, EventCancel: true, EventUpdate: true, EventAdvance: true,
	},
	models.StatusPaymentDone: {
		EventAssign: true, EventAccept: true, EventReject: true, EventCancel: true, EventUpdate: true, EventAdvance: true,
	},
	models.StatusPlanning:          progressEvents,
	models.StatusMaterialsPrepared: progressEvents,
	models.StatusOnTheWay:          progressEvents,
	models.StatusSetupInProgress:   progressEvents,
	models.StatusCompleted:         {},
	models.StatusCancelled:         {},
}

var progressEvents = map[Event]bool{EventCancel: true, EventUpdate: true, EventAdvance: true}

// progressRank orders the statuses a paid booking moves through on the day of the event.
var progressRank = map[models.BookingStatus]int{
	models.StatusAccepted:          0,
	models.StatusPaymentDone:       0,
	models.StatusPlanning:          1,
	models.StatusMaterialsPrepared: 2,
	models.StatusOnTheWay:          3,
	models.StatusSetupInProgress:   4,
	models.StatusCompleted:         5,
}

func IsTerminal(status models.BookingStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// ParseStatus validates a client-supplied status.
func ParseStatus(s string) (models.BookingStatus, bool) {
	status := models.BookingStatus(s)
	_, ok := transitions[status]
	return status, ok
}

// Allowed reports whether ev may be applied to a booking in status.
func Allowed(status models.BookingStatus, ev Event) bool {
	return transitions[status][ev]
}

// checkTransition returns Conflict when b cannot accept ev.
func checkTransition(b *models.Booking, ev Event) error {
	if IsTerminal(b.Status) {
		return utils.NewConflict(msgFinalized)
	}
	if !Allowed(b.Status, ev) {
		return utils.NewConflict("cannot " + string(ev) + " a booking in status " + string(b.Status))
	}
	return nil
}

// checkResponse validates a decorator's accept or reject. A paymentDone booking may have no decorator yet.
func checkResponse(b *models.Booking, ev Event) error {
	if err := checkTransition(b, ev); err != nil {
		return err
	}
	if b.DecoratorEmail == "" {
		return utils.NewConflict("booking has no decorator")
	}
	if ev == EventAccept && b.AcceptedAt != nil {
		return utils.NewConflict("booking is already accepted")
	}
	return nil
}

// acceptTarget keeps a paid booking in paymentDone; acceptance is then recorded by acceptedAt alone.
func acceptTarget(b *models.Booking) models.BookingStatus {
	if b.Status == models.StatusPaymentDone {
		return models.StatusPaymentDone
	}
	return models.StatusAccepted
}

// rejectTarget is the assignable pool state a declined booking returns to.
func rejectTarget(b *models.Booking) models.BookingStatus {
	if b.PaymentStatus == models.PaymentPaid {
		return models.StatusPaymentDone
	}
	return models.StatusRequested
}

// checkAdvance validates a forward move through the progress statuses.
func checkAdvance(b *models.Booking, target models.BookingStatus) error {
	if err := checkTransition(b, EventAdvance); err != nil {
		return err
	}
	targetRank, ok := progressRank[target]
	if !ok || targetRank == 0 {
		return utils.NewInvalidInput("unsupported status: " + string(target))
	}
	if b.PaymentStatus != models.PaymentPaid {
		return utils.NewConflict("booking is not paid")
	}
	if b.DecoratorEmail == "" {
		return utils.NewConflict("booking has no decorator")
	}
	if b.AcceptedAt == nil {
		return utils.NewConflict("booking has not been accepted")
	}
	if targetRank <= progressRank[b.Status] {
		return utils.NewConflict("status can only move forward")
	}
	return nil
}

// paidStatus is the status a booking takes when its payment is confirmed.
func paidStatus(b *models.Booking) models.BookingStatus {
	switch b.Status {
	case models.StatusRequested, models.StatusAssigned, models.StatusAccepted:
		return models.StatusPaymentDone
	}
	return b.Status
}
