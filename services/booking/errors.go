package booking

import (
	"errors"

	"styledecor/database"
	"styledecor/utils"
)

const (
	msgFinalized        = "booking is finalized"
	msgBookingNotFound  = "booking not found"
	msgConcurrentUpdate = "booking was modified by another request"
)

// storeError maps repository sentinels onto the request-boundary taxonomy.
func storeError(err error, notFoundMsg string) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, database.ErrNotFound):
		return utils.NewNotFound(notFoundMsg)
	case errors.Is(err, database.ErrConflict):
		return utils.NewConflict(msgConcurrentUpdate)
	case errors.Is(err, database.ErrDuplicate):
		return utils.NewConflict("record already exists")
	}
	return utils.NewInternal("booking store failure", err)
}
