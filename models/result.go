package models

// RegistrationResult is returned by POST /users.
type RegistrationResult struct {
	InsertedID string `json:"insertedId,omitempty"`
	Created    bool   `json:"created"`
	Message    string `json:"message,omitempty"`
}

// UpdateResult reports how many records an administrative write changed, summed across collections.
type UpdateResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many records were removed, summed across collections.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ApplicationDecision is the payload accepted by PATCH /decorators/status/:id.
type ApplicationDecision struct {
	Status string `json:"status" binding:"required"`
}

// AvailabilityInput is the payload accepted by PATCH /decorators/status-update-by-email/:email.
type AvailabilityInput struct {
	Status string `json:"status" binding:"required"`
}
