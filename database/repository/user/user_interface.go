package userRepo

import (
	"context"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// CreateIfAbsent inserts user unless its email is already registered.
	CreateIfAbsent(ctx context.Context, user *models.User) (created bool, err error)
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List retrieves all users, newest first.
	List(ctx context.Context) ([]models.User, error)
	// SetFields applies a $set to the user with the given ID.
	SetFields(ctx context.Context, id string, fields bson.M) (modified int64, err error)
	// SetFieldsByEmail applies a $set to the user with the given email.
	SetFieldsByEmail(ctx context.Context, email string, fields bson.M) (modified int64, err error)
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) (deleted int64, err error)
	// DeleteByEmail removes a user record by its email.
	DeleteByEmail(ctx context.Context, email string) (deleted int64, err error)
	// Count returns the number of users.
	Count(ctx context.Context) (int64, error)
}
