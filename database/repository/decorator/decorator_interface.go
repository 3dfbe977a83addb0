package decoratorRepo

import (
	"context"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DecoratorRepository defines methods for decorator application/profile access.
type DecoratorRepository interface {
	// Create inserts a new application; a second application for the same email yields database.ErrDuplicate.
	Create(ctx context.Context, d *models.Decorator) error
	GetByID(ctx context.Context, id string) (*models.Decorator, error)
	GetByEmail(ctx context.Context, email string) (*models.Decorator, error)
	// List returns decorators with the given application status, or all when empty.
	List(ctx context.Context, applicationStatus string) ([]models.Decorator, error)
	// Top returns approved decorators ordered by experience, most experienced first.
	Top(ctx context.Context, limit int64) ([]models.Decorator, error)
	SetFields(ctx context.Context, id string, fields bson.M) (modified int64, err error)
	SetFieldsByEmail(ctx context.Context, email string, fields bson.M) (modified int64, err error)
	Delete(ctx context.Context, id string) (deleted int64, err error)
	// Count returns the number of decorators with the given application status, or all when empty.
	Count(ctx context.Context, applicationStatus string) (int64, error)
}
