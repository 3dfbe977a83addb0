package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository over three collections.
type MongoCatalogRepo struct {
	services  *mongo.Collection
	packages  *mongo.Collection
	coverages *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		services:  db.Collection("services"),
		packages:  db.Collection("packages"),
		coverages: db.Collection("coverageAreas"),
	}
}

func (r *MongoCatalogRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.services.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	if _, err := r.packages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "service", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create package indexes: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if err := findAll(ctx, r.services, bson.M{}, opts, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *MongoCatalogRepo) CreateService(ctx context.Context, s *models.Service) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now()
	if _, err := r.services.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create service %s: %w", s.Name, database.MapError(err))
	}
	return nil
}

func (r *MongoCatalogRepo) ListPackages(ctx context.Context, service string) ([]models.Package, error) {
	filter := bson.M{}
	if service != "" {
		filter["service"] = service
	}
	packages := []models.Package{}
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	if err := findAll(ctx, r.packages, filter, opts, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *MongoCatalogRepo) PackagesByNames(ctx context.Context, names []string) ([]models.Package, error) {
	packages := []models.Package{}
	if len(names) == 0 {
		return packages, nil
	}
	if err := findAll(ctx, r.packages, bson.M{"name": bson.M{"$in": names}}, options.Find(), &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *MongoCatalogRepo) ListCoverageAreas(ctx context.Context) ([]models.CoverageArea, error) {
	areas := []models.CoverageArea{}
	opts := options.Find().SetSort(bson.D{{Key: "region", Value: 1}, {Key: "district", Value: 1}})
	if err := findAll(ctx, r.coverages, bson.M{}, opts, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, out interface{}) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}
