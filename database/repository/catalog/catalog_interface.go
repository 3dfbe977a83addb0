package catalogRepo

import (
	"context"

	"styledecor/models"
)

// CatalogRepository reads and writes services, packages and coverage areas.
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	// ListPackages returns packages of one service, or all when service is empty.
	ListPackages(ctx context.Context, service string) ([]models.Package, error)
	PackagesByNames(ctx context.Context, names []string) ([]models.Package, error)
	ListCoverageAreas(ctx context.Context) ([]models.CoverageArea, error)
}
