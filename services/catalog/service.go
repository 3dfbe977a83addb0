// Package catalog serves the decoration catalog: services, packages and coverage areas.
package catalog

import (
	"context"
	"errors"
	"strings"

	"styledecor/database"
	"styledecor/database/repository"
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const popularPackagesLimit = 6

type Service struct {
	catalog  repository.CatalogRepository
	bookings repository.BookingRepository
	logger   *zap.Logger
}

func NewService(repos *repository.Repositories, logger *zap.Logger) *Service {
	return &Service{catalog: repos.Catalog, bookings: repos.Bookings, logger: logger}
}

func (s *Service) CoverageAreas(ctx context.Context) ([]models.CoverageArea, error) {
	areas, err := s.catalog.ListCoverageAreas(ctx)
	if err != nil {
		return nil, utils.NewInternal("failed to list coverage areas", err)
	}
	return areas, nil
}

func (s *Service) Services(ctx context.Context) ([]models.Service, error) {
	services, err := s.catalog.ListServices(ctx)
	if err != nil {
		return nil, utils.NewInternal("failed to list services", err)
	}
	return services, nil
}

func (s *Service) CreateService(ctx context.Context, caller models.Caller, in models.ServiceInput) (*models.Service, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.NewInvalidInput("name is required")
	}
	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.catalog.CreateService(ctx, svc); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflict("service already exists")
		}
		return nil, utils.NewInternal("failed to create service", err)
	}
	s.logger.Info("Service created", zap.String("name", svc.Name), zap.String("by", caller.Email))
	return svc, nil
}

// Packages lists the packages of one service, or all packages when service is empty.
func (s *Service) Packages(ctx context.Context, service string) ([]models.Package, error) {
	packages, err := s.catalog.ListPackages(ctx, strings.TrimSpace(service))
	if err != nil {
		return nil, utils.NewInternal("failed to list packages", err)
	}
	return packages, nil
}

// PopularPackages returns the most booked packages, most booked first.
// A booked name missing from the catalog is still reported, with only its name set.
func (s *Service) PopularPackages(ctx context.Context) ([]models.PopularPackage, error) {
	demand, err := s.bookings.DemandByPackage(ctx, popularPackagesLimit)
	if err != nil {
		return nil, utils.NewInternal("failed to aggregate package demand", err)
	}
	if len(demand) == 0 {
		return []models.PopularPackage{}, nil
	}

	names := make([]string, 0, len(demand))
	for _, d := range demand {
		names = append(names, d.PackageName)
	}
	packages, err := s.catalog.PackagesByNames(ctx, names)
	if err != nil {
		return nil, utils.NewInternal("failed to load packages", err)
	}
	byName := make(map[string]models.Package, len(packages))
	for _, p := range packages {
		byName[p.Name] = p
	}

	out := make([]models.PopularPackage, 0, len(demand))
	for _, d := range demand {
		p, ok := byName[d.PackageName]
		if !ok {
			p = models.Package{Name: d.PackageName}
		}
		out = append(out, models.PopularPackage{Package: p, Bookings: d.Bookings})
	}
	return out, nil
}
