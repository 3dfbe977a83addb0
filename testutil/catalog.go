package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"styledecor/database"
	"styledecor/models"
)

// CatalogStore implements catalogRepo.CatalogRepository.
type CatalogStore struct{ s *Store }

func (s *Store) Catalog() *CatalogStore { return &CatalogStore{s: s} }

func (c *CatalogStore) SeedPackage(p models.Package) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	c.s.packages[p.ID] = p
}

func (c *CatalogStore) SeedCoverageArea(a models.CoverageArea) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	c.s.coverages[a.ID] = a
}

func (c *CatalogStore) ListServices(_ context.Context) ([]models.Service, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	out := []models.Service{}
	for _, svc := range c.s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *CatalogStore) CreateService(_ context.Context, svc *models.Service) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, existing := range c.s.services {
		if existing.Name == svc.Name {
			return fmt.Errorf("failed to create service %s: %w", svc.Name, database.ErrDuplicate)
		}
	}
	if svc.ID == "" {
		svc.ID = newID()
	}
	svc.CreatedAt = time.Now()
	c.s.services[svc.ID] = *svc
	return nil
}

func (c *CatalogStore) ListPackages(_ context.Context, service string) ([]models.Package, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	out := []models.Package{}
	for _, p := range c.s.packages {
		if service == "" || p.Service == service {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (c *CatalogStore) PackagesByNames(_ context.Context, names []string) ([]models.Package, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	out := []models.Package{}
	for _, p := range c.s.packages {
		if want[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *CatalogStore) ListCoverageAreas(_ context.Context) ([]models.CoverageArea, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	out := []models.CoverageArea{}
	for _, a := range c.s.coverages {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].District < out[j].District })
	return out, nil
}
