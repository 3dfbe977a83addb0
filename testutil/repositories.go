package testutil

import "styledecor/database/repository"

// Repositories returns a repository bundle backed by s.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:      s.Users(),
		Decorators: s.Decorators(),
		Bookings:   s.Bookings(),
		Payments:   s.Payments(),
		Catalog:    s.Catalog(),
	}
}
