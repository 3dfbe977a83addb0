package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DecoratorStore implements decoratorRepo.DecoratorRepository.
type DecoratorStore struct{ s *Store }

func (s *Store) Decorators() *DecoratorStore { return &DecoratorStore{s: s} }

// Seed inserts d directly, assigning an ID when missing.
func (d *DecoratorStore) Seed(dec models.Decorator) models.Decorator {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if dec.ID == "" {
		dec.ID = newID()
	}
	d.s.decorators[dec.ID] = dec
	return dec
}

func (d *DecoratorStore) Create(_ context.Context, dec *models.Decorator) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, existing := range d.s.decorators {
		if existing.Email == dec.Email {
			return fmt.Errorf("failed to create decorator %s: %w", dec.Email, database.ErrDuplicate)
		}
	}
	if dec.ID == "" {
		dec.ID = newID()
	}
	dec.CreatedAt = time.Now()
	dec.UpdatedAt = dec.CreatedAt
	d.s.decorators[dec.ID] = *dec
	return nil
}

func (d *DecoratorStore) GetByID(_ context.Context, id string) (*models.Decorator, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	dec, ok := d.s.decorators[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &dec, nil
}

func (d *DecoratorStore) GetByEmail(_ context.Context, email string) (*models.Decorator, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, dec := range d.s.decorators {
		if dec.Email == email {
			return &dec, nil
		}
	}
	return nil, database.ErrNotFound
}

func (d *DecoratorStore) List(_ context.Context, applicationStatus string) ([]models.Decorator, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	out := []models.Decorator{}
	for _, dec := range d.s.decorators {
		if applicationStatus == "" || dec.ApplicationStatus == applicationStatus {
			out = append(out, dec)
		}
	}
	byCreatedDesc(out, func(x models.Decorator) time.Time { return x.CreatedAt })
	return out, nil
}

func (d *DecoratorStore) Top(ctx context.Context, limit int64) ([]models.Decorator, error) {
	approved, _ := d.List(ctx, models.ApplicationApproved)
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].Experience > approved[j].Experience
	})
	if int64(len(approved)) > limit {
		approved = approved[:limit]
	}
	return approved, nil
}

func (d *DecoratorStore) SetFields(_ context.Context, id string, fields bson.M) (int64, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	dec, ok := d.s.decorators[id]
	if !ok {
		return 0, database.ErrNotFound
	}
	return d.set(dec, fields)
}

func (d *DecoratorStore) SetFieldsByEmail(_ context.Context, email string, fields bson.M) (int64, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for _, dec := range d.s.decorators {
		if dec.Email == email {
			return d.set(dec, fields)
		}
	}
	return 0, database.ErrNotFound
}

func (d *DecoratorStore) set(dec models.Decorator, fields bson.M) (int64, error) {
	fields["updatedAt"] = time.Now()
	changed, err := applySet(&dec, fields)
	if err != nil {
		return 0, err
	}
	d.s.decorators[dec.ID] = dec
	return modifiedCount(changed), nil
}

func (d *DecoratorStore) Delete(_ context.Context, id string) (int64, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if _, ok := d.s.decorators[id]; !ok {
		return 0, database.ErrNotFound
	}
	delete(d.s.decorators, id)
	return 1, nil
}

func (d *DecoratorStore) Count(ctx context.Context, applicationStatus string) (int64, error) {
	list, _ := d.List(ctx, applicationStatus)
	return int64(len(list)), nil
}
