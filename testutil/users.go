package testutil

import (
	"context"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserStore implements userRepo.UserRepository.
type UserStore struct{ s *Store }

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

// Seed inserts u directly, assigning an ID when missing.
func (u *UserStore) Seed(user models.User) models.User {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	u.s.users[user.ID] = user
	return user
}

func (u *UserStore) CreateIfAbsent(_ context.Context, user *models.User) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.takeFailure("users.CreateIfAbsent"); err != nil {
		return false, err
	}
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return false, nil
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u.s.users[user.ID] = *user
	return true, nil
}

func (u *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.takeFailure("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, user := range u.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (u *UserStore) List(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	users := make([]models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		users = append(users, user)
	}
	byCreatedDesc(users, func(x models.User) time.Time { return x.CreatedAt })
	return users, nil
}

func (u *UserStore) SetFields(_ context.Context, id string, fields bson.M) (int64, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return 0, database.ErrNotFound
	}
	return u.set(user, fields)
}

func (u *UserStore) SetFieldsByEmail(_ context.Context, email string, fields bson.M) (int64, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.takeFailure("users.SetFieldsByEmail"); err != nil {
		return 0, err
	}
	for _, user := range u.s.users {
		if user.Email == email {
			return u.set(user, fields)
		}
	}
	return 0, database.ErrNotFound
}

func (u *UserStore) set(user models.User, fields bson.M) (int64, error) {
	fields["updatedAt"] = time.Now()
	changed, err := applySet(&user, fields)
	if err != nil {
		return 0, err
	}
	u.s.users[user.ID] = user
	return modifiedCount(changed), nil
}

func (u *UserStore) Delete(_ context.Context, id string) (int64, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return 0, database.ErrNotFound
	}
	delete(u.s.users, id)
	return 1, nil
}

func (u *UserStore) DeleteByEmail(_ context.Context, email string) (int64, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for id, user := range u.s.users {
		if user.Email == email {
			delete(u.s.users, id)
			return 1, nil
		}
	}
	return 0, database.ErrNotFound
}

func (u *UserStore) Count(_ context.Context) (int64, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return int64(len(u.s.users)), nil
}
