package inmemory

import (
	"context"
	"sync"
	"time"

	userdomain "sitetrack-go/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]userdomain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]userdomain.User)}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*userdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return &item, nil
}

func (r *UserRepository) Upsert(ctx context.Context, record *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[record.ID]
	if !ok {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
		r.items[record.ID] = *record
		return nil
	}

	if record.Email != nil {
		existing.Email = record.Email
	}
	if record.Name != nil {
		existing.Name = record.Name
	}
	if record.AvatarURL != nil {
		existing.AvatarURL = record.AvatarURL
	}
	existing.UpdatedAt = time.Now().UTC()
	r.items[record.ID] = existing
	*record = existing
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}
