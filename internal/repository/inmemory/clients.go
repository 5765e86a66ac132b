package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	clientdomain "sitetrack-go/internal/domain/client"
)

type ClientRepository struct {
	mu    sync.RWMutex
	items map[string]clientdomain.Client
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{items: make(map[string]clientdomain.Client)}
}

func (r *ClientRepository) List(ctx context.Context, filter clientdomain.ListFilter) ([]clientdomain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]clientdomain.Client, 0, len(r.items))
	for _, item := range r.items {
		if filter.Email != "" && item.Email != filter.Email {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, clientID string) (*clientdomain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[clientID]
	if !ok {
		return nil, clientdomain.ErrClientNotFound
	}
	return &item, nil
}

func (r *ClientRepository) Create(ctx context.Context, record *clientdomain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}
	r.items[record.ID] = *record
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, clientID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[clientID]
	if !ok {
		return clientdomain.ErrClientNotFound
	}
	if v, ok := fields["name"].(string); ok {
		item.Name = v
	}
	if v, ok := fields["email"].(string); ok {
		item.Email = v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		item.UpdatedAt = v
	}
	r.items[clientID] = item
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, clientID)
	return nil
}
