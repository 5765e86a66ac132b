package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	projectdomain "sitetrack-go/internal/domain/project"
)

type ProjectRepository struct {
	mu    sync.RWMutex
	items map[string]projectdomain.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{items: make(map[string]projectdomain.Project)}
}

func (r *ProjectRepository) List(ctx context.Context, filter projectdomain.ListFilter) ([]projectdomain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]projectdomain.Project, 0, len(r.items))
	for _, item := range r.items {
		if filter.ClientID != "" && item.ClientID != filter.ClientID {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*projectdomain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[projectID]
	if !ok {
		return nil, projectdomain.ErrProjectNotFound
	}
	return &item, nil
}

func (r *ProjectRepository) Create(ctx context.Context, record *projectdomain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}
	r.items[record.ID] = *record
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, projectID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[projectID]
	if !ok {
		return projectdomain.ErrProjectNotFound
	}
	if v, ok := fields["client_id"].(string); ok {
		item.ClientID = v
	}
	if v, ok := fields["name"].(string); ok {
		item.Name = v
	}
	if v, ok := fields["address"].(string); ok {
		item.Address = v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		item.UpdatedAt = v
	}
	r.items[projectID] = item
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, projectID)
	return nil
}
