package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	visitdomain "sitetrack-go/internal/domain/visit"
)

// VisitRepository keeps visits in memory. The photo repository is shared so
// the cascade delete can clear photo rows the same way the postgres
// implementation does.
type VisitRepository struct {
	mu     sync.RWMutex
	items  map[string]visitdomain.Visit
	photos *PhotoRepository
}

func NewVisitRepository(photos *PhotoRepository) *VisitRepository {
	return &VisitRepository{
		items:  make(map[string]visitdomain.Visit),
		photos: photos,
	}
}

func (r *VisitRepository) List(ctx context.Context, filter visitdomain.ListFilter) ([]visitdomain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]visitdomain.Visit, 0, len(r.items))
	for _, item := range r.items {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *VisitRepository) GetByID(ctx context.Context, visitID string) (*visitdomain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[visitID]
	if !ok {
		return nil, visitdomain.ErrVisitNotFound
	}
	return &item, nil
}

func (r *VisitRepository) Create(ctx context.Context, record *visitdomain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}
	r.items[record.ID] = *record
	return nil
}

func (r *VisitRepository) Update(ctx context.Context, visitID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[visitID]
	if !ok {
		return visitdomain.ErrVisitNotFound
	}
	if v, ok := fields["date"].(time.Time); ok {
		item.Date = v
	}
	if v, ok := fields["notes"].(string); ok {
		notes := v
		item.Notes = &notes
	}
	if v, ok := fields["exterior_type"].(visitdomain.ExteriorType); ok {
		item.ExteriorType = v
	}
	if v, ok := fields["splat_url"].(string); ok {
		url := v
		item.SplatURL = &url
	}
	if v, ok := fields["video_url"].(string); ok {
		url := v
		item.VideoURL = &url
	}
	if v, ok := fields["youtube360_url"].(string); ok {
		url := v
		item.Youtube360URL = &url
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		item.UpdatedAt = v
	}
	r.items[visitID] = item
	return nil
}

func (r *VisitRepository) DeleteWithPhotos(ctx context.Context, visitID string) ([]visitdomain.DeletedPhoto, error) {
	removed := r.photos.removeByVisit(visitID)

	r.mu.Lock()
	delete(r.items, visitID)
	r.mu.Unlock()

	deleted := make([]visitdomain.DeletedPhoto, 0, len(removed))
	for _, p := range removed {
		deleted = append(deleted, visitdomain.DeletedPhoto{ID: p.ID, StorageID: p.StorageID})
	}
	return deleted, nil
}
