package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	photodomain "sitetrack-go/internal/domain/photo"
)

type PhotoRepository struct {
	mu    sync.RWMutex
	items map[string]photodomain.Photo
}

func NewPhotoRepository() *PhotoRepository {
	return &PhotoRepository{items: make(map[string]photodomain.Photo)}
}

func (r *PhotoRepository) List(ctx context.Context, filter photodomain.ListFilter) ([]photodomain.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]photodomain.Photo, 0, len(r.items))
	for _, item := range r.items {
		if filter.VisitID != "" && item.VisitID != filter.VisitID {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, photoID string) (*photodomain.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[photoID]
	if !ok {
		return nil, photodomain.ErrPhotoNotFound
	}
	return &item, nil
}

func (r *PhotoRepository) Create(ctx context.Context, record *photodomain.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}
	r.items[record.ID] = *record
	return nil
}

func (r *PhotoRepository) Update(ctx context.Context, photoID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[photoID]
	if !ok {
		return photodomain.ErrPhotoNotFound
	}
	if v, ok := fields["caption"].(string); ok {
		caption := v
		item.Caption = &caption
	}
	if v, ok := fields["category"].(photodomain.Category); ok {
		category := v
		item.Category = &category
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		item.UpdatedAt = v
	}
	r.items[photoID] = item
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, photoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, photoID)
	return nil
}

func (r *PhotoRepository) removeByVisit(visitID string) []photodomain.Photo {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []photodomain.Photo
	for id, item := range r.items {
		if item.VisitID == visitID {
			removed = append(removed, item)
			delete(r.items, id)
		}
	}
	return removed
}
