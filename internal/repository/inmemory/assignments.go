package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	assignmentdomain "sitetrack-go/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu    sync.RWMutex
	items map[string]assignmentdomain.ProjectAssignment
	// pairs maps "userID\x00projectID" to the row id, mirroring the unique
	// index the postgres implementation upserts against.
	pairs map[string]string
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{
		items: make(map[string]assignmentdomain.ProjectAssignment),
		pairs: make(map[string]string),
	}
}

func pairKey(userID, projectID string) string {
	return userID + "\x00" + projectID
}

func (r *AssignmentRepository) List(ctx context.Context, filter assignmentdomain.ListFilter) ([]assignmentdomain.ProjectAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]assignmentdomain.ProjectAssignment, 0, len(r.items))
	for _, item := range r.items {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID string) (*assignmentdomain.ProjectAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[assignmentID]
	if !ok {
		return nil, assignmentdomain.ErrAssignmentNotFound
	}
	return &item, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, record *assignmentdomain.ProjectAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}
	r.items[record.ID] = *record
	r.pairs[pairKey(record.UserID, record.ProjectID)] = record.ID
	return nil
}

func (r *AssignmentRepository) Upsert(ctx context.Context, record *assignmentdomain.ProjectAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(record.UserID, record.ProjectID)
	if existingID, ok := r.pairs[key]; ok {
		existing := r.items[existingID]
		existing.Role = record.Role
		existing.UpdatedAt = time.Now().UTC()
		r.items[existingID] = existing
		*record = existing
		return nil
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}
	r.items[record.ID] = *record
	r.pairs[key] = record.ID
	return nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignmentID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[assignmentID]
	if !ok {
		return assignmentdomain.ErrAssignmentNotFound
	}
	if v, ok := fields["role"].(assignmentdomain.Role); ok {
		item.Role = v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		item.UpdatedAt = v
	}
	r.items[assignmentID] = item
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, assignmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.items[assignmentID]; ok {
		delete(r.pairs, pairKey(item.UserID, item.ProjectID))
	}
	delete(r.items, assignmentID)
	return nil
}
