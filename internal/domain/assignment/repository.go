package assignment

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]ProjectAssignment, error)
	GetByID(ctx context.Context, assignmentID string) (*ProjectAssignment, error)
	Create(ctx context.Context, assignment *ProjectAssignment) error

	// Upsert inserts the assignment or, when a row for the same
	// (user_id, project_id) pair already exists, updates its role in place.
	// On return the assignment carries the id of the surviving row. Relies on
	// the unique index, so concurrent calls for the same pair cannot produce
	// two rows.
	Upsert(ctx context.Context, assignment *ProjectAssignment) error

	Update(ctx context.Context, assignmentID string, fields map[string]interface{}) error
	Delete(ctx context.Context, assignmentID string) error
}

// ProjectSource resolves the project projection for the for-user resolver.
// A missing project yields (nil, nil).
type ProjectSource interface {
	ProjectInfo(ctx context.Context, projectID string) (*ProjectInfo, error)
}

// UserSource resolves the user projection for the for-project resolver.
// A missing user yields (nil, nil).
type UserSource interface {
	UserInfo(ctx context.Context, userID string) (*UserInfo, error)
}
