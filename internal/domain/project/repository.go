package project

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Project, error)
	GetByID(ctx context.Context, projectID string) (*Project, error)
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, projectID string, fields map[string]interface{}) error
	Delete(ctx context.Context, projectID string) error
}

// ClientSource resolves the client projection for the with-clients resolver.
// A missing client yields (nil, nil), not an error.
type ClientSource interface {
	ClientInfo(ctx context.Context, clientID string) (*ClientInfo, error)
}
