package photo

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Photo, error)
	GetByID(ctx context.Context, photoID string) (*Photo, error)
	Create(ctx context.Context, photo *Photo) error
	Update(ctx context.Context, photoID string, fields map[string]interface{}) error
	Delete(ctx context.Context, photoID string) error
}
