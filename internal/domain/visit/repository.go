package visit

import (
	"context"

	photodomain "sitetrack-go/internal/domain/photo"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Visit, error)
	GetByID(ctx context.Context, visitID string) (*Visit, error)
	Create(ctx context.Context, visit *Visit) error
	Update(ctx context.Context, visitID string, fields map[string]interface{}) error

	// DeleteWithPhotos removes every photo under the visit and then the visit
	// itself in one transaction, returning the ids and storage keys of the
	// deleted photos so their blobs can be cleaned up.
	DeleteWithPhotos(ctx context.Context, visitID string) ([]DeletedPhoto, error)
}

type DeletedPhoto struct {
	ID        string
	StorageID string
}

// PhotoSource lists the photos belonging to a visit for the with-photos
// resolver.
type PhotoSource interface {
	ListByVisit(ctx context.Context, visitID string) ([]photodomain.Photo, error)
}

// BlobRemover deletes an uploaded blob by its storage key.
type BlobRemover interface {
	Delete(ctx context.Context, key string) error
}
