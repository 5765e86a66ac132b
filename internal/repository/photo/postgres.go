package photo

import (
	"context"
	"errors"

	photodomain "sitetrack-go/internal/domain/photo"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, filter photodomain.ListFilter) ([]photodomain.Photo, error) {
	query := r.db.WithContext(ctx).Model(&photodomain.Photo{})
	if filter.VisitID != "" {
		query = query.Where("visit_id = ?", filter.VisitID)
	}

	var items []photodomain.Photo
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, photoID string) (*photodomain.Photo, error) {
	var record photodomain.Photo
	if err := r.db.WithContext(ctx).Where("id = ?", photoID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, photodomain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *photodomain.Photo) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) Update(ctx context.Context, photoID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&photodomain.Photo{}).
		Where("id = ?", photoID).
		Updates(fields).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, photoID string) error {
	return r.db.WithContext(ctx).Delete(&photodomain.Photo{}, "id = ?", photoID).Error
}
