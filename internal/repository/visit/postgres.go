package visit

import (
	"context"
	"errors"

	photodomain "sitetrack-go/internal/domain/photo"
	visitdomain "sitetrack-go/internal/domain/visit"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, filter visitdomain.ListFilter) ([]visitdomain.Visit, error) {
	query := r.db.WithContext(ctx).Model(&visitdomain.Visit{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}

	var items []visitdomain.Visit
	if err := query.Order("date desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, visitID string) (*visitdomain.Visit, error) {
	var record visitdomain.Visit
	if err := r.db.WithContext(ctx).Where("id = ?", visitID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, visitdomain.ErrVisitNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *visitdomain.Visit) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) Update(ctx context.Context, visitID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&visitdomain.Visit{}).
		Where("id = ?", visitID).
		Updates(fields).Error
}

// DeleteWithPhotos removes the visit's photos and then the visit inside one
// transaction, so a crash cannot leave photos pointing at a deleted visit.
func (r *PostgresRepository) DeleteWithPhotos(ctx context.Context, visitID string) ([]visitdomain.DeletedPhoto, error) {
	var deleted []visitdomain.DeletedPhoto

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photos []photodomain.Photo
		if err := tx.Where("visit_id = ?", visitID).Find(&photos).Error; err != nil {
			return err
		}

		for _, p := range photos {
			deleted = append(deleted, visitdomain.DeletedPhoto{ID: p.ID, StorageID: p.StorageID})
		}

		if err := tx.Where("visit_id = ?", visitID).Delete(&photodomain.Photo{}).Error; err != nil {
			return err
		}

		return tx.Delete(&visitdomain.Visit{}, "id = ?", visitID).Error
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
