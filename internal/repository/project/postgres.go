package project

import (
	"context"
	"errors"

	projectdomain "sitetrack-go/internal/domain/project"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, filter projectdomain.ListFilter) ([]projectdomain.Project, error) {
	query := r.db.WithContext(ctx).Model(&projectdomain.Project{})
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}

	var items []projectdomain.Project
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, projectID string) (*projectdomain.Project, error) {
	var record projectdomain.Project
	if err := r.db.WithContext(ctx).Where("id = ?", projectID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectdomain.ErrProjectNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *projectdomain.Project) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) Update(ctx context.Context, projectID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&projectdomain.Project{}).
		Where("id = ?", projectID).
		Updates(fields).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).Delete(&projectdomain.Project{}, "id = ?", projectID).Error
}
