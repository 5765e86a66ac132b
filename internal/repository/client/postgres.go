package client

import (
	"context"
	"errors"

	clientdomain "sitetrack-go/internal/domain/client"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, filter clientdomain.ListFilter) ([]clientdomain.Client, error) {
	query := r.db.WithContext(ctx).Model(&clientdomain.Client{})
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var items []clientdomain.Client
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, clientID string) (*clientdomain.Client, error) {
	var record clientdomain.Client
	if err := r.db.WithContext(ctx).Where("id = ?", clientID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clientdomain.ErrClientNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *clientdomain.Client) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) Update(ctx context.Context, clientID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&clientdomain.Client{}).
		Where("id = ?", clientID).
		Updates(fields).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, clientID string) error {
	return r.db.WithContext(ctx).Delete(&clientdomain.Client{}, "id = ?", clientID).Error
}
