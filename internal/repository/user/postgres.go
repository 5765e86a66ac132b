package user

import (
	"context"
	"errors"
	"time"

	userdomain "sitetrack-go/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*userdomain.User, error) {
	var record userdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, record *userdomain.User) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if record.Email != nil {
		updates["email"] = record.Email
	}
	if record.Name != nil {
		updates["name"] = record.Name
	}
	if record.AvatarURL != nil {
		updates["avatar_url"] = record.AvatarURL
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(record).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&userdomain.User{}, "id = ?", userID).Error
}
