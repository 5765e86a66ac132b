package assignment

import (
	"context"
	"errors"
	"time"

	assignmentdomain "sitetrack-go/internal/domain/assignment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, filter assignmentdomain.ListFilter) ([]assignmentdomain.ProjectAssignment, error) {
	query := r.db.WithContext(ctx).Model(&assignmentdomain.ProjectAssignment{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var items []assignmentdomain.ProjectAssignment
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, assignmentID string) (*assignmentdomain.ProjectAssignment, error) {
	var record assignmentdomain.ProjectAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", assignmentID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmentdomain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *assignmentdomain.ProjectAssignment) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Upsert leans on the unique (user_id, project_id) index: INSERT ... ON
// CONFLICT updates the role of the existing row, so two concurrent calls for
// the same pair cannot both insert. The surviving row is read back so the
// caller sees its id.
func (r *PostgresRepository) Upsert(ctx context.Context, record *assignmentdomain.ProjectAssignment) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"role":       record.Role,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(record).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", record.UserID, record.ProjectID).
		First(record).Error
}

func (r *PostgresRepository) Update(ctx context.Context, assignmentID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&assignmentdomain.ProjectAssignment{}).
		Where("id = ?", assignmentID).
		Updates(fields).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, assignmentID string) error {
	return r.db.WithContext(ctx).Delete(&assignmentdomain.ProjectAssignment{}, "id = ?", assignmentID).Error
}
