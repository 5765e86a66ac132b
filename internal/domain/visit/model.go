package visit

import (
	"time"

	photodomain "sitetrack-go/internal/domain/photo"
)

type ExteriorType string

const (
	ExteriorSplat ExteriorType = "splat"
	ExteriorVideo ExteriorType = "video"
)

func ValidExteriorType(t ExteriorType) bool {
	return t == ExteriorSplat || t == ExteriorVideo
}

// Visit is one site inspection under a project. Exactly one media URL is
// expected per exterior type: splat_url for splat captures, video_url or
// youtube360_url for video captures. URLs may be attached after creation, so
// absence is always allowed; a URL that contradicts the exterior type is
// rejected.
type Visit struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     string       `gorm:"type:uuid;index;not null" json:"project_id"`
	Date          time.Time    `gorm:"not null" json:"-"`
	Notes         *string      `gorm:"type:text" json:"notes"`
	ExteriorType  ExteriorType `gorm:"type:text;not null" json:"exterior_type"`
	SplatURL      *string      `gorm:"type:text" json:"splat_url"`
	VideoURL      *string      `gorm:"type:text" json:"video_url"`
	Youtube360URL *string      `gorm:"type:text" json:"youtube360_url"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	ProjectID string
}

// VisitWithPhotos merges a visit with all photos taken during it.
type VisitWithPhotos struct {
	Visit
	Photos []photodomain.Photo `json:"photos"`
}

type CreateVisitInput struct {
	ProjectID     string
	Date          time.Time
	Notes         *string
	ExteriorType  ExteriorType
	SplatURL      *string
	VideoURL      *string
	Youtube360URL *string
}

type UpdateVisitInput struct {
	ID            string
	Date          *time.Time
	Notes         *string
	ExteriorType  *ExteriorType
	SplatURL      *string
	VideoURL      *string
	Youtube360URL *string
}
