package photo

import "time"

type Category string

const (
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryFraming    Category = "framing"
	CategoryGeneral    Category = "general"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryFraming, CategoryGeneral:
		return true
	}
	return false
}

// Photo is one image taken during a site visit. StorageID points at a blob in
// the object store; FileURL is the URL resolved at upload time and is not
// refreshed afterwards.
type Photo struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	VisitID   string    `gorm:"type:uuid;index;not null" json:"visit_id"`
	StorageID string    `gorm:"not null" json:"storage_id"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	Caption   *string   `gorm:"type:text" json:"caption"`
	Category  *Category `gorm:"type:text" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	VisitID string
}

type CreatePhotoInput struct {
	VisitID   string
	StorageID string
	FileURL   string
	Caption   *string
	Category  *Category
}

type UpdatePhotoInput struct {
	ID       string
	Caption  *string
	Category *Category
}
