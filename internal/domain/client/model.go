package client

import "time"

// Client is a customer whose construction projects are tracked.
type Client struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"index;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ListFilter narrows the client list by the indexed email column.
// Email is a lookup key only; uniqueness is not enforced.
type ListFilter struct {
	Email string
}

type CreateClientInput struct {
	Name  string
	Email string
}

// UpdateClientInput patches only the non-nil fields.
type UpdateClientInput struct {
	ID    string
	Name  *string
	Email *string
}
