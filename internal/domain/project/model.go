package project

import "time"

// Project is a construction site tracked for one client.
type Project struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  string    `gorm:"type:uuid;index;not null" json:"client_id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	ClientID string
}

// ClientInfo is the denormalized client projection attached by the
// with-clients resolver.
type ClientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectWithClient pairs a project with its client projection. Client is nil
// when the client row no longer resolves; the project row is never dropped.
type ProjectWithClient struct {
	Project
	Client *ClientInfo `json:"client"`
}

type CreateProjectInput struct {
	ClientID string
	Name     string
	Address  string
}

type UpdateProjectInput struct {
	ID       string
	ClientID *string
	Name     *string
	Address  *string
}
