package user

import "time"

// User mirrors an identity-provider account. Rows are written by the webhook
// route and the auth middleware profile sync, never by the public API.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     *string   `gorm:"type:text;index" json:"email"`
	Name      *string   `gorm:"type:text" json:"name"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type UpsertUserInput struct {
	ID        string
	Email     *string
	Name      *string
	AvatarURL *string
}
