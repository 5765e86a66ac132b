package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	Upsert(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID string) error
}
