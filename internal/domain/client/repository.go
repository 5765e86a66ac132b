package client

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Client, error)
	GetByID(ctx context.Context, clientID string) (*Client, error)
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, clientID string, fields map[string]interface{}) error
	Delete(ctx context.Context, clientID string) error
}
