package user

import (
	"context"
	"fmt"

	"sitetrack-go/internal/live"
)

const Table = "users"

type Service struct {
	repo   Repository
	events live.Publisher
}

func NewService(repo Repository, events live.Publisher) *Service {
	if events == nil {
		events = live.Discard
	}
	return &Service{repo: repo, events: events}
}

func (s *Service) GetByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) Upsert(ctx context.Context, input UpsertUserInput) (*User, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	record := User{
		ID:        input.ID,
		Email:     input.Email,
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
	}

	if err := s.repo.Upsert(ctx, &record); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpUpdate, ID: record.ID})
	return &record, nil
}

// UpsertProfile satisfies the auth middleware's ProfileSaver.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, name, avatarURL string) error {
	input := UpsertUserInput{ID: userID}
	if email != "" {
		input.Email = &email
	}
	if name != "" {
		input.Name = &name
	}
	if avatarURL != "" {
		input.AvatarURL = &avatarURL
	}

	_, err := s.Upsert(ctx, input)
	return err
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.events.Publish(live.Event{Table: Table, Op: live.OpDelete, ID: userID})
	return nil
}
