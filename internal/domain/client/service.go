package client

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"sitetrack-go/internal/live"
)

const Table = "clients"

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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, clientID string) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

func (s *Service) Create(ctx context.Context, input CreateClientInput) (*Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	clientID, err := newUUID()
	if err != nil {
		return nil, err
	}

	record := Client{
		ID:    clientID,
		Name:  name,
		Email: email,
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpCreate, ID: record.ID})
	return &record, nil
}

// Update patches the non-nil fields. When every field is nil the call is a
// no-op: the current record is returned without issuing a write.
func (s *Service) Update(ctx context.Context, input UpdateClientInput) (*Client, error) {
	record, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		fields["name"] = name
		record.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, fmt.Errorf("email cannot be empty")
		}
		fields["email"] = email
		record.Email = email
	}

	if len(fields) == 0 {
		return record, nil
	}

	record.UpdatedAt = time.Now().UTC()
	fields["updated_at"] = record.UpdatedAt

	if err := s.repo.Update(ctx, input.ID, fields); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpUpdate, ID: record.ID})
	return record, nil
}

// Delete removes the client unconditionally. Projects under the client are
// left in place and stay reachable by id.
func (s *Service) Delete(ctx context.Context, clientID string) error {
	if err := s.repo.Delete(ctx, clientID); err != nil {
		return err
	}
	s.events.Publish(live.Event{Table: Table, Op: live.OpDelete, ID: clientID})
	return nil
}

func newUUID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}

	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16]), nil
}
