package project

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"sitetrack-go/internal/live"
)

const Table = "projects"

type Service struct {
	repo    Repository
	clients ClientSource
	events  live.Publisher
}

func NewService(repo Repository, clients ClientSource, events live.Publisher) *Service {
	if events == nil {
		events = live.Discard
	}
	return &Service{repo: repo, clients: clients, events: events}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	return s.repo.List(ctx, filter)
}

// ListWithClients returns every project with a denormalized client
// projection. Projects whose client row is gone keep a nil projection.
func (s *Service) ListWithClients(ctx context.Context) ([]ProjectWithClient, error) {
	projects, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	items := make([]ProjectWithClient, 0, len(projects))
	for _, p := range projects {
		info, err := s.clients.ClientInfo(ctx, p.ClientID)
		if err != nil {
			return nil, err
		}
		items = append(items, ProjectWithClient{Project: p, Client: info})
	}

	return items, nil
}

func (s *Service) GetByID(ctx context.Context, projectID string) (*Project, error) {
	return s.repo.GetByID(ctx, projectID)
}

// Create accepts the client id as-is: a well-formed but nonexistent parent id
// is stored and only surfaces later when the resolver fails to attach it.
func (s *Service) Create(ctx context.Context, input CreateProjectInput) (*Project, error) {
	if strings.TrimSpace(input.ClientID) == "" {
		return nil, fmt.Errorf("client id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	projectID, err := newUUID()
	if err != nil {
		return nil, err
	}

	record := Project{
		ID:       projectID,
		ClientID: strings.TrimSpace(input.ClientID),
		Name:     name,
		Address:  address,
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpCreate, ID: record.ID})
	return &record, nil
}

func (s *Service) Update(ctx context.Context, input UpdateProjectInput) (*Project, error) {
	record, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.ClientID != nil {
		clientID := strings.TrimSpace(*input.ClientID)
		if clientID == "" {
			return nil, fmt.Errorf("client id cannot be empty")
		}
		fields["client_id"] = clientID
		record.ClientID = clientID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		fields["name"] = name
		record.Name = name
	}
	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if address == "" {
			return nil, fmt.Errorf("address cannot be empty")
		}
		fields["address"] = address
		record.Address = address
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

// Delete removes the project unconditionally with no cascade: visits and
// assignments under it stay reachable by id.
func (s *Service) Delete(ctx context.Context, projectID string) error {
	if err := s.repo.Delete(ctx, projectID); err != nil {
		return err
	}
	s.events.Publish(live.Event{Table: Table, Op: live.OpDelete, ID: projectID})
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
