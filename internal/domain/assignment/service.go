package assignment

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"sitetrack-go/internal/live"
)

const Table = "project_assignments"

type Service struct {
	repo     Repository
	projects ProjectSource
	users    UserSource
	events   live.Publisher
}

func NewService(repo Repository, projects ProjectSource, users UserSource, events live.Publisher) *Service {
	if events == nil {
		events = live.Discard
	}
	return &Service{repo: repo, projects: projects, users: users, events: events}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]ProjectAssignment, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, assignmentID string) (*ProjectAssignment, error) {
	return s.repo.GetByID(ctx, assignmentID)
}

// Assign guarantees at most one assignment row per (user, project) pair: a
// second call with the same pair updates the existing row's role and returns
// the same id.
func (s *Service) Assign(ctx context.Context, input AssignInput) (*ProjectAssignment, error) {
	projectID := strings.TrimSpace(input.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if !ValidRole(input.Role) {
		return nil, fmt.Errorf("invalid role %q", input.Role)
	}

	assignmentID, err := newUUID()
	if err != nil {
		return nil, err
	}

	record := ProjectAssignment{
		ID:        assignmentID,
		ProjectID: projectID,
		UserID:    userID,
		Role:      input.Role,
	}

	if err := s.repo.Upsert(ctx, &record); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpUpdate, ID: record.ID})
	return &record, nil
}

// Update patches the non-nil fields of an existing row by id. When every
// field is nil the call is a no-op returning the current record. The pair
// columns are not patchable, so the unique-pair invariant cannot be broken
// here.
func (s *Service) Update(ctx context.Context, input UpdateAssignmentInput) (*ProjectAssignment, error) {
	record, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Role != nil {
		if !ValidRole(*input.Role) {
			return nil, fmt.Errorf("invalid role %q", *input.Role)
		}
		fields["role"] = *input.Role
		record.Role = *input.Role
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

// ProjectsForUser resolves every assignment for the user to its project,
// carrying the assignment role. Assignments whose project no longer resolves
// are silently dropped.
func (s *Service) ProjectsForUser(ctx context.Context, userID string) ([]ProjectWithRole, error) {
	rows, err := s.repo.List(ctx, ListFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	items := make([]ProjectWithRole, 0, len(rows))
	for _, row := range rows {
		info, err := s.projects.ProjectInfo(ctx, row.ProjectID)
		if err != nil {
			return nil, err
		}
		if info == nil {
			continue
		}
		items = append(items, ProjectWithRole{ProjectInfo: *info, Role: row.Role})
	}

	return items, nil
}

// UsersForProject is the mirror resolver keyed by project.
func (s *Service) UsersForProject(ctx context.Context, projectID string) ([]UserWithRole, error) {
	rows, err := s.repo.List(ctx, ListFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	items := make([]UserWithRole, 0, len(rows))
	for _, row := range rows {
		info, err := s.users.UserInfo(ctx, row.UserID)
		if err != nil {
			return nil, err
		}
		if info == nil {
			continue
		}
		items = append(items, UserWithRole{UserInfo: *info, Role: row.Role})
	}

	return items, nil
}

func (s *Service) Delete(ctx context.Context, assignmentID string) error {
	if err := s.repo.Delete(ctx, assignmentID); err != nil {
		return err
	}
	s.events.Publish(live.Event{Table: Table, Op: live.OpDelete, ID: assignmentID})
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
