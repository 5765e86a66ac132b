package app

import (
	"context"
	"errors"

	assignmentdomain "sitetrack-go/internal/domain/assignment"
	clientdomain "sitetrack-go/internal/domain/client"
	projectdomain "sitetrack-go/internal/domain/project"
	userdomain "sitetrack-go/internal/domain/user"
)

// The resolver source adapters translate "not found" into a nil projection so
// resolvers can drop or null out dangling references instead of failing.

type clientSource struct {
	clients *clientdomain.Service
}

func (s clientSource) ClientInfo(ctx context.Context, clientID string) (*projectdomain.ClientInfo, error) {
	record, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientdomain.ErrClientNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &projectdomain.ClientInfo{Name: record.Name, Email: record.Email}, nil
}

type projectSource struct {
	projects *projectdomain.Service
}

func (s projectSource) ProjectInfo(ctx context.Context, projectID string) (*assignmentdomain.ProjectInfo, error) {
	record, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, projectdomain.ErrProjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignmentdomain.ProjectInfo{
		ID:       record.ID,
		ClientID: record.ClientID,
		Name:     record.Name,
		Address:  record.Address,
	}, nil
}

type userSource struct {
	users *userdomain.Service
}

func (s userSource) UserInfo(ctx context.Context, userID string) (*assignmentdomain.UserInfo, error) {
	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignmentdomain.UserInfo{
		ID:        record.ID,
		Email:     record.Email,
		Name:      record.Name,
		AvatarURL: record.AvatarURL,
	}, nil
}
