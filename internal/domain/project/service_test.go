package project_test

import (
	"context"
	"testing"

	projectdomain "sitetrack-go/internal/domain/project"
	"sitetrack-go/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapClientSource resolves client projections from a fixed map; unknown ids
// resolve to nil like a deleted client row.
type mapClientSource map[string]projectdomain.ClientInfo

func (s mapClientSource) ClientInfo(_ context.Context, clientID string) (*projectdomain.ClientInfo, error) {
	info, ok := s[clientID]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func newService(t *testing.T, clients mapClientSource) *projectdomain.Service {
	t.Helper()
	return projectdomain.NewService(inmemory.NewProjectRepository(), clients, nil)
}

func TestCreateAcceptsUnknownClientID(t *testing.T) {
	svc := newService(t, mapClientSource{})
	ctx := context.Background()

	created, err := svc.Create(ctx, projectdomain.CreateProjectInput{
		ClientID: "11111111-1111-4111-8111-111111111111",
		Name:     "Maple Street Duplex",
		Address:  "412 Maple St",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-4111-8111-111111111111", got.ClientID)
}

func TestListScopedByClient(t *testing.T) {
	svc := newService(t, mapClientSource{})
	ctx := context.Background()

	first, err := svc.Create(ctx, projectdomain.CreateProjectInput{ClientID: "client-a", Name: "A1", Address: "1 A St"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, projectdomain.CreateProjectInput{ClientID: "client-b", Name: "B1", Address: "1 B St"})
	require.NoError(t, err)

	scoped, err := svc.List(ctx, projectdomain.ListFilter{ClientID: "client-a"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, first.ID, scoped[0].ID)

	all, err := svc.List(ctx, projectdomain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListWithClientsKeepsNilProjection(t *testing.T) {
	clients := mapClientSource{
		"client-a": {Name: "Acme", Email: "office@acme.example"},
	}
	svc := newService(t, clients)
	ctx := context.Background()

	resolved, err := svc.Create(ctx, projectdomain.CreateProjectInput{ClientID: "client-a", Name: "A1", Address: "1 A St"})
	require.NoError(t, err)
	dangling, err := svc.Create(ctx, projectdomain.CreateProjectInput{ClientID: "client-gone", Name: "B1", Address: "1 B St"})
	require.NoError(t, err)

	items, err := svc.ListWithClients(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]projectdomain.ProjectWithClient{}
	for _, item := range items {
		byID[item.ID] = item
	}

	require.NotNil(t, byID[resolved.ID].Client)
	assert.Equal(t, "Acme", byID[resolved.ID].Client.Name)
	assert.Equal(t, "office@acme.example", byID[resolved.ID].Client.Email)

	// The project whose client is gone is kept, with a nil projection.
	require.Contains(t, byID, dangling.ID)
	assert.Nil(t, byID[dangling.ID].Client)
}

func TestUpdateRejectsBlankFields(t *testing.T) {
	svc := newService(t, mapClientSource{})
	ctx := context.Background()

	created, err := svc.Create(ctx, projectdomain.CreateProjectInput{ClientID: "client-a", Name: "A1", Address: "1 A St"})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, projectdomain.UpdateProjectInput{ID: created.ID, Name: &blank})
	assert.Error(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.Name)
}

func TestDeleteLeavesChildrenReachable(t *testing.T) {
	svc := newService(t, mapClientSource{})
	ctx := context.Background()

	created, err := svc.Create(ctx, projectdomain.CreateProjectInput{ClientID: "client-a", Name: "A1", Address: "1 A St"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, projectdomain.ErrProjectNotFound)
}
