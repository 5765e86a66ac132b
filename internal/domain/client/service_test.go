package client_test

import (
	"context"
	"sync"
	"testing"

	clientdomain "sitetrack-go/internal/domain/client"
	"sitetrack-go/internal/live"
	"sitetrack-go/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []live.Event
}

func (r *eventRecorder) Publish(e live.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) all() []live.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]live.Event(nil), r.events...)
}

func newService(t *testing.T) (*clientdomain.Service, *eventRecorder) {
	t.Helper()
	events := &eventRecorder{}
	return clientdomain.NewService(inmemory.NewClientRepository(), events), events
}

func TestCreateAndGet(t *testing.T) {
	svc, events := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientdomain.CreateClientInput{
		Name:  "Hartwell Homes",
		Email: "office@hartwellhomes.example",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Hartwell Homes", got.Name)
	assert.Equal(t, "office@hartwellhomes.example", got.Email)

	require.Len(t, events.all(), 1)
	assert.Equal(t, live.Event{Table: clientdomain.Table, Op: live.OpCreate, ID: created.ID}, events.all()[0])
}

func TestCreateRequiresNameAndEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientdomain.CreateClientInput{Email: "a@b.example"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, clientdomain.CreateClientInput{Name: "  ", Email: "a@b.example"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, clientdomain.CreateClientInput{Name: "Acme"})
	assert.Error(t, err)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientdomain.CreateClientInput{Name: "Acme", Email: "old@acme.example"})
	require.NoError(t, err)

	email := "new@acme.example"
	updated, err := svc.Update(ctx, clientdomain.UpdateClientInput{ID: created.ID, Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, email, updated.Email)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, email, got.Email)
}

func TestUpdateWithNoFieldsIsNoOp(t *testing.T) {
	svc, events := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientdomain.CreateClientInput{Name: "Acme", Email: "old@acme.example"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, clientdomain.UpdateClientInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Email, updated.Email)

	// Only the create event: an empty patch issues no write and no event.
	assert.Len(t, events.all(), 1)
}

func TestUpdateMissingClientReturnsNotFound(t *testing.T) {
	svc, _ := newService(t)

	name := "Acme"
	_, err := svc.Update(context.Background(), clientdomain.UpdateClientInput{ID: "nope", Name: &name})
	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)
}

func TestDeleteIsUnconditional(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// Deleting an id that never existed still succeeds.
	require.NoError(t, svc.Delete(ctx, "never-existed"))

	created, err := svc.Create(ctx, clientdomain.CreateClientInput{Name: "Acme", Email: "a@acme.example"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)

	// Idempotent.
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestListFiltersByEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientdomain.CreateClientInput{Name: "Acme", Email: "a@acme.example"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, clientdomain.CreateClientInput{Name: "Birch", Email: "b@birch.example"})
	require.NoError(t, err)

	all, err := svc.List(ctx, clientdomain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.List(ctx, clientdomain.ListFilter{Email: "b@birch.example"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, second.ID, matched[0].ID)
}
