package visit_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	photodomain "sitetrack-go/internal/domain/photo"
	visitdomain "sitetrack-go/internal/domain/visit"
	"sitetrack-go/internal/live"
	"sitetrack-go/internal/repository/inmemory"
	"sitetrack-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blobRecorder struct {
	mu      sync.Mutex
	deleted []string
	failOn  string
}

func (b *blobRecorder) Delete(_ context.Context, storageID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if storageID == b.failOn {
		return fmt.Errorf("blob store unavailable")
	}
	b.deleted = append(b.deleted, storageID)
	return nil
}

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

type fixture struct {
	visits *visitdomain.Service
	photos *photodomain.Service
	blobs  *blobRecorder
	events *eventRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	photoRepo := inmemory.NewPhotoRepository()
	visitRepo := inmemory.NewVisitRepository(photoRepo)

	events := &eventRecorder{}
	blobs := &blobRecorder{}
	photos := photodomain.NewService(photoRepo, events)
	log := logger.New(io.Discard, slog.LevelError, "json")
	visits := visitdomain.NewService(visitRepo, photos, blobs, events, log)

	return fixture{visits: visits, photos: photos, blobs: blobs, events: events}
}

func strptr(s string) *string { return &s }

func TestCreateValidatesExteriorType(t *testing.T) {
	f := newFixture(t)

	_, err := f.visits.Create(context.Background(), visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         time.Now().UTC(),
		ExteriorType: "drone",
	})
	assert.Error(t, err)
}

func TestMediaURLsMustMatchExteriorType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := time.Now().UTC()

	// A splat visit cannot carry video urls.
	_, err := f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         date,
		ExteriorType: visitdomain.ExteriorSplat,
		VideoURL:     strptr("https://cdn.example/walk.mp4"),
	})
	assert.Error(t, err)

	// A video visit cannot carry a splat url.
	_, err = f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         date,
		ExteriorType: visitdomain.ExteriorVideo,
		SplatURL:     strptr("https://cdn.example/scan.splat"),
	})
	assert.Error(t, err)

	// Absence is always fine: media is often attached after the fact.
	created, err := f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         date,
		ExteriorType: visitdomain.ExteriorSplat,
	})
	require.NoError(t, err)

	// Attaching the matching url later works.
	_, err = f.visits.Update(ctx, visitdomain.UpdateVisitInput{
		ID:       created.ID,
		SplatURL: strptr("https://cdn.example/scan.splat"),
	})
	require.NoError(t, err)

	// Attaching a contradicting url is rejected.
	_, err = f.visits.Update(ctx, visitdomain.UpdateVisitInput{
		ID:       created.ID,
		VideoURL: strptr("https://cdn.example/walk.mp4"),
	})
	assert.Error(t, err)
}

func TestGetWithPhotos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.visits.GetWithPhotos(ctx, "missing")
	assert.ErrorIs(t, err, visitdomain.ErrVisitNotFound)

	created, err := f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         time.Now().UTC(),
		ExteriorType: visitdomain.ExteriorVideo,
	})
	require.NoError(t, err)

	photo, err := f.photos.Create(ctx, photodomain.CreatePhotoInput{
		VisitID:   created.ID,
		StorageID: "photos/one.jpg",
		FileURL:   "https://cdn.example/photos/one.jpg",
	})
	require.NoError(t, err)

	got, err := f.visits.GetWithPhotos(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Photos, 1)
	assert.Equal(t, photo.ID, got.Photos[0].ID)
}

func TestDeleteCascadesPhotosAndBlobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         time.Now().UTC(),
		ExteriorType: visitdomain.ExteriorSplat,
	})
	require.NoError(t, err)

	first, err := f.photos.Create(ctx, photodomain.CreatePhotoInput{
		VisitID:   created.ID,
		StorageID: "photos/one.jpg",
		FileURL:   "https://cdn.example/photos/one.jpg",
	})
	require.NoError(t, err)
	second, err := f.photos.Create(ctx, photodomain.CreatePhotoInput{
		VisitID:   created.ID,
		StorageID: "photos/two.jpg",
		FileURL:   "https://cdn.example/photos/two.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, f.visits.Delete(ctx, created.ID))

	_, err = f.visits.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, visitdomain.ErrVisitNotFound)
	_, err = f.photos.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, photodomain.ErrPhotoNotFound)
	_, err = f.photos.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, photodomain.ErrPhotoNotFound)

	assert.ElementsMatch(t, []string{"photos/one.jpg", "photos/two.jpg"}, f.blobs.deleted)

	// Delete events for each photo and one for the visit.
	var deletes []live.Event
	for _, e := range f.events.all() {
		if e.Op == live.OpDelete {
			deletes = append(deletes, e)
		}
	}
	require.Len(t, deletes, 3)
	assert.Equal(t, visitdomain.Table, deletes[len(deletes)-1].Table)
}

func TestDeleteSurvivesBlobFailure(t *testing.T) {
	f := newFixture(t)
	f.blobs.failOn = "photos/one.jpg"
	ctx := context.Background()

	created, err := f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         time.Now().UTC(),
		ExteriorType: visitdomain.ExteriorSplat,
	})
	require.NoError(t, err)

	_, err = f.photos.Create(ctx, photodomain.CreatePhotoInput{
		VisitID:   created.ID,
		StorageID: "photos/one.jpg",
		FileURL:   "https://cdn.example/photos/one.jpg",
	})
	require.NoError(t, err)

	// Rows win over blobs: the delete succeeds even when cleanup fails.
	require.NoError(t, f.visits.Delete(ctx, created.ID))

	_, err = f.visits.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, visitdomain.ErrVisitNotFound)
}

func TestUpdateWithNoFieldsIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    "project-1",
		Date:         time.Now().UTC(),
		ExteriorType: visitdomain.ExteriorVideo,
	})
	require.NoError(t, err)

	before := len(f.events.all())
	updated, err := f.visits.Update(ctx, visitdomain.UpdateVisitInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, f.events.all(), before)
}
