package visit

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"sitetrack-go/internal/live"
	"sitetrack-go/pkg/logger"
)

const Table = "visits"

type Service struct {
	repo   Repository
	photos PhotoSource
	blobs  BlobRemover
	events live.Publisher
	log    logger.Logger
}

func NewService(repo Repository, photos PhotoSource, blobs BlobRemover, events live.Publisher, log logger.Logger) *Service {
	if events == nil {
		events = live.Discard
	}
	return &Service{repo: repo, photos: photos, blobs: blobs, events: events, log: log}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Visit, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, visitID string) (*Visit, error) {
	return s.repo.GetByID(ctx, visitID)
}

// GetWithPhotos resolves a visit together with all of its photos. A missing
// visit surfaces as ErrVisitNotFound; photos are not consulted in that case.
func (s *Service) GetWithPhotos(ctx context.Context, visitID string) (*VisitWithPhotos, error) {
	record, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	photos, err := s.photos.ListByVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	return &VisitWithPhotos{Visit: *record, Photos: photos}, nil
}

func (s *Service) Create(ctx context.Context, input CreateVisitInput) (*Visit, error) {
	if strings.TrimSpace(input.ProjectID) == "" {
		return nil, fmt.Errorf("project id is required")
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	if !ValidExteriorType(input.ExteriorType) {
		return nil, fmt.Errorf("invalid exterior type %q", input.ExteriorType)
	}

	record := Visit{
		ProjectID:     strings.TrimSpace(input.ProjectID),
		Date:          input.Date,
		Notes:         input.Notes,
		ExteriorType:  input.ExteriorType,
		SplatURL:      input.SplatURL,
		VideoURL:      input.VideoURL,
		Youtube360URL: input.Youtube360URL,
	}

	if err := validateMediaURLs(&record); err != nil {
		return nil, err
	}

	visitID, err := newUUID()
	if err != nil {
		return nil, err
	}
	record.ID = visitID

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpCreate, ID: record.ID})
	return &record, nil
}

func (s *Service) Update(ctx context.Context, input UpdateVisitInput) (*Visit, error) {
	record, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, fmt.Errorf("date cannot be empty")
		}
		fields["date"] = *input.Date
		record.Date = *input.Date
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
		record.Notes = input.Notes
	}
	if input.ExteriorType != nil {
		if !ValidExteriorType(*input.ExteriorType) {
			return nil, fmt.Errorf("invalid exterior type %q", *input.ExteriorType)
		}
		fields["exterior_type"] = *input.ExteriorType
		record.ExteriorType = *input.ExteriorType
	}
	if input.SplatURL != nil {
		fields["splat_url"] = *input.SplatURL
		record.SplatURL = input.SplatURL
	}
	if input.VideoURL != nil {
		fields["video_url"] = *input.VideoURL
		record.VideoURL = input.VideoURL
	}
	if input.Youtube360URL != nil {
		fields["youtube360_url"] = *input.Youtube360URL
		record.Youtube360URL = input.Youtube360URL
	}

	if len(fields) == 0 {
		return record, nil
	}

	if err := validateMediaURLs(record); err != nil {
		return nil, err
	}

	record.UpdatedAt = time.Now().UTC()
	fields["updated_at"] = record.UpdatedAt

	if err := s.repo.Update(ctx, input.ID, fields); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpUpdate, ID: record.ID})
	return record, nil
}

// Delete removes the visit and cascades over its photos in one transaction.
// Blob deletion is best effort: a blob left behind costs storage, a row left
// behind would dangle, so rows win.
func (s *Service) Delete(ctx context.Context, visitID string) error {
	deleted, err := s.repo.DeleteWithPhotos(ctx, visitID)
	if err != nil {
		return err
	}

	for _, p := range deleted {
		if s.blobs == nil || p.StorageID == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, p.StorageID); err != nil {
			s.log.Warn("visit.delete: blob cleanup failed", "err", err, "visit_id", visitID, "storage_id", p.StorageID)
		}
	}

	for _, p := range deleted {
		s.events.Publish(live.Event{Table: photoTable, Op: live.OpDelete, ID: p.ID})
	}
	s.events.Publish(live.Event{Table: Table, Op: live.OpDelete, ID: visitID})
	return nil
}

const photoTable = "photos"

// validateMediaURLs rejects URLs that contradict the exterior type. Absence
// is always allowed since media is often attached after the visit is logged.
func validateMediaURLs(v *Visit) error {
	hasSplat := v.SplatURL != nil && strings.TrimSpace(*v.SplatURL) != ""
	hasVideo := v.VideoURL != nil && strings.TrimSpace(*v.VideoURL) != ""
	hasYoutube := v.Youtube360URL != nil && strings.TrimSpace(*v.Youtube360URL) != ""

	switch v.ExteriorType {
	case ExteriorSplat:
		if hasVideo || hasYoutube {
			return fmt.Errorf("splat visits cannot carry video urls")
		}
	case ExteriorVideo:
		if hasSplat {
			return fmt.Errorf("video visits cannot carry a splat url")
		}
	}
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
