package photo

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"sitetrack-go/internal/live"
)

const Table = "photos"

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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Photo, error) {
	return s.repo.List(ctx, filter)
}

// ListByVisit satisfies the visit domain's PhotoSource.
func (s *Service) ListByVisit(ctx context.Context, visitID string) ([]Photo, error) {
	return s.repo.List(ctx, ListFilter{VisitID: visitID})
}

func (s *Service) GetByID(ctx context.Context, photoID string) (*Photo, error) {
	return s.repo.GetByID(ctx, photoID)
}

func (s *Service) Create(ctx context.Context, input CreatePhotoInput) (*Photo, error) {
	if strings.TrimSpace(input.VisitID) == "" {
		return nil, fmt.Errorf("visit id is required")
	}
	if strings.TrimSpace(input.StorageID) == "" {
		return nil, fmt.Errorf("storage id is required")
	}
	if strings.TrimSpace(input.FileURL) == "" {
		return nil, fmt.Errorf("file url is required")
	}
	if input.Category != nil && !ValidCategory(*input.Category) {
		return nil, fmt.Errorf("invalid category %q", *input.Category)
	}

	photoID, err := newUUID()
	if err != nil {
		return nil, err
	}

	record := Photo{
		ID:        photoID,
		VisitID:   strings.TrimSpace(input.VisitID),
		StorageID: strings.TrimSpace(input.StorageID),
		FileURL:   strings.TrimSpace(input.FileURL),
		Caption:   input.Caption,
		Category:  input.Category,
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}

	s.events.Publish(live.Event{Table: Table, Op: live.OpCreate, ID: record.ID})
	return &record, nil
}

func (s *Service) Update(ctx context.Context, input UpdatePhotoInput) (*Photo, error) {
	record, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Caption != nil {
		fields["caption"] = *input.Caption
		record.Caption = input.Caption
	}
	if input.Category != nil {
		if !ValidCategory(*input.Category) {
			return nil, fmt.Errorf("invalid category %q", *input.Category)
		}
		fields["category"] = *input.Category
		record.Category = input.Category
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

func (s *Service) Delete(ctx context.Context, photoID string) error {
	if err := s.repo.Delete(ctx, photoID); err != nil {
		return err
	}
	s.events.Publish(live.Event{Table: Table, Op: live.OpDelete, ID: photoID})
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
