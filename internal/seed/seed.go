// Package seed fills an empty database with a small demo dataset so a fresh
// deployment has something to show in the client app.
package seed

import (
	"context"
	"fmt"
	"time"

	assignmentdomain "sitetrack-go/internal/domain/assignment"
	clientdomain "sitetrack-go/internal/domain/client"
	photodomain "sitetrack-go/internal/domain/photo"
	projectdomain "sitetrack-go/internal/domain/project"
	visitdomain "sitetrack-go/internal/domain/visit"
	"sitetrack-go/pkg/logger"
)

const demoUserID = "user_demo_operator"

// Demo is a no-op when any client already exists.
func Demo(
	ctx context.Context,
	clients *clientdomain.Service,
	projects *projectdomain.Service,
	visits *visitdomain.Service,
	photos *photodomain.Service,
	assignments *assignmentdomain.Service,
	log logger.Logger,
) error {
	existing, err := clients.List(ctx, clientdomain.ListFilter{})
	if err != nil {
		return fmt.Errorf("seed: list clients: %w", err)
	}
	if len(existing) > 0 {
		log.Info("seed: database not empty, skipping")
		return nil
	}

	log.Info("seed: loading demo data")

	c, err := clients.Create(ctx, clientdomain.CreateClientInput{
		Name:  "Hartwell Homes",
		Email: "office@hartwellhomes.example",
	})
	if err != nil {
		return fmt.Errorf("seed: create client: %w", err)
	}

	p, err := projects.Create(ctx, projectdomain.CreateProjectInput{
		ClientID: c.ID,
		Name:     "Maple Street Duplex",
		Address:  "412 Maple St, Portland, OR",
	})
	if err != nil {
		return fmt.Errorf("seed: create project: %w", err)
	}

	notes := "Framing inspection, second floor complete."
	v, err := visits.Create(ctx, visitdomain.CreateVisitInput{
		ProjectID:    p.ID,
		Date:         time.Now().UTC().AddDate(0, 0, -7),
		Notes:        &notes,
		ExteriorType: visitdomain.ExteriorSplat,
	})
	if err != nil {
		return fmt.Errorf("seed: create visit: %w", err)
	}

	caption := "South wall framing"
	category := photodomain.CategoryFraming
	if _, err := photos.Create(ctx, photodomain.CreatePhotoInput{
		VisitID:   v.ID,
		StorageID: "photos/demo-framing.jpg",
		FileURL:   "https://example.com/photos/demo-framing.jpg",
		Caption:   &caption,
		Category:  &category,
	}); err != nil {
		return fmt.Errorf("seed: create photo: %w", err)
	}

	if _, err := assignments.Assign(ctx, assignmentdomain.AssignInput{
		ProjectID: p.ID,
		UserID:    demoUserID,
		Role:      assignmentdomain.RoleOperator,
	}); err != nil {
		return fmt.Errorf("seed: assign demo user: %w", err)
	}

	log.Info("seed: demo data loaded", "client_id", c.ID, "project_id", p.ID)
	return nil
}
