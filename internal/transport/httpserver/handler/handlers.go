package handler

import (
	"time"

	"sitetrack-go/internal/blob"
	assignmentdomain "sitetrack-go/internal/domain/assignment"
	clientdomain "sitetrack-go/internal/domain/client"
	photodomain "sitetrack-go/internal/domain/photo"
	projectdomain "sitetrack-go/internal/domain/project"
	userdomain "sitetrack-go/internal/domain/user"
	visitdomain "sitetrack-go/internal/domain/visit"
	"sitetrack-go/internal/live"
	"sitetrack-go/internal/webhook"
	"sitetrack-go/pkg/logger"
)

type Handlers struct {
	Clients     *clientdomain.Service
	Projects    *projectdomain.Service
	Visits      *visitdomain.Service
	Photos      *photodomain.Service
	Assignments *assignmentdomain.Service
	Users       *userdomain.Service

	Blobs        blob.Store
	UploadExpiry time.Duration
	Hub          *live.Hub
	Webhooks     *webhook.Verifier

	log logger.Logger
}

type Deps struct {
	Clients     *clientdomain.Service
	Projects    *projectdomain.Service
	Visits      *visitdomain.Service
	Photos      *photodomain.Service
	Assignments *assignmentdomain.Service
	Users       *userdomain.Service

	Blobs        blob.Store
	UploadExpiry time.Duration
	Hub          *live.Hub
	Webhooks     *webhook.Verifier
}

func New(deps Deps, log logger.Logger) *Handlers {
	return &Handlers{
		Clients:      deps.Clients,
		Projects:     deps.Projects,
		Visits:       deps.Visits,
		Photos:       deps.Photos,
		Assignments:  deps.Assignments,
		Users:        deps.Users,
		Blobs:        deps.Blobs,
		UploadExpiry: deps.UploadExpiry,
		Hub:          deps.Hub,
		Webhooks:     deps.Webhooks,
		log:          log,
	}
}
