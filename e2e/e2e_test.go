//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sitetrack-go/internal/config"
	"sitetrack-go/internal/db"
	assignmentdomain "sitetrack-go/internal/domain/assignment"
	clientdomain "sitetrack-go/internal/domain/client"
	photodomain "sitetrack-go/internal/domain/photo"
	projectdomain "sitetrack-go/internal/domain/project"
	userdomain "sitetrack-go/internal/domain/user"
	visitdomain "sitetrack-go/internal/domain/visit"
	"sitetrack-go/internal/live"
	assignmentrepo "sitetrack-go/internal/repository/assignment"
	clientrepo "sitetrack-go/internal/repository/client"
	photorepo "sitetrack-go/internal/repository/photo"
	projectrepo "sitetrack-go/internal/repository/project"
	userrepo "sitetrack-go/internal/repository/user"
	visitrepo "sitetrack-go/internal/repository/visit"
	"sitetrack-go/internal/transport/httpserver"
	"sitetrack-go/internal/transport/httpserver/handler"
	"sitetrack-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	server         *httptest.Server
	identityServer *httptest.Server
	db             *gorm.DB
}

// newIdentityServer mimics the hosted identity provider: any request carrying
// the well-known test token resolves to a fixed user.
func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/me" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer valid-test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":         "user_e2e_1",
			"email":      "e2e@example.com",
			"first_name": "End",
			"last_name":  "ToEnd",
		})
	}))
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	identityServer := newIdentityServer(t)

	log := logger.New(io.Discard, slog.LevelError, "json")

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Identity: config.IdentityConfig{
			URL:         identityServer.URL,
			AuthTimeout: 2 * time.Second,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(dbConn))
	require.NoError(t, cleanDB(dbConn))

	hub := live.NewHub()

	clients := clientdomain.NewService(clientrepo.NewPostgres(dbConn), hub)
	projects := projectdomain.NewService(projectrepo.NewPostgres(dbConn), clientSource{clients}, hub)
	photos := photodomain.NewService(photorepo.NewPostgres(dbConn), hub)
	visits := visitdomain.NewService(visitrepo.NewPostgres(dbConn), photos, nil, hub, log)
	users := userdomain.NewService(userrepo.NewPostgres(dbConn), hub)
	assignments := assignmentdomain.NewService(assignmentrepo.NewPostgres(dbConn), projectSource{projects}, userSource{users}, hub)

	handlers := handler.New(handler.Deps{
		Clients:     clients,
		Projects:    projects,
		Visits:      visits,
		Photos:      photos,
		Assignments: assignments,
		Users:       users,
		Hub:         hub,
	}, log)

	router := httpserver.NewRouter(cfg, handlers, users, nil, log)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		identityServer.Close()
		if sqlDB, err := dbConn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testEnv{server: server, identityServer: identityServer, db: dbConn}
}

func cleanDB(db *gorm.DB) error {
	for _, table := range []string{"photos", "visits", "project_assignments", "projects", "clients", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, env.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestHealthIsOpen(t *testing.T) {
	env := setupE2E(t)

	resp, _ := env.request(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDataRoutesRequireAuth(t *testing.T) {
	env := setupE2E(t)

	resp, _ := env.request(t, http.MethodGet, "/api/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.request(t, http.MethodGet, "/api/clients", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFullFlowAgainstPostgres(t *testing.T) {
	env := setupE2E(t)
	const token = "valid-test-token"

	// Client.
	resp, raw := env.request(t, http.MethodPost, "/api/clients", token, map[string]string{
		"name":  "E2E Client",
		"email": "e2e-client@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var client struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &client))

	// Project.
	resp, raw = env.request(t, http.MethodPost, "/api/projects", token, map[string]string{
		"client_id": client.ID,
		"name":      "E2E Site",
		"address":   "1 E2E Way",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var project struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &project))

	// Visit.
	resp, raw = env.request(t, http.MethodPost, "/api/visits", token, map[string]interface{}{
		"project_id":    project.ID,
		"date":          time.Now().Unix(),
		"exterior_type": "video",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var visit struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &visit))

	// Photo.
	resp, raw = env.request(t, http.MethodPost, "/api/photos", token, map[string]string{
		"visit_id":   visit.ID,
		"storage_id": "photos/e2e.jpg",
		"file_url":   "https://cdn.example/photos/e2e.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	// Assignment upsert lands on one row.
	for _, role := range []string{"operator", "client"} {
		resp, raw = env.request(t, http.MethodPost, "/api/assignments/assign", token, map[string]string{
			"project_id": project.ID,
			"user_id":    "user_e2e_1",
			"role":       role,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	}

	resp, raw = env.request(t, http.MethodGet, "/api/assignments?project_id="+project.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "client", rows[0].Role)

	// The authenticated caller's profile was mirrored into users, so the
	// project-users resolver can attach it.
	resp, raw = env.request(t, http.MethodGet, "/api/projects/"+project.ID+"/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var members []struct {
		ID   string  `json:"id"`
		Name *string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(raw, &members))
	require.Len(t, members, 1)
	assert.Equal(t, "user_e2e_1", members[0].ID)

	// Cascade delete.
	resp, _ = env.request(t, http.MethodDelete, "/api/visits/"+visit.ID, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = env.request(t, http.MethodGet, "/api/photos?visit_id="+visit.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var photosLeft []struct{}
	require.NoError(t, json.Unmarshal(raw, &photosLeft))
	assert.Empty(t, photosLeft)
}

type clientSource struct{ clients *clientdomain.Service }

func (s clientSource) ClientInfo(ctx context.Context, clientID string) (*projectdomain.ClientInfo, error) {
	record, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, nil
	}
	return &projectdomain.ClientInfo{Name: record.Name, Email: record.Email}, nil
}

type projectSource struct{ projects *projectdomain.Service }

func (s projectSource) ProjectInfo(ctx context.Context, projectID string) (*assignmentdomain.ProjectInfo, error) {
	record, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil
	}
	return &assignmentdomain.ProjectInfo{ID: record.ID, ClientID: record.ClientID, Name: record.Name, Address: record.Address}, nil
}

type userSource struct{ users *userdomain.Service }

func (s userSource) UserInfo(ctx context.Context, userID string) (*assignmentdomain.UserInfo, error) {
	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil
	}
	return &assignmentdomain.UserInfo{ID: record.ID, Email: record.Email, Name: record.Name, AvatarURL: record.AvatarURL}, nil
}
