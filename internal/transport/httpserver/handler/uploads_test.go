package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sitetrack-go/internal/transport/httpserver/handler"
	"sitetrack-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	presigned []string
}

func (f *fakeBlobStore) PresignUpload(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	f.presigned = append(f.presigned, key)
	return "https://blobs.example/upload/" + key, nil
}

func (f *fakeBlobStore) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://blobs.example/download/" + key, nil
}

func (f *fakeBlobStore) FileURL(_ context.Context, key string) (string, error) {
	return "https://cdn.example/" + key, nil
}

func (f *fakeBlobStore) Delete(context.Context, string) error { return nil }

func TestCreateUpload(t *testing.T) {
	blobs := &fakeBlobStore{}
	h := handler.New(handler.Deps{Blobs: blobs}, logger.New(io.Discard, slog.LevelError, "json"))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(`{"content_type":"image/png"}`))
	rec := httptest.NewRecorder()
	h.CreateUpload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UploadURL string `json:"upload_url"`
		StorageID string `json:"storage_id"`
		FileURL   string `json:"file_url"`
	}
	decodeBody(t, rec, &resp)

	assert.True(t, strings.HasPrefix(resp.StorageID, "photos/"))
	assert.True(t, strings.HasSuffix(resp.StorageID, ".png"))
	assert.Equal(t, "https://blobs.example/upload/"+resp.StorageID, resp.UploadURL)
	assert.Equal(t, "https://cdn.example/"+resp.StorageID, resp.FileURL)
	require.Len(t, blobs.presigned, 1)
	assert.Equal(t, resp.StorageID, blobs.presigned[0])
}

func TestCreateUploadWithoutStoreIsUnavailable(t *testing.T) {
	h := handler.New(handler.Deps{}, logger.New(io.Discard, slog.LevelError, "json"))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", strings.NewReader(`{"content_type":"image/jpeg"}`))
	rec := httptest.NewRecorder()
	h.CreateUpload(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
