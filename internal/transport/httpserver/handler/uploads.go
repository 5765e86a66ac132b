package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type createUploadRequest struct {
	ContentType string `json:"content_type"`
}

type createUploadResponse struct {
	UploadURL string `json:"upload_url"`
	StorageID string `json:"storage_id"`
	FileURL   string `json:"file_url"`
}

// CreateUpload is step one of the blob contract: mint a storage key, presign
// a PUT URL for it, and resolve the file URL the photo record will keep. The
// client uploads directly and then attaches storage_id + file_url via the
// ordinary photo create call.
func (h *Handlers) CreateUpload(w http.ResponseWriter, r *http.Request) {
	if h.Blobs == nil {
		writeError(w, http.StatusServiceUnavailable, "uploads_unavailable", "blob storage not configured")
		return
	}

	var req createUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	storageID, err := newStorageKey(req.ContentType)
	if err != nil {
		h.log.InternalError("uploads.create: key generation failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	expiry := h.UploadExpiry
	if expiry == 0 {
		expiry = 15 * time.Minute
	}

	uploadURL, err := h.Blobs.PresignUpload(r.Context(), storageID, req.ContentType, expiry)
	if err != nil {
		h.log.InternalError("uploads.create: presign failed", err, "storage_id", storageID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	fileURL, err := h.Blobs.FileURL(r.Context(), storageID)
	if err != nil {
		h.log.InternalError("uploads.create: file url failed", err, "storage_id", storageID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, createUploadResponse{
		UploadURL: uploadURL,
		StorageID: storageID,
		FileURL:   fileURL,
	})
}

func newStorageKey(contentType string) (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("photos/%s%s", hex.EncodeToString(b[:]), contentTypeExt(contentType)), nil
}

func contentTypeExt(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
