package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/storage"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

const maxUploadBytes = 10 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadHTTP moves image files to object storage and hands back the public
// URL. Returns 503 when the deployment runs without a storage backend.
type UploadHTTP struct {
	store *storage.Client
	audit *Auditor
}

func NewUploadHTTP(store *storage.Client, audit *Auditor) *UploadHTTP {
	return &UploadHTTP{store: store, audit: audit}
}

// POST /api/admin/uploads
// Multipart form, field "file", optional "folder".
func (h *UploadHTTP) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			utils.Error(w, http.StatusServiceUnavailable, "storage is not configured")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			utils.Error(w, http.StatusBadRequest, "file too large or malformed form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ext, ok := allowedImageTypes[contentType]
		if !ok {
			utils.Error(w, http.StatusBadRequest, "only jpeg, png and webp images are accepted")
			return
		}

		folder := strings.Trim(path.Clean(r.FormValue("folder")), "/")
		if folder == "" || folder == "." || strings.Contains(folder, "..") {
			folder = "misc"
		}
		key := fmt.Sprintf("%s/%d-%s%s", folder, time.Now().Unix(), uuid.NewString(), ext)

		url, err := h.store.Upload(r.Context(), key, contentType, file)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "upload failed")
			return
		}
		h.audit.record(r, "create", "uploads", key, map[string]string{"url": url})
		utils.JSON(w, http.StatusCreated, map[string]string{"url": url, "key": key})
	}
}

// DELETE /api/admin/uploads
// Body-free, the object is named by ?url=
func (h *UploadHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			utils.Error(w, http.StatusServiceUnavailable, "storage is not configured")
			return
		}
		key := h.store.KeyFromURL(r.URL.Query().Get("url"))
		if key == "" {
			utils.Error(w, http.StatusBadRequest, "url does not belong to this bucket")
			return
		}
		if err := h.store.Remove(r.Context(), key); err != nil {
			utils.Error(w, http.StatusInternalServerError, "delete failed")
			return
		}
		h.audit.record(r, "delete", "uploads", key, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
